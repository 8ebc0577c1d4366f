// Package books provides database operations for the book catalogue.
package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll retrieves every book in the store's natural order.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Find(&books).Error
	return books, err
}

// GetAvailable retrieves books that are currently available for borrowing.
func (r *Repository) GetAvailable() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("available = ?", true).Find(&books).Error
	return books, err
}

// GetByID retrieves a single book. Returns gorm.ErrRecordNotFound if absent.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByGenre retrieves books whose genre matches exactly, ignoring case.
func (r *Repository) GetByGenre(genre string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("LOWER(genre) = LOWER(?)", genre).Find(&books).Error
	return books, err
}

// Create inserts a book and fills in its generated id.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

// Update overwrites Title, Author, Genre and Available for an existing book.
// Returns gorm.ErrRecordNotFound when the row vanished between load and save;
// any other failure propagates untouched.
func (r *Repository) Update(book *entities.Book) error {
	result := r.db.Model(&entities.Book{}).
		Where("book_id = ?", book.BookID).
		Select("title", "author", "genre", "available").
		Updates(map[string]any{
			"title":     book.Title,
			"author":    book.Author,
			"genre":     book.Genre,
			"available": book.Available,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a book row. Borrowing records referencing it are left in
// place; cleaning them up is the caller's responsibility.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
