// Package members provides database operations for library members.
package members

import (
	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/entities"
)

// Repository handles all member database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new members repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll retrieves every member.
func (r *Repository) GetAll() ([]entities.Member, error) {
	var members []entities.Member
	err := r.db.Find(&members).Error
	return members, err
}

// GetByID retrieves a single member. When withBorrowings is set, the member's
// borrowing records are eager-loaded together with each record's book for the
// borrowings detail view.
func (r *Repository) GetByID(id uint, withBorrowings bool) (*entities.Member, error) {
	query := r.db
	if withBorrowings {
		query = query.Preload("BorrowingRecords").Preload("BorrowingRecords.Book")
	}
	var member entities.Member
	if err := query.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Create inserts a member and fills in its generated id.
func (r *Repository) Create(member *entities.Member) error {
	return r.db.Create(member).Error
}

// Update overwrites the member's fields. Returns gorm.ErrRecordNotFound when
// the row vanished between load and save.
func (r *Repository) Update(member *entities.Member) error {
	result := r.db.Model(&entities.Member{}).
		Where("member_id = ?", member.MemberID).
		Updates(map[string]any{
			"first_name": member.FirstName,
			"last_name":  member.LastName,
			"email":      member.Email,
			"phone":      member.Phone,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a member row. Borrowing records referencing it are left in
// place; cleaning them up is the caller's responsibility.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Member{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
