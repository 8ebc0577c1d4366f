package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/database/books"
	"github.com/mrlokans/library-manager/internal/entities"
)

// BookService owns the catalogue rules and is shared by the HTML and JSON
// adapters.
type BookService struct {
	repo *books.Repository
}

func NewBookService(repo *books.Repository) *BookService {
	return &BookService{repo: repo}
}

func (s *BookService) List() ([]entities.Book, error) {
	return s.repo.GetAll()
}

// ListAvailable returns books that can currently be borrowed.
func (s *BookService) ListAvailable() ([]entities.Book, error) {
	return s.repo.GetAvailable()
}

// ListDtos projects the catalogue for the API with an Available/Borrowed
// status per book.
func (s *BookService) ListDtos() ([]entities.BookDto, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	dtos := make([]entities.BookDto, 0, len(all))
	for _, b := range all {
		status := entities.StatusBorrowed
		if b.Available {
			status = entities.StatusAvailable
		}
		dtos = append(dtos, entities.BookDto{
			BookID: b.BookID,
			Title:  b.Title,
			Author: b.Author,
			Status: status,
		})
	}
	return dtos, nil
}

func (s *BookService) GetByID(id uint) (*entities.Book, error) {
	book, err := s.repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return book, err
}

// ByGenre matches the genre exactly, ignoring case.
func (s *BookService) ByGenre(genre string) ([]entities.Book, error) {
	return s.repo.GetByGenre(genre)
}

func (s *BookService) Create(book *entities.Book) error {
	if errs := validateBook(book); len(errs) > 0 {
		return errs
	}
	if err := s.repo.Create(book); err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// Update overwrites an existing book. The id from the path must match the
// body; a row that vanished between load and save reports ErrNotFound.
func (s *BookService) Update(id uint, book *entities.Book) error {
	if id != book.BookID {
		return ErrIDMismatch
	}
	if errs := validateBook(book); len(errs) > 0 {
		return errs
	}
	err := s.repo.Update(book)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *BookService) Delete(id uint) error {
	err := s.repo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func validateBook(book *entities.Book) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(book.Title) == "" {
		errs["Title"] = "title is required"
	}
	if strings.TrimSpace(book.Author) == "" {
		errs["Author"] = "author is required"
	}
	if strings.TrimSpace(book.Genre) == "" {
		errs["Genre"] = "genre is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
