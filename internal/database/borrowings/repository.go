// Package borrowings provides database operations for borrowing records.
//
// Book.Available is denormalized state: it must flip whenever an open record
// for the book is created, returned, edited or deleted. Every mutation here
// therefore updates the record and its book inside one transaction.
package borrowings

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/entities"
)

var (
	ErrBookNotFound   = errors.New("referenced book does not exist")
	ErrMemberNotFound = errors.New("referenced member does not exist")
)

// Repository handles all borrowing-record database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new borrowings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll retrieves every borrowing record, optionally eager-loading the
// related book and member rows.
func (r *Repository) GetAll(withBook, withMember bool) ([]entities.BorrowingRecord, error) {
	var records []entities.BorrowingRecord
	err := r.withPreloads(withBook, withMember).Find(&records).Error
	return records, err
}

// GetByID retrieves a single record. Returns gorm.ErrRecordNotFound if absent.
func (r *Repository) GetByID(id uint, withBook, withMember bool) (*entities.BorrowingRecord, error) {
	var record entities.BorrowingRecord
	if err := r.withPreloads(withBook, withMember).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByMember retrieves all records for one member with books preloaded.
func (r *Repository) ListByMember(memberID uint) ([]entities.BorrowingRecord, error) {
	var records []entities.BorrowingRecord
	err := r.withPreloads(true, true).
		Where("member_id = ?", memberID).
		Find(&records).Error
	return records, err
}

// ListOverdue retrieves unreturned records strictly past their due date.
// A record due exactly at the given instant is not overdue.
func (r *Repository) ListOverdue(now time.Time) ([]entities.BorrowingRecord, error) {
	var records []entities.BorrowingRecord
	err := r.withPreloads(true, true).
		Where("returned = ? AND due_date < ?", false, now).
		Find(&records).Error
	return records, err
}

// Create inserts a record and marks its book unavailable in one transaction.
// The referenced book and member must exist.
func (r *Repository) Create(record *entities.BorrowingRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, record.BookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&entities.Member{}).
			Where("member_id = ?", record.MemberID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrMemberNotFound
		}

		if err := tx.Model(&book).Update("available", false).Error; err != nil {
			return err
		}

		return tx.Create(record).Error
	})
}

// MarkReturned flips the record to returned, charges the fee computed from
// its due date, and restores the book's availability. The record and book are
// committed together. A missing book only skips the availability toggle; the
// book may legitimately have been deleted after the loan was made.
func (r *Repository) MarkReturned(id uint, feeFor func(dueDate time.Time) float64) (*entities.BorrowingRecord, error) {
	var record entities.BorrowingRecord
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, id).Error; err != nil {
			return err
		}

		record.Returned = true
		record.LateFee = feeFor(record.DueDate)
		if err := tx.Model(&entities.BorrowingRecord{}).
			Where("record_id = ?", id).
			Updates(map[string]any{
				"returned": true,
				"late_fee": record.LateFee,
			}).Error; err != nil {
			return err
		}

		return r.setBookAvailability(tx, record.BookID, true)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Update overwrites a record's fields. When the stored Returned flag differs
// from the incoming one, the referenced book's availability follows the new
// flag (a record becoming returned frees its book). Returns
// gorm.ErrRecordNotFound when the row vanished between load and save.
func (r *Repository) Update(record *entities.BorrowingRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var original entities.BorrowingRecord
		if err := tx.First(&original, record.RecordID).Error; err != nil {
			return err
		}

		if original.Returned != record.Returned {
			if err := r.setBookAvailability(tx, record.BookID, record.Returned); err != nil {
				return err
			}
		}

		result := tx.Model(&entities.BorrowingRecord{}).
			Where("record_id = ?", record.RecordID).
			Updates(map[string]any{
				"book_id":     record.BookID,
				"member_id":   record.MemberID,
				"borrow_date": record.BorrowDate,
				"due_date":    record.DueDate,
				"returned":    record.Returned,
				"late_fee":    record.LateFee,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Delete removes a record. If the record was never returned its book is made
// available again first, so the book is not stranded as borrowed forever.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var record entities.BorrowingRecord
		if err := tx.First(&record, id).Error; err != nil {
			return err
		}

		if !record.Returned {
			if err := r.setBookAvailability(tx, record.BookID, true); err != nil {
				return err
			}
		}

		return tx.Delete(&entities.BorrowingRecord{}, id).Error
	})
}

// setBookAvailability flips the availability flag when the target book still
// exists; a missing book is tolerated.
func (r *Repository) setBookAvailability(tx *gorm.DB, bookID uint, available bool) error {
	err := tx.Model(&entities.Book{}).
		Where("book_id = ?", bookID).
		Update("available", available).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (r *Repository) withPreloads(withBook, withMember bool) *gorm.DB {
	query := r.db
	if withBook {
		query = query.Preload("Book")
	}
	if withMember {
		query = query.Preload("Member")
	}
	return query
}
