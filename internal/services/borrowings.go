package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/config"
	"github.com/mrlokans/library-manager/internal/database/borrowings"
	"github.com/mrlokans/library-manager/internal/entities"
)

// BorrowingService owns the one real piece of business logic in the system:
// keeping Book.Available consistent with open borrowing records and charging
// late fees on return. Both presentation adapters go through it.
type BorrowingService struct {
	repo       *borrowings.Repository
	loanPeriod time.Duration
	dailyFee   float64

	// now is replaceable in tests for deterministic fee arithmetic.
	now func() time.Time
}

func NewBorrowingService(repo *borrowings.Repository, cfg config.Borrowing) *BorrowingService {
	loanDays := cfg.LoanPeriodDays
	if loanDays <= 0 {
		loanDays = config.DefaultLoanPeriodDays
	}
	dailyFee := cfg.DailyLateFee
	if dailyFee <= 0 {
		dailyFee = config.DefaultDailyLateFee
	}

	return &BorrowingService{
		repo:       repo,
		loanPeriod: time.Duration(loanDays) * 24 * time.Hour,
		dailyFee:   dailyFee,
		now:        time.Now,
	}
}

// SetClock replaces the service's notion of "now". Intended for tests.
func (s *BorrowingService) SetClock(now func() time.Time) {
	s.now = now
}

// List returns every record with book and member preloaded.
func (s *BorrowingService) List() ([]entities.BorrowingRecord, error) {
	return s.repo.GetAll(true, true)
}

// ListDtos projects all records for the API: Returned records read
// "Returned", open ones "Borrowed", with the stored fee.
func (s *BorrowingService) ListDtos() ([]entities.BorrowingRecordDto, error) {
	records, err := s.repo.GetAll(true, true)
	if err != nil {
		return nil, err
	}
	dtos := make([]entities.BorrowingRecordDto, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, borrowingDto(r, listStatus(r), r.LateFee))
	}
	return dtos, nil
}

// GetByID fetches one record with book and member preloaded.
func (s *BorrowingService) GetByID(id uint) (*entities.BorrowingRecord, error) {
	record, err := s.repo.GetByID(id, true, true)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return record, err
}

// Get fetches one record without related rows, for edit forms.
func (s *BorrowingService) Get(id uint) (*entities.BorrowingRecord, error) {
	record, err := s.repo.GetByID(id, false, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return record, err
}

// Create opens a borrowing. The server fixes BorrowDate to now, Returned to
// false and LateFee to zero; dueDate defaults to now plus the loan period
// when the caller does not supply one. The referenced book is flipped to
// unavailable in the same commit. A dangling book or member id is rejected.
func (s *BorrowingService) Create(bookID, memberID uint, dueDate *time.Time) (*entities.BorrowingRecord, error) {
	now := s.now()

	record := &entities.BorrowingRecord{
		BookID:     bookID,
		MemberID:   memberID,
		BorrowDate: now,
		DueDate:    now.Add(s.loanPeriod),
		Returned:   false,
		LateFee:    0,
	}
	if dueDate != nil && !dueDate.IsZero() {
		record.DueDate = *dueDate
	}

	if err := s.repo.Create(record); err != nil {
		if errors.Is(err, borrowings.ErrBookNotFound) || errors.Is(err, borrowings.ErrMemberNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// Return marks a record returned, charges the late fee for its due date and
// restores the book's availability, all in one commit.
func (s *BorrowingService) Return(id uint) (*entities.BorrowingRecord, error) {
	record, err := s.repo.MarkReturned(id, s.LateFee)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return record, err
}

// Update overwrites a record from the edit form. The path id must match the
// body; per the original UI contract a mismatch reads as not-found. When the
// stored Returned flag differs from the incoming one the book's availability
// follows the new flag: becoming returned makes the book available, becoming
// un-returned makes it unavailable.
func (s *BorrowingService) Update(id uint, record *entities.BorrowingRecord) error {
	if id != record.RecordID {
		return ErrNotFound
	}
	if record.LateFee < 0 {
		return ValidationErrors{"LateFee": "late fee must not be negative"}
	}
	err := s.repo.Update(record)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Delete removes a record. Deleting a record that was never returned restores
// its book's availability, compensating the borrow-time toggle.
func (s *BorrowingService) Delete(id uint) error {
	err := s.repo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ListOverdue projects unreturned records strictly past due. The fee is
// recomputed against now rather than read from the row, which stays zero
// until the book actually comes back.
func (s *BorrowingService) ListOverdue() ([]entities.BorrowingRecordDto, error) {
	records, err := s.repo.ListOverdue(s.now())
	if err != nil {
		return nil, err
	}
	dtos := make([]entities.BorrowingRecordDto, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, borrowingDto(r, entities.StatusOverdue, s.LateFee(r.DueDate)))
	}
	return dtos, nil
}

// ListByMember projects one member's borrowing history, same shape as the
// full listing.
func (s *BorrowingService) ListByMember(memberID uint) ([]entities.BorrowingRecordDto, error) {
	records, err := s.repo.ListByMember(memberID)
	if err != nil {
		return nil, err
	}
	dtos := make([]entities.BorrowingRecordDto, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, borrowingDto(r, listStatus(r), r.LateFee))
	}
	return dtos, nil
}

// LateFee charges the daily fee per full day past the due date. Zero when the
// due date has not strictly passed; never negative.
func (s *BorrowingService) LateFee(dueDate time.Time) float64 {
	now := s.now()
	if !now.After(dueDate) {
		return 0
	}
	daysLate := int(now.Sub(dueDate).Hours() / 24)
	return math.Round(float64(daysLate)*s.dailyFee*100) / 100
}

func listStatus(r entities.BorrowingRecord) string {
	if r.Returned {
		return entities.StatusReturned
	}
	return entities.StatusBorrowed
}

func borrowingDto(r entities.BorrowingRecord, status string, fee float64) entities.BorrowingRecordDto {
	return entities.BorrowingRecordDto{
		RecordID:   r.RecordID,
		BookTitle:  r.Book.Title,
		MemberName: r.Member.FullName(),
		DueDate:    r.DueDate,
		Status:     status,
		LateFee:    fee,
	}
}
