package entities

import (
	"time"
)

// Status strings used by the DTO projections.
const (
	StatusAvailable = "Available"
	StatusBorrowed  = "Borrowed"
	StatusReturned  = "Returned"
	StatusOverdue   = "Overdue"
)

type Book struct {
	BookID    uint   `gorm:"primaryKey" json:"book_id"`
	Title     string `gorm:"index;size:512" json:"title"`
	Author    string `gorm:"index;size:256" json:"author"`
	Genre     string `gorm:"index;size:128" json:"genre"`
	// No column default: GORM would silently replace a stored false with it
	// on insert. The create paths set the flag explicitly.
	Available bool `json:"available"`

	// A book can appear in many borrowing records. The records reference the
	// book; the book does not own their lifetime and deletes never cascade.
	BorrowingRecords []BorrowingRecord `gorm:"foreignKey:BookID" json:"borrowing_records,omitempty"`
}

type Member struct {
	MemberID  uint   `gorm:"primaryKey" json:"member_id"`
	FirstName string `gorm:"size:128" json:"first_name"`
	LastName  string `gorm:"size:128" json:"last_name"`
	Email     string `gorm:"size:255" json:"email"`
	Phone     string `gorm:"size:64" json:"phone"`

	BorrowingRecords []BorrowingRecord `gorm:"foreignKey:MemberID" json:"borrowing_records,omitempty"`
}

// FullName is derived, never stored.
func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

type BorrowingRecord struct {
	RecordID   uint      `gorm:"primaryKey" json:"record_id"`
	BookID     uint      `gorm:"index" json:"book_id"`
	MemberID   uint      `gorm:"index" json:"member_id"`
	BorrowDate time.Time `json:"borrow_date"`
	DueDate    time.Time `gorm:"index" json:"due_date"`
	Returned   bool      `gorm:"default:false" json:"returned"`
	LateFee    float64   `gorm:"type:decimal(10,2);default:0" json:"late_fee"`

	Book   Book   `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (BorrowingRecord) TableName() string { return "borrowing_records" }

// BookDto is the API list projection of a Book.
type BookDto struct {
	BookID uint   `json:"book_id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Status string `json:"status"`
}

// MemberDto is the API list projection of a Member.
type MemberDto struct {
	MemberID uint   `json:"member_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// BorrowingRecordDto flattens a record with its book and member for API
// responses. LateFee is the stored fee except on overdue listings, where it
// is recomputed against the current time.
type BorrowingRecordDto struct {
	RecordID   uint      `json:"record_id"`
	BookTitle  string    `json:"book_title"`
	MemberName string    `json:"member_name"`
	DueDate    time.Time `json:"due_date"`
	Status     string    `json:"status"`
	LateFee    float64   `json:"late_fee"`
}
