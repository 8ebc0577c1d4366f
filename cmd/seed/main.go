// Command seed creates a demo database with sample library data.
// Usage: go run cmd/seed/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

const defaultDemoDatabasePath = "./demo-library.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewSQLiteDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	books := seedBooks(db.DB)
	members := seedMembers(db.DB)
	seedBorrowings(db.DB, books, members)

	log.Println("Demo database generated successfully!")
}

func seedBooks(db *gorm.DB) []entities.Book {
	books := []entities.Book{
		{Title: "Meditations", Author: "Marcus Aurelius", Genre: "Philosophy", Available: true},
		{Title: "Letters from a Stoic", Author: "Seneca", Genre: "Philosophy", Available: true},
		{Title: "On the Origin of Species", Author: "Charles Darwin", Genre: "Science", Available: true},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Fiction", Available: true},
		{Title: "War and Peace", Author: "Leo Tolstoy", Genre: "Fiction", Available: true},
		{Title: "Crime and Punishment", Author: "Fyodor Dostoevsky", Genre: "Fiction", Available: true},
		{Title: "The Republic", Author: "Plato", Genre: "Philosophy", Available: true},
		{Title: "The Art of War", Author: "Sun Tzu", Genre: "Philosophy", Available: true},
		{Title: "Frankenstein", Author: "Mary Shelley", Genre: "Fiction", Available: true},
		{Title: "The Picture of Dorian Gray", Author: "Oscar Wilde", Genre: "Fiction", Available: true},
	}

	for i := range books {
		if err := db.Create(&books[i]).Error; err != nil {
			log.Fatalf("Failed to save book %s: %v", books[i].Title, err)
		}
		log.Printf("Saved book: %s by %s", books[i].Title, books[i].Author)
	}
	return books
}

func seedMembers(db *gorm.DB) []entities.Member {
	members := []entities.Member{
		{FirstName: "Alice", LastName: "Johnson", Email: "alice.johnson@example.com", Phone: "+1 555 0101"},
		{FirstName: "Bob", LastName: "Smith", Email: "bob.smith@example.com", Phone: "+1 555 0102"},
		{FirstName: "Carol", LastName: "Williams", Email: "carol.williams@example.com", Phone: "+1 555 0103"},
		{FirstName: "David", LastName: "Brown", Email: "david.brown@example.com", Phone: "+1 555 0104"},
		{FirstName: "Emma", LastName: "Davis", Email: "emma.davis@example.com", Phone: "+1 555 0105"},
	}

	for i := range members {
		if err := db.Create(&members[i]).Error; err != nil {
			log.Fatalf("Failed to save member %s: %v", members[i].FullName(), err)
		}
		log.Printf("Saved member: %s", members[i].FullName())
	}
	return members
}

func seedBorrowings(db *gorm.DB, books []entities.Book, members []entities.Member) {
	now := time.Now()

	type loan struct {
		book     int
		member   int
		daysAgo  int
		returned bool
		lateFee  float64
	}

	// A mix of active, returned and overdue loans
	loans := []loan{
		{book: 0, member: 0, daysAgo: 3, returned: false},
		{book: 3, member: 1, daysAgo: 10, returned: false},
		{book: 5, member: 2, daysAgo: 20, returned: false},          // overdue by 5 days
		{book: 7, member: 3, daysAgo: 30, returned: true, lateFee: 7.50},
		{book: 8, member: 4, daysAgo: 12, returned: true},
	}

	for _, l := range loans {
		borrowDate := now.AddDate(0, 0, -l.daysAgo)
		record := entities.BorrowingRecord{
			BookID:     books[l.book].BookID,
			MemberID:   members[l.member].MemberID,
			BorrowDate: borrowDate,
			DueDate:    borrowDate.AddDate(0, 0, 15),
			Returned:   l.returned,
			LateFee:    l.lateFee,
		}
		if err := db.Create(&record).Error; err != nil {
			log.Fatalf("Failed to save borrowing record: %v", err)
		}

		if !l.returned {
			if err := db.Model(&entities.Book{}).
				Where("book_id = ?", books[l.book].BookID).
				Update("available", false).Error; err != nil {
				log.Fatalf("Failed to mark book unavailable: %v", err)
			}
		}

		log.Printf("Saved loan: %s -> %s (returned=%v)",
			books[l.book].Title, members[l.member].FullName(), l.returned)
	}
}
