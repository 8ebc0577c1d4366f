// Package database owns the GORM connection and schema migration for the
// library store. Per-aggregate repositories live in the subpackages (books,
// members, borrowings, users); every multi-row mutation they perform runs
// inside a single transaction so a borrowing record and its book commit
// together or not at all.
package database
