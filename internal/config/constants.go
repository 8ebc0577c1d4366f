package config

// Defaults for the library database and borrowing policy
const (
	// DefaultDatabasePath is the default path for the sqlite database
	DefaultDatabasePath = "./library-manager.db"

	// DefaultLoanPeriodDays is how long a book may be borrowed before it is due
	DefaultLoanPeriodDays = 15

	// DefaultDailyLateFee is charged per full day past the due date
	DefaultDailyLateFee = 0.50
)
