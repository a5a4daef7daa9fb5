package config

const (
	// DefaultDatabasePath is the default path for the SQLite database
	DefaultDatabasePath = "./library.db"

	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"

	// DefaultFinePerDay is charged for every whole day a book is returned late
	DefaultFinePerDay = 5.0
	DefaultCurrency   = "₹"
)
