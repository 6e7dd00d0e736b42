package dto

// AccountRead is a read-optimized DTO for a persisted bank account row.
type AccountRead struct {
	ID      int64   // Store-assigned account identifier
	OwnerID int64   // Owner holding the account
	Balance float64 // Persisted balance
}

// AccountUpsert carries the fields written by an account insert or update.
// A zero ID requests an insert; any other ID updates that row.
type AccountUpsert struct {
	ID      int64
	OwnerID int64
	Balance float64
}
