package dto

// OwnerRead is a read-optimized view of an owner row: (id, name, address, phone).
type OwnerRead struct {
	ID      int64
	Name    string
	Address string
	Phone   string
}

// OwnerUpsert carries the fields written by an owner insert or update.
// A zero ID requests an insert; any other ID updates that row.
type OwnerUpsert struct {
	ID      int64
	Name    string
	Address string
	Phone   string
}
