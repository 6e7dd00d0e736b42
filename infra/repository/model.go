package repository

// Owner is a row of the owners table.
type Owner struct {
	ID      int64 `gorm:"primaryKey;autoIncrement"`
	Name    string
	Address string
	Phone   string
}

// TableName specifies the table name for the Owner model.
func (Owner) TableName() string {
	return "owners"
}

// BankAccount is a row of the bank_accounts table.
type BankAccount struct {
	ID      int64 `gorm:"primaryKey;autoIncrement"`
	OwnerID int64
	Balance float64
}

// TableName specifies the table name for the BankAccount model.
func (BankAccount) TableName() string {
	return "bank_accounts"
}
