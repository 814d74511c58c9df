package models

// User represents the user model in the database
type User struct {
	Base
	Name           string `gorm:"not null" json:"name"`
	Email          string `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string `gorm:"not null" json:"-"`

	// MainAccountID references the account created at registration. It is
	// the default source/target for single-account ledger operations.
	MainAccountID *uint     `json:"main_account_id,omitempty"`
	MainAccount   *Account  `gorm:"foreignKey:MainAccountID" json:"main_account,omitempty"`
	Accounts      []Account `gorm:"foreignKey:UserID" json:"accounts,omitempty"`
}
