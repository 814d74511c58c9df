package models

// InvestmentAccountLog is an append-only audit record for investment
// accounts. Entries are written on account creation and on each interest
// application; CreatedAt serves as the action timestamp.
type InvestmentAccountLog struct {
	Base
	Action    string   `gorm:"not null" json:"action"`
	AccountID uint     `gorm:"not null;index" json:"account_id"`
	Account   *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}
