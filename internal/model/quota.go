package model

// QuotaTransaction is the ledger of subscribe quota changes. Amount is
// positive for grants and negative for deductions; BalanceAfter snapshots
// the binding's quota after the change was applied.
type QuotaTransaction struct {
	BaseModel
	UserID          int64  `gorm:"index;not null" json:"user_id"`
	TransactionType string `gorm:"size:32;not null" json:"transaction_type"`
	Amount          int    `gorm:"not null" json:"amount"`
	BalanceAfter    int    `gorm:"not null" json:"balance_after"`
	Reason          string `gorm:"size:255" json:"reason"`
}

func (QuotaTransaction) TableName() string {
	return "quota_transactions"
}

const (
	QuotaTransactionGrant  = "grant"
	QuotaTransactionDeduct = "deduct"
)
