package models

import "time"

// Invoice statuses. "paid" is terminal: nothing in the portal moves an
// invoice out of it, and only the payment verifier moves an invoice into it.
const (
	InvoiceStatusUnpaid = "unpaid"
	InvoiceStatusPaid   = "paid"
)

// Invoice represents a billable obligation of a resident (maintenance
// charge, water fee, parking space and the like).
type Invoice struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Title     string    `bson:"title" json:"title"`
	Amount    float64   `bson:"amount" json:"amount"` // euros, at most two decimals
	DueDate   time.Time `bson:"due_date" json:"dueDate"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
