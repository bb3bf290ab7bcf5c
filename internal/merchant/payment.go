package merchant

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodUPI        PaymentMethod = "UPI"
	MethodCard       PaymentMethod = "Card"
	MethodNetBanking PaymentMethod = "NetBanking"
	MethodCash       PaymentMethod = "Cash"
	MethodONDC       PaymentMethod = "ONDC"
)

func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{MethodUPI, MethodCard, MethodNetBanking, MethodCash, MethodONDC}
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentSuccess  PaymentStatus = "Success"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

type PaymentInput struct {
	InvoiceID     string          `json:"invoice_id"`
	CustomerID    string          `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	Status        PaymentStatus   `json:"status"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Gateway       string          `json:"gateway,omitempty"`
}

type Payment struct {
	ID string `json:"id"`
	PaymentInput
	CreatedAt time.Time `json:"created_at"`
}

type PaymentPatch struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Method        *PaymentMethod   `json:"method,omitempty"`
	Status        *PaymentStatus   `json:"status,omitempty"`
	TransactionID *string          `json:"transaction_id,omitempty"`
	Gateway       *string          `json:"gateway,omitempty"`
}

func (p PaymentPatch) Apply(pay *Payment) {
	setIf(&pay.Amount, p.Amount)
	setIf(&pay.Method, p.Method)
	setIf(&pay.Status, p.Status)
	setIf(&pay.TransactionID, p.TransactionID)
	setIf(&pay.Gateway, p.Gateway)
}
