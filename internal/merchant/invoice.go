package merchant

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "Draft"
	InvoiceSent    InvoiceStatus = "Sent"
	InvoicePaid    InvoiceStatus = "Paid"
	InvoiceOverdue InvoiceStatus = "Overdue"
)

type PaymentState string

const (
	PaymentStatePending PaymentState = "Pending"
	PaymentStatePaid    PaymentState = "Paid"
	PaymentStateFailed  PaymentState = "Failed"
)

type DeliveryState string

const (
	DeliveryStatePending   DeliveryState = "Pending"
	DeliveryStateShipped   DeliveryState = "Shipped"
	DeliveryStateDelivered DeliveryState = "Delivered"
)

// InvoiceItem is one invoice line. ProductName is a snapshot taken when the
// line is built and is not refreshed if the product is renamed later.
type InvoiceItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// Recalculate sets Total to Quantity × Price.
func (i *InvoiceItem) Recalculate() {
	i.Total = i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CalculateTotal sums the line totals.
func CalculateTotal(items []InvoiceItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total)
	}

	return total
}

// InvoiceInput carries an invoice as built by the billing workflow.
// CustomerName is a snapshot of the customer's name at creation.
type InvoiceInput struct {
	CustomerID     string          `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	Items          []InvoiceItem   `json:"items"`
	Total          decimal.Decimal `json:"total"`
	Status         InvoiceStatus   `json:"status"`
	DueDate        time.Time       `json:"due_date"`
	PaymentMethod  PaymentMethod   `json:"payment_method,omitempty"`
	PaymentStatus  PaymentState    `json:"payment_status,omitempty"`
	DeliveryStatus DeliveryState   `json:"delivery_status,omitempty"`
}

type Invoice struct {
	ID string `json:"id"`
	InvoiceInput
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a copy that does not share the items slice.
func (inv Invoice) Clone() Invoice {
	inv.Items = slices.Clone(inv.Items)
	return inv
}

type InvoicePatch struct {
	CustomerID     *string          `json:"customer_id,omitempty"`
	CustomerName   *string          `json:"customer_name,omitempty"`
	Items          []InvoiceItem    `json:"items,omitempty"`
	Total          *decimal.Decimal `json:"total,omitempty"`
	Status         *InvoiceStatus   `json:"status,omitempty"`
	DueDate        *time.Time       `json:"due_date,omitempty"`
	PaymentMethod  *PaymentMethod   `json:"payment_method,omitempty"`
	PaymentStatus  *PaymentState    `json:"payment_status,omitempty"`
	DeliveryStatus *DeliveryState   `json:"delivery_status,omitempty"`
}

func (p InvoicePatch) Apply(inv *Invoice) {
	setIf(&inv.CustomerID, p.CustomerID)
	setIf(&inv.CustomerName, p.CustomerName)
	setIf(&inv.Total, p.Total)
	setIf(&inv.Status, p.Status)
	setIf(&inv.DueDate, p.DueDate)
	setIf(&inv.PaymentMethod, p.PaymentMethod)
	setIf(&inv.PaymentStatus, p.PaymentStatus)
	setIf(&inv.DeliveryStatus, p.DeliveryStatus)

	if p.Items != nil {
		inv.Items = slices.Clone(p.Items)
	}
}
