package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrNoItems          = errors.New("invoice needs at least one item")
	ErrAlreadyPaid      = errors.New("invoice already paid")
	ErrNegativePrice    = errors.New("price must not be negative")
)

// PaymentTermDays is how long after creation a new invoice falls due.
const PaymentTermDays = 30

type Service struct {
	store    *store.Store
	validate *validator.Validate
}

func NewService(s *store.Store) *Service {
	return &Service{
		store:    s,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type LineParams struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
	// Price overrides the catalog price when set.
	Price *decimal.Decimal `json:"price,omitempty"`
}

type CreateInvoiceParams struct {
	CustomerID string       `json:"customer_id" validate:"required"`
	Lines      []LineParams `json:"items" validate:"dive"`
}

// NewLine builds an invoice line from a product. Quantities below one are
// raised to one.
func NewLine(p merchant.Product, quantity int) merchant.InvoiceItem {
	item := merchant.InvoiceItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    max(quantity, 1),
		Price:       p.Price,
	}
	item.Recalculate()

	return item
}

func CalculateTotal(items []merchant.InvoiceItem) decimal.Decimal {
	return merchant.CalculateTotal(items)
}

func (s *Service) CreateInvoice(ctx context.Context, params CreateInvoiceParams) (merchant.Invoice, error) {
	if len(params.Lines) == 0 {
		return merchant.Invoice{}, ErrNoItems
	}

	if err := s.validate.StructCtx(ctx, params); err != nil {
		return merchant.Invoice{}, fmt.Errorf("validating invoice: %w", err)
	}

	for _, l := range params.Lines {
		if l.Price != nil && l.Price.IsNegative() {
			return merchant.Invoice{}, fmt.Errorf("%w: %s", ErrNegativePrice, l.ProductID)
		}
	}

	var (
		inv merchant.Invoice
		err error
	)

	s.store.Do(func(tx *store.Tx) {
		customer, ok := tx.Customer(params.CustomerID)
		if !ok {
			err = fmt.Errorf("%w: %s", ErrCustomerNotFound, params.CustomerID)
			return
		}

		items := make([]merchant.InvoiceItem, 0, len(params.Lines))
		for _, l := range params.Lines {
			product, ok := tx.Product(l.ProductID)
			if !ok {
				err = fmt.Errorf("%w: %s", ErrProductNotFound, l.ProductID)
				return
			}

			item := NewLine(product, l.Quantity)
			if l.Price != nil {
				item.Price = *l.Price
				item.Recalculate()
			}
			items = append(items, item)
		}

		inv = tx.AddInvoice(merchant.InvoiceInput{
			CustomerID:     customer.ID,
			CustomerName:   customer.Name,
			Items:          items,
			Total:          CalculateTotal(items),
			Status:         merchant.InvoiceDraft,
			DueDate:        tx.Now().AddDate(0, 0, PaymentTermDays),
			PaymentStatus:  merchant.PaymentStatePending,
			DeliveryStatus: merchant.DeliveryStatePending,
		})
	})

	return inv, err
}

// Gateway names the processor shown for a payment method.
func Gateway(m merchant.PaymentMethod) string {
	switch m {
	case merchant.MethodUPI:
		return "PhonePe"
	case merchant.MethodCard:
		return "Razorpay"
	default:
		return string(m)
	}
}

// RecordPayment settles the full invoice total with method. The payment and
// the invoice status change commit together.
func (s *Service) RecordPayment(ctx context.Context, invoiceID string, method merchant.PaymentMethod) (merchant.Payment, error) {
	if err := s.validate.VarCtx(ctx, string(method), "required,oneof=UPI Card NetBanking Cash ONDC"); err != nil {
		return merchant.Payment{}, fmt.Errorf("validating payment method: %w", err)
	}

	var (
		pay merchant.Payment
		err error
	)

	s.store.Do(func(tx *store.Tx) {
		inv, ok := tx.Invoice(invoiceID)
		if !ok {
			err = fmt.Errorf("%w: %s", ErrInvoiceNotFound, invoiceID)
			return
		}

		if inv.PaymentStatus == merchant.PaymentStatePaid {
			err = fmt.Errorf("%w: %s", ErrAlreadyPaid, invoiceID)
			return
		}

		pay = tx.AddPayment(merchant.PaymentInput{
			InvoiceID:     inv.ID,
			CustomerID:    inv.CustomerID,
			Amount:        inv.Total,
			Method:        method,
			Status:        merchant.PaymentSuccess,
			TransactionID: "TXN" + strconv.FormatInt(tx.Now().UnixMilli(), 10),
			Gateway:       Gateway(method),
		})

		tx.UpdateInvoice(inv.ID, merchant.InvoicePatch{
			Status:        new(merchant.InvoicePaid),
			PaymentStatus: new(merchant.PaymentStatePaid),
			PaymentMethod: new(method),
		})
	})

	return pay, err
}

// PendingInvoices lists invoices still awaiting payment.
func PendingInvoices(st store.State) []merchant.Invoice {
	var out []merchant.Invoice
	for _, inv := range st.Invoices {
		if inv.PaymentStatus == merchant.PaymentStatePending || inv.PaymentStatus == "" {
			out = append(out, inv)
		}
	}

	return out
}
