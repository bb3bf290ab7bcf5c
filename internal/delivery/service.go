package delivery

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrOrderNotFound   = errors.New("delivery order not found")
	ErrAlreadyAssigned = errors.New("invoice already has a delivery")
)

type Service struct {
	store    *store.Store
	validate *validator.Validate
}

func NewService(s *store.Store) *Service {
	return &Service{
		store:    s,
		validate: validator.New(),
	}
}

// Assign hands an invoice to a delivery partner. The order copies the
// invoice items and is expected the next day.
func (s *Service) Assign(ctx context.Context, invoiceID string, partner merchant.DeliveryPartner) (merchant.DeliveryOrder, error) {
	if err := s.validate.VarCtx(ctx, string(partner), "required,oneof=Zomato Swiggy Dunzo Self BlueDart DTDC"); err != nil {
		return merchant.DeliveryOrder{}, fmt.Errorf("validating partner: %w", err)
	}

	var (
		order merchant.DeliveryOrder
		err   error
	)

	s.store.Do(func(tx *store.Tx) {
		inv, ok := tx.Invoice(invoiceID)
		if !ok {
			err = fmt.Errorf("%w: %s", ErrInvoiceNotFound, invoiceID)
			return
		}

		if inv.DeliveryStatus != "" && inv.DeliveryStatus != merchant.DeliveryStatePending {
			err = fmt.Errorf("%w: %s", ErrAlreadyAssigned, invoiceID)
			return
		}

		now := tx.Now()
		order = tx.AddDeliveryOrder(merchant.DeliveryOrderInput{
			InvoiceID:         inv.ID,
			CustomerID:        inv.CustomerID,
			Items:             inv.Items,
			Partner:           partner,
			Status:            merchant.DeliveryAssigned,
			TrackingID:        strings.ToUpper(string(partner)) + strconv.FormatInt(now.UnixMilli(), 10),
			EstimatedDelivery: new(now.AddDate(0, 0, 1)),
		})

		tx.UpdateInvoice(inv.ID, merchant.InvoicePatch{DeliveryStatus: new(merchant.DeliveryStateShipped)})
	})

	return order, err
}

// Advance moves an order to status. Delivered also stamps the delivery time
// and closes the invoice's delivery.
func (s *Service) Advance(ctx context.Context, id string, status merchant.DeliveryStatus) (merchant.DeliveryOrder, error) {
	if err := s.validate.VarCtx(ctx, string(status), "required,oneof=Pending Assigned Picked InTransit Delivered Failed"); err != nil {
		return merchant.DeliveryOrder{}, fmt.Errorf("validating status: %w", err)
	}

	var (
		order merchant.DeliveryOrder
		err   error
	)

	s.store.Do(func(tx *store.Tx) {
		current, ok := tx.DeliveryOrder(id)
		if !ok {
			err = fmt.Errorf("%w: %s", ErrOrderNotFound, id)
			return
		}

		patch := merchant.DeliveryOrderPatch{Status: &status}
		if status == merchant.DeliveryDelivered {
			patch.ActualDelivery = new(tx.Now())
			tx.UpdateInvoice(current.InvoiceID, merchant.InvoicePatch{DeliveryStatus: new(merchant.DeliveryStateDelivered)})
		}

		tx.UpdateDeliveryOrder(id, patch)
		order, _ = tx.DeliveryOrder(id)
	})

	return order, err
}

// PendingInvoices lists invoices not yet handed to a partner.
func PendingInvoices(st store.State) []merchant.Invoice {
	var out []merchant.Invoice
	for _, inv := range st.Invoices {
		if inv.DeliveryStatus == merchant.DeliveryStatePending || inv.DeliveryStatus == "" {
			out = append(out, inv)
		}
	}

	return out
}
