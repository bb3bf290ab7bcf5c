// Package report derives read-only views from a store snapshot: dashboard
// figures, search filters and name resolution.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vyaparx/internal/billing"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

type Stats struct {
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	ActiveCustomers  int             `json:"active_customers"`
	Products         int             `json:"products"`
	LowStockProducts int             `json:"low_stock_products"`
	OpenInvoices     int             `json:"open_invoices"`

	PaymentsReceived decimal.Decimal `json:"payments_received"`
	PendingAmount    decimal.Decimal `json:"pending_amount"`
	FailedPayments   int             `json:"failed_payments"`

	Delivered  int `json:"deliveries_delivered"`
	InTransit  int `json:"deliveries_in_transit"`
	FailedRuns int `json:"deliveries_failed"`

	LeadsByStatus       map[merchant.LeadStatus]int `json:"leads_by_status"`
	PendingRequirements int                         `json:"pending_requirements"`
	UnreadNotifications int                         `json:"unread_notifications"`
}

func Compute(st store.State) Stats {
	s := Stats{
		TotalRevenue:     decimal.Zero,
		PaymentsReceived: decimal.Zero,
		PendingAmount:    decimal.Zero,
		Products:         len(st.Products),
		LeadsByStatus:    make(map[merchant.LeadStatus]int),
	}

	for _, c := range st.Customers {
		s.TotalRevenue = s.TotalRevenue.Add(c.TotalPurchases)
		if c.Status == merchant.CustomerActive {
			s.ActiveCustomers++
		}
	}

	for _, p := range st.Products {
		if p.LowStock() {
			s.LowStockProducts++
		}
	}

	for _, inv := range st.Invoices {
		if inv.Status == merchant.InvoiceDraft || inv.Status == merchant.InvoiceSent {
			s.OpenInvoices++
		}
	}

	for _, inv := range billing.PendingInvoices(st) {
		s.PendingAmount = s.PendingAmount.Add(inv.Total)
	}

	for _, p := range st.Payments {
		switch p.Status {
		case merchant.PaymentSuccess:
			s.PaymentsReceived = s.PaymentsReceived.Add(p.Amount)
		case merchant.PaymentFailed:
			s.FailedPayments++
		}
	}

	for _, d := range st.DeliveryOrders {
		switch d.Status {
		case merchant.DeliveryDelivered:
			s.Delivered++
		case merchant.DeliveryAssigned, merchant.DeliveryInTransit:
			s.InTransit++
		case merchant.DeliveryFailed:
			s.FailedRuns++
		}
	}

	for _, l := range st.WhatsAppLeads {
		s.LeadsByStatus[l.Status]++
	}

	for _, r := range st.DailyRequirements {
		if r.Status == merchant.RequirementPending {
			s.PendingRequirements++
		}
	}

	s.UnreadNotifications = st.UnreadNotifications()

	return s
}

// LowStock lists products at or below their reorder level.
func LowStock(st store.State) []merchant.Product {
	var out []merchant.Product
	for _, p := range st.Products {
		if p.LowStock() {
			out = append(out, p)
		}
	}

	return out
}
