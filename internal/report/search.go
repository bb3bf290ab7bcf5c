package report

import (
	"strings"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

// All search helpers match case-insensitive substrings. An empty term keeps
// every record.

func contains(term string, fields ...string) bool {
	if term == "" {
		return true
	}

	term = strings.ToLower(term)
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}

	return false
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}

	return out
}

func SearchCustomers(st store.State, term string) []merchant.Customer {
	return filter(st.Customers, func(c merchant.Customer) bool {
		return contains(term, c.Name, c.Phone, c.Email, c.BusinessType)
	})
}

func SearchProducts(st store.State, term string) []merchant.Product {
	return filter(st.Products, func(p merchant.Product) bool {
		return contains(term, p.Name, p.Category)
	})
}

func SearchInvoices(st store.State, term string) []merchant.Invoice {
	return filter(st.Invoices, func(inv merchant.Invoice) bool {
		return contains(term, inv.CustomerName, inv.ID)
	})
}

// SearchPayments matches on transaction id, the payer's current name and
// the invoice id.
func SearchPayments(st store.State, term string) []merchant.Payment {
	return filter(st.Payments, func(p merchant.Payment) bool {
		name, _ := customerName(st, p.CustomerID)
		return contains(term, p.TransactionID, name, p.InvoiceID)
	})
}

func SearchDeliveries(st store.State, term string) []merchant.DeliveryOrder {
	return filter(st.DeliveryOrders, func(d merchant.DeliveryOrder) bool {
		name, _ := customerName(st, d.CustomerID)
		return contains(term, d.TrackingID, name, d.ID)
	})
}

func SearchLeads(st store.State, term string) []merchant.WhatsAppLead {
	return filter(st.WhatsAppLeads, func(l merchant.WhatsAppLead) bool {
		return contains(term, l.CustomerName, l.CustomerPhone, l.Message)
	})
}

func SearchRequirements(st store.State, term string) []merchant.DailyRequirement {
	return filter(st.DailyRequirements, func(r merchant.DailyRequirement) bool {
		if contains(term, r.CustomerName) {
			return true
		}

		for _, it := range r.Items {
			if contains(term, it.ProductName) {
				return true
			}
		}

		return false
	})
}

func SearchCampaigns(st store.State, term string) []merchant.Campaign {
	return filter(st.Campaigns, func(c merchant.Campaign) bool {
		return contains(term, c.Name)
	})
}

func customerName(st store.State, id string) (string, bool) {
	for _, c := range st.Customers {
		if c.ID == id {
			return c.Name, true
		}
	}

	return "", false
}

// CustomerName resolves id to the customer's current name, or the
// localized "Unknown" label when the customer no longer exists.
func CustomerName(st store.State, id string) string {
	if name, ok := customerName(st, id); ok {
		return name
	}

	return i18n.T(st.Language, i18n.MsgUnknown)
}

func ProductName(st store.State, id string) string {
	for _, p := range st.Products {
		if p.ID == id {
			return p.Name
		}
	}

	return i18n.T(st.Language, i18n.MsgUnknown)
}

// CampaignAudience resolves a campaign's targets, skipping ids that no
// longer exist.
func CampaignAudience(st store.State, c merchant.Campaign) []merchant.Customer {
	var out []merchant.Customer
	for _, id := range c.TargetCustomers {
		for _, cu := range st.Customers {
			if cu.ID == id {
				out = append(out, cu)
				break
			}
		}
	}

	return out
}
