package store

import (
	"slices"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
)

// MaxNotifications caps the notification list; older entries are dropped.
const MaxNotifications = 50

// State is a point-in-time view of the store. Values returned by Snapshot
// are deep copies and may be freely modified by the caller.
type State struct {
	// Revision increases by one with every committed transition.
	Revision uint64 `json:"revision"`

	Customers         []merchant.Customer         `json:"customers"`
	Products          []merchant.Product          `json:"products"`
	Invoices          []merchant.Invoice          `json:"invoices"`
	Payments          []merchant.Payment          `json:"payments"`
	DeliveryOrders    []merchant.DeliveryOrder    `json:"delivery_orders"`
	DailyRequirements []merchant.DailyRequirement `json:"daily_requirements"`
	WhatsAppLeads     []merchant.WhatsAppLead     `json:"whatsapp_leads"`
	Campaigns         []merchant.Campaign         `json:"campaigns"`
	Notifications     []merchant.Notification     `json:"notifications"`

	ActiveView  nav.View      `json:"active_view"`
	SidebarOpen bool          `json:"sidebar_open"`
	Language    i18n.Language `json:"language"`
}

func initialState(lang i18n.Language) State {
	return State{
		Customers:         []merchant.Customer{},
		Products:          []merchant.Product{},
		Invoices:          []merchant.Invoice{},
		Payments:          []merchant.Payment{},
		DeliveryOrders:    []merchant.DeliveryOrder{},
		DailyRequirements: []merchant.DailyRequirement{},
		WhatsAppLeads:     []merchant.WhatsAppLead{},
		Campaigns:         []merchant.Campaign{},
		Notifications:     []merchant.Notification{},
		ActiveView:        nav.Dashboard,
		Language:          lang,
	}
}

func (s State) clone() State {
	s.Customers = slices.Clone(s.Customers)
	s.Products = slices.Clone(s.Products)
	s.Payments = slices.Clone(s.Payments)
	s.WhatsAppLeads = slices.Clone(s.WhatsAppLeads)
	s.Notifications = slices.Clone(s.Notifications)
	s.Invoices = cloneEach(s.Invoices, merchant.Invoice.Clone)
	s.DeliveryOrders = cloneEach(s.DeliveryOrders, merchant.DeliveryOrder.Clone)
	s.DailyRequirements = cloneEach(s.DailyRequirements, merchant.DailyRequirement.Clone)
	s.Campaigns = cloneEach(s.Campaigns, merchant.Campaign.Clone)

	return s
}

func cloneEach[T any](items []T, clone func(T) T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = clone(it)
	}

	return out
}

// UnreadNotifications counts notifications not yet marked read.
func (s State) UnreadNotifications() int {
	n := 0
	for _, nt := range s.Notifications {
		if !nt.Read {
			n++
		}
	}

	return n
}
