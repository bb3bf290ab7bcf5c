// Package nav defines the navigation targets of the dashboard.
package nav

import (
	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
)

// View identifies one screen of the dashboard.
type View string

const (
	Dashboard     View = "dashboard"
	Customers     View = "customers"
	Products      View = "products"
	Billing       View = "billing"
	Marketing     View = "marketing"
	Messaging     View = "messaging"
	Payments      View = "payments"
	Reports       View = "reports"
	Notifications View = "notifications"
	Profile       View = "profile"
	Settings      View = "settings"
	Delivery      View = "delivery"
	Requirements  View = "requirements"
	Leads         View = "leads"
)

var labels = map[View]string{
	Dashboard:     i18n.MsgDashboard,
	Customers:     i18n.MsgCustomers,
	Products:      i18n.MsgProducts,
	Billing:       i18n.MsgBilling,
	Marketing:     i18n.MsgMarketing,
	Messaging:     i18n.MsgMessaging,
	Payments:      i18n.MsgPayments,
	Reports:       i18n.MsgReports,
	Notifications: i18n.MsgNotifications,
	Profile:       i18n.MsgProfile,
	Settings:      i18n.MsgSettings,
	Delivery:      i18n.MsgDelivery,
	Requirements:  i18n.MsgRequirements,
	Leads:         i18n.MsgLeads,
}

// Menu returns every view in sidebar order.
func Menu() []View {
	return []View{
		Dashboard, Customers, Products, Billing, Payments, Delivery,
		Requirements, Leads, Marketing, Messaging, Reports,
		Notifications, Profile, Settings,
	}
}

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	_, ok := labels[v]
	return ok
}

// Label is the sidebar caption of v in lang.
func (v View) Label(lang i18n.Language) string {
	key, ok := labels[v]
	if !ok {
		return string(v)
	}

	return i18n.T(lang, key)
}
