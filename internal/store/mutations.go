package store

import (
	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
)

// The methods below each run one Tx method as its own transition.

func (s *Store) AddCustomer(in merchant.CustomerInput) (c merchant.Customer) {
	s.Do(func(tx *Tx) { c = tx.AddCustomer(in) })
	return c
}

func (s *Store) UpdateCustomer(id string, patch merchant.CustomerPatch) (ok bool) {
	s.Do(func(tx *Tx) { ok = tx.UpdateCustomer(id, patch) })
	return ok
}

func (s *Store) DeleteCustomer(id string) (ok bool) {
	s.Do(func(tx *Tx) { ok = tx.DeleteCustomer(id) })
	return ok
}

func (s *Store) AddProduct(in merchant.ProductInput) (p merchant.Product) {
	s.Do(func(tx *Tx) { p = tx.AddProduct(in) })
	return p
}

func (s *Store) UpdateProduct(id string, patch merchant.ProductPatch) (ok bool) {
	s.Do(func(tx *Tx) { ok = tx.UpdateProduct(id, patch) })
	return ok
}

func (s *Store) DeleteProduct(id string) (ok bool) {
	s.Do(func(tx *Tx) { ok = tx.DeleteProduct(id) })
	return ok
}

func (s *Store) AddInvoice(in merchant.InvoiceInput) (inv merchant.Invoice) {
	s.Do(func(tx *Tx) { inv = tx.AddInvoice(in) })
	return inv
}

func (s *Store) UpdateInvoice(id string, patch merchant.InvoicePatch) (ok bool) {
	s.Do(func(tx *Tx) { ok = tx.UpdateInvoice(id, patch) })
	return ok
}

func (s *Store) AddPayment(in merchant.PaymentInput) (p merchant.Payment) {
	s.Do(func(tx *Tx) { p = tx.AddPayment(in) })
	return p
}

func (s *Store) UpdatePayment(id string, patch merchant.PaymentPatch) (ok bool) {
	s.Do(func(tx *Tx) { ok = tx.UpdatePayment(id, patch) })
	return ok
}

func (s *Store) AddDeliveryOrder(in merchant.DeliveryOrderInput) (d merchant.DeliveryOrder) {
	s.Do(func(tx *Tx) { d = tx.AddDeliveryOrder(in) })
	return d
}

func (s *Store) UpdateDeliveryOrder(id string, patch merchant.DeliveryOrderPatch) (ok bool) {
	s.Do(func(tx *Tx) { ok = tx.UpdateDeliveryOrder(id, patch) })
	return ok
}

func (s *Store) AddDailyRequirement(in merchant.DailyRequirementInput) (r merchant.DailyRequirement) {
	s.Do(func(tx *Tx) { r = tx.AddDailyRequirement(in) })
	return r
}

func (s *Store) UpdateDailyRequirement(id string, patch merchant.DailyRequirementPatch) (ok bool) {
	s.Do(func(tx *Tx) { ok = tx.UpdateDailyRequirement(id, patch) })
	return ok
}

func (s *Store) AddWhatsAppLead(in merchant.WhatsAppLeadInput) (l merchant.WhatsAppLead) {
	s.Do(func(tx *Tx) { l = tx.AddWhatsAppLead(in) })
	return l
}

func (s *Store) UpdateWhatsAppLead(id string, patch merchant.WhatsAppLeadPatch) (ok bool) {
	s.Do(func(tx *Tx) { ok = tx.UpdateWhatsAppLead(id, patch) })
	return ok
}

func (s *Store) AddCampaign(in merchant.CampaignInput) (c merchant.Campaign) {
	s.Do(func(tx *Tx) { c = tx.AddCampaign(in) })
	return c
}

func (s *Store) UpdateCampaign(id string, patch merchant.CampaignPatch) (ok bool) {
	s.Do(func(tx *Tx) { ok = tx.UpdateCampaign(id, patch) })
	return ok
}

func (s *Store) AddNotification(in merchant.NotificationInput) (n merchant.Notification) {
	s.Do(func(tx *Tx) { n = tx.AddNotification(in) })
	return n
}

func (s *Store) MarkNotificationRead(id string) (ok bool) {
	s.Do(func(tx *Tx) { ok = tx.MarkNotificationRead(id) })
	return ok
}

func (s *Store) ClearNotifications() {
	s.Do(func(tx *Tx) { tx.ClearNotifications() })
}

func (s *Store) SetActiveView(v nav.View) {
	s.Do(func(tx *Tx) { tx.SetActiveView(v) })
}

func (s *Store) SetSidebarOpen(open bool) {
	s.Do(func(tx *Tx) { tx.SetSidebarOpen(open) })
}

func (s *Store) SetLanguage(lang i18n.Language) {
	s.Do(func(tx *Tx) { tx.SetLanguage(lang) })
}

// Navigate moves to view and records a success notification announcing the
// spoken phrase, as one transition.
func (s *Store) Navigate(view nav.View, phrase string) {
	s.Do(func(tx *Tx) {
		tx.SetActiveView(view)

		lang := tx.Language()
		tx.AddNotification(merchant.NotificationInput{
			Title:   i18n.T(lang, i18n.MsgVoiceCommand),
			Message: i18n.T(lang, i18n.MsgNavigatingTo, phrase),
			Type:    merchant.NotificationSuccess,
		})
	})
}
