package store

import (
	"time"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
)

// Tx is the mutation handle passed to Store.Do. It must not be retained
// after the callback returns.
type Tx struct {
	state   State
	now     time.Time
	newID   IDGenerator
	changed bool
}

// Now is the single timestamp shared by every record stamped in this
// transition.
func (tx *Tx) Now() time.Time { return tx.now }

func (tx *Tx) Language() i18n.Language { return tx.state.Language }

func (tx *Tx) Customer(id string) (merchant.Customer, bool) {
	return find(tx.state.Customers, id, customerID)
}

func (tx *Tx) Product(id string) (merchant.Product, bool) {
	return find(tx.state.Products, id, productID)
}

func (tx *Tx) Invoice(id string) (merchant.Invoice, bool) {
	inv, ok := find(tx.state.Invoices, id, invoiceID)
	return inv.Clone(), ok
}

func (tx *Tx) DeliveryOrder(id string) (merchant.DeliveryOrder, bool) {
	d, ok := find(tx.state.DeliveryOrders, id, deliveryID)
	return d.Clone(), ok
}

func (tx *Tx) CustomerCount() int { return len(tx.state.Customers) }

func (tx *Tx) notifySuccess(title, body, subject string) {
	lang := tx.state.Language
	tx.AddNotification(merchant.NotificationInput{
		Title:   i18n.T(lang, title),
		Message: i18n.T(lang, body, subject),
		Type:    merchant.NotificationSuccess,
	})
}

// Customers

func (tx *Tx) AddCustomer(in merchant.CustomerInput) merchant.Customer {
	c := merchant.Customer{
		ID:            tx.newID(PrefixCustomer),
		CustomerInput: in,
		CreatedAt:     tx.now,
	}
	tx.state.Customers = append(tx.state.Customers, c)
	tx.changed = true

	tx.notifySuccess(i18n.MsgCustomerAdded, i18n.MsgCustomerAddedBody, in.Name)

	return c
}

func (tx *Tx) UpdateCustomer(id string, patch merchant.CustomerPatch) bool {
	return tx.track(update(tx.state.Customers, id, customerID, patch.Apply))
}

func (tx *Tx) DeleteCustomer(id string) bool {
	var ok bool
	tx.state.Customers, ok = remove(tx.state.Customers, id, customerID)

	return tx.track(ok)
}

// Products

func (tx *Tx) AddProduct(in merchant.ProductInput) merchant.Product {
	id := tx.newID(PrefixProduct)
	if in.SKU == "" {
		in.SKU = "SKU" + id
	}

	p := merchant.Product{ID: id, ProductInput: in}
	tx.state.Products = append(tx.state.Products, p)
	tx.changed = true

	tx.notifySuccess(i18n.MsgProductAdded, i18n.MsgProductAddedBody, in.Name)

	return p
}

func (tx *Tx) UpdateProduct(id string, patch merchant.ProductPatch) bool {
	return tx.track(update(tx.state.Products, id, productID, patch.Apply))
}

func (tx *Tx) DeleteProduct(id string) bool {
	var ok bool
	tx.state.Products, ok = remove(tx.state.Products, id, productID)

	return tx.track(ok)
}

// Invoices

func (tx *Tx) AddInvoice(in merchant.InvoiceInput) merchant.Invoice {
	inv := merchant.Invoice{
		ID:           tx.newID(PrefixInvoice),
		InvoiceInput: in,
		CreatedAt:    tx.now,
	}
	inv = inv.Clone()
	tx.state.Invoices = append(tx.state.Invoices, inv)
	tx.changed = true

	tx.notifySuccess(i18n.MsgInvoiceCreated, i18n.MsgInvoiceCreatedBody, in.CustomerName)

	return inv.Clone()
}

func (tx *Tx) UpdateInvoice(id string, patch merchant.InvoicePatch) bool {
	return tx.track(update(tx.state.Invoices, id, invoiceID, patch.Apply))
}

// Payments

func (tx *Tx) AddPayment(in merchant.PaymentInput) merchant.Payment {
	p := merchant.Payment{
		ID:           tx.newID(PrefixPayment),
		PaymentInput: in,
		CreatedAt:    tx.now,
	}
	tx.state.Payments = append(tx.state.Payments, p)
	tx.changed = true

	return p
}

func (tx *Tx) UpdatePayment(id string, patch merchant.PaymentPatch) bool {
	return tx.track(update(tx.state.Payments, id, paymentID, patch.Apply))
}

// Delivery orders

func (tx *Tx) AddDeliveryOrder(in merchant.DeliveryOrderInput) merchant.DeliveryOrder {
	d := merchant.DeliveryOrder{
		ID:                 tx.newID(PrefixDelivery),
		DeliveryOrderInput: in,
		CreatedAt:          tx.now,
	}
	d = d.Clone()
	tx.state.DeliveryOrders = append(tx.state.DeliveryOrders, d)
	tx.changed = true

	return d.Clone()
}

func (tx *Tx) UpdateDeliveryOrder(id string, patch merchant.DeliveryOrderPatch) bool {
	return tx.track(update(tx.state.DeliveryOrders, id, deliveryID, patch.Apply))
}

// Daily requirements

func (tx *Tx) AddDailyRequirement(in merchant.DailyRequirementInput) merchant.DailyRequirement {
	r := merchant.DailyRequirement{
		ID:                    tx.newID(PrefixRequirement),
		DailyRequirementInput: in,
	}
	r = r.Clone()
	tx.state.DailyRequirements = append(tx.state.DailyRequirements, r)
	tx.changed = true

	return r.Clone()
}

func (tx *Tx) UpdateDailyRequirement(id string, patch merchant.DailyRequirementPatch) bool {
	return tx.track(update(tx.state.DailyRequirements, id, requirementID, patch.Apply))
}

// WhatsApp leads

func (tx *Tx) AddWhatsAppLead(in merchant.WhatsAppLeadInput) merchant.WhatsAppLead {
	l := merchant.WhatsAppLead{
		ID:                tx.newID(PrefixLead),
		WhatsAppLeadInput: in,
	}
	tx.state.WhatsAppLeads = append(tx.state.WhatsAppLeads, l)
	tx.changed = true

	return l
}

func (tx *Tx) UpdateWhatsAppLead(id string, patch merchant.WhatsAppLeadPatch) bool {
	return tx.track(update(tx.state.WhatsAppLeads, id, leadID, patch.Apply))
}

// Campaigns

func (tx *Tx) AddCampaign(in merchant.CampaignInput) merchant.Campaign {
	c := merchant.Campaign{
		ID:            tx.newID(PrefixCampaign),
		CampaignInput: in,
		CreatedAt:     tx.now,
	}
	c = c.Clone()
	tx.state.Campaigns = append(tx.state.Campaigns, c)
	tx.changed = true

	tx.notifySuccess(i18n.MsgCampaignCreated, i18n.MsgCampaignCreatedBody, in.Name)

	return c.Clone()
}

func (tx *Tx) UpdateCampaign(id string, patch merchant.CampaignPatch) bool {
	return tx.track(update(tx.state.Campaigns, id, campaignID, patch.Apply))
}

// Notifications

// AddNotification prepends the notification and drops everything past
// MaxNotifications.
func (tx *Tx) AddNotification(in merchant.NotificationInput) merchant.Notification {
	n := merchant.Notification{
		ID:                tx.newID(PrefixNotification),
		NotificationInput: in,
		CreatedAt:         tx.now,
	}

	list := make([]merchant.Notification, 0, min(len(tx.state.Notifications)+1, MaxNotifications))
	list = append(list, n)
	list = append(list, tx.state.Notifications[:min(len(tx.state.Notifications), MaxNotifications-1)]...)
	tx.state.Notifications = list
	tx.changed = true

	return n
}

func (tx *Tx) MarkNotificationRead(id string) bool {
	return tx.track(update(tx.state.Notifications, id, notificationID, func(n *merchant.Notification) {
		n.Read = true
	}))
}

func (tx *Tx) ClearNotifications() {
	tx.state.Notifications = []merchant.Notification{}
	tx.changed = true
}

// Navigation and UI

func (tx *Tx) SetActiveView(v nav.View) {
	tx.state.ActiveView = v
	tx.changed = true
}

func (tx *Tx) SetSidebarOpen(open bool) {
	tx.state.SidebarOpen = open
	tx.changed = true
}

func (tx *Tx) SetLanguage(lang i18n.Language) {
	tx.state.Language = lang
	tx.changed = true
}

func (tx *Tx) track(ok bool) bool {
	if ok {
		tx.changed = true
	}

	return ok
}

func customerID(c merchant.Customer) string            { return c.ID }
func productID(p merchant.Product) string              { return p.ID }
func invoiceID(i merchant.Invoice) string              { return i.ID }
func paymentID(p merchant.Payment) string              { return p.ID }
func deliveryID(d merchant.DeliveryOrder) string       { return d.ID }
func requirementID(r merchant.DailyRequirement) string { return r.ID }
func leadID(l merchant.WhatsAppLead) string            { return l.ID }
func campaignID(c merchant.Campaign) string            { return c.ID }
func notificationID(n merchant.Notification) string    { return n.ID }

func find[T any](items []T, id string, idOf func(T) string) (T, bool) {
	for _, it := range items {
		if idOf(it) == id {
			return it, true
		}
	}

	var zero T
	return zero, false
}

// update applies fn to every record with the given id.
func update[T any](items []T, id string, idOf func(T) string, fn func(*T)) bool {
	matched := false
	for i := range items {
		if idOf(items[i]) == id {
			fn(&items[i])
			matched = true
		}
	}

	return matched
}

// remove drops the first record with the given id.
func remove[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	for i, it := range items {
		if idOf(it) == id {
			return append(items[:i:i], items[i+1:]...), true
		}
	}

	return items, false
}
