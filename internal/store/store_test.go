package store_test

import (
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newStore(opts ...store.Option) *store.Store {
	base := []store.Option{
		store.WithClock(func() time.Time { return fixedNow }),
		store.WithIDGenerator(store.SequentialIDs()),
	}

	return store.New(append(base, opts...)...)
}

func TestNew_Defaults(t *testing.T) {
	s := store.New()
	st := s.Snapshot()

	assert.Equal(t, nav.Dashboard, st.ActiveView)
	assert.False(t, st.SidebarOpen)
	assert.Equal(t, i18n.English, st.Language)
	assert.Empty(t, st.Customers)
	assert.Empty(t, st.Notifications)
	assert.Zero(t, st.Revision)
}

func TestNew_DemoData(t *testing.T) {
	s := newStore(store.WithDemoData(), store.WithLanguage(i18n.Hindi))
	st := s.Snapshot()

	assert.Len(t, st.Customers, 5)
	assert.Len(t, st.Products, 5)
	require.Len(t, st.Invoices, 2)
	assert.True(t, decimal.NewFromInt(680).Equal(st.Invoices[0].Total))
	assert.Len(t, st.Payments, 1)
	assert.Len(t, st.DeliveryOrders, 1)
	assert.Len(t, st.DailyRequirements, 1)
	assert.Len(t, st.WhatsAppLeads, 1)
	assert.Len(t, st.Campaigns, 1)
	require.Len(t, st.Notifications, 1)
	assert.Equal(t, i18n.T(i18n.Hindi, i18n.MsgWelcome), st.Notifications[0].Title)
	assert.Equal(t, fixedNow.AddDate(0, 0, -2), *st.Customers[0].LastPurchase)
}

func TestNew_InstancesAreIsolated(t *testing.T) {
	a := newStore()
	b := newStore()

	a.AddCustomer(merchant.CustomerInput{Name: "Asha"})

	assert.Len(t, a.Snapshot().Customers, 1)
	assert.Empty(t, b.Snapshot().Customers)
}

func TestStore_AddCustomer(t *testing.T) {
	s := newStore()

	c := s.AddCustomer(merchant.CustomerInput{Name: "Asha Verma", Phone: "+91 90000 00001"})

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, fixedNow, c.CreatedAt)
	assert.Equal(t, "Asha Verma", c.Name)

	st := s.Snapshot()
	require.Len(t, st.Customers, 1)
	assert.Equal(t, c, st.Customers[0])

	require.Len(t, st.Notifications, 1)
	assert.Equal(t, "Customer Added", st.Notifications[0].Title)
	assert.Equal(t, "Asha Verma has been added successfully", st.Notifications[0].Message)
	assert.Equal(t, merchant.NotificationSuccess, st.Notifications[0].Type)
	assert.False(t, st.Notifications[0].Read)
}

func TestStore_IDsAreUniqueAcrossCollections(t *testing.T) {
	for name, opt := range map[string]store.Option{
		"uuid":       store.WithIDGenerator(store.UUIDs),
		"sequential": store.WithIDGenerator(store.SequentialIDs()),
	} {
		t.Run(name, func(t *testing.T) {
			s := store.New(opt)
			seen := map[string]bool{}

			record := func(id string) {
				assert.False(t, seen[id], "id %q issued twice", id)
				seen[id] = true
			}

			for i := range 20 {
				record(s.AddCustomer(merchant.CustomerInput{Name: strconv.Itoa(i)}).ID)
				record(s.AddProduct(merchant.ProductInput{Name: strconv.Itoa(i)}).ID)
				record(s.AddPayment(merchant.PaymentInput{InvoiceID: "x"}).ID)
				record(s.AddWhatsAppLead(merchant.WhatsAppLeadInput{Message: "hi"}).ID)
			}

			for _, n := range s.Snapshot().Notifications {
				record(n.ID)
			}
		})
	}
}

func TestStore_AddProduct_AssignsSKU(t *testing.T) {
	s := newStore()

	p := s.AddProduct(merchant.ProductInput{Name: "Parle-G"})
	assert.Equal(t, "SKU"+p.ID, p.SKU)

	q := s.AddProduct(merchant.ProductInput{Name: "Good Day", SKU: "GD01"})
	assert.Equal(t, "GD01", q.SKU)
}

func TestStore_Update(t *testing.T) {
	type testCase struct {
		name    string
		id      func(c merchant.Customer) string
		wantOK  bool
		wantRev uint64
	}

	tests := []testCase{
		{
			name:    "Match",
			id:      func(c merchant.Customer) string { return c.ID },
			wantOK:  true,
			wantRev: 2,
		},
		{
			name:    "AbsentID",
			id:      func(merchant.Customer) string { return "missing" },
			wantOK:  false,
			wantRev: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore()
			c := s.AddCustomer(merchant.CustomerInput{Name: "Asha", Phone: "1", Status: merchant.CustomerActive})
			before := s.Snapshot()

			ok := s.UpdateCustomer(tt.id(c), merchant.CustomerPatch{
				Phone:  new("2"),
				Status: new(merchant.CustomerInactive),
			})
			assert.Equal(t, tt.wantOK, ok)

			after := s.Snapshot()
			assert.Equal(t, tt.wantRev, after.Revision)

			if !tt.wantOK {
				assert.Equal(t, before, after)
				return
			}

			got := after.Customers[0]
			assert.Equal(t, "Asha", got.Name)
			assert.Equal(t, "2", got.Phone)
			assert.Equal(t, merchant.CustomerInactive, got.Status)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	s := newStore()
	a := s.AddProduct(merchant.ProductInput{Name: "A"})
	b := s.AddProduct(merchant.ProductInput{Name: "B"})

	assert.False(t, s.DeleteProduct("missing"))
	assert.Len(t, s.Snapshot().Products, 2)

	assert.True(t, s.DeleteProduct(a.ID))
	st := s.Snapshot()
	require.Len(t, st.Products, 1)
	assert.Equal(t, b.ID, st.Products[0].ID)

	assert.False(t, s.DeleteProduct(a.ID))
}

func TestStore_DeleteCustomer_DoesNotCascade(t *testing.T) {
	s := newStore()
	c := s.AddCustomer(merchant.CustomerInput{Name: "Asha"})
	inv := s.AddInvoice(merchant.InvoiceInput{CustomerID: c.ID, CustomerName: c.Name})

	require.True(t, s.DeleteCustomer(c.ID))

	got, ok := s.Invoice(inv.ID)
	require.True(t, ok)
	assert.Equal(t, c.ID, got.CustomerID)
}

func TestStore_Notifications_Capped(t *testing.T) {
	s := newStore()

	for i := range store.MaxNotifications + 1 {
		s.AddNotification(merchant.NotificationInput{Title: fmt.Sprintf("n%d", i), Type: merchant.NotificationInfo})
	}

	st := s.Snapshot()
	require.Len(t, st.Notifications, store.MaxNotifications)
	assert.Equal(t, fmt.Sprintf("n%d", store.MaxNotifications), st.Notifications[0].Title)
	assert.Equal(t, "n1", st.Notifications[store.MaxNotifications-1].Title)
}

func TestStore_MarkNotificationRead_Idempotent(t *testing.T) {
	s := newStore()
	n := s.AddNotification(merchant.NotificationInput{Title: "hello"})

	assert.True(t, s.MarkNotificationRead(n.ID))
	first := s.Snapshot()

	assert.True(t, s.MarkNotificationRead(n.ID))
	second := s.Snapshot()

	require.Len(t, second.Notifications, 1)
	assert.True(t, second.Notifications[0].Read)
	assert.Equal(t, first.Notifications, second.Notifications)

	assert.False(t, s.MarkNotificationRead("missing"))
}

func TestStore_ClearNotifications(t *testing.T) {
	s := newStore(store.WithDemoData())
	s.ClearNotifications()

	assert.Empty(t, s.Snapshot().Notifications)
}

func TestStore_LanguageToggle(t *testing.T) {
	s := newStore()

	s.SetLanguage(i18n.Hindi)
	s.AddCustomer(merchant.CustomerInput{Name: "Ravi"})
	assert.Equal(t, "ग्राहक जोड़ा गया", s.Snapshot().Notifications[0].Title)

	s.SetLanguage(i18n.English)
	s.AddCustomer(merchant.CustomerInput{Name: "Ravi"})
	assert.Equal(t, "Customer Added", s.Snapshot().Notifications[0].Title)
	assert.Equal(t, i18n.English, s.Language())
}

func TestStore_NavigationState(t *testing.T) {
	s := newStore()

	s.SetActiveView(nav.Products)
	s.SetSidebarOpen(true)

	st := s.Snapshot()
	assert.Equal(t, nav.Products, st.ActiveView)
	assert.True(t, st.SidebarOpen)
	assert.Equal(t, nav.Products, s.ActiveView())
}

func TestStore_Navigate(t *testing.T) {
	s := newStore()

	var seen []store.State
	cancel := s.Subscribe(func(st store.State) { seen = append(seen, st) })
	defer cancel()

	s.Navigate(nav.Customers, "show customers")

	require.Len(t, seen, 1, "navigation and notification commit together")
	assert.Equal(t, nav.Customers, seen[0].ActiveView)
	require.Len(t, seen[0].Notifications, 1)
	assert.Equal(t, "Voice Command", seen[0].Notifications[0].Title)
	assert.Equal(t, "Navigating to show customers", seen[0].Notifications[0].Message)
}

func TestStore_Do_GroupsMutations(t *testing.T) {
	s := newStore()

	var calls int
	s.Subscribe(func(store.State) { calls++ })

	s.Do(func(tx *store.Tx) {
		tx.AddPayment(merchant.PaymentInput{InvoiceID: "INV1"})
		tx.UpdateInvoice("INV1", merchant.InvoicePatch{Status: new(merchant.InvoicePaid)})
		tx.SetActiveView(nav.Payments)
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, uint64(1), s.Snapshot().Revision)
}

func TestStore_Do_NoChangeSkipsSubscribers(t *testing.T) {
	s := newStore()

	var calls int
	s.Subscribe(func(store.State) { calls++ })

	s.UpdateCampaign("missing", merchant.CampaignPatch{Name: new("x")})
	s.DeleteCustomer("missing")

	assert.Zero(t, calls)
}

func TestStore_Do_PanicReleasesLock(t *testing.T) {
	s := newStore()

	assert.Panics(t, func() {
		s.Do(func(tx *store.Tx) {
			tx.SetSidebarOpen(true)
			panic("boom")
		})
	})

	st := s.Snapshot()
	assert.False(t, st.SidebarOpen)
	assert.Zero(t, st.Revision)

	s.SetSidebarOpen(true)
	assert.Equal(t, uint64(1), s.Snapshot().Revision)
}

func TestStore_Subscribe_Cancel(t *testing.T) {
	s := newStore()

	var order []string
	cancelA := s.Subscribe(func(store.State) { order = append(order, "a") })
	s.Subscribe(func(store.State) { order = append(order, "b") })

	s.SetSidebarOpen(true)
	cancelA()
	s.SetSidebarOpen(false)

	assert.Equal(t, []string{"a", "b", "b"}, order)
}

func TestStore_SnapshotIsDeepCopy(t *testing.T) {
	s := newStore()
	s.AddInvoice(merchant.InvoiceInput{
		CustomerName: "Asha",
		Items:        []merchant.InvoiceItem{{ProductName: "Tea", Quantity: 1}},
	})

	st := s.Snapshot()
	st.Invoices[0].Items[0].ProductName = "changed"
	st.Customers = append(st.Customers, merchant.Customer{ID: "x"})

	again := s.Snapshot()
	assert.Equal(t, "Tea", again.Invoices[0].Items[0].ProductName)
	assert.Empty(t, again.Customers)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := store.New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			s.AddProduct(merchant.ProductInput{Name: strconv.Itoa(i)})
		})
	}
	wg.Wait()

	st := s.Snapshot()
	assert.Len(t, st.Products, 50)
	assert.Len(t, st.Notifications, store.MaxNotifications)
	assert.Equal(t, uint64(50), st.Revision)
}
