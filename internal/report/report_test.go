package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/report"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

func demo() store.State {
	return store.New(store.WithDemoData()).Snapshot()
}

func TestCompute(t *testing.T) {
	st := demo()
	st.Products[4].Stock = 50

	got := report.Compute(st)

	assert.Equal(t, "485030", got.TotalRevenue.String())
	assert.Equal(t, 5, got.ActiveCustomers)
	assert.Equal(t, 5, got.Products)
	assert.Equal(t, 1, got.LowStockProducts)
	assert.Equal(t, 1, got.OpenInvoices)
	assert.Equal(t, "680", got.PaymentsReceived.String())
	assert.Equal(t, "180", got.PendingAmount.String())
	assert.Zero(t, got.FailedPayments)
	assert.Equal(t, 1, got.Delivered)
	assert.Zero(t, got.InTransit)
	assert.Equal(t, map[merchant.LeadStatus]int{merchant.LeadNew: 1}, got.LeadsByStatus)
	assert.Equal(t, 1, got.PendingRequirements)
	assert.Equal(t, 1, got.UnreadNotifications)
}

func TestCompute_Empty(t *testing.T) {
	got := report.Compute(store.New().Snapshot())

	assert.True(t, got.TotalRevenue.IsZero())
	assert.Zero(t, got.Products)
	assert.Empty(t, got.LeadsByStatus)
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}

	return out
}

func TestSearch(t *testing.T) {
	st := demo()

	t.Run("Customers", func(t *testing.T) {
		got := report.SearchCustomers(st, "PHARMACY")
		assert.Equal(t, []string{"CUS005"}, ids(got, func(c merchant.Customer) string { return c.ID }))
		assert.Len(t, report.SearchCustomers(st, ""), 5)
	})

	t.Run("Products", func(t *testing.T) {
		got := report.SearchProducts(st, "dairy")
		assert.Equal(t, []string{"PRD003"}, ids(got, func(p merchant.Product) string { return p.ID }))
	})

	t.Run("Invoices", func(t *testing.T) {
		got := report.SearchInvoices(st, "priya")
		assert.Equal(t, []string{"INV002"}, ids(got, func(i merchant.Invoice) string { return i.ID }))
	})

	t.Run("PaymentsByCustomerName", func(t *testing.T) {
		got := report.SearchPayments(st, "rajesh")
		assert.Equal(t, []string{"PAY001"}, ids(got, func(p merchant.Payment) string { return p.ID }))
	})

	t.Run("DeliveriesByTracking", func(t *testing.T) {
		got := report.SearchDeliveries(st, "dun123")
		assert.Equal(t, []string{"DEL001"}, ids(got, func(d merchant.DeliveryOrder) string { return d.ID }))
	})

	t.Run("LeadsByMessage", func(t *testing.T) {
		assert.Len(t, report.SearchLeads(st, "DAL"), 1)
		assert.Empty(t, report.SearchLeads(st, "paneer"))
	})

	t.Run("RequirementsByItem", func(t *testing.T) {
		assert.Len(t, report.SearchRequirements(st, "bread"), 1)
	})

	t.Run("Campaigns", func(t *testing.T) {
		assert.Len(t, report.SearchCampaigns(st, "diwali"), 1)
	})
}

func TestNameResolution_DanglingReferences(t *testing.T) {
	s := store.New(store.WithDemoData())
	require.True(t, s.DeleteCustomer("CUS001"))
	require.True(t, s.DeleteProduct("PRD001"))

	st := s.Snapshot()
	assert.Equal(t, "Unknown", report.CustomerName(st, "CUS001"))
	assert.Equal(t, "Unknown", report.ProductName(st, "PRD001"))
	assert.Equal(t, "Priya Patel", report.CustomerName(st, "CUS002"))

	audience := report.CampaignAudience(st, st.Campaigns[0])
	assert.Len(t, audience, 2)

	assert.Empty(t, report.SearchPayments(st, "rajesh"), "vanished payer no longer matches by name")

	s.SetLanguage(i18n.Hindi)
	assert.Equal(t, "अज्ञात", report.CustomerName(s.Snapshot(), "CUS001"))
}

func TestLowStock(t *testing.T) {
	st := demo()
	st.Products[1].Stock = 10

	got := report.LowStock(st)

	require.Len(t, got, 1)
	assert.Equal(t, "PRD002", got[0].ID)
}
