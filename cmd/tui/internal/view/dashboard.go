package view

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vyaparx/internal/billing"
	"github.com/MrJamesThe3rd/vyaparx/internal/i18n"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
	"github.com/MrJamesThe3rd/vyaparx/internal/report"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

const recentNotifications = 5

var cardStyle = lipgloss.NewStyle().
	Padding(0, 2).
	Margin(0, 1, 1, 0).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(borderColor).
	Width(24)

// DashboardModel renders the headline figures. The detailed variant backs
// the Reports view with the per-status breakdowns.
type DashboardModel struct {
	CommonModel
	st       store.State
	detailed bool
}

func NewDashboardModel(detailed bool) DashboardModel {
	return DashboardModel{detailed: detailed}
}

func (m DashboardModel) Title() string {
	if m.detailed {
		return nav.Reports.Label(m.st.Language)
	}

	return nav.Dashboard.Label(m.st.Language)
}

func (m DashboardModel) ShortHelp() string { return "Esc: back" }

func (m DashboardModel) Init() tea.Cmd { return nil }

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.st = msg.State
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func card(label, value string) string {
	return cardStyle.Render(faintStyle.Render(label) + "\n" + titleStyle.Render(value))
}

func (m DashboardModel) View() string {
	lang := m.st.Language
	stats := report.Compute(m.st)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Revenue", FormatAmount(lang, stats.TotalRevenue)),
		card("Active Customers", fmt.Sprint(stats.ActiveCustomers)),
		card("Products", fmt.Sprintf("%d (%d low)", stats.Products, stats.LowStockProducts)),
		card("Open Invoices", fmt.Sprint(stats.OpenInvoices)),
	)

	sections := []string{titleStyle.Render(m.Title()), "", cards}

	if m.detailed {
		sections = append(sections, m.breakdown(stats))
	} else {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Width(40).Render(m.lowStock()),
			panelStyle.Width(48).Render(m.recent()),
		))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m DashboardModel) lowStock() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Low Stock") + "\n\n")

	low := report.LowStock(m.st)
	if len(low) == 0 {
		b.WriteString(faintStyle.Render("All products above reorder level"))
	}

	for _, p := range low {
		fmt.Fprintf(&b, "%-22s %3d / %d\n", truncate(p.Name, 22), p.Stock, p.MinStock)
	}

	return b.String()
}

func (m DashboardModel) recent() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(nav.Notifications.Label(m.st.Language)) + "\n\n")

	if len(m.st.Notifications) == 0 {
		b.WriteString(faintStyle.Render("Nothing new"))
	}

	for _, n := range m.st.Notifications[:min(recentNotifications, len(m.st.Notifications))] {
		line := fmt.Sprintf("%s: %s", n.Title, truncate(n.Message, 34))
		if n.Read {
			line = faintStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

func (m DashboardModel) breakdown(stats report.Stats) string {
	lang := m.st.Language

	payments := fmt.Sprintf("%s\n\nReceived: %s\nPending:  %s\nFailed:   %d\n",
		titleStyle.Render(nav.Payments.Label(lang)),
		FormatAmount(lang, stats.PaymentsReceived),
		FormatAmount(lang, stats.PendingAmount),
		stats.FailedPayments,
	)

	pending := billing.PendingInvoices(m.st)
	for _, inv := range pending[:min(3, len(pending))] {
		payments += fmt.Sprintf("  %s %s %s\n", inv.ID, truncate(inv.CustomerName, 16), FormatAmount(lang, inv.Total))
	}

	deliveries := fmt.Sprintf("%s\n\nDelivered:  %d\nIn transit: %d\nFailed:     %d\n",
		titleStyle.Render(nav.Delivery.Label(lang)),
		stats.Delivered, stats.InTransit, stats.FailedRuns,
	)

	var leads strings.Builder
	leads.WriteString(titleStyle.Render(nav.Leads.Label(lang)) + "\n\n")
	for _, s := range merchant.LeadStatuses() {
		fmt.Fprintf(&leads, "%-10s %d\n", s, stats.LeadsByStatus[s])
	}
	fmt.Fprintf(&leads, "\n%s pending: %d\n", nav.Requirements.Label(lang), stats.PendingRequirements)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(34).Render(payments),
		panelStyle.Width(26).Render(deliveries),
		panelStyle.Width(28).Render(leads.String()),
		panelStyle.Width(30).Render(topCustomers(m.st, lang)),
	)
}

func topCustomers(st store.State, lang i18n.Language) string {
	customers := slices.Clone(st.Customers)
	slices.SortStableFunc(customers, func(a, b merchant.Customer) int {
		return b.TotalPurchases.Cmp(a.TotalPurchases)
	})

	var b strings.Builder
	b.WriteString(titleStyle.Render("Top Customers") + "\n\n")
	for _, c := range customers[:min(5, len(customers))] {
		fmt.Fprintf(&b, "%-16s %s\n", truncate(c.Name, 16), FormatAmount(lang, c.TotalPurchases))
	}

	return b.String()
}
