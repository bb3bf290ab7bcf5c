package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/vyaparx/internal/billing"
	"github.com/MrJamesThe3rd/vyaparx/internal/delivery"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
	"github.com/MrJamesThe3rd/vyaparx/internal/report"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

var (
	invoiceStatuses = []merchant.InvoiceStatus{
		merchant.InvoiceDraft, merchant.InvoiceSent, merchant.InvoicePaid, merchant.InvoiceOverdue,
	}
	paymentStatuses = []merchant.PaymentStatus{
		merchant.PaymentPending, merchant.PaymentSuccess, merchant.PaymentFailed, merchant.PaymentRefunded,
	}
)

func invoiceCustomer(st store.State, inv merchant.Invoice) string {
	if inv.CustomerName != "" {
		return inv.CustomerName
	}

	return report.CustomerName(st, inv.CustomerID)
}

func invoicesCollection(svc Services) Collection {
	return Collection{
		View: nav.Billing,
		Columns: []table.Column{
			{Title: "Invoice", Width: 8},
			{Title: "Date", Width: 10},
			{Title: "Customer", Width: 22},
			{Title: "Total", Width: 10},
			{Title: "Status", Width: 8},
			{Title: "Payment", Width: 8},
			{Title: "Delivery", Width: 9},
		},
		Rows: func(st store.State, term string) []Row {
			invoices := report.SearchInvoices(st, term)
			rows := make([]Row, len(invoices))
			for i, inv := range invoices {
				rows[i] = Row{
					ID:     inv.ID,
					Status: string(inv.Status),
					Cells: table.Row{
						inv.ID,
						FormatDate(inv.CreatedAt),
						invoiceCustomer(st, inv),
						FormatAmount(st.Language, inv.Total),
						string(inv.Status),
						string(inv.PaymentStatus),
						string(inv.DeliveryStatus),
					},
				}
			}

			return rows
		},
		Statuses: names(invoiceStatuses),
		Create: func(st store.State) *Editor {
			return newInvoiceEditor(svc.Billing, st)
		},
		Actions: []Action{
			{
				Key:  "m",
				Help: "mark sent",
				Open: func(_ store.State, id string) *Editor {
					return &Editor{Submit: func(context.Context) (string, error) {
						return markSent(svc.Store, id)
					}}
				},
			},
			{
				Key:  "p",
				Help: "record payment",
				Open: func(_ store.State, id string) *Editor {
					return selectEditor("Record Payment", merchant.MethodUPI, merchant.PaymentMethods(),
						func(ctx context.Context, method merchant.PaymentMethod) (string, error) {
							pay, err := svc.Billing.RecordPayment(ctx, id, method)
							if err != nil {
								return "", err
							}

							return fmt.Sprintf("Payment %s recorded via %s (%s)", pay.ID, method, pay.Gateway), nil
						})
				},
			},
			{
				Key:  "d",
				Help: "dispatch",
				Open: func(_ store.State, id string) *Editor {
					return assignEditor(svc.Delivery, id)
				},
			},
		},
		Detail: invoiceDetail,
	}
}

func newInvoiceEditor(svc *billing.Service, st store.State) *Editor {
	if len(st.Customers) == 0 || len(st.Products) == 0 {
		return &Editor{Submit: func(context.Context) (string, error) {
			return "", errors.New("add a customer and a product first")
		}}
	}

	var (
		customerID = st.Customers[0].ID
		productIDs []string
		quantities string
	)

	return &Editor{
		Title: "New Invoice",
		Form: newForm(
			huh.NewSelect[string]().Title("Customer").Options(customerOptions(st)...).Value(&customerID),
			huh.NewMultiSelect[string]().Title("Products").Options(productOptions(st)...).Value(&productIDs).
				Validate(func(ids []string) error {
					if len(ids) == 0 {
						return errors.New("pick at least one product")
					}

					return nil
				}),
			huh.NewInput().Title("Quantities").Description("In product order, default 1").Placeholder("2, 1").
				Value(&quantities),
		),
		Submit: func(ctx context.Context) (string, error) {
			qty, err := parseQuantities(quantities, len(productIDs))
			if err != nil {
				return "", err
			}

			params := billing.CreateInvoiceParams{CustomerID: customerID}
			for i, id := range productIDs {
				params.Lines = append(params.Lines, billing.LineParams{ProductID: id, Quantity: qty[i]})
			}

			inv, err := svc.CreateInvoice(ctx, params)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("Created %s for %s", inv.ID, inv.CustomerName), nil
		},
	}
}

func markSent(s *store.Store, id string) (string, error) {
	inv, ok := s.Invoice(id)
	if !ok {
		return "", fmt.Errorf("invoice %s not found", id)
	}

	if inv.Status != merchant.InvoiceDraft {
		return "", fmt.Errorf("invoice %s is %s, not Draft", id, inv.Status)
	}

	s.UpdateInvoice(id, merchant.InvoicePatch{Status: new(merchant.InvoiceSent)})

	return fmt.Sprintf("%s sent to %s", id, inv.CustomerName), nil
}

func assignEditor(svc *delivery.Service, invoiceID string) *Editor {
	return selectEditor("Dispatch "+invoiceID, merchant.PartnerSelf, merchant.DeliveryPartners(),
		func(ctx context.Context, partner merchant.DeliveryPartner) (string, error) {
			order, err := svc.Assign(ctx, invoiceID, partner)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("%s assigned to %s, tracking %s", order.ID, partner, order.TrackingID), nil
		})
}

func invoiceDetail(st store.State, id string) string {
	for _, inv := range st.Invoices {
		if inv.ID != id {
			continue
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s  %s\n\n", titleStyle.Render(inv.ID), invoiceCustomer(st, inv))
		for _, it := range inv.Items {
			fmt.Fprintf(&b, "%2d × %-20s %s\n", it.Quantity, truncate(it.ProductName, 20), FormatAmount(st.Language, it.Total))
		}

		fmt.Fprintf(&b, "\nTotal:   %s\n", FormatAmount(st.Language, inv.Total))
		fmt.Fprintf(&b, "Due:     %s\n", FormatDate(inv.DueDate))
		if inv.PaymentMethod != "" {
			fmt.Fprintf(&b, "Paid by: %s\n", inv.PaymentMethod)
		}

		return b.String()
	}

	return ""
}

func paymentsCollection(svc Services) Collection {
	return Collection{
		View: nav.Payments,
		Columns: []table.Column{
			{Title: "ID", Width: 8},
			{Title: "Invoice", Width: 8},
			{Title: "Customer", Width: 22},
			{Title: "Amount", Width: 10},
			{Title: "Method", Width: 10},
			{Title: "Status", Width: 9},
			{Title: "Transaction", Width: 18},
		},
		Rows: func(st store.State, term string) []Row {
			payments := report.SearchPayments(st, term)
			rows := make([]Row, len(payments))
			for i, p := range payments {
				rows[i] = Row{
					ID:     p.ID,
					Status: string(p.Status),
					Cells: table.Row{
						p.ID,
						p.InvoiceID,
						report.CustomerName(st, p.CustomerID),
						FormatAmount(st.Language, p.Amount),
						string(p.Method),
						string(p.Status),
						p.TransactionID,
					},
				}
			}

			return rows
		},
		Statuses: names(paymentStatuses),
		Actions: []Action{
			{
				Key:  "u",
				Help: "update status",
				Open: func(st store.State, id string) *Editor {
					current := merchant.PaymentPending
					for _, p := range st.Payments {
						if p.ID == id {
							current = p.Status
						}
					}

					return selectEditor("Payment "+id, current, paymentStatuses,
						func(_ context.Context, status merchant.PaymentStatus) (string, error) {
							if !svc.Store.UpdatePayment(id, merchant.PaymentPatch{Status: &status}) {
								return "", fmt.Errorf("payment %s not found", id)
							}

							return fmt.Sprintf("%s marked %s", id, status), nil
						})
				},
			},
		},
	}
}

func deliveriesCollection(svc Services) Collection {
	return Collection{
		View: nav.Delivery,
		Columns: []table.Column{
			{Title: "ID", Width: 8},
			{Title: "Invoice", Width: 8},
			{Title: "Customer", Width: 20},
			{Title: "Partner", Width: 9},
			{Title: "Status", Width: 10},
			{Title: "Tracking", Width: 20},
			{Title: "ETA", Width: 10},
		},
		Rows: func(st store.State, term string) []Row {
			orders := report.SearchDeliveries(st, term)
			rows := make([]Row, len(orders))
			for i, d := range orders {
				rows[i] = Row{
					ID:     d.ID,
					Status: string(d.Status),
					Cells: table.Row{
						d.ID,
						d.InvoiceID,
						report.CustomerName(st, d.CustomerID),
						string(d.Partner),
						string(d.Status),
						d.TrackingID,
						formatOptionalDate(d.EstimatedDelivery),
					},
				}
			}

			return rows
		},
		Statuses: names(merchant.DeliveryStatuses()),
		Create: func(st store.State) *Editor {
			return newDeliveryEditor(svc.Delivery, st)
		},
		Actions: []Action{
			{
				Key:  "a",
				Help: "advance",
				Open: func(st store.State, id string) *Editor {
					current := merchant.DeliveryAssigned
					for _, d := range st.DeliveryOrders {
						if d.ID == id {
							current = d.Status
						}
					}

					return selectEditor("Delivery "+id, current, merchant.DeliveryStatuses(),
						func(ctx context.Context, status merchant.DeliveryStatus) (string, error) {
							if _, err := svc.Delivery.Advance(ctx, id, status); err != nil {
								return "", err
							}

							return fmt.Sprintf("%s is %s", id, status), nil
						})
				},
			},
		},
		Detail: deliveryDetail,
	}
}

func newDeliveryEditor(svc *delivery.Service, st store.State) *Editor {
	pending := delivery.PendingInvoices(st)
	if len(pending) == 0 {
		return &Editor{Submit: func(context.Context) (string, error) {
			return "", errors.New("no invoices waiting for delivery")
		}}
	}

	opts := make([]huh.Option[string], len(pending))
	for i, inv := range pending {
		opts[i] = huh.NewOption(fmt.Sprintf("%s · %s · %s", inv.ID, invoiceCustomer(st, inv), FormatAmount(st.Language, inv.Total)), inv.ID)
	}

	var (
		invoiceID = pending[0].ID
		partner   = merchant.PartnerSelf
	)

	return &Editor{
		Title: "Assign Delivery",
		Form: newForm(
			huh.NewSelect[string]().Title("Invoice").Options(opts...).Value(&invoiceID),
			huh.NewSelect[merchant.DeliveryPartner]().Title("Partner").
				Options(huh.NewOptions(merchant.DeliveryPartners()...)...).Value(&partner),
		),
		Submit: func(ctx context.Context) (string, error) {
			order, err := svc.Assign(ctx, invoiceID, partner)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("%s assigned to %s, tracking %s", order.ID, partner, order.TrackingID), nil
		},
	}
}

func deliveryDetail(st store.State, id string) string {
	for _, d := range st.DeliveryOrders {
		if d.ID != id {
			continue
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s  %s\n\n", titleStyle.Render(d.ID), string(d.Partner))
		for _, it := range d.Items {
			fmt.Fprintf(&b, "%2d × %s\n", it.Quantity, truncate(it.ProductName, 28))
		}

		fmt.Fprintf(&b, "\nExpected:  %s\n", formatOptionalDate(d.EstimatedDelivery))
		fmt.Fprintf(&b, "Delivered: %s\n", formatOptionalDate(d.ActualDelivery))

		return b.String()
	}

	return ""
}
