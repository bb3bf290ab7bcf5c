package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/vyaparx/internal/intake"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
	"github.com/MrJamesThe3rd/vyaparx/internal/report"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

func requirementsCollection(svc Services) Collection {
	return Collection{
		View: nav.Requirements,
		Columns: []table.Column{
			{Title: "ID", Width: 8},
			{Title: "Date", Width: 10},
			{Title: "Customer", Width: 20},
			{Title: "Items", Width: 28},
			{Title: "Source", Width: 9},
			{Title: "Status", Width: 10},
			{Title: "Estimate", Width: 10},
		},
		Rows: func(st store.State, term string) []Row {
			reqs := report.SearchRequirements(st, term)
			rows := make([]Row, len(reqs))
			for i, r := range reqs {
				items := make([]string, len(r.Items))
				for j, it := range r.Items {
					items[j] = fmt.Sprintf("%s %d%s", it.ProductName, it.Quantity, it.Unit)
				}

				estimate := "-"
				if r.TotalAmount != nil {
					estimate = FormatAmount(st.Language, *r.TotalAmount)
				}

				rows[i] = Row{
					ID:     r.ID,
					Status: string(r.Status),
					Cells: table.Row{
						r.ID,
						FormatDate(r.RequestDate),
						r.CustomerName,
						truncate(strings.Join(items, ", "), 28),
						string(r.Source),
						string(r.Status),
						estimate,
					},
				}
			}

			return rows
		},
		Statuses: names(merchant.RequirementStatuses()),
		Create: func(st store.State) *Editor {
			return newRequirementEditor(svc.Intake, st)
		},
		Actions: []Action{
			{
				Key:  "u",
				Help: "update status",
				Open: func(st store.State, id string) *Editor {
					current := merchant.RequirementPending
					for _, r := range st.DailyRequirements {
						if r.ID == id {
							current = r.Status
						}
					}

					return selectEditor("Requirement "+id, current, merchant.RequirementStatuses(),
						func(ctx context.Context, status merchant.RequirementStatus) (string, error) {
							if err := svc.Intake.SetRequirementStatus(ctx, id, status); err != nil {
								return "", err
							}

							return fmt.Sprintf("%s marked %s", id, status), nil
						})
				},
			},
		},
	}
}

func newRequirementEditor(svc *intake.Service, st store.State) *Editor {
	if len(st.Customers) == 0 {
		return &Editor{Submit: func(context.Context) (string, error) {
			return "", errors.New("add a customer first")
		}}
	}

	var (
		params = intake.CreateRequirementParams{
			CustomerID: st.Customers[0].ID,
			Source:     merchant.SourceWhatsApp,
		}
		item            merchant.RequirementItem
		quantity, price string
	)

	return &Editor{
		Title: "New Requirement",
		Form: newForm(
			huh.NewSelect[string]().Title("Customer").Options(customerOptions(st)...).Value(&params.CustomerID),
			huh.NewSelect[merchant.RequirementSource]().Title("Source").
				Options(huh.NewOptions(merchant.RequirementSources()...)...).Value(&params.Source),
			huh.NewInput().Title("Item").Placeholder("Basmati Rice").Value(&item.ProductName).Validate(required("item")),
			huh.NewInput().Title("Quantity").Value(&quantity).Validate(validCount),
			huh.NewInput().Title("Unit").Placeholder("kg").Value(&item.Unit),
			huh.NewInput().Title("Estimated Price").Value(&price).Validate(validOptionalAmount),
			huh.NewText().Title("Notes").Value(&params.Notes),
		),
		Submit: func(ctx context.Context) (string, error) {
			var err error
			if item.Quantity, err = parseCount(quantity); err != nil {
				return "", err
			}

			if strings.TrimSpace(price) != "" {
				p, err := parseAmount(price)
				if err != nil {
					return "", err
				}
				item.EstimatedPrice = &p
			}

			params.Items = []merchant.RequirementItem{item}

			req, err := svc.CreateRequirement(ctx, params)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("Recorded %s for %s", req.ID, req.CustomerName), nil
		},
	}
}

func leadsCollection(svc Services) Collection {
	return Collection{
		View: nav.Leads,
		Columns: []table.Column{
			{Title: "ID", Width: 8},
			{Title: "Name", Width: 18},
			{Title: "Phone", Width: 15},
			{Title: "Message", Width: 30},
			{Title: "Status", Width: 10},
			{Title: "Priority", Width: 8},
		},
		Rows: func(st store.State, term string) []Row {
			leads := report.SearchLeads(st, term)
			now := svc.Now()
			rows := make([]Row, len(leads))
			for i, l := range leads {
				rows[i] = Row{
					ID:     l.ID,
					Status: string(l.Status),
					Cells: table.Row{
						l.ID,
						l.CustomerName,
						l.CustomerPhone,
						truncate(l.Message, 30),
						string(l.Status),
						string(intake.LeadPriority(l, now)),
					},
				}
			}

			return rows
		},
		Statuses: names(merchant.LeadStatuses()),
		Create: func(store.State) *Editor {
			var params intake.CreateLeadParams

			return &Editor{
				Title: "New Lead",
				Form: newForm(
					huh.NewInput().Title("Phone").Value(&params.CustomerPhone).Validate(required("phone")),
					huh.NewInput().Title("Name").Value(&params.CustomerName),
					huh.NewText().Title("Message").Value(&params.Message).Validate(required("message")),
				),
				Submit: func(ctx context.Context) (string, error) {
					lead, err := svc.Intake.CreateLead(ctx, params)
					if err != nil {
						return "", err
					}

					return fmt.Sprintf("Lead %s from %s", lead.ID, lead.CustomerPhone), nil
				},
			}
		},
		Actions: []Action{
			{
				Key:  "u",
				Help: "update status",
				Open: func(st store.State, id string) *Editor {
					current := merchant.LeadNew
					for _, l := range st.WhatsAppLeads {
						if l.ID == id {
							current = l.Status
						}
					}

					return selectEditor("Lead "+id, current, merchant.LeadStatuses(),
						func(ctx context.Context, status merchant.LeadStatus) (string, error) {
							if err := svc.Intake.SetLeadStatus(ctx, id, status); err != nil {
								return "", err
							}

							return fmt.Sprintf("%s marked %s", id, status), nil
						})
				},
			},
		},
		Detail: func(st store.State, id string) string {
			for _, l := range st.WhatsAppLeads {
				if l.ID == id {
					return fmt.Sprintf("%s\n%s\n\n%s\n\n%s",
						titleStyle.Render(l.CustomerName), l.CustomerPhone, l.Message,
						faintStyle.Render(l.Timestamp.Format("2006-01-02 15:04")))
				}
			}

			return ""
		},
	}
}
