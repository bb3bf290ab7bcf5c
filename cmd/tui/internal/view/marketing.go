package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/vyaparx/internal/marketing"
	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
	"github.com/MrJamesThe3rd/vyaparx/internal/report"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

const (
	notificationUnread = "Unread"
	notificationRead   = "Read"
)

var campaignStatuses = []merchant.CampaignStatus{
	merchant.CampaignDraft, merchant.CampaignActive, merchant.CampaignCompleted,
}

func campaignsCollection(svc Services) Collection {
	return Collection{
		View: nav.Marketing,
		Columns: []table.Column{
			{Title: "ID", Width: 7},
			{Title: "Name", Width: 24},
			{Title: "Type", Width: 9},
			{Title: "Status", Width: 10},
			{Title: "Audience", Width: 8},
			{Title: "Sent", Width: 5},
			{Title: "Delivered", Width: 9},
			{Title: "Read", Width: 5},
		},
		Rows: func(st store.State, term string) []Row {
			campaigns := report.SearchCampaigns(st, term)
			rows := make([]Row, len(campaigns))
			for i, c := range campaigns {
				rows[i] = Row{
					ID:     c.ID,
					Status: string(c.Status),
					Cells: table.Row{
						c.ID,
						c.Name,
						string(c.Type),
						string(c.Status),
						fmt.Sprint(len(c.TargetCustomers)),
						fmt.Sprint(c.SentCount),
						fmt.Sprint(c.DeliveredCount),
						fmt.Sprint(c.ReadCount),
					},
				}
			}

			return rows
		},
		Statuses: names(campaignStatuses),
		Create: func(st store.State) *Editor {
			return newCampaignEditor(svc.Marketing, st)
		},
		Actions: []Action{
			{
				Key:  "u",
				Help: "update status",
				Open: func(st store.State, id string) *Editor {
					current := merchant.CampaignDraft
					for _, c := range st.Campaigns {
						if c.ID == id {
							current = c.Status
						}
					}

					return selectEditor("Campaign "+id, current, campaignStatuses,
						func(_ context.Context, status merchant.CampaignStatus) (string, error) {
							if !svc.Store.UpdateCampaign(id, merchant.CampaignPatch{Status: &status}) {
								return "", fmt.Errorf("campaign %s not found", id)
							}

							return fmt.Sprintf("%s is %s", id, status), nil
						})
				},
			},
		},
		Detail: campaignDetail,
	}
}

func newCampaignEditor(svc *marketing.Service, st store.State) *Editor {
	params := marketing.CreateCampaignParams{
		Type:            merchant.CampaignWhatsApp,
		TargetCustomers: marketing.AllCustomerIDs(st),
	}

	fields := []huh.Field{
		huh.NewInput().Title("Name").Value(&params.Name).Validate(required("name")),
		huh.NewSelect[merchant.CampaignType]().Title("Channel").
			Options(huh.NewOptions(merchant.CampaignTypes()...)...).Value(&params.Type),
		huh.NewText().Title("Message").Value(&params.Message).Validate(required("message")),
	}

	if len(st.Customers) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().Title("Audience").
			Options(customerOptions(st)...).Value(&params.TargetCustomers).
			Validate(func(ids []string) error {
				if len(ids) == 0 {
					return errors.New("pick at least one customer")
				}

				return nil
			}))
	}

	return &Editor{
		Title: "New Campaign",
		Form:  newForm(fields...),
		Submit: func(ctx context.Context) (string, error) {
			c, err := svc.CreateCampaign(ctx, params)
			if err != nil {
				return "", err
			}

			return fmt.Sprintf("Campaign %s drafted for %d customers", c.ID, len(c.TargetCustomers)), nil
		},
	}
}

func campaignDetail(st store.State, id string) string {
	for _, c := range st.Campaigns {
		if c.ID != id {
			continue
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s\n\n%s\n\n", titleStyle.Render(c.Name), c.Message)
		fmt.Fprintf(&b, "%s\n", faintStyle.Render("Audience"))
		for _, cu := range report.CampaignAudience(st, c) {
			fmt.Fprintf(&b, "  %s  %s\n", cu.Name, cu.Phone)
		}

		if c.ScheduledAt != nil {
			fmt.Fprintf(&b, "\nScheduled: %s\n", c.ScheduledAt.Format("2006-01-02 15:04"))
		}

		return b.String()
	}

	return ""
}

func notificationsCollection(svc Services) Collection {
	return Collection{
		View: nav.Notifications,
		Columns: []table.Column{
			{Title: "Time", Width: 16},
			{Title: "Type", Width: 8},
			{Title: "Title", Width: 20},
			{Title: "Message", Width: 40},
			{Title: "", Width: 2},
		},
		Rows: func(st store.State, _ string) []Row {
			rows := make([]Row, len(st.Notifications))
			for i, n := range st.Notifications {
				status, mark := notificationRead, ""
				if !n.Read {
					status, mark = notificationUnread, "●"
				}

				rows[i] = Row{
					ID:     n.ID,
					Status: status,
					Cells: table.Row{
						n.CreatedAt.Format("2006-01-02 15:04"),
						string(n.Type),
						n.Title,
						truncate(n.Message, 40),
						mark,
					},
				}
			}

			return rows
		},
		Statuses: []string{notificationUnread, notificationRead},
		Actions: []Action{
			{
				Key:  "r",
				Help: "mark read",
				Open: func(_ store.State, id string) *Editor {
					return &Editor{Submit: func(context.Context) (string, error) {
						svc.Store.MarkNotificationRead(id)
						return "", nil
					}}
				},
			},
			{
				Key:  "c",
				Help: "clear all",
				Open: func(store.State, string) *Editor {
					return confirm("Notifications", "Clear all notifications?", func(context.Context) (string, error) {
						svc.Store.ClearNotifications()
						return "Notifications cleared", nil
					})
				},
			},
		},
	}
}
