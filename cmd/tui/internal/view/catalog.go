package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
	"github.com/MrJamesThe3rd/vyaparx/internal/report"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

const (
	stockLow = "Low stock"
	stockOK  = "In stock"
)

func customersCollection(svc Services) Collection {
	return Collection{
		View: nav.Customers,
		Columns: []table.Column{
			{Title: "ID", Width: 8},
			{Title: "Name", Width: 24},
			{Title: "Phone", Width: 15},
			{Title: "Business", Width: 14},
			{Title: "Purchases", Width: 12},
			{Title: "Status", Width: 9},
		},
		Rows: func(st store.State, term string) []Row {
			customers := report.SearchCustomers(st, term)
			rows := make([]Row, len(customers))
			for i, c := range customers {
				rows[i] = Row{
					ID:     c.ID,
					Status: string(c.Status),
					Cells: table.Row{
						c.ID,
						c.Name,
						c.Phone,
						c.BusinessType,
						FormatAmount(st.Language, c.TotalPurchases),
						string(c.Status),
					},
				}
			}

			return rows
		},
		Statuses: []string{string(merchant.CustomerActive), string(merchant.CustomerInactive)},
		Create: func(store.State) *Editor {
			return newCustomerEditor(svc.Store)
		},
		Actions: []Action{
			{
				Key:  "t",
				Help: "toggle active",
				Open: func(st store.State, id string) *Editor {
					return &Editor{Submit: func(context.Context) (string, error) {
						return toggleCustomer(svc.Store, id)
					}}
				},
			},
			{
				Key:  "x",
				Help: "delete",
				Open: func(st store.State, id string) *Editor {
					return confirm("Delete Customer", fmt.Sprintf("Delete %s?", report.CustomerName(st, id)),
						func(context.Context) (string, error) {
							if !svc.Store.DeleteCustomer(id) {
								return "", fmt.Errorf("customer %s not found", id)
							}

							return "Customer deleted", nil
						})
				},
			},
		},
		Detail: customerCard,
	}
}

func newCustomerEditor(s *store.Store) *Editor {
	var in merchant.CustomerInput

	return &Editor{
		Title: "New Customer",
		Form: newForm(
			huh.NewInput().Title("Name").Value(&in.Name).Validate(required("name")),
			huh.NewInput().Title("Phone").Placeholder("+91 98765 43210").Value(&in.Phone).Validate(required("phone")),
			huh.NewInput().Title("Email").Value(&in.Email),
			huh.NewInput().Title("Address").Value(&in.Address),
			huh.NewInput().Title("Business Type").Placeholder("Retail").Value(&in.BusinessType),
			huh.NewInput().Title("GST Number").Value(&in.GSTNumber),
		),
		Submit: func(ctx context.Context) (string, error) {
			in.Name = strings.TrimSpace(in.Name)
			in.Phone = strings.TrimSpace(in.Phone)
			in.Email = strings.ToLower(strings.TrimSpace(in.Email))
			in.Address = strings.TrimSpace(in.Address)
			in.BusinessType = strings.TrimSpace(in.BusinessType)
			in.GSTNumber = strings.ToUpper(strings.TrimSpace(in.GSTNumber))
			in.WhatsAppNumber = in.Phone
			in.Status = merchant.CustomerActive

			if err := validate.StructCtx(ctx, in); err != nil {
				return "", fmt.Errorf("validating customer: %w", err)
			}

			c := s.AddCustomer(in)

			return fmt.Sprintf("Added %s (%s)", c.Name, c.ID), nil
		},
	}
}

func toggleCustomer(s *store.Store, id string) (string, error) {
	c, ok := s.Customer(id)
	if !ok {
		return "", fmt.Errorf("customer %s not found", id)
	}

	next := merchant.CustomerInactive
	if c.Status == merchant.CustomerInactive {
		next = merchant.CustomerActive
	}

	s.UpdateCustomer(id, merchant.CustomerPatch{Status: &next})

	return fmt.Sprintf("%s is now %s", c.Name, next), nil
}

func customerCard(st store.State, id string) string {
	for _, c := range st.Customers {
		if c.ID != id {
			continue
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(c.Name))
		fmt.Fprintf(&b, "Phone:     %s\n", c.Phone)
		fmt.Fprintf(&b, "WhatsApp:  %s\n", c.WhatsAppNumber)
		fmt.Fprintf(&b, "Email:     %s\n", c.Email)
		fmt.Fprintf(&b, "Address:   %s\n", c.Address)
		fmt.Fprintf(&b, "GST:       %s\n", c.GSTNumber)
		fmt.Fprintf(&b, "Last buy:  %s\n", formatOptionalDate(c.LastPurchase))
		fmt.Fprintf(&b, "Since:     %s\n", FormatDate(c.CreatedAt))

		if payload, err := c.QRPayload(); err == nil {
			fmt.Fprintf(&b, "\n%s\n%s", faintStyle.Render("QR payload"), string(payload))
		}

		return b.String()
	}

	return ""
}

func productsCollection(svc Services) Collection {
	return Collection{
		View: nav.Products,
		Columns: []table.Column{
			{Title: "SKU", Width: 10},
			{Title: "Name", Width: 26},
			{Title: "Category", Width: 12},
			{Title: "Price", Width: 10},
			{Title: "Stock", Width: 6},
			{Title: "Min", Width: 5},
		},
		Rows: func(st store.State, term string) []Row {
			products := report.SearchProducts(st, term)
			rows := make([]Row, len(products))
			for i, p := range products {
				status := stockOK
				if p.LowStock() {
					status = stockLow
				}

				rows[i] = Row{
					ID:     p.ID,
					Status: status,
					Cells: table.Row{
						p.SKU,
						p.Name,
						p.Category,
						FormatAmount(st.Language, p.Price),
						fmt.Sprint(p.Stock),
						fmt.Sprint(p.MinStock),
					},
				}
			}

			return rows
		},
		Statuses: []string{stockLow, stockOK},
		Create: func(store.State) *Editor {
			return newProductEditor(svc.Store)
		},
		Actions: []Action{
			{Key: "r", Help: "restock", Open: func(_ store.State, id string) *Editor { return restockEditor(svc.Store, id) }},
			{
				Key:  "x",
				Help: "delete",
				Open: func(st store.State, id string) *Editor {
					return confirm("Delete Product", fmt.Sprintf("Delete %s?", report.ProductName(st, id)),
						func(context.Context) (string, error) {
							if !svc.Store.DeleteProduct(id) {
								return "", fmt.Errorf("product %s not found", id)
							}

							return "Product deleted", nil
						})
				},
			},
		},
	}
}

func newProductEditor(s *store.Store) *Editor {
	var in merchant.ProductInput
	var price, stock, minStock string

	return &Editor{
		Title: "New Product",
		Form: newForm(
			huh.NewInput().Title("Name").Value(&in.Name).Validate(required("name")),
			huh.NewInput().Title("Price").Placeholder("₹").Value(&price).Validate(validAmount),
			huh.NewInput().Title("Stock").Value(&stock).Validate(validCount),
			huh.NewInput().Title("Reorder Level").Value(&minStock).Validate(validCount),
			huh.NewInput().Title("Category").Value(&in.Category),
			huh.NewInput().Title("Supplier").Value(&in.Supplier),
		),
		Submit: func(ctx context.Context) (string, error) {
			var err error
			if in.Price, err = parseAmount(price); err != nil {
				return "", err
			}
			if in.Stock, err = parseCount(stock); err != nil {
				return "", err
			}
			if in.MinStock, err = parseCount(minStock); err != nil {
				return "", err
			}

			in.Name = strings.TrimSpace(in.Name)
			in.Category = strings.TrimSpace(in.Category)
			in.Supplier = strings.TrimSpace(in.Supplier)

			if err := validate.StructCtx(ctx, in); err != nil {
				return "", fmt.Errorf("validating product: %w", err)
			}

			p := s.AddProduct(in)

			return fmt.Sprintf("Added %s (%s)", p.Name, p.SKU), nil
		},
	}
}

func restockEditor(s *store.Store, id string) *Editor {
	var qty string

	return &Editor{
		Title: "Restock",
		Form:  newForm(huh.NewInput().Title("Units received").Value(&qty).Validate(validCount)),
		Submit: func(context.Context) (string, error) {
			n, err := parseCount(qty)
			if err != nil {
				return "", err
			}

			var (
				p  merchant.Product
				ok bool
			)
			s.Do(func(tx *store.Tx) {
				if p, ok = tx.Product(id); !ok {
					return
				}

				p.Stock += n
				tx.UpdateProduct(id, merchant.ProductPatch{Stock: &p.Stock})
			})

			if !ok {
				return "", fmt.Errorf("product %s not found", id)
			}

			return fmt.Sprintf("%s stock is now %d", p.Name, p.Stock), nil
		},
	}
}
