package merchant

import (
	"github.com/shopspring/decimal"
)

type ProductInput struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	MinStock    int             `json:"min_stock" validate:"gte=0"`
	Supplier    string          `json:"supplier,omitempty"`
}

type Product struct {
	ID string `json:"id"`
	ProductInput
}

// LowStock reports whether the stock has reached the reorder level.
func (p Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Image       *string          `json:"image,omitempty"`
	SKU         *string          `json:"sku,omitempty"`
	MinStock    *int             `json:"min_stock,omitempty"`
	Supplier    *string          `json:"supplier,omitempty"`
}

func (p ProductPatch) Apply(pr *Product) {
	setIf(&pr.Name, p.Name)
	setIf(&pr.Price, p.Price)
	setIf(&pr.Stock, p.Stock)
	setIf(&pr.Category, p.Category)
	setIf(&pr.Description, p.Description)
	setIf(&pr.Image, p.Image)
	setIf(&pr.SKU, p.SKU)
	setIf(&pr.MinStock, p.MinStock)
	setIf(&pr.Supplier, p.Supplier)
}
