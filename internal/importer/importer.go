package importer

import (
	"io"

	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
)

// Kind names the record type a sheet holds.
type Kind string

const (
	KindProducts  Kind = "products"
	KindCustomers Kind = "customers"
)

func (k Kind) Valid() bool {
	return k == KindProducts || k == KindCustomers
}

type Importer interface {
	ParseProducts(r io.Reader) ([]merchant.ProductInput, error)
	ParseCustomers(r io.Reader) ([]merchant.CustomerInput, error)
}

// Result holds the parsed records of one sheet. Only the slice matching
// Kind is populated.
type Result struct {
	Kind      Kind                     `json:"kind"`
	Products  []merchant.ProductInput  `json:"products,omitempty"`
	Customers []merchant.CustomerInput `json:"customers,omitempty"`
}

func (r Result) Len() int {
	return len(r.Products) + len(r.Customers)
}
