package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/vyaparx/internal/importer/catalog"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

var ErrUnknownKind = errors.New("unknown import kind")

type Service struct {
	store  *store.Store
	parser Importer
}

func NewService(s *store.Store) *Service {
	return &Service{
		store:  s,
		parser: catalog.NewParser(),
	}
}

// Import parses r without touching the store, so callers can preview the
// result before applying it.
func (s *Service) Import(kind Kind, r io.Reader) (Result, error) {
	res := Result{Kind: kind}

	var err error

	switch kind {
	case KindProducts:
		res.Products, err = s.parser.ParseProducts(r)
	case KindCustomers:
		res.Customers, err = s.parser.ParseCustomers(r)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	if err != nil {
		return Result{}, fmt.Errorf("parsing %s: %w", kind, err)
	}

	return res, nil
}

// Apply adds every record of res in one store transition.
func (s *Service) Apply(ctx context.Context, res Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if res.Len() == 0 {
		return nil
	}

	s.store.Do(func(tx *store.Tx) {
		for _, in := range res.Products {
			tx.AddProduct(in)
		}

		for _, in := range res.Customers {
			tx.AddCustomer(in)
		}
	})

	slog.Info("catalog imported", "kind", res.Kind, "count", res.Len())

	return nil
}
