package view

import (
	"time"

	"github.com/MrJamesThe3rd/vyaparx/internal/billing"
	"github.com/MrJamesThe3rd/vyaparx/internal/delivery"
	"github.com/MrJamesThe3rd/vyaparx/internal/intake"
	"github.com/MrJamesThe3rd/vyaparx/internal/marketing"
	"github.com/MrJamesThe3rd/vyaparx/internal/nav"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

// Services are the workflows the screens drive.
type Services struct {
	Store     *store.Store
	Billing   *billing.Service
	Delivery  *delivery.Service
	Intake    *intake.Service
	Marketing *marketing.Service
	Now       func() time.Time
}

// Collections returns the table screens keyed by the view that shows them.
func Collections(svc Services) map[nav.View]Collection {
	if svc.Now == nil {
		svc.Now = time.Now
	}

	cols := []Collection{
		customersCollection(svc),
		productsCollection(svc),
		invoicesCollection(svc),
		paymentsCollection(svc),
		deliveriesCollection(svc),
		requirementsCollection(svc),
		leadsCollection(svc),
		campaignsCollection(svc),
		notificationsCollection(svc),
	}

	out := make(map[nav.View]Collection, len(cols))
	for _, c := range cols {
		out[c.View] = c
	}

	return out
}

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}

	return out
}
