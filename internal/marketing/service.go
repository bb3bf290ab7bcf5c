package marketing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

type Service struct {
	store    *store.Store
	validate *validator.Validate
}

func NewService(s *store.Store) *Service {
	return &Service{
		store:    s,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type CreateCampaignParams struct {
	Name            string                `json:"name" validate:"required,max=200"`
	Type            merchant.CampaignType `json:"type" validate:"required,oneof=WhatsApp Email SMS"`
	Message         string                `json:"message" validate:"required"`
	TargetCustomers []string              `json:"target_customers"`
	ScheduledAt     *time.Time            `json:"scheduled_at,omitempty"`
}

// CreateCampaign stores a new Draft campaign. Target ids are kept as given,
// including ids that do not resolve to a customer.
func (s *Service) CreateCampaign(ctx context.Context, params CreateCampaignParams) (merchant.Campaign, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Message = strings.TrimSpace(params.Message)

	if err := s.validate.StructCtx(ctx, params); err != nil {
		return merchant.Campaign{}, fmt.Errorf("validating campaign: %w", err)
	}

	targets := dedupe(params.TargetCustomers)

	return s.store.AddCampaign(merchant.CampaignInput{
		Name:            params.Name,
		Type:            params.Type,
		Status:          merchant.CampaignDraft,
		TargetCustomers: targets,
		Message:         params.Message,
		ScheduledAt:     params.ScheduledAt,
	}), nil
}

// AllCustomerIDs returns every customer id in store order.
func AllCustomerIDs(st store.State) []string {
	ids := make([]string, len(st.Customers))
	for i, c := range st.Customers {
		ids[i] = c.ID
	}

	return ids
}

// ToggleTarget adds id to targets, or removes it when already present.
func ToggleTarget(targets []string, id string) []string {
	for i, t := range targets {
		if t == id {
			return append(targets[:i:i], targets[i+1:]...)
		}
	}

	return append(targets, id)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}

	return out
}
