// Package intake records incoming demand: WhatsApp leads and customers'
// daily requirement lists.
package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vyaparx/internal/merchant"
	"github.com/MrJamesThe3rd/vyaparx/internal/store"
)

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrNoItems             = errors.New("requirement needs at least one named item")
	ErrLeadNotFound        = errors.New("lead not found")
	ErrRequirementNotFound = errors.New("requirement not found")
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

type CreateLeadParams struct {
	CustomerPhone string `json:"customer_phone" validate:"required"`
	CustomerName  string `json:"customer_name"`
	Message       string `json:"message" validate:"required"`
}

func (s *Service) CreateLead(ctx context.Context, params CreateLeadParams) (merchant.WhatsAppLead, error) {
	params.CustomerPhone = strings.TrimSpace(params.CustomerPhone)
	params.Message = strings.TrimSpace(params.Message)

	if err := s.validate.StructCtx(ctx, params); err != nil {
		return merchant.WhatsAppLead{}, fmt.Errorf("validating lead: %w", err)
	}

	var lead merchant.WhatsAppLead
	s.store.Do(func(tx *store.Tx) {
		lead = tx.AddWhatsAppLead(merchant.WhatsAppLeadInput{
			CustomerPhone: params.CustomerPhone,
			CustomerName:  strings.TrimSpace(params.CustomerName),
			Message:       params.Message,
			Timestamp:     tx.Now(),
			Status:        merchant.LeadNew,
		})
	})

	return lead, nil
}

func (s *Service) SetLeadStatus(ctx context.Context, id string, status merchant.LeadStatus) error {
	if err := s.validate.VarCtx(ctx, string(status), "required,oneof=New Responded Converted Closed"); err != nil {
		return fmt.Errorf("validating lead status: %w", err)
	}

	if !s.store.UpdateWhatsAppLead(id, merchant.WhatsAppLeadPatch{Status: &status}) {
		return fmt.Errorf("%w: %s", ErrLeadNotFound, id)
	}

	return nil
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// LeadPriority ranks a lead by age: under an hour is high, under a day
// medium, anything older low.
func LeadPriority(lead merchant.WhatsAppLead, now time.Time) Priority {
	age := now.Sub(lead.Timestamp)

	switch {
	case age < time.Hour:
		return PriorityHigh
	case age < 24*time.Hour:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

type CreateRequirementParams struct {
	CustomerID string                     `json:"customer_id" validate:"required"`
	Items      []merchant.RequirementItem `json:"items"`
	Notes      string                     `json:"notes"`
	Source     merchant.RequirementSource `json:"source" validate:"required,oneof=WhatsApp Call Visit App"`
}

// CreateRequirement drops items without a product name; at least one named
// item must remain.
func (s *Service) CreateRequirement(ctx context.Context, params CreateRequirementParams) (merchant.DailyRequirement, error) {
	if err := s.validate.StructCtx(ctx, params); err != nil {
		return merchant.DailyRequirement{}, fmt.Errorf("validating requirement: %w", err)
	}

	items := make([]merchant.RequirementItem, 0, len(params.Items))
	for _, it := range params.Items {
		it.ProductName = strings.TrimSpace(it.ProductName)
		if it.ProductName == "" {
			continue
		}
		items = append(items, it)
	}

	if len(items) == 0 {
		return merchant.DailyRequirement{}, ErrNoItems
	}

	var (
		req merchant.DailyRequirement
		err error
	)

	s.store.Do(func(tx *store.Tx) {
		customer, ok := tx.Customer(params.CustomerID)
		if !ok {
			err = fmt.Errorf("%w: %s", ErrCustomerNotFound, params.CustomerID)
			return
		}

		y, m, d := tx.Now().Date()
		req = tx.AddDailyRequirement(merchant.DailyRequirementInput{
			CustomerID:   customer.ID,
			CustomerName: customer.Name,
			Items:        items,
			RequestDate:  time.Date(y, m, d, 0, 0, 0, 0, tx.Now().Location()),
			Status:       merchant.RequirementPending,
			TotalAmount:  EstimatedTotal(items),
			Notes:        strings.TrimSpace(params.Notes),
			Source:       params.Source,
		})
	})

	return req, err
}

// EstimatedTotal sums the estimated prices; nil when no item carries one.
func EstimatedTotal(items []merchant.RequirementItem) *decimal.Decimal {
	var total *decimal.Decimal
	for _, it := range items {
		if it.EstimatedPrice == nil {
			continue
		}

		if total == nil {
			total = new(decimal.Zero)
		}
		*total = total.Add(*it.EstimatedPrice)
	}

	return total
}

func (s *Service) SetRequirementStatus(ctx context.Context, id string, status merchant.RequirementStatus) error {
	if err := s.validate.VarCtx(ctx, string(status), "required,oneof=Pending Quoted Confirmed Delivered Paid"); err != nil {
		return fmt.Errorf("validating requirement status: %w", err)
	}

	if !s.store.UpdateDailyRequirement(id, merchant.DailyRequirementPatch{Status: &status}) {
		return fmt.Errorf("%w: %s", ErrRequirementNotFound, id)
	}

	return nil
}
