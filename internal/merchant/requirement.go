package merchant

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type RequirementStatus string

const (
	RequirementPending   RequirementStatus = "Pending"
	RequirementQuoted    RequirementStatus = "Quoted"
	RequirementConfirmed RequirementStatus = "Confirmed"
	RequirementDelivered RequirementStatus = "Delivered"
	RequirementPaid      RequirementStatus = "Paid"
)

func RequirementStatuses() []RequirementStatus {
	return []RequirementStatus{RequirementPending, RequirementQuoted, RequirementConfirmed, RequirementDelivered, RequirementPaid}
}

type RequirementSource string

const (
	SourceWhatsApp RequirementSource = "WhatsApp"
	SourceCall     RequirementSource = "Call"
	SourceVisit    RequirementSource = "Visit"
	SourceApp      RequirementSource = "App"
)

func RequirementSources() []RequirementSource {
	return []RequirementSource{SourceWhatsApp, SourceCall, SourceVisit, SourceApp}
}

type RequirementItem struct {
	ProductName    string           `json:"product_name"`
	Quantity       int              `json:"quantity"`
	Unit           string           `json:"unit"`
	EstimatedPrice *decimal.Decimal `json:"estimated_price,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// DailyRequirementInput is a customer's requested items. CustomerName is a
// snapshot taken on intake.
type DailyRequirementInput struct {
	CustomerID   string            `json:"customer_id"`
	CustomerName string            `json:"customer_name"`
	Items        []RequirementItem `json:"items"`
	RequestDate  time.Time         `json:"request_date"`
	Status       RequirementStatus `json:"status"`
	TotalAmount  *decimal.Decimal  `json:"total_amount,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	Source       RequirementSource `json:"source"`
}

type DailyRequirement struct {
	ID string `json:"id"`
	DailyRequirementInput
}

func (r DailyRequirement) Clone() DailyRequirement {
	r.Items = slices.Clone(r.Items)
	return r
}

type DailyRequirementPatch struct {
	Items       []RequirementItem  `json:"items,omitempty"`
	Status      *RequirementStatus `json:"status,omitempty"`
	TotalAmount *decimal.Decimal   `json:"total_amount,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
	Source      *RequirementSource `json:"source,omitempty"`
}

func (p DailyRequirementPatch) Apply(r *DailyRequirement) {
	setIf(&r.Status, p.Status)
	setIf(&r.Notes, p.Notes)
	setIf(&r.Source, p.Source)

	if p.TotalAmount != nil {
		r.TotalAmount = new(*p.TotalAmount)
	}

	if p.Items != nil {
		r.Items = slices.Clone(p.Items)
	}
}
