package merchant

import (
	"slices"
	"time"
)

type CampaignType string

const (
	CampaignWhatsApp CampaignType = "WhatsApp"
	CampaignEmail    CampaignType = "Email"
	CampaignSMS      CampaignType = "SMS"
)

func CampaignTypes() []CampaignType {
	return []CampaignType{CampaignWhatsApp, CampaignEmail, CampaignSMS}
}

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "Draft"
	CampaignActive    CampaignStatus = "Active"
	CampaignCompleted CampaignStatus = "Completed"
)

type CampaignInput struct {
	Name            string         `json:"name"`
	Type            CampaignType   `json:"type"`
	Status          CampaignStatus `json:"status"`
	TargetCustomers []string       `json:"target_customers"`
	Message         string         `json:"message"`
	ScheduledAt     *time.Time     `json:"scheduled_at,omitempty"`
	SentCount       int            `json:"sent_count"`
	DeliveredCount  int            `json:"delivered_count"`
	ReadCount       int            `json:"read_count"`
}

type Campaign struct {
	ID string `json:"id"`
	CampaignInput
	CreatedAt time.Time `json:"created_at"`
}

func (c Campaign) Clone() Campaign {
	c.TargetCustomers = slices.Clone(c.TargetCustomers)
	return c
}

type CampaignPatch struct {
	Name            *string         `json:"name,omitempty"`
	Type            *CampaignType   `json:"type,omitempty"`
	Status          *CampaignStatus `json:"status,omitempty"`
	TargetCustomers []string        `json:"target_customers,omitempty"`
	Message         *string         `json:"message,omitempty"`
	ScheduledAt     *time.Time      `json:"scheduled_at,omitempty"`
	SentCount       *int            `json:"sent_count,omitempty"`
	DeliveredCount  *int            `json:"delivered_count,omitempty"`
	ReadCount       *int            `json:"read_count,omitempty"`
}

func (p CampaignPatch) Apply(c *Campaign) {
	setIf(&c.Name, p.Name)
	setIf(&c.Type, p.Type)
	setIf(&c.Status, p.Status)
	setIf(&c.Message, p.Message)
	setIf(&c.SentCount, p.SentCount)
	setIf(&c.DeliveredCount, p.DeliveredCount)
	setIf(&c.ReadCount, p.ReadCount)

	if p.ScheduledAt != nil {
		c.ScheduledAt = new(*p.ScheduledAt)
	}

	if p.TargetCustomers != nil {
		c.TargetCustomers = slices.Clone(p.TargetCustomers)
	}
}
