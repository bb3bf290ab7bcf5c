package merchant

import (
	"time"
)

type LeadStatus string

const (
	LeadNew       LeadStatus = "New"
	LeadResponded LeadStatus = "Responded"
	LeadConverted LeadStatus = "Converted"
	LeadClosed    LeadStatus = "Closed"
)

func LeadStatuses() []LeadStatus {
	return []LeadStatus{LeadNew, LeadResponded, LeadConverted, LeadClosed}
}

type WhatsAppLeadInput struct {
	CustomerPhone string     `json:"customer_phone"`
	CustomerName  string     `json:"customer_name,omitempty"`
	Message       string     `json:"message"`
	Timestamp     time.Time  `json:"timestamp"`
	Status        LeadStatus `json:"status"`
	AssignedTo    string     `json:"assigned_to,omitempty"`
	FollowUpDate  *time.Time `json:"follow_up_date,omitempty"`
}

type WhatsAppLead struct {
	ID string `json:"id"`
	WhatsAppLeadInput
}

type WhatsAppLeadPatch struct {
	CustomerName *string     `json:"customer_name,omitempty"`
	Status       *LeadStatus `json:"status,omitempty"`
	AssignedTo   *string     `json:"assigned_to,omitempty"`
	FollowUpDate *time.Time  `json:"follow_up_date,omitempty"`
}

func (p WhatsAppLeadPatch) Apply(l *WhatsAppLead) {
	setIf(&l.CustomerName, p.CustomerName)
	setIf(&l.Status, p.Status)
	setIf(&l.AssignedTo, p.AssignedTo)

	if p.FollowUpDate != nil {
		l.FollowUpDate = new(*p.FollowUpDate)
	}
}
