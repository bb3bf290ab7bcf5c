// Package merchant holds the plain domain records of the dashboard.
//
// Every record is split into a store-assigned envelope (ID, CreatedAt) and an
// embedded Input struct carrying everything a caller supplies on creation.
// Patch types express partial updates: nil fields are left untouched.
package merchant

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "Active"
	CustomerInactive CustomerStatus = "Inactive"
)

type CustomerInput struct {
	Name           string          `json:"name" validate:"required,max=200"`
	Phone          string          `json:"phone" validate:"required,max=30"`
	Email          string          `json:"email" validate:"omitempty,email"`
	Address        string          `json:"address"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	LastPurchase   *time.Time      `json:"last_purchase,omitempty"`
	Status         CustomerStatus  `json:"status" validate:"omitempty,oneof=Active Inactive"`
	BusinessType   string          `json:"business_type,omitempty"`
	GSTNumber      string          `json:"gst_number,omitempty" validate:"omitempty,len=15"`
	WhatsAppNumber string          `json:"whatsapp_number,omitempty"`
}

type Customer struct {
	ID string `json:"id"`
	CustomerInput
	CreatedAt time.Time `json:"created_at"`
}

// QRPayload is the JSON document encoded into the customer's QR card.
func (c Customer) QRPayload() ([]byte, error) {
	return json.Marshal(struct {
		Name         string `json:"name"`
		Phone        string `json:"phone"`
		Email        string `json:"email"`
		BusinessType string `json:"businessType"`
		ID           string `json:"id"`
	}{
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		BusinessType: c.BusinessType,
		ID:           c.ID,
	})
}

type CustomerPatch struct {
	Name           *string          `json:"name,omitempty"`
	Phone          *string          `json:"phone,omitempty"`
	Email          *string          `json:"email,omitempty"`
	Address        *string          `json:"address,omitempty"`
	TotalPurchases *decimal.Decimal `json:"total_purchases,omitempty"`
	LastPurchase   *time.Time       `json:"last_purchase,omitempty"`
	Status         *CustomerStatus  `json:"status,omitempty"`
	BusinessType   *string          `json:"business_type,omitempty"`
	GSTNumber      *string          `json:"gst_number,omitempty"`
	WhatsAppNumber *string          `json:"whatsapp_number,omitempty"`
}

func (p CustomerPatch) Apply(c *Customer) {
	setIf(&c.Name, p.Name)
	setIf(&c.Phone, p.Phone)
	setIf(&c.Email, p.Email)
	setIf(&c.Address, p.Address)
	setIf(&c.TotalPurchases, p.TotalPurchases)
	setIf(&c.Status, p.Status)
	setIf(&c.BusinessType, p.BusinessType)
	setIf(&c.GSTNumber, p.GSTNumber)
	setIf(&c.WhatsAppNumber, p.WhatsAppNumber)

	if p.LastPurchase != nil {
		c.LastPurchase = new(*p.LastPurchase)
	}
}

// setIf overwrites dst with *src when src is set.
func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
