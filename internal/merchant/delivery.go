package merchant

import (
	"slices"
	"time"
)

type DeliveryPartner string

const (
	PartnerZomato   DeliveryPartner = "Zomato"
	PartnerSwiggy   DeliveryPartner = "Swiggy"
	PartnerDunzo    DeliveryPartner = "Dunzo"
	PartnerSelf     DeliveryPartner = "Self"
	PartnerBlueDart DeliveryPartner = "BlueDart"
	PartnerDTDC     DeliveryPartner = "DTDC"
)

func DeliveryPartners() []DeliveryPartner {
	return []DeliveryPartner{PartnerZomato, PartnerSwiggy, PartnerDunzo, PartnerSelf, PartnerBlueDart, PartnerDTDC}
}

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "Pending"
	DeliveryAssigned  DeliveryStatus = "Assigned"
	DeliveryPicked    DeliveryStatus = "Picked"
	DeliveryInTransit DeliveryStatus = "InTransit"
	DeliveryDelivered DeliveryStatus = "Delivered"
	DeliveryFailed    DeliveryStatus = "Failed"
)

func DeliveryStatuses() []DeliveryStatus {
	return []DeliveryStatus{DeliveryPending, DeliveryAssigned, DeliveryPicked, DeliveryInTransit, DeliveryDelivered, DeliveryFailed}
}

type DeliveryOrderInput struct {
	InvoiceID         string          `json:"invoice_id"`
	CustomerID        string          `json:"customer_id"`
	Items             []InvoiceItem   `json:"items"`
	Partner           DeliveryPartner `json:"delivery_partner"`
	Status            DeliveryStatus  `json:"status"`
	TrackingID        string          `json:"tracking_id,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
	ActualDelivery    *time.Time      `json:"actual_delivery,omitempty"`
}

type DeliveryOrder struct {
	ID string `json:"id"`
	DeliveryOrderInput
	CreatedAt time.Time `json:"created_at"`
}

func (d DeliveryOrder) Clone() DeliveryOrder {
	d.Items = slices.Clone(d.Items)
	return d
}

type DeliveryOrderPatch struct {
	Partner           *DeliveryPartner `json:"delivery_partner,omitempty"`
	Status            *DeliveryStatus  `json:"status,omitempty"`
	TrackingID        *string          `json:"tracking_id,omitempty"`
	EstimatedDelivery *time.Time       `json:"estimated_delivery,omitempty"`
	ActualDelivery    *time.Time       `json:"actual_delivery,omitempty"`
}

func (p DeliveryOrderPatch) Apply(d *DeliveryOrder) {
	setIf(&d.Partner, p.Partner)
	setIf(&d.Status, p.Status)
	setIf(&d.TrackingID, p.TrackingID)

	if p.EstimatedDelivery != nil {
		d.EstimatedDelivery = new(*p.EstimatedDelivery)
	}

	if p.ActualDelivery != nil {
		d.ActualDelivery = new(*p.ActualDelivery)
	}
}
