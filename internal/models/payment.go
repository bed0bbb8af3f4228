package models

import "time"

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `json:"appointment_id"`

	Status string  `gorm:"size:20;default:'pending'" json:"status"`
	Amount float64 `json:"amount"`
	Method string  `gorm:"size:30" json:"method"`

	// referência no Mercado Pago
	ExternalReference string `gorm:"size:100;index" json:"external_reference"`
	CheckoutURL       string `gorm:"size:500" json:"checkout_url"`

	PaidAt *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
