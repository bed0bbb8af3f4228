package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClinicID uint   `json:"clinic_id"`
	Clinic   Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"clinic"`

	ProfessionalID uint `json:"professional_id"`
	Professional   User `gorm:"foreignKey:ProfessionalID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	PatientID uint    `json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes         string `gorm:"size:255" json:"notes"`
	ClinicalNotes string `gorm:"type:text" json:"clinical_notes"`

	Images []AppointmentImage `json:"images"`

	CancellationReason string     `gorm:"size:255" json:"cancellation_reason"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	NoShowAt           *time.Time `json:"no_show_at"`
	RescheduledAt      *time.Time `json:"rescheduled_at"`
	RescheduledToID    *uint      `json:"rescheduled_to_id"`

	// registra se havia pagamento quitado no momento da conclusão (apenas UX)
	PaidOnCompletion *bool `json:"paid_on_completion"`

	Payments []Payment `json:"payments"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type AppointmentImage struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	AppointmentID uint   `json:"appointment_id"`
	URL           string `gorm:"size:500;not null" json:"url"`

	CreatedAt time.Time `json:"created_at"`
}
