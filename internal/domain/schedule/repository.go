package schedule

import (
	"context"
	"time"

	"github.com/VidaClinicas/clinic-agenda/internal/models"
)

type AvailabilityInput struct {
	ClinicID       uint
	ProfessionalID uint
	ServiceID      uint
	Date           time.Time
	StepMinutes    int
}

type Repository interface {
	// -------- Clinic --------
	GetClinicByID(
		ctx context.Context,
		id uint,
	) (*models.Clinic, error)

	GetClinicBySlug(
		ctx context.Context,
		slug string,
	) (*models.Clinic, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		clinicID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Patient --------
	GetOrCreatePatient(
		ctx context.Context,
		clinicID uint,
		name string,
		phone string,
		email string,
	) (*models.Patient, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
		clinicID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		professionalID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListAppointmentsForDay(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Payment (leitura + cobrança) --------
	GetLatestPayment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Payment, error)

	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	UpdatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	GetPaymentByExternalReference(
		ctx context.Context,
		ref string,
	) (*models.Payment, error)
}

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)
