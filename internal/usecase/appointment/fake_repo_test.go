package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
)

var errFakeNotFound = errors.New("not found")

// fakeRepo implementa domain.Repository em memória para os testes de
// use case. O conflito de horário usa o mesmo predicado do domínio.
type fakeRepo struct {
	clinic       *models.Clinic
	services     map[uint]*models.Service
	patients     []*models.Patient
	appointments []*models.Appointment
	workingHours map[int]*models.WorkingHours
	payments     []*models.Payment

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clinic: &models.Clinic{
			ID:                1,
			Name:              "Clínica Vida",
			Slug:              "clinica-vida",
			Timezone:          "America/Sao_Paulo",
			MinAdvanceMinutes: 120,
			SlotStepMinutes:   60,
		},
		services: map[uint]*models.Service{
			1: {ID: 1, ClinicID: 1, Name: "Consulta", DurationMin: 60, Price: 200, Active: true},
			2: {ID: 2, ClinicID: 1, Name: "Retorno", DurationMin: 30, Price: 100, Active: true},
		},
		workingHours: map[int]*models.WorkingHours{},
		nextID:       100,
	}
}

func (f *fakeRepo) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) GetClinicByID(ctx context.Context, id uint) (*models.Clinic, error) {
	if f.clinic == nil || f.clinic.ID != id {
		return nil, errFakeNotFound
	}
	return f.clinic, nil
}

func (f *fakeRepo) GetClinicBySlug(ctx context.Context, slug string) (*models.Clinic, error) {
	if f.clinic == nil || f.clinic.Slug != slug {
		return nil, errFakeNotFound
	}
	return f.clinic, nil
}

func (f *fakeRepo) GetService(ctx context.Context, clinicID, serviceID uint) (*models.Service, error) {
	s, ok := f.services[serviceID]
	if !ok || s.ClinicID != clinicID {
		return nil, errFakeNotFound
	}
	return s, nil
}

func (f *fakeRepo) GetOrCreatePatient(ctx context.Context, clinicID uint, name, phone, email string) (*models.Patient, error) {
	for _, p := range f.patients {
		if p.ClinicID == clinicID && p.Phone == phone {
			return p, nil
		}
	}
	p := &models.Patient{ID: f.id(), ClinicID: clinicID, Name: name, Phone: phone, Email: email}
	f.patients = append(f.patients, p)
	return p, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	ap.ID = f.id()
	cp := *ap
	f.appointments = append(f.appointments, &cp)
	return nil
}

func (f *fakeRepo) AssertNoTimeConflict(ctx context.Context, professionalID uint, start, end time.Time, excludeID uint) error {
	candidate := domain.Interval{Start: start, End: end}
	existing := make([]models.Appointment, 0, len(f.appointments))
	for _, ap := range f.appointments {
		existing = append(existing, *ap)
	}
	if !domain.IsAvailable(candidate, existing, professionalID, excludeID) {
		return httperr.ErrBusiness(domain.CodeSlotConflict)
	}
	return nil
}

func (f *fakeRepo) GetAppointment(ctx context.Context, appointmentID, clinicID uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.ClinicID == clinicID && !ap.DeletedAt.Valid {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	for i, cur := range f.appointments {
		if cur.ID == ap.ID {
			cp := *ap
			f.appointments[i] = &cp
			return nil
		}
	}
	return errFakeNotFound
}

func (f *fakeRepo) GetWorkingHours(ctx context.Context, professionalID uint, weekday int) (*models.WorkingHours, error) {
	wh, ok := f.workingHours[weekday]
	if !ok {
		return nil, errFakeNotFound
	}
	return wh, nil
}

func (f *fakeRepo) ListAppointmentsForDay(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	return f.ListAppointmentsForPeriod(ctx, professionalID, start, end)
}

func (f *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ProfessionalID != professionalID || ap.DeletedAt.Valid {
			continue
		}
		if ap.StartTime.Before(end) && start.Before(ap.EndTime) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetLatestPayment(ctx context.Context, appointmentID uint) (*models.Payment, error) {
	for i := len(f.payments) - 1; i >= 0; i-- {
		if f.payments[i].AppointmentID == appointmentID {
			return f.payments[i], nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeRepo) CreatePayment(ctx context.Context, p *models.Payment) error {
	p.ID = f.id()
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakeRepo) UpdatePayment(ctx context.Context, p *models.Payment) error {
	for i, cur := range f.payments {
		if cur.ID == p.ID {
			f.payments[i] = p
			return nil
		}
	}
	return errFakeNotFound
}

func (f *fakeRepo) GetPaymentByExternalReference(ctx context.Context, ref string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.ExternalReference == ref {
			return p, nil
		}
	}
	return nil, errFakeNotFound
}

var _ domain.Repository = (*fakeRepo)(nil)

// seed insere um agendamento direto na "base", sem passar pelo use case.
func (f *fakeRepo) seed(professionalID uint, start, end time.Time, status string) *models.Appointment {
	svcID := uint(1)
	ap := &models.Appointment{
		ID:             f.id(),
		ClinicID:       f.clinic.ID,
		ProfessionalID: professionalID,
		PatientID:      1,
		ServiceID:      &svcID,
		StartTime:      start,
		EndTime:        end,
		Status:         status,
	}
	f.appointments = append(f.appointments, ap)
	return ap
}
