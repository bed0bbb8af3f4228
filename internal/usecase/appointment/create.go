package appointment

import (
	"context"
	"time"

	"github.com/VidaClinicas/clinic-agenda/internal/audit"
	"github.com/VidaClinicas/clinic-agenda/internal/cache"
	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
	"github.com/VidaClinicas/clinic-agenda/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClinicID       uint
	ProfessionalID uint

	// paciente existente OU dados para get-or-create
	PatientID    uint
	PatientName  string
	PatientPhone string
	PatientEmail string

	ServiceID uint

	Date  string
	Time  string
	Notes string

	// true cria direto em confirmed (fluxo da recepção)
	Confirmed bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	avail *cache.Availability
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	avail *cache.Availability,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		avail: avail,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Clínica
	// --------------------------------------------------
	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeNotFound)
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone da clínica
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(clinic.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3️⃣ Antecedência mínima
	// --------------------------------------------------
	minAdvance := clinic.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(clinic.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4️⃣ Serviço → duração e intervalo candidato
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ClinicID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	candidate, err := domain.NewInterval(start, end)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Expediente: fora do horário NÃO bloqueia, só sinaliza
	// --------------------------------------------------
	outsideHours := true
	if wh, err := uc.repo.GetWorkingHours(ctx, in.ProfessionalID, int(start.Weekday())); err == nil {
		hours := businessHoursFor(wh, start)
		outsideHours = !withinBusinessHours(candidate, hours)
	}

	// --------------------------------------------------
	// 6️⃣ Paciente
	// --------------------------------------------------
	patientID := in.PatientID
	if patientID == 0 {
		patient, err := uc.repo.GetOrCreatePatient(
			ctx,
			in.ClinicID,
			in.PatientName,
			in.PatientPhone,
			in.PatientEmail,
		)
		if err != nil {
			return nil, err
		}
		patientID = patient.ID
	}

	// --------------------------------------------------
	// 7️⃣ Disponibilidade (snapshot) + conflito no banco
	// --------------------------------------------------
	dayStart := timezone.StartOfDay(start)
	existing, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.ProfessionalID,
		dayStart,
		dayStart.AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, err
	}

	if !domain.IsAvailable(candidate, existing, in.ProfessionalID, 0) {
		return nil, httperr.ErrBusiness(domain.CodeSlotConflict)
	}

	if err := uc.repo.AssertNoTimeConflict(
		ctx,
		in.ProfessionalID,
		start,
		end,
		0,
	); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8️⃣ Criação do agendamento (status centralizado)
	// --------------------------------------------------
	svcID := service.ID
	ap := &models.Appointment{
		ClinicID:       in.ClinicID,
		ProfessionalID: in.ProfessionalID,
		PatientID:      patientID,
		ServiceID:      &svcID,
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.InitialStatus(in.Confirmed)),
		Notes:          in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness(domain.CodeSlotConflict)
		}
		return nil, err
	}

	uc.avail.Invalidate(ctx, in.ProfessionalID, start.Format("2006-01-02"))

	// --------------------------------------------------
	// 9️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.ProfessionalID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"outside_business_hours": outsideHours,
		},
	})

	return ap, nil
}
