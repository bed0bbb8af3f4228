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

type RescheduleAppointmentInput struct {
	ClinicID      uint
	UserID        uint
	AppointmentID uint

	// 0 = mantém o profissional atual
	ProfessionalID uint

	Date string
	Time string

	// true marca o agendamento original como rescheduled e cria um
	// sucessor no novo horário; false move o próprio agendamento.
	KeepHistory bool
}

// ======================================================
// USE CASE
// ======================================================

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	avail *cache.Availability
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	avail *cache.Availability,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
		avail: avail,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeNotFound)
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID, in.ClinicID)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeNotFound)
	}

	professionalID := in.ProfessionalID
	if professionalID == 0 {
		professionalID = ap.ProfessionalID
	}

	// --------------------------------------------------
	// 1️⃣ Novo intervalo, mesma duração
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(clinic.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	end := start.Add(ap.EndTime.Sub(ap.StartTime))

	candidate, err := domain.NewInterval(start, end)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Revalida disponibilidade SE excluindo o próprio id:
	//     remarcar sobre o mesmo horário não conflita consigo
	// --------------------------------------------------
	dayStart := timezone.StartOfDay(start)
	existing, err := uc.repo.ListAppointmentsForDay(
		ctx,
		professionalID,
		dayStart,
		dayStart.AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, err
	}

	if !domain.IsAvailable(candidate, existing, professionalID, ap.ID) {
		return nil, httperr.ErrBusiness(domain.CodeSlotConflict)
	}

	if err := uc.repo.AssertNoTimeConflict(
		ctx,
		professionalID,
		start,
		end,
		ap.ID,
	); err != nil {
		return nil, err
	}

	oldStart := ap.StartTime
	oldDay := ap.StartTime.Format("2006-01-02")
	oldProfessional := ap.ProfessionalID
	now := timezone.NowIn(clinic.Timezone)

	var result *models.Appointment

	if in.KeepHistory {
		// ----------------------------------------------
		// 3️⃣a Sucessor + marcação do original
		// ----------------------------------------------
		successor := &models.Appointment{
			ClinicID:       ap.ClinicID,
			ProfessionalID: professionalID,
			PatientID:      ap.PatientID,
			ServiceID:      ap.ServiceID,
			StartTime:      start,
			EndTime:        end,
			Status:         ap.Status,
			Notes:          ap.Notes,
			ClinicalNotes:  ap.ClinicalNotes,
		}

		if err := domain.MarkRescheduled(ap, 0, now); err != nil {
			return nil, err
		}

		if err := uc.repo.CreateAppointment(ctx, successor); err != nil {
			if httperr.IsExclusionConflict(err) {
				return nil, httperr.ErrBusiness(domain.CodeSlotConflict)
			}
			return nil, err
		}

		ap.RescheduledToID = &successor.ID
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}

		result = successor
	} else {
		// ----------------------------------------------
		// 3️⃣b Move o próprio agendamento; notas e imagens
		//     seguem intactas
		// ----------------------------------------------
		ap.ProfessionalID = professionalID
		ap.StartTime = start
		ap.EndTime = end

		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			if httperr.IsExclusionConflict(err) {
				return nil, httperr.ErrBusiness(domain.CodeSlotConflict)
			}
			return nil, err
		}

		result = ap
	}

	uc.avail.Invalidate(ctx, oldProfessional, oldDay)
	uc.avail.Invalidate(ctx, professionalID, start.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &result.ID,
		Metadata: map[string]any{
			"from": oldStart,
			"to":   start,
		},
	})

	return result, nil
}
