package appointment

import (
	"context"

	"github.com/VidaClinicas/clinic-agenda/internal/audit"
	"github.com/VidaClinicas/clinic-agenda/internal/cache"
	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
	"github.com/VidaClinicas/clinic-agenda/internal/timezone"
)

type MarkNoShow struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	avail *cache.Availability
}

func NewMarkNoShow(
	repo domain.Repository,
	audit *audit.Dispatcher,
	avail *cache.Availability,
) *MarkNoShow {
	return &MarkNoShow{
		repo:  repo,
		audit: audit,
		avail: avail,
	}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	clinicID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeNotFound)
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID, clinicID)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeNotFound)
	}

	now := timezone.NowIn(clinic.Timezone)
	if err := domain.MarkNoShow(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// falta libera o horário
	uc.avail.Invalidate(ctx, ap.ProfessionalID, ap.StartTime.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "appointment_no_show",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
