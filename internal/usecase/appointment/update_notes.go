package appointment

import (
	"context"

	"github.com/VidaClinicas/clinic-agenda/internal/audit"
	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
)

type UpdateNotesInput struct {
	ClinicID      uint
	UserID        uint
	AppointmentID uint

	Notes         *string
	ClinicalNotes *string
}

// UpdateNotes edita conteúdo (notas, evolução clínica) sem tocar em
// horário nem status. Edição de conteúdo nunca revalida
// disponibilidade.
type UpdateNotes struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateNotes(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateNotes {
	return &UpdateNotes{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateNotes) Execute(
	ctx context.Context,
	in UpdateNotesInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID, in.ClinicID)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeNotFound)
	}

	if in.Notes != nil {
		ap.Notes = *in.Notes
	}
	if in.ClinicalNotes != nil {
		ap.ClinicalNotes = *in.ClinicalNotes
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.UserID,
		Action:   "appointment_notes_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
