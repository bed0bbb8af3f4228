package appointment

import (
	"context"

	"github.com/VidaClinicas/clinic-agenda/internal/audit"
	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
	"github.com/VidaClinicas/clinic-agenda/internal/timezone"
)

// PaymentPrompter é o colaborador externo de cobrança. A conclusão
// nunca espera nem depende dele para ter sucesso.
type PaymentPrompter interface {
	PromptPayment(
		ctx context.Context,
		ap *models.Appointment,
		amount float64,
		description string,
	) (*models.Payment, error)
}

type CompleteAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	prompter PaymentPrompter
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	prompter PaymentPrompter,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:     repo,
		audit:    audit,
		prompter: prompter,
	}
}

func (uc *CompleteAppointment) Execute(
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

	// --------------------------------------------------
	// 1️⃣ Situação do pagamento no momento da conclusão
	// --------------------------------------------------
	settled := false
	if p, err := uc.repo.GetLatestPayment(ctx, ap.ID); err == nil {
		settled = p.Status == string(domain.PaymentCompleted)
	}

	// --------------------------------------------------
	// 2️⃣ Transição (pagamento pendente não bloqueia)
	// --------------------------------------------------
	now := timezone.NowIn(clinic.Timezone)
	if err := domain.Complete(ap, now, settled); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Sem pagamento quitado → dispara a cobrança
	// --------------------------------------------------
	if !settled && uc.prompter != nil {
		amount := 0.0
		description := "Consulta"
		if ap.Service != nil {
			amount = ap.Service.Price
			description = ap.Service.Name
		}

		if p, err := uc.prompter.PromptPayment(ctx, ap, amount, description); err == nil {
			_ = uc.repo.CreatePayment(ctx, p)
		}
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"paid_on_completion": settled},
	})

	return ap, nil
}
