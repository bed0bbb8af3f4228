package schedule

import (
	"strings"
	"time"

	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// TransitionContext carrega os dados exigidos por transições
// específicas (motivo de cancelamento, situação do pagamento).
type TransitionContext struct {
	Now            time.Time
	Reason         string
	PaymentSettled bool
	SuccessorID    uint
}

// Confirm move pending → confirmed.
func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusConfirmed); err != nil {
		return err
	}
	ap.Status = string(StatusConfirmed)
	return nil
}

// Complete conclui o agendamento. Pagamento pendente NÃO impede a
// conclusão: apenas registramos se havia pagamento quitado no momento,
// a cobrança é uma ação de acompanhamento do caller.
func Complete(ap *models.Appointment, now time.Time, paymentSettled bool) error {
	if err := CanTransition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	settled := paymentSettled
	ap.PaidOnCompletion = &settled
	return nil
}

// Cancel exige um motivo. Libera o horário imediatamente.
func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return httperr.ErrBusiness(CodeIllegalTransition)
	}
	if err := CanTransition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancellationReason = reason
	ap.CancelledAt = &now
	return nil
}

// MarkNoShow não exige motivo. Libera o horário.
func MarkNoShow(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusNoShow); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	ap.NoShowAt = &now
	return nil
}

// MarkRescheduled marca o agendamento como substituído por outro.
// Para disponibilidade vale como não-bloqueante.
func MarkRescheduled(ap *models.Appointment, successorID uint, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusRescheduled); err != nil {
		return err
	}

	ap.Status = string(StatusRescheduled)
	ap.RescheduledAt = &now
	if successorID != 0 {
		ap.RescheduledToID = &successorID
	}
	return nil
}

// Transition aplica a transição pedida ou falha sem tocar na entidade.
// Nunca converte silenciosamente um pedido inválido em outro resultado.
func Transition(ap *models.Appointment, target Status, tc TransitionContext) error {
	now := tc.Now
	if now.IsZero() {
		now = time.Now()
	}

	switch target {
	case StatusConfirmed:
		return Confirm(ap, now)
	case StatusCompleted:
		return Complete(ap, now, tc.PaymentSettled)
	case StatusCancelled:
		return Cancel(ap, tc.Reason, now)
	case StatusNoShow:
		return MarkNoShow(ap, now)
	case StatusRescheduled:
		return MarkRescheduled(ap, tc.SuccessorID, now)
	}

	return httperr.ErrBusiness(CodeIllegalTransition)
}
