package schedule

import "github.com/VidaClinicas/clinic-agenda/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no_show"
	StatusRescheduled Status = "rescheduled"
)

// BlockingStatuses para uso em queries SQL. Deve espelhar Blocking().
var BlockingStatuses = []string{
	string(StatusPending),
	string(StatusConfirmed),
	string(StatusCompleted),
}

// Blocking indica se o status ocupa o horário para fins de
// disponibilidade. Concluído ainda bloqueia: o tempo foi de fato
// ocupado e precisa continuar barrando novas reservas sobrepostas.
func (s Status) Blocking() bool {
	switch s {
	case StatusCancelled, StatusNoShow, StatusRescheduled:
		return false
	}
	return true
}

// ===============================
// Transições
// ===============================

// CanTransition valida a transição de status. Estados de entrada
// (pending/confirmed) só são atingidos na criação.
func CanTransition(from, to Status) error {
	switch to {
	case StatusConfirmed:
		if from != StatusPending {
			return httperr.ErrBusiness(CodeIllegalTransition)
		}
	case StatusCompleted:
		if from != StatusPending && from != StatusConfirmed {
			return httperr.ErrBusiness(CodeIllegalTransition)
		}
	case StatusCancelled, StatusNoShow:
		// permitido a partir de qualquer estado
	case StatusRescheduled:
		if from != StatusPending && from != StatusConfirmed {
			return httperr.ErrBusiness(CodeIllegalTransition)
		}
	default:
		return httperr.ErrBusiness(CodeIllegalTransition)
	}
	return nil
}

func InitialStatus(confirmed bool) Status {
	if confirmed {
		return StatusConfirmed
	}
	return StatusPending
}
