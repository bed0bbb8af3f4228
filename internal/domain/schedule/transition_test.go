package schedule

import (
	"testing"

	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name  string
		from  Status
		to    Status
		allow bool
	}{
		{"pending para confirmed", StatusPending, StatusConfirmed, true},
		{"pending para completed", StatusPending, StatusCompleted, true},
		{"pending para cancelled", StatusPending, StatusCancelled, true},
		{"pending para no_show", StatusPending, StatusNoShow, true},
		{"pending para rescheduled", StatusPending, StatusRescheduled, true},

		{"confirmed para completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed para cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed para rescheduled", StatusConfirmed, StatusRescheduled, true},

		{"cancelled para cancelled", StatusCancelled, StatusCancelled, true},
		{"completed para no_show", StatusCompleted, StatusNoShow, true},

		{"confirmed para confirmed", StatusConfirmed, StatusConfirmed, false},
		{"cancelled para confirmed", StatusCancelled, StatusConfirmed, false},
		{"cancelled para completed", StatusCancelled, StatusCompleted, false},
		{"completed para rescheduled", StatusCompleted, StatusRescheduled, false},
		{"no_show para completed", StatusNoShow, StatusCompleted, false},
		{"destino desconhecido", StatusPending, Status("archived"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to)
			if tt.allow && err != nil {
				t.Fatalf("transição deveria ser permitida: %v", err)
			}
			if !tt.allow && !httperr.IsBusiness(err, CodeIllegalTransition) {
				t.Fatalf("esperava illegal_transition, obteve %v", err)
			}
		})
	}
}

func TestCancelRequiresReason(t *testing.T) {
	ap := &models.Appointment{Status: "confirmed"}

	if err := Cancel(ap, "   ", at(8, 0)); !httperr.IsBusiness(err, CodeIllegalTransition) {
		t.Fatalf("cancelamento sem motivo deve falhar, obteve %v", err)
	}
	if ap.Status != "confirmed" {
		t.Fatal("falha não pode alterar a entidade")
	}

	if err := Cancel(ap, "paciente desistiu", at(8, 0)); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if ap.Status != "cancelled" || ap.CancellationReason != "paciente desistiu" || ap.CancelledAt == nil {
		t.Fatalf("cancelamento incompleto: %+v", ap)
	}
}

func TestCompleteRecordsPaymentSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		settled bool
	}{
		{"pagamento quitado", true},
		{"pagamento pendente nao bloqueia", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ap := &models.Appointment{Status: "confirmed"}

			if err := Complete(ap, at(11, 0), tt.settled); err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}
			if ap.Status != "completed" || ap.CompletedAt == nil {
				t.Fatalf("conclusão incompleta: %+v", ap)
			}
			if ap.PaidOnCompletion == nil || *ap.PaidOnCompletion != tt.settled {
				t.Fatalf("PaidOnCompletion = %v, esperava %v", ap.PaidOnCompletion, tt.settled)
			}
		})
	}
}

func TestMarkRescheduledLinksSuccessor(t *testing.T) {
	ap := &models.Appointment{Status: "pending"}

	if err := MarkRescheduled(ap, 42, at(8, 0)); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if ap.Status != "rescheduled" || ap.RescheduledAt == nil {
		t.Fatalf("remarcação incompleta: %+v", ap)
	}
	if ap.RescheduledToID == nil || *ap.RescheduledToID != 42 {
		t.Fatalf("RescheduledToID = %v, esperava 42", ap.RescheduledToID)
	}
}

func TestTransitionDispatch(t *testing.T) {
	ap := &models.Appointment{Status: "pending"}

	if err := Transition(ap, StatusConfirmed, TransitionContext{Now: at(8, 0)}); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if ap.Status != "confirmed" {
		t.Fatalf("status = %s, esperava confirmed", ap.Status)
	}

	if err := Transition(ap, Status("archived"), TransitionContext{}); !httperr.IsBusiness(err, CodeIllegalTransition) {
		t.Fatalf("destino desconhecido deve falhar, obteve %v", err)
	}
}
