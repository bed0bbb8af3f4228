package schedule

import (
	"time"

	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
)

// ===============================
// Error codes (domínio)
// ===============================

const (
	CodeInvalidInterval   = "invalid_interval"
	CodeSlotConflict      = "slot_conflict"
	CodeIllegalTransition = "illegal_transition"
	CodeNotFound          = "not_found"
)

// ===============================
// Interval
// ===============================

// Interval representa um intervalo meio-aberto [Start, End).
// Usado para agendamentos, slots e horário de atendimento.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval valida e constrói um intervalo. Duração zero ou
// negativa é rejeitada antes de qualquer checagem de conflito.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, httperr.ErrBusiness(CodeInvalidInterval)
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps é o único predicado de sobreposição do sistema.
// Intervalos meio-abertos: encostar nas bordas NÃO conflita.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains testa se o instante t cai dentro de [Start, End).
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}
