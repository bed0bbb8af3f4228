package schedule

import (
	"time"

	"github.com/VidaClinicas/clinic-agenda/internal/models"
)

// ===============================
// Slots
// ===============================

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
)

// Slot é um marcador discreto de horário para o seletor da UI,
// distinto do intervalo real de um agendamento.
type Slot struct {
	Time            time.Time  `json:"time"`
	Display         string     `json:"display"`
	IsBusinessHours bool       `json:"is_business_hours"`
	Status          SlotStatus `json:"status"`
}

// GenerateSlots produz a sequência ordenada de slots do dia, no passo
// pedido (minutos). Slots fora do expediente são gerados normalmente e
// apenas sinalizados: reservar fora do horário é permitido por
// política, a disponibilidade só olha sobreposição de tempo.
//
// Um slot fica "booked" quando o seu instante inicial cai dentro do
// intervalo de algum agendamento bloqueante.
func GenerateSlots(
	day time.Time,
	businessHours []Interval,
	existing []models.Appointment,
	professionalID uint,
	stepMinutes int,
) []Slot {

	if stepMinutes < 1 {
		return nil
	}

	loc := day.Location()
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	step := time.Duration(stepMinutes) * time.Minute

	var slots []Slot
	for cur := dayStart; cur.Before(dayEnd); cur = cur.Add(step) {
		slots = append(slots, Slot{
			Time:            cur,
			Display:         cur.Format("15:04"),
			IsBusinessHours: withinAny(cur, businessHours),
			Status:          slotStatusAt(cur, existing, professionalID),
		})
	}

	return slots
}

// NextAvailableSlot varre os slots a partir de `from` e devolve o
// primeiro cujo intervalo completo [slot, slot+duration) está livre.
// Olhar só o instante do slot não basta: um slot pode começar livre e
// esbarrar num agendamento logo adiante dentro da duração pedida.
func NextAvailableSlot(
	day time.Time,
	businessHours []Interval,
	existing []models.Appointment,
	professionalID uint,
	stepMinutes int,
	from time.Time,
	duration time.Duration,
) (Slot, bool) {

	if duration <= 0 {
		return Slot{}, false
	}

	for _, slot := range GenerateSlots(day, businessHours, existing, professionalID, stepMinutes) {
		if slot.Time.Before(from) {
			continue
		}
		if slot.Status != SlotAvailable {
			continue
		}

		candidate := Interval{Start: slot.Time, End: slot.Time.Add(duration)}
		if IsAvailable(candidate, existing, professionalID, 0) {
			return slot, true
		}
	}

	return Slot{}, false
}

func withinAny(t time.Time, intervals []Interval) bool {
	for _, iv := range intervals {
		if iv.Contains(t) {
			return true
		}
	}
	return false
}

func slotStatusAt(t time.Time, existing []models.Appointment, professionalID uint) SlotStatus {
	for _, ap := range existing {
		if ap.ProfessionalID != professionalID {
			continue
		}
		if ap.DeletedAt.Valid || !Status(ap.Status).Blocking() {
			continue
		}
		if (Interval{Start: ap.StartTime, End: ap.EndTime}).Contains(t) {
			return SlotBooked
		}
	}
	return SlotAvailable
}
