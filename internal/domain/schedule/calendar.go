package schedule

import (
	"sort"
	"time"

	"github.com/VidaClinicas/clinic-agenda/internal/models"
)

// ===============================
// Calendar (projeções de leitura)
// ===============================

const dayKeyLayout = "2006-01-02"

// ForDay devolve os agendamentos não-deletados cujo início cai no dia
// de `date` (dia local, não dia UTC), ordenados por horário.
func ForDay(appointments []models.Appointment, date time.Time) []models.Appointment {
	loc := date.Location()
	y, m, d := date.Date()

	var out []models.Appointment
	for _, ap := range appointments {
		if ap.DeletedAt.Valid {
			continue
		}
		ay, am, ad := ap.StartTime.In(loc).Date()
		if ay == y && am == m && ad == d {
			out = append(out, ap)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})

	return out
}

// ForTimeSlot filtra ForDay pela hora de início.
func ForTimeSlot(appointments []models.Appointment, date time.Time, hour int) []models.Appointment {
	loc := date.Location()

	var out []models.Appointment
	for _, ap := range ForDay(appointments, date) {
		if ap.StartTime.In(loc).Hour() == hour {
			out = append(out, ap)
		}
	}
	return out
}

// GroupByDay agrupa por chave yyyy-MM-dd preservando a ordem de
// iteração da entrada. Quem precisa de saída ordenada ordena antes.
func GroupByDay(appointments []models.Appointment) map[string][]models.Appointment {
	out := make(map[string][]models.Appointment)
	for _, ap := range appointments {
		if ap.DeletedAt.Valid {
			continue
		}
		key := ap.StartTime.Format(dayKeyLayout)
		out[key] = append(out[key], ap)
	}
	return out
}
