package appointment

import (
	"time"

	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
)

// businessHoursFor materializa o expediente do dia como intervalos
// meio-abertos. O intervalo de pausa divide o expediente em dois.
func businessHoursFor(wh *models.WorkingHours, day time.Time) []domain.Interval {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return nil
	}

	loc := day.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			day.Year(), day.Month(), day.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	workStart := parseHM(wh.StartTime)
	workEnd := parseHM(wh.EndTime)
	if !workEnd.After(workStart) {
		return nil
	}

	if wh.BreakStart != "" && wh.BreakEnd != "" {
		breakStart := parseHM(wh.BreakStart)
		breakEnd := parseHM(wh.BreakEnd)

		if breakStart.After(workStart) && breakEnd.Before(workEnd) {
			return []domain.Interval{
				{Start: workStart, End: breakStart},
				{Start: breakEnd, End: workEnd},
			}
		}
	}

	return []domain.Interval{{Start: workStart, End: workEnd}}
}

// withinBusinessHours diz se o intervalo candidato cabe inteiro em
// algum bloco do expediente. Reservar fora do expediente é permitido
// por política, o resultado serve só para sinalização.
func withinBusinessHours(candidate domain.Interval, hours []domain.Interval) bool {
	for _, h := range hours {
		if !candidate.Start.Before(h.Start) && !candidate.End.After(h.End) {
			return true
		}
	}
	return false
}
