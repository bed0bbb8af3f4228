package appointment

import (
	"testing"
	"time"

	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
)

func TestBusinessHoursFor(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	hm := func(hour, min int) time.Time {
		return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		wh   *models.WorkingHours
		want []domain.Interval
	}{
		{
			name: "sem cadastro",
			wh:   nil,
			want: nil,
		},
		{
			name: "inativo",
			wh:   &models.WorkingHours{StartTime: "09:00", EndTime: "18:00"},
			want: nil,
		},
		{
			name: "expediente invertido",
			wh:   &models.WorkingHours{StartTime: "18:00", EndTime: "09:00", Active: true},
			want: nil,
		},
		{
			name: "sem pausa",
			wh:   &models.WorkingHours{StartTime: "09:00", EndTime: "18:00", Active: true},
			want: []domain.Interval{{Start: hm(9, 0), End: hm(18, 0)}},
		},
		{
			name: "pausa divide o expediente",
			wh: &models.WorkingHours{
				StartTime: "08:00", EndTime: "17:00",
				BreakStart: "12:00", BreakEnd: "13:30",
				Active: true,
			},
			want: []domain.Interval{
				{Start: hm(8, 0), End: hm(12, 0)},
				{Start: hm(13, 30), End: hm(17, 0)},
			},
		},
		{
			name: "pausa fora do expediente é ignorada",
			wh: &models.WorkingHours{
				StartTime: "09:00", EndTime: "12:00",
				BreakStart: "18:00", BreakEnd: "19:00",
				Active: true,
			},
			want: []domain.Interval{{Start: hm(9, 0), End: hm(12, 0)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := businessHoursFor(tt.wh, day)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, esperava %d", len(got), len(tt.want))
			}
			for i := range got {
				if !got[i].Start.Equal(tt.want[i].Start) || !got[i].End.Equal(tt.want[i].End) {
					t.Fatalf("intervalo %d = %v, esperava %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWithinBusinessHours(t *testing.T) {
	hm := func(hour int) time.Time {
		return time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC)
	}

	hours := []domain.Interval{
		{Start: hm(9), End: hm(12)},
		{Start: hm(13), End: hm(18)},
	}

	if !withinBusinessHours(domain.Interval{Start: hm(9), End: hm(10)}, hours) {
		t.Error("dentro do primeiro bloco")
	}
	if !withinBusinessHours(domain.Interval{Start: hm(17), End: hm(18)}, hours) {
		t.Error("encostar no fim do bloco ainda cabe")
	}
	if withinBusinessHours(domain.Interval{Start: hm(11), End: hm(14)}, hours) {
		t.Error("atravessar a pausa não cabe em bloco nenhum")
	}
	if withinBusinessHours(domain.Interval{Start: hm(7), End: hm(8)}, hours) {
		t.Error("fora do expediente")
	}
}
