package schedule

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/VidaClinicas/clinic-agenda/internal/models"
)

func TestForDaySortsAndFilters(t *testing.T) {
	deleted := booked(4, 1, 11, 12, "confirmed")
	deleted.DeletedAt = gorm.DeletedAt{Time: at(7, 0), Valid: true}

	appointments := []models.Appointment{
		booked(1, 1, 15, 16, "confirmed"),
		booked(2, 1, 9, 10, "pending"),
		{
			ID:             3,
			ProfessionalID: 1,
			StartTime:      time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
			EndTime:        time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
			Status:         "confirmed",
		},
		deleted,
	}

	got := ForDay(appointments, day())

	if len(got) != 2 {
		t.Fatalf("len = %d, esperava 2 (outro dia e soft-deleted ficam fora)", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("ordem errada: %d, %d", got[0].ID, got[1].ID)
	}
}

// A fronteira do dia é local: 23h de São Paulo já é o dia seguinte em
// UTC, mas pertence ao dia local consultado.
func TestForDayUsesLocalDay(t *testing.T) {
	sp, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skip("tzdata indisponível")
	}

	late := models.Appointment{
		ID:             1,
		ProfessionalID: 1,
		StartTime:      time.Date(2026, 3, 10, 23, 0, 0, 0, sp),
		EndTime:        time.Date(2026, 3, 11, 0, 0, 0, 0, sp),
		Status:         "confirmed",
	}

	local := time.Date(2026, 3, 10, 0, 0, 0, 0, sp)
	if got := ForDay([]models.Appointment{late}, local); len(got) != 1 {
		t.Fatal("23h local pertence ao dia local consultado")
	}

	next := time.Date(2026, 3, 11, 0, 0, 0, 0, sp)
	if got := ForDay([]models.Appointment{late}, next); len(got) != 0 {
		t.Fatal("23h local não pertence ao dia seguinte")
	}
}

func TestForTimeSlot(t *testing.T) {
	appointments := []models.Appointment{
		booked(1, 1, 9, 10, "confirmed"),
		booked(2, 1, 9, 10, "pending"),
		booked(3, 1, 14, 15, "confirmed"),
	}

	got := ForTimeSlot(appointments, day(), 9)
	if len(got) != 2 {
		t.Fatalf("len = %d, esperava 2", len(got))
	}
	for _, ap := range got {
		if ap.StartTime.Hour() != 9 {
			t.Fatalf("agendamento fora da hora pedida: %v", ap.StartTime)
		}
	}
}

func TestGroupByDay(t *testing.T) {
	deleted := booked(4, 1, 9, 10, "confirmed")
	deleted.DeletedAt = gorm.DeletedAt{Time: at(7, 0), Valid: true}

	appointments := []models.Appointment{
		booked(1, 1, 9, 10, "confirmed"),
		booked(2, 1, 15, 16, "pending"),
		{
			ID:             3,
			ProfessionalID: 1,
			StartTime:      time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
			EndTime:        time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
			Status:         "confirmed",
		},
		deleted,
	}

	got := GroupByDay(appointments)

	if len(got) != 2 {
		t.Fatalf("len = %d, esperava 2 dias", len(got))
	}
	if len(got["2026-03-10"]) != 2 {
		t.Fatalf("dia 10 com %d agendamentos, esperava 2", len(got["2026-03-10"]))
	}
	if len(got["2026-03-11"]) != 1 {
		t.Fatalf("dia 11 com %d agendamentos, esperava 1", len(got["2026-03-11"]))
	}

	// a ordem de entrada é preservada dentro de cada dia
	d := got["2026-03-10"]
	if d[0].ID != 1 || d[1].ID != 2 {
		t.Fatalf("ordem errada no dia 10: %d, %d", d[0].ID, d[1].ID)
	}
}
