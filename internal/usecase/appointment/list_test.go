package appointment

import (
	"context"
	"testing"

	"gorm.io/gorm"
)

func TestListAppointmentsByDate(t *testing.T) {
	repo := newFakeRepo()
	day := futureDay()

	late := repo.seed(1, slotAt(day, 15), slotAt(day, 16), "confirmed")
	early := repo.seed(1, slotAt(day, 9), slotAt(day, 10), "pending")
	repo.seed(2, slotAt(day, 9), slotAt(day, 10), "confirmed") // outro profissional
	repo.seed(1, slotAt(day.AddDate(0, 0, 1), 9), slotAt(day.AddDate(0, 0, 1), 10), "confirmed")

	deleted := repo.seed(1, slotAt(day, 11), slotAt(day, 12), "confirmed")
	deleted.DeletedAt = gorm.DeletedAt{Time: slotAt(day, 8), Valid: true}

	uc := NewListAppointmentsByDate(repo)

	out, err := uc.Execute(context.Background(), 1, 1, day)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("len = %d, esperava 2", len(out))
	}
	if out[0].ID != early.ID || out[1].ID != late.ID {
		t.Fatalf("ordem errada: %d, %d", out[0].ID, out[1].ID)
	}
}

func TestListAppointmentsByMonth(t *testing.T) {
	repo := newFakeRepo()
	day := futureDay()

	repo.seed(1, slotAt(day, 9), slotAt(day, 10), "confirmed")
	repo.seed(1, slotAt(day, 15), slotAt(day, 16), "pending")
	next := day.AddDate(0, 0, 1)
	repo.seed(1, slotAt(next, 9), slotAt(next, 10), "confirmed")

	uc := NewListAppointmentsByMonth(repo)

	out, err := uc.Execute(context.Background(), 1, 1, day.Year(), int(day.Month()))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	dayKey := day.Format("2006-01-02")
	nextKey := next.Format("2006-01-02")

	if len(out[dayKey]) != 2 {
		t.Fatalf("dia %s com %d agendamentos, esperava 2", dayKey, len(out[dayKey]))
	}
	// o dia seguinte só conta se ainda cair no mesmo mês
	if next.Month() == day.Month() && len(out[nextKey]) != 1 {
		t.Fatalf("dia %s com %d agendamentos, esperava 1", nextKey, len(out[nextKey]))
	}
}
