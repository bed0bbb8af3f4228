package appointment

import (
	"context"
	"testing"
	"time"

	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
)

func TestRescheduleInPlace(t *testing.T) {
	repo := newFakeRepo()
	day := futureDay()
	ap := repo.seed(1, slotAt(day, 10), slotAt(day, 11), "confirmed")
	ap.Notes = "trouxe exames"
	ap.ClinicalNotes = "pressão 12x8"

	uc := NewRescheduleAppointment(repo, nil, nil)

	got, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		ClinicID:      1,
		UserID:        1,
		AppointmentID: ap.ID,
		Date:          day.Format("2006-01-02"),
		Time:          "14:00",
	})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if got.ID != ap.ID {
		t.Fatal("mover no lugar não cria novo agendamento")
	}
	if !got.StartTime.Equal(slotAt(day, 14)) || !got.EndTime.Equal(slotAt(day, 15)) {
		t.Fatalf("novo horário errado: %v - %v", got.StartTime, got.EndTime)
	}
	if got.Status != "confirmed" {
		t.Fatal("mover não altera o status")
	}
	// conteúdo clínico acompanha o agendamento
	if got.Notes != "trouxe exames" || got.ClinicalNotes != "pressão 12x8" {
		t.Fatalf("conteúdo perdido na remarcação: %+v", got)
	}
}

// Remarcar para um horário que sobrepõe o próprio intervalo atual não
// pode conflitar consigo mesmo.
func TestRescheduleOverOwnSlot(t *testing.T) {
	repo := newFakeRepo()
	day := futureDay()
	ap := repo.seed(1, slotAt(day, 10), slotAt(day, 11), "confirmed")

	uc := NewRescheduleAppointment(repo, nil, nil)

	got, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		ClinicID:      1,
		UserID:        1,
		AppointmentID: ap.ID,
		Date:          day.Format("2006-01-02"),
		Time:          "10:30",
	})
	if err != nil {
		t.Fatalf("remarcar sobre o próprio horário falhou: %v", err)
	}
	if !got.StartTime.Equal(slotAt(day, 10).Add(30 * time.Minute)) {
		t.Fatalf("início = %v, esperava 10:30", got.StartTime)
	}
}

func TestRescheduleConflict(t *testing.T) {
	repo := newFakeRepo()
	day := futureDay()
	ap := repo.seed(1, slotAt(day, 10), slotAt(day, 11), "confirmed")
	repo.seed(1, slotAt(day, 14), slotAt(day, 15), "confirmed")

	uc := NewRescheduleAppointment(repo, nil, nil)

	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		ClinicID:      1,
		UserID:        1,
		AppointmentID: ap.ID,
		Date:          day.Format("2006-01-02"),
		Time:          "14:30",
	})
	if !httperr.IsBusiness(err, domain.CodeSlotConflict) {
		t.Fatalf("esperava slot_conflict, obteve %v", err)
	}

	// falha não pode ter movido o agendamento
	cur, _ := repo.GetAppointment(context.Background(), ap.ID, 1)
	if !cur.StartTime.Equal(slotAt(day, 10)) {
		t.Fatalf("agendamento foi movido apesar do conflito: %v", cur.StartTime)
	}
}

func TestRescheduleToAnotherProfessional(t *testing.T) {
	repo := newFakeRepo()
	day := futureDay()
	ap := repo.seed(1, slotAt(day, 10), slotAt(day, 11), "confirmed")

	// profissional 2 ocupado no horário pedido
	repo.seed(2, slotAt(day, 14), slotAt(day, 15), "confirmed")

	uc := NewRescheduleAppointment(repo, nil, nil)

	if _, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		ClinicID:       1,
		UserID:         1,
		AppointmentID:  ap.ID,
		ProfessionalID: 2,
		Date:           day.Format("2006-01-02"),
		Time:           "14:00",
	}); !httperr.IsBusiness(err, domain.CodeSlotConflict) {
		t.Fatalf("esperava slot_conflict na agenda do outro profissional, obteve %v", err)
	}

	got, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		ClinicID:       1,
		UserID:         1,
		AppointmentID:  ap.ID,
		ProfessionalID: 2,
		Date:           day.Format("2006-01-02"),
		Time:           "16:00",
	})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if got.ProfessionalID != 2 {
		t.Fatalf("profissional = %d, esperava 2", got.ProfessionalID)
	}
}

func TestRescheduleKeepHistory(t *testing.T) {
	repo := newFakeRepo()
	day := futureDay()
	ap := repo.seed(1, slotAt(day, 10), slotAt(day, 11), "confirmed")

	uc := NewRescheduleAppointment(repo, nil, nil)

	successor, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		ClinicID:      1,
		UserID:        1,
		AppointmentID: ap.ID,
		Date:          day.Format("2006-01-02"),
		Time:          "14:00",
		KeepHistory:   true,
	})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if successor.ID == ap.ID {
		t.Fatal("com histórico o resultado é um novo agendamento")
	}
	if !successor.StartTime.Equal(slotAt(day, 14)) {
		t.Fatalf("sucessor no horário errado: %v", successor.StartTime)
	}

	original, _ := repo.GetAppointment(context.Background(), ap.ID, 1)
	if original.Status != "rescheduled" || original.RescheduledAt == nil {
		t.Fatalf("original não marcado: %+v", original)
	}
	if original.RescheduledToID == nil || *original.RescheduledToID != successor.ID {
		t.Fatalf("elo com o sucessor ausente: %v", original.RescheduledToID)
	}

	// o horário antigo ficou livre
	createUC := NewCreateAppointment(repo, nil, nil)
	if _, err := createUC.Execute(context.Background(), baseInput(day, "10:00")); err != nil {
		t.Fatalf("horário do original remarcado deveria estar livre: %v", err)
	}
}
