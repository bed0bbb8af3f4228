package appointment

import (
	"context"
	"testing"
	"time"

	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
)

func seedWorkingHours(repo *fakeRepo, weekday int) {
	repo.workingHours[weekday] = &models.WorkingHours{
		ProfessionalID: 1,
		Weekday:        weekday,
		StartTime:      "09:00",
		EndTime:        "18:00",
		BreakStart:     "12:00",
		BreakEnd:       "13:00",
		Active:         true,
	}
}

func TestGetAvailability(t *testing.T) {
	repo := newFakeRepo()
	day := futureDay()
	seedWorkingHours(repo, int(day.Weekday()))

	repo.seed(1, slotAt(day, 10), slotAt(day, 11), "confirmed")
	repo.seed(1, slotAt(day, 15), slotAt(day, 16), "cancelled")

	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ClinicID:       1,
		ProfessionalID: 1,
		Date:           day,
	})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	// passo default da clínica (60) cobre o dia inteiro
	if len(slots) != 24 {
		t.Fatalf("len(slots) = %d, esperava 24", len(slots))
	}

	byDisplay := make(map[string]domain.Slot, len(slots))
	for _, s := range slots {
		byDisplay[s.Display] = s
	}

	if byDisplay["10:00"].Status != domain.SlotBooked {
		t.Error("10:00 deveria estar ocupado")
	}
	if byDisplay["15:00"].Status != domain.SlotAvailable {
		t.Error("cancelado não ocupa o slot")
	}

	// expediente 09-12 / 13-18, com pausa de almoço
	if !byDisplay["09:00"].IsBusinessHours {
		t.Error("09:00 está dentro do expediente")
	}
	if byDisplay["12:00"].IsBusinessHours {
		t.Error("12:00 cai na pausa")
	}
	if !byDisplay["13:00"].IsBusinessHours {
		t.Error("13:00 retoma o expediente")
	}
	// fora do expediente o slot existe, só sinalizado
	if byDisplay["07:00"].IsBusinessHours {
		t.Error("07:00 está fora do expediente")
	}
	if byDisplay["07:00"].Status != domain.SlotAvailable {
		t.Error("fora do expediente continua reservável")
	}
}

func TestGetAvailabilityCustomStep(t *testing.T) {
	repo := newFakeRepo()
	day := futureDay()

	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ClinicID:       1,
		ProfessionalID: 1,
		Date:           day,
		StepMinutes:    30,
	})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(slots) != 48 {
		t.Fatalf("len(slots) = %d, esperava 48 no passo de 30", len(slots))
	}
}

func TestNextAvailableSkipsPartialFit(t *testing.T) {
	repo := newFakeRepo()
	day := futureDay()
	seedWorkingHours(repo, int(day.Weekday()))

	// ocupa 10-11; serviço de 60 min a partir das 09:30 não cabe antes
	repo.seed(1, slotAt(day, 10), slotAt(day, 11), "confirmed")

	uc := NewGetAvailability(repo, nil)

	slot, err := uc.NextAvailable(context.Background(), domain.AvailabilityInput{
		ClinicID:       1,
		ProfessionalID: 1,
		ServiceID:      1,
		Date:           day,
		StepMinutes:    30,
	}, slotAt(day, 9).Add(30*time.Minute))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if slot == nil {
		t.Fatal("esperava encontrar slot")
	}
	if slot.Display != "11:00" {
		t.Fatalf("slot = %s, esperava 11:00", slot.Display)
	}
}

func TestNextAvailableUnknownService(t *testing.T) {
	repo := newFakeRepo()
	day := futureDay()

	uc := NewGetAvailability(repo, nil)

	if _, err := uc.NextAvailable(context.Background(), domain.AvailabilityInput{
		ClinicID:       1,
		ProfessionalID: 1,
		ServiceID:      99,
		Date:           day,
	}, day); err == nil {
		t.Fatal("serviço inexistente deve falhar")
	}
}
