package appointment

import (
	"context"
	"time"

	"github.com/VidaClinicas/clinic-agenda/internal/cache"
	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
	"github.com/VidaClinicas/clinic-agenda/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	avail *cache.Availability
}

func NewGetAvailability(repo domain.Repository, avail *cache.Availability) *GetAvailability {
	return &GetAvailability{repo: repo, avail: avail}
}

// Execute projeta os slots do dia para o seletor de horários. Slots
// fora do expediente aparecem sinalizados, não suprimidos.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	dayKey := in.Date.Format("2006-01-02")
	if slots, ok := uc.avail.Get(ctx, in.ProfessionalID, dayKey); ok {
		return slots, nil
	}

	slots, _, err := uc.project(ctx, in)
	if err != nil {
		return nil, err
	}

	uc.avail.Set(ctx, in.ProfessionalID, dayKey, slots)
	return slots, nil
}

// NextAvailable devolve o primeiro slot a partir de `from` cujo
// intervalo completo da duração do serviço está livre. Checar só o
// instante do slot deixaria passar um slot que começa livre mas
// esbarra numa reserva logo adiante.
func (uc *GetAvailability) NextAvailable(
	ctx context.Context,
	in domain.AvailabilityInput,
	from time.Time,
) (*domain.Slot, error) {

	service, err := uc.repo.GetService(ctx, in.ClinicID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	_, proj, err := uc.project(ctx, in)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(service.DurationMin) * time.Minute
	slot, ok := domain.NextAvailableSlot(
		proj.day,
		proj.hours,
		proj.existing,
		in.ProfessionalID,
		proj.step,
		from,
		duration,
	)
	if !ok {
		return nil, nil
	}

	return &slot, nil
}

// projection agrupa os insumos da geração de slots para reuso entre
// Execute e NextAvailable.
type projection struct {
	day      time.Time
	hours    []domain.Interval
	existing []models.Appointment
	step     int
}

func (uc *GetAvailability) project(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, projection, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, projection{}, httperr.ErrBusiness(domain.CodeNotFound)
	}

	loc := timezone.Location(clinic.Timezone)
	day := timezone.StartOfDay(in.Date.In(loc))

	step := in.StepMinutes
	if step < 1 {
		step = clinic.SlotStepMinutes
	}
	if step < 1 {
		step = 60
	}

	var hours []domain.Interval
	if wh, err := uc.repo.GetWorkingHours(ctx, in.ProfessionalID, int(day.Weekday())); err == nil {
		hours = businessHoursFor(wh, day)
	}

	existing, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.ProfessionalID,
		day,
		day.AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, projection{}, err
	}

	slots := domain.GenerateSlots(day, hours, existing, in.ProfessionalID, step)

	return slots, projection{
		day:      day,
		hours:    hours,
		existing: existing,
		step:     step,
	}, nil
}
