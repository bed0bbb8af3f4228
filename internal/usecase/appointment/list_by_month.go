package appointment

import (
	"context"
	"time"

	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/dto"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
	"github.com/VidaClinicas/clinic-agenda/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

// Execute devolve o mês agrupado por dia (chave yyyy-MM-dd), pronto
// para a grade do calendário. A entrada já vem ordenada do
// repositório, e o agrupamento preserva a ordem.
func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	professionalID uint,
	clinicID uint,
	year int,
	month int,
) (map[string][]dto.AppointmentListDTO, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(clinic.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		professionalID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	grouped := domain.GroupByDay(appointments)

	out := make(map[string][]dto.AppointmentListDTO, len(grouped))
	for day, aps := range grouped {
		list := make([]dto.AppointmentListDTO, 0, len(aps))
		for _, ap := range aps {
			list = append(list, toListDTO(ap))
		}
		out[day] = list
	}

	return out, nil
}

func toListDTO(ap models.Appointment) dto.AppointmentListDTO {
	serviceName := ""
	if ap.Service != nil {
		serviceName = ap.Service.Name
	}

	return dto.AppointmentListDTO{
		ID:          ap.ID,
		StartTime:   ap.StartTime,
		EndTime:     ap.EndTime,
		Status:      ap.Status,
		PatientName: ap.Patient.Name,
		ServiceName: serviceName,
	}
}
