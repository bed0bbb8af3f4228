package schedule

import "github.com/VidaClinicas/clinic-agenda/internal/models"

// IsAvailable decide se o intervalo candidato pode ser reservado para
// o profissional, dado o conjunto de agendamentos existentes.
//
// Função pura: quem chama busca os agendamentos no repositório. A
// checagem é um auxílio pré-commit; a garantia final é a constraint de
// exclusão no banco (ver internal/db).
//
// excludeID permite remarcar um agendamento sobre o próprio horário
// sem conflitar consigo mesmo (0 = nenhum).
func IsAvailable(
	candidate Interval,
	existing []models.Appointment,
	professionalID uint,
	excludeID uint,
) bool {

	for _, ap := range existing {
		if ap.ProfessionalID != professionalID {
			continue
		}
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if ap.DeletedAt.Valid {
			continue
		}
		if !Status(ap.Status).Blocking() {
			continue
		}

		booked := Interval{Start: ap.StartTime, End: ap.EndTime}
		if candidate.Overlaps(booked) {
			return false
		}
	}

	return true
}
