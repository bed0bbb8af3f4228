package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
)

// mapAppointmentError traduz erros de negócio do agendamento para a
// resposta HTTP. Conflito de horário vira 409 para a UI oferecer
// horários alternativos.
func mapAppointmentError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	switch code {
	case domain.CodeSlotConflict:
		httperr.Conflict(c, code, "Conflito de horário.")
	case domain.CodeInvalidInterval:
		httperr.BadRequest(c, code, "Intervalo de horário inválido.")
	case domain.CodeIllegalTransition:
		httperr.BadRequest(c, code, "Transição de status não permitida.")
	case domain.CodeNotFound:
		httperr.NotFound(c, code, "Registro não encontrado.")
	case "invalid_date_or_time":
		httperr.BadRequest(c, code, "Data ou hora inválida.")
	case "too_soon":
		httperr.BadRequest(c, code, "Horário muito próximo, escolha outro.")
	case "service_not_found":
		httperr.BadRequest(c, code, "Serviço não encontrado.")
	default:
		httperr.BadRequest(c, code, "Não foi possível processar o agendamento.")
	}
}
