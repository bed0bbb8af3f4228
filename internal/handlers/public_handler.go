package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
	ucAppointment "github.com/VidaClinicas/clinic-agenda/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler expõe a superfície pública de agendamento por slug da
// clínica: catálogo, disponibilidade e criação de agendamento pendente.
type PublicHandler struct {
	db             *gorm.DB
	repo           domain.Repository
	createUC       *ucAppointment.CreateAppointment
	availabilityUC *ucAppointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	createUC *ucAppointment.CreateAppointment,
	availabilityUC *ucAppointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		repo:           repo,
		createUC:       createUC,
		availabilityUC: availabilityUC,
	}
}

// ======================================================
// CATALOG
// ======================================================

func (h *PublicHandler) GetClinic(c *gin.Context) {
	clinic, ok := h.clinicBySlug(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       clinic.ID,
		"name":     clinic.Name,
		"slug":     clinic.Slug,
		"phone":    clinic.Phone,
		"timezone": clinic.Timezone,
	})
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	clinic, ok := h.clinicBySlug(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("clinic_id = ? AND active = ?", clinic.ID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	clinic, ok := h.clinicBySlug(c)
	if !ok {
		return
	}

	var users []models.User
	if err := h.db.
		Select("id", "name", "specialty").
		Where("clinic_id = ?", clinic.ID).
		Order("name ASC").
		Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":        u.ID,
			"name":      u.Name,
			"specialty": u.Specialty,
		})
	}

	c.JSON(http.StatusOK, gin.H{"professionals": out})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	clinic, ok := h.clinicBySlug(c)
	if !ok {
		return
	}

	professionalID, err := strconv.ParseUint(c.Query("professional_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	dateStr := c.Query("date")
	date, err := parseDateInClinic(clinic, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		ClinicID:       clinic.ID,
		ProfessionalID: uint(professionalID),
		Date:           date,
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	// a superfície pública só oferece horários dentro do expediente;
	// encaixes fora do horário são exclusivos da agenda interna
	public := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if s.IsBusinessHours {
			public = append(public, s)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": public,
	})
}

// ======================================================
// BOOKING
// ======================================================

type PublicBookingRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	PatientName    string `json:"patient_name" binding:"required"`
	PatientPhone   string `json:"patient_phone" binding:"required"`
	PatientEmail   string `json:"patient_email"`
	Notes          string `json:"notes"`
}

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	clinic, ok := h.clinicBySlug(c)
	if !ok {
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var professional models.User
	if err := h.db.
		Where("id = ? AND clinic_id = ?", req.ProfessionalID, clinic.ID).
		First(&professional).Error; err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	// reserva pública nasce pendente; a clínica confirma depois
	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClinicID:       clinic.ID,
		ProfessionalID: professional.ID,
		PatientName:    req.PatientName,
		PatientPhone:   req.PatientPhone,
		PatientEmail:   req.PatientEmail,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
		Confirmed:      false,
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         ap.ID,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"status":     ap.Status,
	})
}

// ======================================================
// HELPERS
// ======================================================

func (h *PublicHandler) clinicBySlug(c *gin.Context) (*models.Clinic, bool) {
	clinic, err := h.repo.GetClinicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.NotFound(c, "clinic_not_found", "Clínica não encontrada.")
		return nil, false
	}
	return clinic, true
}
