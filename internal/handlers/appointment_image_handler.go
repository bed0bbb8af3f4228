package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VidaClinicas/clinic-agenda/internal/audit"
	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
	"github.com/VidaClinicas/clinic-agenda/internal/media"
	"github.com/VidaClinicas/clinic-agenda/internal/middleware"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
)

// 10 MB por imagem antes da conversão
const maxImageUploadBytes = 10 << 20

// ======================================================
// HANDLER
// ======================================================

// AppointmentImageHandler anexa fotos clínicas a um agendamento.
// Anexar imagem é edição de conteúdo: nunca revalida horário.
type AppointmentImageHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
	audit    *audit.Dispatcher
}

func NewAppointmentImageHandler(
	db *gorm.DB,
	uploader *media.Uploader,
	audit *audit.Dispatcher,
) *AppointmentImageHandler {
	return &AppointmentImageHandler{
		db:       db,
		uploader: uploader,
		audit:    audit,
	}
}

// ======================================================
// UPLOAD
// ======================================================

func (h *AppointmentImageHandler) Upload(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var ap models.Appointment
	if err := h.db.Where("id = ? AND clinic_id = ?", id, clinicID).First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Arquivo de imagem obrigatório.")
		return
	}
	if fileHeader.Size > maxImageUploadBytes {
		httperr.BadRequest(c, "image_too_large", "Imagem excede o tamanho máximo de 10MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Erro ao ler imagem.")
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadAppointmentImage(c.Request.Context(), clinicID, ap.ID, file)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_image", "Erro ao enviar imagem.")
		return
	}

	img := models.AppointmentImage{
		AppointmentID: ap.ID,
		URL:           url,
	}
	if err := h.db.Create(&img).Error; err != nil {
		httperr.Internal(c, "failed_to_save_image", "Erro ao salvar imagem.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &userID,
		Action:   "appointment_image_uploaded",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"url": url},
	})

	c.JSON(http.StatusCreated, img)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentImageHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var ap models.Appointment
	if err := h.db.Where("id = ? AND clinic_id = ?", id, clinicID).First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	var images []models.AppointmentImage
	if err := h.db.Where("appointment_id = ?", ap.ID).Order("id ASC").Find(&images).Error; err != nil {
		httperr.Internal(c, "failed_to_list_images", "Erro ao listar imagens.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": images})
}
