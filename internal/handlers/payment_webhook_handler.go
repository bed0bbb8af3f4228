package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/payments"
)

// ======================================================
// HANDLER
// ======================================================

// PaymentWebhookHandler recebe as notificações do Mercado Pago e
// concilia o pagamento local pela external_reference. O endpoint
// responde 200 mesmo quando ignora o evento: o Mercado Pago re-tenta
// indefinidamente qualquer resposta de erro.
type PaymentWebhookHandler struct {
	repo domain.Repository
	mp   *payments.Client
}

func NewPaymentWebhookHandler(repo domain.Repository, mp *payments.Client) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{repo: repo, mp: mp}
}

type webhookPayload struct {
	Type string `json:"type"`
	Data struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

// ======================================================
// NOTIFY
// ======================================================

func (h *PaymentWebhookHandler) Notify(c *gin.Context) {
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.Status(http.StatusOK)
		return
	}

	if payload.Type != "payment" {
		c.Status(http.StatusOK)
		return
	}

	mpID, err := strconv.Atoi(payload.Data.ID.String())
	if err != nil {
		c.Status(http.StatusOK)
		return
	}

	status, externalRef, err := h.mp.LookupStatus(c.Request.Context(), mpID)
	if err != nil {
		log.Printf("webhook: mercado pago lookup %d: %v", mpID, err)
		c.Status(http.StatusOK)
		return
	}
	if externalRef == "" {
		c.Status(http.StatusOK)
		return
	}

	p, err := h.repo.GetPaymentByExternalReference(c.Request.Context(), externalRef)
	if err != nil {
		log.Printf("webhook: pagamento %s não encontrado", externalRef)
		c.Status(http.StatusOK)
		return
	}

	// conciliação idempotente: só grava quando o status muda
	if p.Status == string(status) {
		c.Status(http.StatusOK)
		return
	}

	p.Status = string(status)
	if status == domain.PaymentCompleted && p.PaidAt == nil {
		now := time.Now().UTC()
		p.PaidAt = &now
	}

	if err := h.repo.UpdatePayment(c.Request.Context(), p); err != nil {
		log.Printf("webhook: erro ao atualizar pagamento %s: %v", externalRef, err)
	}

	c.Status(http.StatusOK)
}
