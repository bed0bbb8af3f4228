package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
)

func TestMapAppointmentError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"conflito de horario", httperr.ErrBusiness(domain.CodeSlotConflict), http.StatusConflict},
		{"intervalo invalido", httperr.ErrBusiness(domain.CodeInvalidInterval), http.StatusBadRequest},
		{"transicao ilegal", httperr.ErrBusiness(domain.CodeIllegalTransition), http.StatusBadRequest},
		{"nao encontrado", httperr.ErrBusiness(domain.CodeNotFound), http.StatusNotFound},
		{"antecedencia minima", httperr.ErrBusiness("too_soon"), http.StatusBadRequest},
		{"codigo desconhecido", httperr.ErrBusiness("weird_code"), http.StatusBadRequest},
		{"erro nao mapeado e interno", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			mapAppointmentError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, esperava %d", w.Code, tt.wantStatus)
			}
		})
	}
}
