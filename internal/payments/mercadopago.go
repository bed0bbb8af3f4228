package payments

import (
	"context"
	"log"

	"github.com/google/uuid"
	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	domain "github.com/VidaClinicas/clinic-agenda/internal/domain/schedule"
	"github.com/VidaClinicas/clinic-agenda/internal/models"
)

// Client é o colaborador de pagamento (Mercado Pago). A conclusão de
// um agendamento sem pagamento quitado dispara a criação de uma
// cobrança; a conclusão em si nunca é bloqueada por pagamento.
type Client struct {
	pref preference.Client
	pay  payment.Client
}

// NewClient devolve um cliente desabilitado quando o token não está
// configurado: a cobrança vira só um registro pendente, sem link.
func NewClient(accessToken string) *Client {
	if accessToken == "" {
		log.Println("mercado pago desabilitado (MP_ACCESS_TOKEN vazio)")
		return &Client{}
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		log.Printf("mercado pago config error: %v", err)
		return &Client{}
	}

	return &Client{
		pref: preference.NewClient(cfg),
		pay:  payment.NewClient(cfg),
	}
}

// PromptPayment cria a cobrança pendente do agendamento e, quando o
// Mercado Pago está configurado, gera o link de checkout.
func (c *Client) PromptPayment(
	ctx context.Context,
	ap *models.Appointment,
	amount float64,
	description string,
) (*models.Payment, error) {

	p := &models.Payment{
		AppointmentID:     ap.ID,
		Status:            string(domain.PaymentPending),
		Amount:            amount,
		Method:            "mercado_pago",
		ExternalReference: uuid.NewString(),
	}

	if c.pref == nil {
		return p, nil
	}

	res, err := c.pref.Create(ctx, preference.Request{
		ExternalReference: p.ExternalReference,
		Items: []preference.ItemRequest{
			{
				Title:     description,
				Quantity:  1,
				UnitPrice: amount,
			},
		},
	})
	if err != nil {
		// cobrança fica pendente sem link; o caller decide re-tentar
		log.Printf("mercado pago preference error: %v", err)
		return p, nil
	}

	p.CheckoutURL = res.InitPoint
	return p, nil
}

// LookupStatus consulta um pagamento no Mercado Pago e traduz para o
// status interno.
func (c *Client) LookupStatus(ctx context.Context, mpPaymentID int) (domain.PaymentStatus, string, error) {
	if c.pay == nil {
		return domain.PaymentPending, "", nil
	}

	res, err := c.pay.Get(ctx, mpPaymentID)
	if err != nil {
		return domain.PaymentPending, "", err
	}

	return translateStatus(res.Status), res.ExternalReference, nil
}

func translateStatus(mp string) domain.PaymentStatus {
	switch mp {
	case "approved":
		return domain.PaymentCompleted
	case "rejected", "cancelled":
		return domain.PaymentFailed
	case "refunded", "charged_back":
		return domain.PaymentRefunded
	}
	return domain.PaymentPending
}
