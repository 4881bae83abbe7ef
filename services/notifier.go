package services

import (
	"fmt"
	"log"
	"os"

	"lavapro-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier is the delivery port for customer-facing messages. Core logic
// talks to this interface only; plugging in a real channel never touches it.
type Notifier interface {
	SendPaymentReminder(customer models.Customer, order models.Order) error
	SendWeeklyReport(recipient string, metrics *WeeklyMetrics) error
}

// NoopNotifier is the default implementation: no channel is configured, so
// every send degrades to a log line.
type NoopNotifier struct{}

func (NoopNotifier) SendPaymentReminder(customer models.Customer, order models.Order) error {
	log.Printf("Lembrete para o pedido %d não enviado (nenhum canal de entrega configurado).", order.ID)
	return nil
}

func (NoopNotifier) SendWeeklyReport(recipient string, metrics *WeeklyMetrics) error {
	log.Printf("Envio de relatório semanal desativado (nenhum canal de entrega configurado).")
	return nil
}

// TwilioNotifier delivers reminders over WhatsApp. Selected only when the
// TWILIO_* environment variables are present.
type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioNotifier() *TwilioNotifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: "whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	}
}

func (n *TwilioNotifier) SendPaymentReminder(customer models.Customer, order models.Order) error {
	if customer.Phone == "" {
		return fmt.Errorf("cliente %d sem telefone cadastrado", customer.ID)
	}

	body := fmt.Sprintf(
		"Olá %s! O pedido %d (%s) no valor de R$%s segue pendente de pagamento.",
		customer.Name, order.ID, order.Services, order.Total.StringFixed(2),
	)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + customer.Phone)
	params.SetFrom(n.from)
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}
	if resp.Sid != nil {
		log.Printf("Lembrete enviado para %s, SID: %s", customer.Phone, *resp.Sid)
	}
	return nil
}

func (n *TwilioNotifier) SendWeeklyReport(recipient string, metrics *WeeklyMetrics) error {
	// WhatsApp carries reminders only; report delivery stays disabled.
	log.Printf("Envio de relatório semanal por e-mail desativado.")
	return nil
}

// NotifierFromEnv picks the Twilio implementation when credentials are
// configured and the no-op port otherwise.
func NotifierFromEnv() Notifier {
	if os.Getenv("TWILIO_ACCOUNT_SID") != "" && os.Getenv("TWILIO_AUTH_TOKEN") != "" {
		return NewTwilioNotifier()
	}
	return NoopNotifier{}
}
