package domain

import "encoding/json"

// EventType é o tipo de evento enviado pela Stripe no webhook.
type EventType string

const (
	EventCheckoutSessionCompleted    EventType = "checkout.session.completed"
	EventInvoicePaid                 EventType = "invoice.paid"
	EventCustomerSubscriptionDeleted EventType = "customer.subscription.deleted"
	EventInvoicePaymentSucceeded     EventType = "invoice.payment_succeeded"
)

// Event é o envelope do webhook. O objeto fica cru para ser decodificado
// no tipo da Stripe correspondente ao evento.
type Event struct {
	ID   string    `json:"id"`
	Type EventType `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}
