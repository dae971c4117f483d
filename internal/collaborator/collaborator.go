// Package collaborator reúne os serviços externos acionados pelo checkout e pelo webhook:
// matrícula, e-mail, controle de acesso e a própria Stripe.
package collaborator

import (
	"context"
	"errors"

	"github.com/willjrcristo/course-checkout/internal/domain"
)

// ErrMissingSubscription indica um evento sem o id da assinatura (nem do cliente, na revogação).
var ErrMissingSubscription = errors.New("id da assinatura ausente")

type EnrollmentRequest struct {
	Email           string
	Name            string
	CourseID        string
	PaymentPlan     string
	StripeSessionID string
	CustomerID      string
	// Vazio quando a compra foi à vista.
	SubscriptionID string
}

type Enroller interface {
	Enroll(ctx context.Context, req EnrollmentRequest) (domain.Enrollment, error)
}

type WelcomeEmail struct {
	Email    string
	Name     string
	CourseID string
}

type Notifier interface {
	SendWelcome(ctx context.Context, msg WelcomeEmail) error
}

type MaintainRequest struct {
	CustomerEmail  string
	SubscriptionID string
	InvoiceID      string
}

// AccessManager mantém ou encerra o acesso ao curso conforme a assinatura.
type AccessManager interface {
	Maintain(ctx context.Context, req MaintainRequest) error
	Revoke(ctx context.Context, subscriptionID, customerID string) error
}

// SubscriptionScheduler encerra a assinatura depois da última parcela.
type SubscriptionScheduler interface {
	ScheduleEnd(ctx context.Context, subscriptionID string) error
}

// SessionCreator cria a sessão de Checkout hospedado a partir da configuração montada.
type SessionCreator interface {
	Create(ctx context.Context, cfg domain.SessionConfig) (checkoutURL, sessionID string, err error)
}
