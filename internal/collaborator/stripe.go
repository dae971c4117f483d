package collaborator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/subscription"

	"github.com/willjrcristo/course-checkout/internal/domain"
)

// --- SESSÃO DE CHECKOUT ---

// PlaceholderSessionCreator devolve uma URL de checkout fictícia.
// É o comportamento padrão quando não existe STRIPE_SECRET_KEY configurada.
type PlaceholderSessionCreator struct {
	now func() time.Time
}

func NewPlaceholderSessionCreator() *PlaceholderSessionCreator {
	return &PlaceholderSessionCreator{now: time.Now}
}

func (p *PlaceholderSessionCreator) Create(_ context.Context, cfg domain.SessionConfig) (string, string, error) {
	ms := p.now().UnixMilli()
	url := fmt.Sprintf("https://checkout.stripe.com/c/pay/%s_%s_%d", cfg.PaymentPlan, cfg.Metadata["courseId"], ms)
	return url, fmt.Sprintf("cs_test_%d", ms), nil
}

// StripeSessionCreator cria a sessão de verdade na Stripe.
// A chave da API precisa estar em stripe.Key.
type StripeSessionCreator struct {
	newSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func NewStripeSessionCreator() *StripeSessionCreator {
	return &StripeSessionCreator{newSession: session.New}
}

func (s *StripeSessionCreator) Create(ctx context.Context, cfg domain.SessionConfig) (string, string, error) {
	sess, err := s.newSession(SessionParams(ctx, cfg))
	if err != nil {
		slog.Error("Falha ao criar a sessão de checkout na Stripe", "error", err)
		return "", "", err
	}
	return sess.URL, sess.ID, nil
}

// SessionParams traduz a configuração para os parâmetros da API da Stripe.
func SessionParams(ctx context.Context, cfg domain.SessionConfig) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		SuccessURL:               stripe.String(cfg.SuccessURL),
		CancelURL:                stripe.String(cfg.CancelURL),
		AllowPromotionCodes:      stripe.Bool(cfg.AllowPromotionCodes),
		BillingAddressCollection: stripe.String(cfg.BillingAddressCollection),
	}
	params.Context = ctx

	for _, item := range cfg.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(item.Price),
			Quantity: stripe.Int64(item.Quantity),
		})
	}
	for k, v := range cfg.Metadata {
		params.AddMetadata(k, v)
	}

	switch cfg.Mode {
	case domain.SessionModeRecurring:
		// No modo assinatura a Stripe cria o cliente e guarda o cartão para as próximas cobranças.
		params.Mode = stripe.String(string(stripe.CheckoutSessionModeSubscription))
	default:
		params.Mode = stripe.String(string(stripe.CheckoutSessionModePayment))
		params.CustomerCreation = stripe.String(cfg.CustomerCreation)
		if cfg.PaymentIntentData.SetupFutureUsage != nil {
			params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
				SetupFutureUsage: cfg.PaymentIntentData.SetupFutureUsage,
			}
		}
	}
	return params
}

// --- ENCERRAMENTO DA ASSINATURA ---

// LogScheduler só registra a intenção de encerrar a assinatura.
type LogScheduler struct{}

func (LogScheduler) ScheduleEnd(_ context.Context, subscriptionID string) error {
	if subscriptionID == "" {
		slog.Warn("Última parcela paga em fatura sem assinatura; nada a encerrar")
		return nil
	}
	slog.Info("Encerramento da assinatura agendado após a última parcela", "subscription_id", subscriptionID)
	return nil
}

// StripeScheduler marca a assinatura para cancelar no fim do período corrente.
type StripeScheduler struct {
	update func(id string, params *stripe.SubscriptionParams) (*stripe.Subscription, error)
}

func NewStripeScheduler() *StripeScheduler {
	return &StripeScheduler{update: subscription.Update}
}

func (s *StripeScheduler) ScheduleEnd(ctx context.Context, subscriptionID string) error {
	if subscriptionID == "" {
		return ErrMissingSubscription
	}
	params := &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(true),
	}
	params.Context = ctx

	sub, err := s.update(subscriptionID, params)
	if err != nil {
		return err
	}
	slog.Info("Assinatura marcada para encerrar no fim do período", "subscription_id", sub.ID, "cancel_at_period_end", sub.CancelAtPeriodEnd)
	return nil
}
