package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/stripe/stripe-go/v78"
	"golang.org/x/sync/errgroup"

	"github.com/willjrcristo/course-checkout/internal/collaborator"
	"github.com/willjrcristo/course-checkout/internal/domain"
	"github.com/willjrcristo/course-checkout/internal/repository"
)

// Formas de contar as parcelas pagas de uma assinatura.
const (
	// CountByAttempt usa o attempt_count da fatura. Uma nova tentativa após falha
	// também incrementa esse número, então o encerramento pode vir antes da hora.
	CountByAttempt = "attempt_count"
	// CountByPaidInvoices conta as faturas pagas de cada assinatura no InstallmentLedger.
	CountByPaidInvoices = "paid_invoices"
)

// Verifier confere a assinatura do cabeçalho Stripe-Signature.
type Verifier interface {
	Verify(payload []byte, header string) error
}

type Collaborators struct {
	Enroller  collaborator.Enroller
	Notifier  collaborator.Notifier
	Access    collaborator.AccessManager
	Scheduler collaborator.SubscriptionScheduler
	Ledger    repository.InstallmentLedger
}

type WebhookPolicy struct {
	// Usados quando a sessão chega sem metadata. A matrícula sai com esses valores
	// e um aviso fica no log.
	DefaultCourseID    string
	DefaultPaymentPlan string

	InstallmentCount       int
	InstallmentCountSource string
}

// DispatchResult resume o processamento de um evento autenticado.
// Err agrega as falhas dos colaboradores; ele nunca muda a resposta HTTP.
type DispatchResult struct {
	EventID   string
	EventType domain.EventType
	Handled   bool
	Err       error
}

type eventHandler func(ctx context.Context, object json.RawMessage) error

type WebhookService struct {
	verifier Verifier
	collab   Collaborators
	policy   WebhookPolicy
	handlers map[domain.EventType]eventHandler
}

func NewWebhookService(verifier Verifier, collab Collaborators, policy WebhookPolicy) (*WebhookService, error) {
	switch policy.InstallmentCountSource {
	case CountByAttempt:
	case CountByPaidInvoices:
		if collab.Ledger == nil {
			return nil, errors.New("contagem por faturas pagas exige um InstallmentLedger")
		}
	default:
		return nil, fmt.Errorf("forma de contagem de parcelas desconhecida: %q", policy.InstallmentCountSource)
	}
	if policy.InstallmentCount <= 0 {
		return nil, fmt.Errorf("número de parcelas inválido: %d", policy.InstallmentCount)
	}

	s := &WebhookService{
		verifier: verifier,
		collab:   collab,
		policy:   policy,
	}
	s.handlers = map[domain.EventType]eventHandler{
		domain.EventCheckoutSessionCompleted:    s.handleCheckoutCompleted,
		domain.EventInvoicePaid:                 s.handleInvoicePaid,
		domain.EventCustomerSubscriptionDeleted: s.handleSubscriptionDeleted,
		domain.EventInvoicePaymentSucceeded:     s.handleRecurringPayment,
	}
	return s, nil
}

// HandleWebhook verifica a assinatura e despacha o evento pelo tipo.
// Só devolve erro quando o evento não pode ser aceito (ErrAuthentication ou ErrInvalidPayload);
// falhas dos colaboradores ficam em DispatchResult.Err.
func (s *WebhookService) HandleWebhook(ctx context.Context, payload []byte, signature string) (DispatchResult, error) {
	if err := s.verifier.Verify(payload, signature); err != nil {
		slog.Error("Erro ao verificar a assinatura do webhook", "error", err)
		webhookEvents.WithLabelValues("unknown", "rejected").Inc()
		return DispatchResult{}, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	var event domain.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		slog.Error("Payload do webhook não pôde ser lido", "error", err)
		webhookEvents.WithLabelValues("unknown", "invalid").Inc()
		return DispatchResult{}, ErrInvalidPayload
	}

	result := DispatchResult{EventID: event.ID, EventType: event.Type}
	if event.Type == "" {
		// Assinado pela Stripe, então é confirmado mesmo sem tipo.
		slog.Warn("Webhook da Stripe sem tipo de evento", "event_id", event.ID)
		webhookEvents.WithLabelValues("unknown", "ignored").Inc()
		return result, nil
	}
	slog.Info("Webhook da Stripe recebido", "event_id", event.ID, "event_type", event.Type)

	handler, ok := s.handlers[event.Type]
	if !ok {
		slog.Info("Webhook da Stripe recebido, mas não tratado", "event_type", event.Type)
		webhookEvents.WithLabelValues(string(event.Type), "ignored").Inc()
		return result, nil
	}

	// O processamento continua mesmo se o remetente desistir da requisição.
	result.Handled = true
	result.Err = handler(context.WithoutCancel(ctx), event.Data.Object)
	if result.Err != nil {
		slog.Error("Evento processado com falhas", "event_id", event.ID, "event_type", event.Type, "error", result.Err)
		webhookEvents.WithLabelValues(string(event.Type), "failed").Inc()
	} else {
		webhookEvents.WithLabelValues(string(event.Type), "handled").Inc()
	}
	return result, nil
}

// --- HANDLERS POR TIPO DE EVENTO ---

func (s *WebhookService) handleCheckoutCompleted(ctx context.Context, object json.RawMessage) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(object, &sess); err != nil {
		return fmt.Errorf("checkout session: %w", err)
	}
	slog.Info("Checkout concluído", "session_id", sess.ID)

	email := sess.CustomerEmail
	var name string
	if sess.CustomerDetails != nil {
		if email == "" {
			email = sess.CustomerDetails.Email
		}
		name = sess.CustomerDetails.Name
	}

	courseID := sess.Metadata["courseId"]
	if courseID == "" {
		courseID = s.policy.DefaultCourseID
		slog.Warn("Sessão sem courseId na metadata, usando o curso padrão", "session_id", sess.ID, "course_id", courseID)
	}
	paymentPlan := sess.Metadata["paymentPlan"]
	if paymentPlan == "" {
		paymentPlan = s.policy.DefaultPaymentPlan
		slog.Warn("Sessão sem paymentPlan na metadata, usando o plano padrão", "session_id", sess.ID, "payment_plan", paymentPlan)
	}

	var customerID, subID string
	if sess.Customer != nil {
		customerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		subID = sess.Subscription.ID
	}

	return s.run(ctx,
		call{"enrollment", func(ctx context.Context) error {
			_, err := s.collab.Enroller.Enroll(ctx, collaborator.EnrollmentRequest{
				Email:           email,
				Name:            name,
				CourseID:        courseID,
				PaymentPlan:     paymentPlan,
				StripeSessionID: sess.ID,
				CustomerID:      customerID,
				SubscriptionID:  subID,
			})
			return err
		}},
		call{"notification", func(ctx context.Context) error {
			return s.collab.Notifier.SendWelcome(ctx, collaborator.WelcomeEmail{
				Email:    email,
				Name:     name,
				CourseID: courseID,
			})
		}},
	)
}

func (s *WebhookService) handleInvoicePaid(ctx context.Context, object json.RawMessage) error {
	var inv stripe.Invoice
	if err := json.Unmarshal(object, &inv); err != nil {
		return fmt.Errorf("invoice: %w", err)
	}
	slog.Info("Fatura paga", "invoice_id", inv.ID)

	return s.run(ctx, call{"access_maintenance", func(ctx context.Context) error {
		return s.collab.Access.Maintain(ctx, collaborator.MaintainRequest{
			CustomerEmail:  inv.CustomerEmail,
			SubscriptionID: subscriptionID(&inv),
			InvoiceID:      inv.ID,
		})
	}})
}

func (s *WebhookService) handleSubscriptionDeleted(ctx context.Context, object json.RawMessage) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(object, &sub); err != nil {
		return fmt.Errorf("subscription: %w", err)
	}
	slog.Info("Assinatura removida", "subscription_id", sub.ID)

	var customerID string
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}
	return s.run(ctx, call{"access_revocation", func(ctx context.Context) error {
		return s.collab.Access.Revoke(ctx, sub.ID, customerID)
	}})
}

func (s *WebhookService) handleRecurringPayment(ctx context.Context, object json.RawMessage) error {
	var inv stripe.Invoice
	if err := json.Unmarshal(object, &inv); err != nil {
		return fmt.Errorf("invoice: %w", err)
	}
	slog.Info("Pagamento recorrente recebido", "invoice_id", inv.ID, "attempt_count", inv.AttemptCount)

	subID := subscriptionID(&inv)

	var due bool
	switch s.policy.InstallmentCountSource {
	case CountByPaidInvoices:
		if subID == "" {
			slog.Warn("Fatura sem assinatura não entra na contagem de parcelas", "invoice_id", inv.ID)
			return nil
		}
		count, inserted, err := s.collab.Ledger.RecordPayment(ctx, subID, inv.ID)
		if err != nil {
			return s.failure("installment_ledger", err)
		}
		// Só a entrega que gravou a última parcela pede o encerramento; reenvios da mesma fatura não.
		due = inserted && count == s.policy.InstallmentCount
	default:
		due = inv.AttemptCount >= int64(s.policy.InstallmentCount)
	}
	if !due {
		return nil
	}

	return s.run(ctx, call{"subscription_end", func(ctx context.Context) error {
		return s.collab.Scheduler.ScheduleEnd(ctx, subID)
	}})
}

func subscriptionID(inv *stripe.Invoice) string {
	if inv.Subscription == nil {
		return ""
	}
	return inv.Subscription.ID
}

// --- EXECUÇÃO DOS COLABORADORES ---

type call struct {
	name string
	fn   func(ctx context.Context) error
}

// run executa as chamadas em paralelo. A falha (ou panic) de uma não cancela as outras;
// todas são registradas e devolvidas juntas.
func (s *WebhookService) run(ctx context.Context, calls ...call) error {
	var (
		g      errgroup.Group
		mu     sync.Mutex
		result *multierror.Error
	)

	for _, c := range calls {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic: %v", r)
				}
				if err != nil {
					mu.Lock()
					result = multierror.Append(result, s.failure(c.name, err))
					mu.Unlock()
				}
			}()
			return c.fn(ctx)
		})
	}
	// g.Wait devolve só o primeiro erro; o agregado completo está em result.
	_ = g.Wait()
	return result.ErrorOrNil()
}

func (s *WebhookService) failure(name string, err error) error {
	slog.Error("Falha no colaborador", "collaborator", name, "error", err)
	collaboratorFailures.WithLabelValues(name).Inc()
	return &CollaboratorError{Collaborator: name, Err: err}
}
