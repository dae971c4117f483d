package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/willjrcristo/course-checkout/internal/collaborator"
	"github.com/willjrcristo/course-checkout/internal/domain"
)

// CheckoutRequest é o corpo enviado pelo botão de compra.
type CheckoutRequest struct {
	PaymentPlan string `json:"paymentPlan"`
	CourseID    string `json:"courseId"`
}

// CheckoutService monta a configuração da sessão de Checkout.
type CheckoutService struct {
	catalog domain.PriceCatalog
	creator collaborator.SessionCreator
	baseURL string
}

func NewCheckoutService(catalog domain.PriceCatalog, creator collaborator.SessionCreator, baseURL string) *CheckoutService {
	return &CheckoutService{
		catalog: catalog,
		creator: creator,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BuildSessionConfig monta a configuração sem chamar a Stripe.
// origin é a origem do frontend; vazia, usa a BASE_URL configurada.
func (s *CheckoutService) BuildSessionConfig(req CheckoutRequest, origin string) (domain.SessionConfig, error) {
	var missing []string
	if strings.TrimSpace(req.PaymentPlan) == "" {
		missing = append(missing, "paymentPlan")
	}
	if strings.TrimSpace(req.CourseID) == "" {
		missing = append(missing, "courseId")
	}
	if len(missing) > 0 {
		return domain.SessionConfig{}, &ValidationError{Fields: missing, Message: "campos obrigatórios ausentes"}
	}

	plan := domain.PaymentPlan(req.PaymentPlan)
	cfg := domain.SessionConfig{
		PaymentPlan:        plan,
		PaymentMethodTypes: []string{"card", "apple_pay", "google_pay"},
		Metadata: map[string]string{
			"courseId":    req.CourseID,
			"paymentPlan": req.PaymentPlan,
		},
		AllowPromotionCodes:      true,
		BillingAddressCollection: "required",
		CustomerCreation:         "always",
	}

	switch plan {
	case domain.PaymentPlanFull:
		cfg.Mode = domain.SessionModeOneTime
		cfg.LineItems = []domain.LineItem{
			{Price: s.catalog.Full, Quantity: 1},
		}
	case domain.PaymentPlanMonthly:
		// Entrada primeiro, depois a mensalidade recorrente.
		cfg.Mode = domain.SessionModeRecurring
		cfg.LineItems = []domain.LineItem{
			{Price: s.catalog.Down, Quantity: 1},
			{Price: s.catalog.Recurring, Quantity: 1},
		}
		offSession := "off_session"
		cfg.PaymentIntentData.SetupFutureUsage = &offSession
	default:
		return domain.SessionConfig{}, &ValidationError{
			Fields:  []string{"paymentPlan"},
			Message: `plano de pagamento inválido, use "full" ou "monthly"`,
		}
	}

	origin = strings.TrimRight(origin, "/")
	if origin == "" {
		origin = s.baseURL
	}
	cfg.SuccessURL = origin + "/success?session_id={CHECKOUT_SESSION_ID}"
	cfg.CancelURL = origin + "/#courses"
	return cfg, nil
}

// CreateSession monta a configuração e pede a sessão ao SessionCreator.
func (s *CheckoutService) CreateSession(ctx context.Context, req CheckoutRequest, origin string) (domain.CheckoutSession, error) {
	cfg, err := s.BuildSessionConfig(req, origin)
	if err != nil {
		return domain.CheckoutSession{}, err
	}

	url, id, err := s.creator.Create(ctx, cfg)
	if err != nil {
		return domain.CheckoutSession{}, err
	}
	slog.Info("Sessão de checkout criada", "session_id", id, "payment_plan", req.PaymentPlan, "course_id", req.CourseID)
	return domain.CheckoutSession{CheckoutURL: url, SessionID: id, Config: cfg}, nil
}
