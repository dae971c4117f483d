package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/willjrcristo/course-checkout/internal/domain"
	"github.com/willjrcristo/course-checkout/internal/repository"
)

// AgreementInput é o corpo enviado pelo formulário de aceite.
// AgreementAccepted é ponteiro para diferenciar "ausente" de "false".
type AgreementInput struct {
	Course            string `json:"course"`
	PaymentPlan       string `json:"paymentPlan"`
	CustomerName      string `json:"customerName"`
	CustomerEmail     string `json:"customerEmail"`
	AgreementAccepted *bool  `json:"agreementAccepted"`
	IPAddress         string `json:"ipAddress,omitempty"`
}

// ClientMeta são os dados da conexão usados quando o corpo não informa o IP.
type ClientMeta struct {
	ForwardedFor string
	RemoteAddr   string
	UserAgent    string
}

// AgreementService registra os aceites dos termos do curso.
type AgreementService struct {
	repo       repository.AgreementRepository
	catalog    domain.PriceCatalog
	courseSlug string
	now        func() time.Time
}

func NewAgreementService(repo repository.AgreementRepository, catalog domain.PriceCatalog, courseSlug string) *AgreementService {
	return &AgreementService{
		repo:       repo,
		catalog:    catalog,
		courseSlug: courseSlug,
		now:        time.Now,
	}
}

// Record valida o aceite, grava o registro e devolve o ID gerado.
func (s *AgreementService) Record(ctx context.Context, in AgreementInput, meta ClientMeta) (string, error) {
	if err := validateAgreement(in); err != nil {
		return "", err
	}

	now := s.now()
	agreement := domain.Agreement{
		ID:                domain.NewID("agreement", now),
		Course:            in.Course,
		PaymentPlan:       in.PaymentPlan,
		CustomerName:      in.CustomerName,
		CustomerEmail:     in.CustomerEmail,
		AgreementAccepted: true,
		Timestamp:         now,
		IPAddress:         resolveIP(in.IPAddress, meta),
		UserAgent:         meta.UserAgent,
		SessionData: domain.SessionSnapshot{
			CourseSlug: s.courseSlug,
			PriceIDs:   s.catalog,
		},
	}

	id, err := s.repo.Append(ctx, agreement)
	if err != nil {
		return "", err
	}
	agreementsRecorded.Inc()
	slog.Info("Aceite registrado", "agreement_id", id, "course", in.Course, "payment_plan", in.PaymentPlan)
	return id, nil
}

func validateAgreement(in AgreementInput) error {
	var missing []string
	if strings.TrimSpace(in.Course) == "" {
		missing = append(missing, "course")
	}
	if strings.TrimSpace(in.PaymentPlan) == "" {
		missing = append(missing, "paymentPlan")
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		missing = append(missing, "customerName")
	}
	if strings.TrimSpace(in.CustomerEmail) == "" {
		missing = append(missing, "customerEmail")
	}
	if in.AgreementAccepted == nil {
		missing = append(missing, "agreementAccepted")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing, Message: "campos obrigatórios ausentes"}
	}

	if !*in.AgreementAccepted {
		return &ValidationError{Fields: []string{"agreementAccepted"}, Message: "os termos precisam ser aceitos"}
	}
	return nil
}

// resolveIP usa o IP do corpo, depois o primeiro de X-Forwarded-For e por fim o endereço da conexão.
func resolveIP(explicit string, meta ClientMeta) string {
	if explicit != "" {
		return explicit
	}
	if meta.ForwardedFor != "" {
		first, _, _ := strings.Cut(meta.ForwardedFor, ",")
		return strings.TrimSpace(first)
	}
	return meta.RemoteAddr
}
