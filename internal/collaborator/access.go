package collaborator

import (
	"context"
	"log/slog"

	"github.com/willjrcristo/course-checkout/internal/repository"
)

// RepositoryAccessManager controla o acesso pelas matrículas gravadas.
type RepositoryAccessManager struct {
	enrollments repository.EnrollmentRepository
}

func NewRepositoryAccessManager(enrollments repository.EnrollmentRepository) *RepositoryAccessManager {
	return &RepositoryAccessManager{enrollments: enrollments}
}

// Maintain apenas registra a renovação: a matrícula continua ativa enquanto não for revogada.
func (m *RepositoryAccessManager) Maintain(_ context.Context, req MaintainRequest) error {
	slog.Info("Acesso ao curso mantido", "email", req.CustomerEmail, "subscription_id", req.SubscriptionID, "invoice_id", req.InvoiceID)
	return nil
}

// Revoke encerra só as matrículas da assinatura cancelada. O cliente é usado
// apenas quando o evento não traz o id da assinatura.
func (m *RepositoryAccessManager) Revoke(ctx context.Context, subscriptionID, customerID string) error {
	var (
		n   int
		err error
	)
	switch {
	case subscriptionID != "":
		n, err = m.enrollments.RevokeBySubscription(ctx, subscriptionID)
	case customerID != "":
		n, err = m.enrollments.RevokeByCustomer(ctx, customerID)
	default:
		return ErrMissingSubscription
	}
	if err != nil {
		return err
	}
	slog.Info("Acesso ao curso encerrado", "subscription_id", subscriptionID, "customer_id", customerID, "enrollments_revoked", n)
	return nil
}
