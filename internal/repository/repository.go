package repository

import (
	"context"

	"github.com/willjrcristo/course-checkout/internal/domain"
)

// AgreementRepository guarda os aceites de forma append-only.
// Usar uma interface permite trocar a memória por um banco sem mexer no serviço.
type AgreementRepository interface {
	Append(ctx context.Context, agreement domain.Agreement) (string, error)
	List(ctx context.Context) ([]domain.Agreement, error)
}

type EnrollmentRepository interface {
	Append(ctx context.Context, enrollment domain.Enrollment) (string, error)
	List(ctx context.Context) ([]domain.Enrollment, error)
	// RevokeBySubscription revoga as matrículas ativas criadas pela assinatura e devolve quantas mudaram.
	RevokeBySubscription(ctx context.Context, subscriptionID string) (int, error)
	// RevokeByCustomer marca como revogadas as matrículas ativas do cliente e devolve quantas mudaram.
	RevokeByCustomer(ctx context.Context, customerID string) (int, error)
}

// InstallmentLedger conta as parcelas pagas de cada assinatura.
// RecordPayment é idempotente por fatura: repetir o mesmo invoiceID não muda a contagem
// e devolve inserted=false.
type InstallmentLedger interface {
	RecordPayment(ctx context.Context, subscriptionID, invoiceID string) (count int, inserted bool, err error)
}
