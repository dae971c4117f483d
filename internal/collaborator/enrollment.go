package collaborator

import (
	"context"
	"log/slog"
	"time"

	"github.com/willjrcristo/course-checkout/internal/domain"
	"github.com/willjrcristo/course-checkout/internal/repository"
)

// RepositoryEnroller grava a matrícula no repositório configurado.
type RepositoryEnroller struct {
	repo repository.EnrollmentRepository
	now  func() time.Time
}

func NewRepositoryEnroller(repo repository.EnrollmentRepository) *RepositoryEnroller {
	return &RepositoryEnroller{repo: repo, now: time.Now}
}

func (e *RepositoryEnroller) Enroll(ctx context.Context, req EnrollmentRequest) (domain.Enrollment, error) {
	now := e.now()
	enrollment := domain.Enrollment{
		ID:              domain.NewID("enrollment", now),
		Email:           req.Email,
		Name:            req.Name,
		CourseID:        req.CourseID,
		PaymentPlan:     req.PaymentPlan,
		StripeSessionID: req.StripeSessionID,
		CustomerID:      req.CustomerID,
		SubscriptionID:  req.SubscriptionID,
		EnrolledAt:      now,
		Status:          domain.EnrollmentActive,
	}

	if _, err := e.repo.Append(ctx, enrollment); err != nil {
		return domain.Enrollment{}, err
	}
	slog.Info("Matrícula criada", "enrollment_id", enrollment.ID, "email", req.Email, "course_id", req.CourseID, "payment_plan", req.PaymentPlan)
	return enrollment, nil
}
