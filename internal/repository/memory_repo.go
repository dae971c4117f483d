package repository

import (
	"context"
	"sync"

	"github.com/willjrcristo/course-checkout/internal/domain"
)

// MemoryStore implementa os três repositórios em memória.
// Serve para desenvolvimento e testes; os dados somem ao reiniciar o processo.
type MemoryStore struct {
	mu           sync.Mutex
	agreements   []domain.Agreement
	enrollments  []domain.Enrollment
	installments map[string]map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		installments: make(map[string]map[string]struct{}),
	}
}

func (s *MemoryStore) Agreements() AgreementRepository   { return memoryAgreements{s} }
func (s *MemoryStore) Enrollments() EnrollmentRepository { return memoryEnrollments{s} }
func (s *MemoryStore) Installments() InstallmentLedger   { return memoryInstallments{s} }

type memoryAgreements struct{ s *MemoryStore }

func (r memoryAgreements) Append(_ context.Context, agreement domain.Agreement) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.agreements = append(r.s.agreements, agreement)
	return agreement.ID, nil
}

func (r memoryAgreements) List(_ context.Context) ([]domain.Agreement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Agreement, len(r.s.agreements))
	copy(out, r.s.agreements)
	return out, nil
}

type memoryEnrollments struct{ s *MemoryStore }

func (r memoryEnrollments) Append(_ context.Context, enrollment domain.Enrollment) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.enrollments = append(r.s.enrollments, enrollment)
	return enrollment.ID, nil
}

func (r memoryEnrollments) List(_ context.Context) ([]domain.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Enrollment, len(r.s.enrollments))
	copy(out, r.s.enrollments)
	return out, nil
}

func (r memoryEnrollments) RevokeBySubscription(_ context.Context, subscriptionID string) (int, error) {
	return r.revoke(func(e *domain.Enrollment) bool { return e.SubscriptionID == subscriptionID }), nil
}

func (r memoryEnrollments) RevokeByCustomer(_ context.Context, customerID string) (int, error) {
	return r.revoke(func(e *domain.Enrollment) bool { return e.CustomerID == customerID }), nil
}

func (r memoryEnrollments) revoke(match func(*domain.Enrollment) bool) int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for i := range r.s.enrollments {
		e := &r.s.enrollments[i]
		if e.Status == domain.EnrollmentActive && match(e) {
			e.Status = domain.EnrollmentRevoked
			n++
		}
	}
	return n
}

type memoryInstallments struct{ s *MemoryStore }

func (r memoryInstallments) RecordPayment(_ context.Context, subscriptionID, invoiceID string) (int, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	invoices, ok := r.s.installments[subscriptionID]
	if !ok {
		invoices = make(map[string]struct{})
		r.s.installments[subscriptionID] = invoices
	}
	if _, seen := invoices[invoiceID]; seen {
		return len(invoices), false, nil
	}
	invoices[invoiceID] = struct{}{}
	return len(invoices), true, nil
}
