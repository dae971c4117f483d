package service

import (
	"context"
	"sync"

	"github.com/willjrcristo/course-checkout/internal/collaborator"
	"github.com/willjrcristo/course-checkout/internal/domain"
)

// --- Mocks dos colaboradores ---

type MockEnroller struct {
	EnrollFn func(ctx context.Context, req collaborator.EnrollmentRequest) (domain.Enrollment, error)
}

func (m *MockEnroller) Enroll(ctx context.Context, req collaborator.EnrollmentRequest) (domain.Enrollment, error) {
	return m.EnrollFn(ctx, req)
}

type MockNotifier struct {
	SendWelcomeFn func(ctx context.Context, msg collaborator.WelcomeEmail) error
}

func (m *MockNotifier) SendWelcome(ctx context.Context, msg collaborator.WelcomeEmail) error {
	return m.SendWelcomeFn(ctx, msg)
}

type MockAccessManager struct {
	MaintainFn func(ctx context.Context, req collaborator.MaintainRequest) error
	RevokeFn   func(ctx context.Context, subscriptionID, customerID string) error
}

func (m *MockAccessManager) Maintain(ctx context.Context, req collaborator.MaintainRequest) error {
	return m.MaintainFn(ctx, req)
}

func (m *MockAccessManager) Revoke(ctx context.Context, subscriptionID, customerID string) error {
	return m.RevokeFn(ctx, subscriptionID, customerID)
}

// MockScheduler conta as chamadas de ScheduleEnd.
type MockScheduler struct {
	mu    sync.Mutex
	Calls []string
	Err   error
}

func (m *MockScheduler) ScheduleEnd(_ context.Context, subscriptionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, subscriptionID)
	return m.Err
}

type MockVerifier struct {
	Err error
}

func (m MockVerifier) Verify([]byte, string) error { return m.Err }

type MockSessionCreator struct {
	CreateFn func(ctx context.Context, cfg domain.SessionConfig) (string, string, error)
}

func (m *MockSessionCreator) Create(ctx context.Context, cfg domain.SessionConfig) (string, string, error) {
	return m.CreateFn(ctx, cfg)
}
