package collaborator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v78"

	"github.com/willjrcristo/course-checkout/internal/domain"
	"github.com/willjrcristo/course-checkout/internal/repository"
)

func TestRepositoryEnroller_Enroll(t *testing.T) {
	store := repository.NewMemoryStore()
	enroller := NewRepositoryEnroller(store.Enrollments())
	enroller.now = func() time.Time { return time.UnixMilli(1726000000000) }

	e, err := enroller.Enroll(context.Background(), EnrollmentRequest{
		Email:           "jane@example.com",
		Name:            "Jane Doe",
		CourseID:        "soc-analyst-foundations",
		PaymentPlan:     "monthly",
		StripeSessionID: "cs_test_1",
		CustomerID:      "cus_1",
		SubscriptionID:  "sub_1",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(e.ID, "enrollment_1726000000000_"))
	assert.Equal(t, domain.EnrollmentActive, e.Status)
	assert.Equal(t, "sub_1", e.SubscriptionID)

	list, _ := store.Enrollments().List(context.Background())
	require.Len(t, list, 1)
	assert.Equal(t, e, list[0])
}

func TestRepositoryAccessManager_Revoke(t *testing.T) {
	ctx := context.Background()

	// Mesmo cliente com um curso à vista e outro em assinatura.
	setup := func(t *testing.T) (*repository.MemoryStore, *RepositoryAccessManager) {
		store := repository.NewMemoryStore()
		enroller := NewRepositoryEnroller(store.Enrollments())
		_, err := enroller.Enroll(ctx, EnrollmentRequest{CourseID: "full-course", PaymentPlan: "full", CustomerID: "cus_1"})
		require.NoError(t, err)
		_, err = enroller.Enroll(ctx, EnrollmentRequest{CourseID: "monthly-course", PaymentPlan: "monthly", CustomerID: "cus_1", SubscriptionID: "sub_1"})
		require.NoError(t, err)
		return store, NewRepositoryAccessManager(store.Enrollments())
	}

	t.Run("revoga só a matrícula da assinatura", func(t *testing.T) {
		store, access := setup(t)
		require.NoError(t, access.Maintain(ctx, MaintainRequest{SubscriptionID: "sub_1"}))
		require.NoError(t, access.Revoke(ctx, "sub_1", "cus_1"))

		list, _ := store.Enrollments().List(ctx)
		require.Len(t, list, 2)
		assert.Equal(t, domain.EnrollmentActive, list[0].Status)
		assert.Equal(t, domain.EnrollmentRevoked, list[1].Status)
	})

	t.Run("sem assinatura usa o cliente", func(t *testing.T) {
		store, access := setup(t)
		require.NoError(t, access.Revoke(ctx, "", "cus_1"))

		list, _ := store.Enrollments().List(ctx)
		assert.Equal(t, domain.EnrollmentRevoked, list[0].Status)
		assert.Equal(t, domain.EnrollmentRevoked, list[1].Status)
	})

	t.Run("sem assinatura nem cliente", func(t *testing.T) {
		_, access := setup(t)
		assert.ErrorIs(t, access.Revoke(ctx, "", ""), ErrMissingSubscription)
	})
}

func TestLogNotifier(t *testing.T) {
	n := NewLogNotifier("https://portal.example.com")

	t.Run("renderiza o e-mail de boas-vindas", func(t *testing.T) {
		m, err := n.Render(WelcomeEmail{Email: "jane@example.com", Name: "Jane", CourseID: "soc-analyst-foundations"})
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", m.To)
		assert.Contains(t, m.Body, "Hi Jane,")
		assert.Contains(t, m.Body, "SOC Analyst Foundations")
		assert.Contains(t, m.Body, "https://portal.example.com")
		assert.NoError(t, n.SendWelcome(context.Background(), WelcomeEmail{Email: "jane@example.com"}))
	})

	t.Run("falha sem destinatário", func(t *testing.T) {
		err := n.SendWelcome(context.Background(), WelcomeEmail{Name: "Jane"})
		assert.ErrorIs(t, err, ErrMissingRecipient)
	})
}

func TestPlaceholderSessionCreator(t *testing.T) {
	p := NewPlaceholderSessionCreator()
	p.now = func() time.Time { return time.UnixMilli(42) }

	url, id, err := p.Create(context.Background(), domain.SessionConfig{
		PaymentPlan: domain.PaymentPlanFull,
		Metadata:    map[string]string{"courseId": "soc-analyst-foundations"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/full_soc-analyst-foundations_42", url)
	assert.Equal(t, "cs_test_42", id)
}

func TestStripeSessionCreator(t *testing.T) {
	offSession := "off_session"
	monthly := domain.SessionConfig{
		PaymentPlan: domain.PaymentPlanMonthly,
		LineItems: []domain.LineItem{
			{Price: "price_down", Quantity: 1},
			{Price: "price_rec", Quantity: 1},
		},
		Mode:                     domain.SessionModeRecurring,
		SuccessURL:               "https://site/success",
		CancelURL:                "https://site/#courses",
		Metadata:                 map[string]string{"courseId": "c1", "paymentPlan": "monthly"},
		AllowPromotionCodes:      true,
		BillingAddressCollection: "required",
		CustomerCreation:         "always",
		PaymentIntentData:        domain.PaymentIntentData{SetupFutureUsage: &offSession},
	}

	t.Run("traduz a configuração para a Stripe", func(t *testing.T) {
		var got *stripe.CheckoutSessionParams
		s := &StripeSessionCreator{newSession: func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
			got = params
			return &stripe.CheckoutSession{ID: "cs_live_1", URL: "https://checkout.stripe.com/c/pay/cs_live_1"}, nil
		}}

		url, id, err := s.Create(context.Background(), monthly)
		require.NoError(t, err)
		assert.Equal(t, "cs_live_1", id)
		assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_live_1", url)

		require.NotNil(t, got)
		assert.Equal(t, "subscription", *got.Mode)
		require.Len(t, got.LineItems, 2)
		assert.Equal(t, "price_down", *got.LineItems[0].Price)
		assert.Equal(t, "price_rec", *got.LineItems[1].Price)
		assert.Equal(t, "c1", got.Metadata["courseId"])
		assert.Nil(t, got.PaymentIntentData)
		assert.True(t, *got.AllowPromotionCodes)
	})

	t.Run("pagamento à vista", func(t *testing.T) {
		full := monthly
		full.Mode = domain.SessionModeOneTime
		full.PaymentIntentData = domain.PaymentIntentData{}

		params := SessionParams(context.Background(), full)
		assert.Equal(t, "payment", *params.Mode)
		assert.Equal(t, "always", *params.CustomerCreation)
		assert.Nil(t, params.PaymentIntentData)
	})

	t.Run("propaga o erro da Stripe", func(t *testing.T) {
		s := &StripeSessionCreator{newSession: func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
			return nil, errors.New("api indisponível")
		}}
		_, _, err := s.Create(context.Background(), monthly)
		assert.Error(t, err)
	})
}

func TestStripeScheduler(t *testing.T) {
	var gotID string
	s := &StripeScheduler{update: func(id string, params *stripe.SubscriptionParams) (*stripe.Subscription, error) {
		gotID = id
		assert.True(t, *params.CancelAtPeriodEnd)
		return &stripe.Subscription{ID: id, CancelAtPeriodEnd: true}, nil
	}}

	require.NoError(t, s.ScheduleEnd(context.Background(), "sub_1"))
	assert.Equal(t, "sub_1", gotID)

	gotID = ""
	assert.ErrorIs(t, s.ScheduleEnd(context.Background(), ""), ErrMissingSubscription)
	assert.Empty(t, gotID, "a API não é chamada sem assinatura")

	assert.NoError(t, LogScheduler{}.ScheduleEnd(context.Background(), "sub_1"))
	assert.NoError(t, LogScheduler{}.ScheduleEnd(context.Background(), ""))
}
