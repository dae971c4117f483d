package domain

import "time"

type EnrollmentStatus string

const (
	EnrollmentActive  EnrollmentStatus = "active"
	EnrollmentRevoked EnrollmentStatus = "revoked"
)

// Enrollment libera o acesso do cliente ao curso comprado.
type Enrollment struct {
	ID              string           `json:"id"`
	Email           string           `json:"email"`
	Name            string           `json:"name"`
	CourseID        string           `json:"courseId"`
	PaymentPlan     string           `json:"paymentPlan"`
	StripeSessionID string           `json:"stripeSessionId"`
	CustomerID      string           `json:"customerId"`
	SubscriptionID  string           `json:"subscriptionId,omitempty"`
	EnrolledAt      time.Time        `json:"enrolledAt"`
	Status          EnrollmentStatus `json:"status"`
}
