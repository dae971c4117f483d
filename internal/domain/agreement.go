package domain

import "time"

// Agreement é o registro do aceite dos termos feito pelo cliente antes do checkout.
// Uma vez criado, nunca é alterado nem removido.
type Agreement struct {
	ID                string    `json:"id"`
	Course            string    `json:"course"`
	PaymentPlan       string    `json:"paymentPlan"`
	CustomerName      string    `json:"customerName"`
	CustomerEmail     string    `json:"customerEmail"`
	AgreementAccepted bool      `json:"agreementAccepted"`
	Timestamp         time.Time `json:"timestamp"`
	IPAddress         string    `json:"ipAddress"`
	UserAgent         string    `json:"userAgent"`

	// Fotografia do catálogo de preços vigente no momento do aceite.
	SessionData SessionSnapshot `json:"sessionData"`
}

type SessionSnapshot struct {
	CourseSlug string       `json:"courseSlug"`
	PriceIDs   PriceCatalog `json:"priceIds"`
}
