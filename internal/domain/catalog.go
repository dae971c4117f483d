package domain

// PriceCatalog mapeia cada componente do plano para o Price ID da Stripe.
// É carregado da configuração na inicialização e não muda depois disso.
type PriceCatalog struct {
	Full      string `json:"full"`
	Down      string `json:"down"`
	Recurring string `json:"recurring"`
}

type PaymentPlan string

const (
	PaymentPlanFull    PaymentPlan = "full"
	PaymentPlanMonthly PaymentPlan = "monthly"
)

