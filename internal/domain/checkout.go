package domain

type SessionMode string

const (
	SessionModeOneTime   SessionMode = "one-time"
	SessionModeRecurring SessionMode = "recurring"
)

type LineItem struct {
	Price    string `json:"price"`
	Quantity int64  `json:"quantity"`
}

type PaymentIntentData struct {
	// "off_session" apenas no plano mensal; nulo no pagamento à vista.
	SetupFutureUsage *string `json:"setup_future_usage"`
}

// SessionConfig é a configuração que seria enviada para a API de Checkout hospedado.
type SessionConfig struct {
	PaymentPlan               PaymentPlan       `json:"payment_plan"`
	PaymentMethodTypes        []string          `json:"payment_method_types"`
	LineItems                 []LineItem        `json:"line_items"`
	Mode                      SessionMode       `json:"mode"`
	SuccessURL                string            `json:"success_url"`
	CancelURL                 string            `json:"cancel_url"`
	Metadata                  map[string]string `json:"metadata"`
	AllowPromotionCodes       bool              `json:"allow_promotion_codes"`
	BillingAddressCollection  string            `json:"billing_address_collection"`
	ShippingAddressCollection *string           `json:"shipping_address_collection"`
	CustomerCreation          string            `json:"customer_creation"`
	PaymentIntentData         PaymentIntentData `json:"payment_intent_data"`
}

// OffSession indica se a configuração autoriza cobranças futuras sem o cliente presente.
func (c SessionConfig) OffSession() bool {
	return c.PaymentIntentData.SetupFutureUsage != nil && *c.PaymentIntentData.SetupFutureUsage == "off_session"
}

// CheckoutSession é o resultado devolvido ao frontend.
type CheckoutSession struct {
	CheckoutURL string        `json:"checkoutUrl"`
	SessionID   string        `json:"sessionId"`
	Config      SessionConfig `json:"config"`
}
