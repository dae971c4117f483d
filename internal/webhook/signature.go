// Package webhook verifica a assinatura dos eventos enviados pela Stripe.
//
// A verificação do cabeçalho Stripe-Signature fica com o pacote webhook da stripe-go;
// aqui só guardamos o segredo do endpoint e a tolerância configurada.
package webhook

import (
	"errors"
	"strings"
	"time"

	stripewebhook "github.com/stripe/stripe-go/v78/webhook"
)

// Valor de exemplo que aparecia na configuração antiga. Nunca é aceito.
const PlaceholderSecret = "whsec_your_webhook_secret_here"

var ErrInsecureSecret = errors.New("segredo do webhook vazio ou de exemplo")

// Verify aceita o payload se alguma das assinaturas v1 conferir.
// Com tolerance 0 a idade do timestamp não é verificada.
func Verify(payload []byte, header, secret string, tolerance time.Duration) error {
	if tolerance <= 0 {
		return stripewebhook.ValidatePayloadIgnoringTolerance(payload, header, secret)
	}
	return stripewebhook.ValidatePayloadWithTolerance(payload, header, secret, tolerance)
}

// Verifier guarda o segredo do endpoint.
type Verifier struct {
	secret    string
	tolerance time.Duration
}

// NewVerifier recusa segredos vazios ou o valor de exemplo.
func NewVerifier(secret string, tolerance time.Duration) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" || secret == PlaceholderSecret {
		return nil, ErrInsecureSecret
	}
	return &Verifier{secret: secret, tolerance: tolerance}, nil
}

func (v *Verifier) Verify(payload []byte, header string) error {
	return Verify(payload, header, v.secret, v.tolerance)
}
