package config

import (
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/willjrcristo/course-checkout/internal/domain"
)

type Config struct {
	HTTP    HTTPServer
	Storage Storage
	Stripe  Stripe `envPrefix:"STRIPE_"`
	Prices  Prices `envPrefix:"PRICE_"`
	Course  Course
}

type HTTPServer struct {
	Addr    string `env:"HTTP_ADDR" envDefault:":8080"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`
}

type Storage struct {
	Driver     string `env:"STORAGE_DRIVER" envDefault:"memory"` // memory | sqlite
	SQLitePath string `env:"SQLITE_PATH" envDefault:"./course-checkout.db"`
}

type Stripe struct {
	// Sem a chave secreta as sessões de checkout e o encerramento de assinaturas
	// ficam apenas registrados em log.
	SecretKey        string        `env:"SECRET_KEY"`
	WebhookSecret    string        `env:"WEBHOOK_SECRET"`
	WebhookTolerance time.Duration `env:"WEBHOOK_TOLERANCE" envDefault:"0s"`
}

type Prices struct {
	Full      string `env:"FULL" envDefault:"price_1S5j8SHdhxmQz9FjYDWLFpyd"`
	Down      string `env:"DOWN" envDefault:"price_1S5j8SHdhxmQz9FjK5KQc0HG"`
	Recurring string `env:"RECURRING" envDefault:"price_1S5j8SHdhxmQz9FjxZR4DjJS"`
}

type Course struct {
	DefaultCourseID        string `env:"DEFAULT_COURSE_ID" envDefault:"soc-analyst-foundations"`
	DefaultPaymentPlan     string `env:"DEFAULT_PAYMENT_PLAN" envDefault:"full"`
	PortalURL              string `env:"COURSE_PORTAL_URL" envDefault:"https://student.techstepfoundation.org"`
	InstallmentCount       int    `env:"INSTALLMENT_COUNT" envDefault:"6"`
	InstallmentCountSource string `env:"INSTALLMENT_COUNT_SOURCE" envDefault:"attempt_count"` // attempt_count | paid_invoices
}

// Load lê a configuração das variáveis de ambiente.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (p Prices) Catalog() domain.PriceCatalog {
	return domain.PriceCatalog{
		Full:      p.Full,
		Down:      p.Down,
		Recurring: p.Recurring,
	}
}
