package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stripe/stripe-go/v78"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/willjrcristo/course-checkout/docs" // Documentação Swagger

	"github.com/willjrcristo/course-checkout/internal/collaborator"
	"github.com/willjrcristo/course-checkout/internal/config"
	httphandler "github.com/willjrcristo/course-checkout/internal/handler/http"
	"github.com/willjrcristo/course-checkout/internal/repository"
	"github.com/willjrcristo/course-checkout/internal/service"
	"github.com/willjrcristo/course-checkout/internal/webhook"
)

// @title           API de Checkout de Cursos
// @version         1.0
// @description     Aceite dos termos, criação de sessões de Checkout e webhooks da Stripe para matrícula nos cursos.
//
// @contact.name   Will Cristo
// @contact.url    https://linkedin.com/in/willjrcristo
// @contact.email  willjrcristo@gmail.com
//
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
//
// @host      localhost:8080
// @BasePath  /
func main() {
	// --- 1. CONFIGURAÇÃO DO LOGGER ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	slog.Info("🚀 Iniciando a API de Checkout...")

	// --- 2. CONFIGURAÇÃO ---
	if err := godotenv.Load(); err != nil {
		slog.Info("Arquivo .env não encontrado, usando apenas variáveis de ambiente")
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Erro ao ler a configuração", "error", err)
		os.Exit(1)
	}

	// Sem segredo válido nenhum webhook seria autenticado, então nem sobe.
	verifier, err := webhook.NewVerifier(cfg.Stripe.WebhookSecret, cfg.Stripe.WebhookTolerance)
	if err != nil {
		slog.Error("STRIPE_WEBHOOK_SECRET inválido", "error", err)
		os.Exit(1)
	}

	// --- 3. ARMAZENAMENTO ---
	var (
		agreements  repository.AgreementRepository
		enrollments repository.EnrollmentRepository
		ledger      repository.InstallmentLedger
	)
	switch cfg.Storage.Driver {
	case "sqlite":
		var db *sql.DB
		db, err = repository.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			slog.Error("Erro ao inicializar o banco de dados", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		agreements = repository.NewSQLiteAgreementRepository(db)
		enrollments = repository.NewSQLiteEnrollmentRepository(db)
		ledger = repository.NewSQLiteInstallmentLedger(db)
		slog.Info("💾 Conexão com o banco de dados estabelecida com sucesso.", "path", cfg.Storage.SQLitePath)
	case "memory":
		store := repository.NewMemoryStore()
		agreements, enrollments, ledger = store.Agreements(), store.Enrollments(), store.Installments()
		slog.Warn("Armazenamento em memória: os dados somem ao reiniciar")
	default:
		slog.Error("STORAGE_DRIVER desconhecido", "driver", cfg.Storage.Driver)
		os.Exit(1)
	}

	// --- 4. COLABORADORES EXTERNOS ---
	var (
		sessions  collaborator.SessionCreator        = collaborator.NewPlaceholderSessionCreator()
		scheduler collaborator.SubscriptionScheduler = collaborator.LogScheduler{}
	)
	if cfg.Stripe.SecretKey != "" {
		stripe.Key = cfg.Stripe.SecretKey
		sessions = collaborator.NewStripeSessionCreator()
		scheduler = collaborator.NewStripeScheduler()
		slog.Info("Integração com a API da Stripe ativada")
	} else {
		slog.Warn("STRIPE_SECRET_KEY ausente: sessões de checkout fictícias")
	}

	// --- 5. INJEÇÃO DE DEPENDÊNCIAS (WIRING) ---
	// Repository -> Service -> Handler
	catalog := cfg.Prices.Catalog()
	agreementService := service.NewAgreementService(agreements, catalog, cfg.Course.DefaultCourseID)
	checkoutService := service.NewCheckoutService(catalog, sessions, cfg.HTTP.BaseURL)
	webhookService, err := service.NewWebhookService(verifier, service.Collaborators{
		Enroller:  collaborator.NewRepositoryEnroller(enrollments),
		Notifier:  collaborator.NewLogNotifier(cfg.Course.PortalURL),
		Access:    collaborator.NewRepositoryAccessManager(enrollments),
		Scheduler: scheduler,
		Ledger:    ledger,
	}, service.WebhookPolicy{
		DefaultCourseID:        cfg.Course.DefaultCourseID,
		DefaultPaymentPlan:     cfg.Course.DefaultPaymentPlan,
		InstallmentCount:       cfg.Course.InstallmentCount,
		InstallmentCountSource: cfg.Course.InstallmentCountSource,
	})
	if err != nil {
		slog.Error("Configuração do webhook inválida", "error", err)
		os.Exit(1)
	}
	slog.Info("Camada de serviço inicializada")

	checkoutHandler := httphandler.NewCheckoutHandler(agreementService, checkoutService)
	webhookHandler := httphandler.NewStripeWebhookHandler(webhookService)

	// --- 6. CONFIGURAÇÃO DO ROTEADOR E ROTAS ---
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(prometheusMiddleware)
	r.Use(middleware.Timeout(60 * time.Second))

	// Rota de Health Check
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("API de Checkout está no ar! 🚀"))
	})

	r.Handle("/metrics", promhttp.Handler())

	// A URL será http://localhost:8080/swagger/index.html
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Mount("/api", httphandler.Routes(checkoutHandler, webhookHandler))
	slog.Info("🛰️  Rotas de /api registradas")

	// --- 7. INICIALIZAÇÃO DO SERVIDOR HTTP ---
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("✅ Servidor pronto para receber requisições", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Erro ao iniciar o servidor", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	slog.Info("Sinal recebido, encerrando o servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Erro ao encerrar o servidor", "error", err)
	}
}
