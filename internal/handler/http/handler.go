package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/willjrcristo/course-checkout/internal/domain"
	"github.com/willjrcristo/course-checkout/internal/service"
)

// Os handlers dependem destas interfaces, não dos serviços concretos, para facilitar os testes.
type AgreementService interface {
	Record(ctx context.Context, in service.AgreementInput, meta service.ClientMeta) (string, error)
}

type CheckoutService interface {
	CreateSession(ctx context.Context, req service.CheckoutRequest, origin string) (domain.CheckoutSession, error)
}

type WebhookService interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) (service.DispatchResult, error)
}

// CheckoutHandler atende o formulário de aceite e o botão de compra.
type CheckoutHandler struct {
	agreements AgreementService
	checkout   CheckoutService
}

func NewCheckoutHandler(a AgreementService, c CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		agreements: a,
		checkout:   c,
	}
}

// StripeWebhookHandler recebe os eventos da Stripe.
type StripeWebhookHandler struct {
	service WebhookService
}

func NewStripeWebhookHandler(s WebhookService) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		service: s,
	}
}

// Routes define as rotas de /api. Qualquer método diferente de POST recebe 405.
func Routes(checkout *CheckoutHandler, webhook *StripeWebhookHandler) chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Post("/agreement/store", checkout.StoreAgreement)       // POST /api/agreement/store
	r.Post("/checkout/create", checkout.CreateCheckoutSession) // POST /api/checkout/create
	r.Post("/stripe/webhook", webhook.HandleStripeWebhook)     // POST /api/stripe/webhook

	return r
}

type agreementResponse struct {
	Success     bool   `json:"success"`
	AgreementID string `json:"agreementId"`
	Message     string `json:"message"`
}

// @Summary      Registra o aceite dos termos
// @Description  Valida e grava o aceite do cliente antes do checkout
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        agreement  body      service.AgreementInput  true  "Dados do aceite"
// @Success      200        {object}  agreementResponse
// @Failure      400        {object}  map[string]string
// @Failure      405        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /api/agreement/store [post]
func (h *CheckoutHandler) StoreAgreement(w http.ResponseWriter, r *http.Request) {
	var in service.AgreementInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	id, err := h.agreements.Record(r.Context(), in, service.ClientMeta{
		ForwardedFor: r.Header.Get("X-Forwarded-For"),
		RemoteAddr:   r.RemoteAddr,
		UserAgent:    r.UserAgent(),
	})
	if err != nil {
		respondWithServiceError(w, err, "Erro ao registrar o aceite")
		return
	}

	respondWithJSON(w, http.StatusOK, agreementResponse{
		Success:     true,
		AgreementID: id,
		Message:     "Aceite registrado com sucesso",
	})
}

// @Summary      Cria uma sessão de checkout
// @Description  Monta a configuração da sessão de Checkout para o plano escolhido
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request  body      service.CheckoutRequest  true  "Plano e curso"
// @Success      200      {object}  domain.CheckoutSession
// @Failure      400      {object}  map[string]string
// @Failure      405      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/checkout/create [post]
func (h *CheckoutHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	sess, err := h.checkout.CreateSession(r.Context(), req, r.Header.Get("Origin"))
	if err != nil {
		respondWithServiceError(w, err, "Erro ao criar sessão de checkout")
		return
	}

	respondWithJSON(w, http.StatusOK, sess)
}

// @Summary      Recebe eventos da Stripe
// @Description  Verifica o cabeçalho Stripe-Signature e processa o evento
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  true  "t=<timestamp>,v1=<assinatura>"
// @Success      200               {object}  map[string]bool
// @Failure      400               {object}  map[string]string
// @Failure      405               {object}  map[string]string
// @Failure      500               {object}  map[string]string
// @Router       /api/stripe/webhook [post]
func (h *StripeWebhookHandler) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(65536) // Limite de 64KB
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	// A assinatura é calculada sobre o corpo cru, então ele não pode ser decodificado antes.
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("Erro ao ler o corpo do webhook", "error", err)
		respondWithError(w, http.StatusBadRequest, "Erro ao ler corpo da requisição")
		return
	}

	signature := r.Header.Get("Stripe-Signature")

	if _, err := h.service.HandleWebhook(r.Context(), payload, signature); err != nil {
		respondWithServiceError(w, err, "Erro interno ao processar webhook")
		return
	}

	// Responda com 200 para a Stripe saber que recebemos o evento, mesmo que algum colaborador tenha falhado.
	respondWithJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// --- FUNÇÕES AUXILIARES ---

func respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, service.ErrAuthentication):
		respondWithError(w, http.StatusBadRequest, "Assinatura inválida")
	case errors.Is(err, service.ErrInvalidPayload):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("Erro inesperado", "error", err)
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	slog.Error("API Error", "code", code, "message", message)
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
