package payments

import (
	"net/http"

	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/kurier-app/kurier/internal/authz"
	"github.com/kurier-app/kurier/internal/platform/httpx"
	"github.com/kurier-app/kurier/internal/shared"
)

// Handler exposes the payment endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	gate     authz.Middleware
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, gate authz.Middleware) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		gate:     gate,
	}
}

// Create handles POST /payments. Domain outcomes ride in the body; only
// malformed input becomes a transport error.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if p == nil {
		httpx.RespondError(w, shared.ErrForbidden)
		return
	}

	var req CreatePaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	result := h.service.Create(r.Context(), p, req)
	status := http.StatusOK
	if result.OK {
		status = http.StatusCreated
	}
	httpx.JSON(w, status, result)
}

// List handles GET /payments for the caller's own ledger.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if p == nil {
		httpx.RespondError(w, shared.ErrForbidden)
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.List(r.Context(), p))
}
