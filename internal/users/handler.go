package users

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/kurier-app/kurier/internal/auth"
	"github.com/kurier-app/kurier/internal/authz"
	"github.com/kurier-app/kurier/internal/platform/httpx"
	"github.com/kurier-app/kurier/internal/shared"
)

// Handler exposes the account endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	tokens   *auth.TokenService
	validate *validator.Validate
	gate     authz.Middleware
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, tokens *auth.TokenService, gate authz.Middleware) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		tokens:   tokens,
		validate: validator.New(),
		gate:     gate,
	}
}

// Register handles POST /users.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	if _, err := h.service.Register(r.Context(), req.Email, req.Password, authz.Role(req.Role)); err != nil {
		if errors.Is(err, shared.ErrDuplicateEmail) {
			httpx.JSON(w, http.StatusOK, CreateAccountResponse{OK: false, Error: strptr("There is a user with that email already")})
			return
		}
		h.logger.Error("register account", slog.Any("error", err))
		httpx.JSON(w, http.StatusOK, CreateAccountResponse{OK: false, Error: strptr("Could not create account")})
		return
	}
	httpx.JSON(w, http.StatusCreated, CreateAccountResponse{OK: true})
}

// Login handles POST /users/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.JSON(w, http.StatusOK, LoginResponse{OK: false, Error: strptr("Wrong password")})
		return
	}
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("issue token", slog.Any("error", err))
		httpx.JSON(w, http.StatusOK, LoginResponse{OK: false, Error: strptr("Could not log user in")})
		return
	}
	httpx.JSON(w, http.StatusOK, LoginResponse{OK: true, Token: token})
}

// Me handles GET /users/me for the authenticated principal.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p := authz.PrincipalFromContext(r.Context())
	if p == nil {
		httpx.RespondError(w, shared.ErrForbidden)
		return
	}
	user, err := h.service.Get(r.Context(), p.ID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func strptr(s string) *string {
	return &s
}
