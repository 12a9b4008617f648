package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sobrinN/DASH.rh/internal"
	"github.com/sobrinN/DASH.rh/internal/transport"
	"github.com/sobrinN/DASH.rh/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// SignUp creates a user and its company and returns a fresh session.
// POST /signup
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var dto SignUpDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.Service.SignUp(dto)
	if err != nil {
		if vErr, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusCreated, session.ToAuthResponse())
}

// SignIn authenticates credentials.
// POST /signin
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var dto SignInDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.Service.SignIn(dto)
	if err != nil {
		if vErr, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, session.ToAuthResponse())
}

// Session reports the session behind the presented token. An absent or
// invalid token yields {"session": null} with 200, not an error status, so
// clients can probe without triggering auth failures.
// GET /session
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteData(w, http.StatusOK, SessionResponse{Session: nil})
		return
	}

	session, err := h.Service.ResolveSession(token)
	if err != nil {
		h.WriteData(w, http.StatusOK, SessionResponse{Session: nil})
		return
	}

	h.WriteData(w, http.StatusOK, session.ToSessionResponse())
}

// SignOut acknowledges client-side token discard. Tokens are stateless, so
// there is nothing to revoke server-side.
// POST /signout
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.WriteData(w, http.StatusOK, nil)
}

// UpdateCompanyPlan switches the caller's company plan tier.
// PUT /company/plan
func (h *Handler) UpdateCompanyPlan(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdatePlanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comp, err := h.Service.ChangeCompanyPlan(session.User.ID, dto.Plan)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, comp)
}

// UpdateCompanyName renames the caller's company.
// PUT /company/name
func (h *Handler) UpdateCompanyName(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateNameDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comp, err := h.Service.RenameCompany(session.User.ID, dto.Name)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, comp)
}

// AuthMiddleware resolves the bearer token into a session and binds it to the
// request context. Every tenant-scoped route sits behind this middleware and
// reads its company exclusively from the resolved session, never from
// request input.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		session, err := h.Service.ResolveSession(token)
		if err != nil {
			if appErr, ok := internal.IsAppError(err); ok {
				h.WriteAppError(w, appErr)
				return
			}
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := ContextWithSession(r.Context(), session)
		ctx = logger.With(ctx, "user_id", session.User.ID, "company_id", session.Company.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
