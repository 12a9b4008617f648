package talentrequest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/sobrinN/DASH.rh/internal/auth"
	"github.com/sobrinN/DASH.rh/internal/company"
	"github.com/sobrinN/DASH.rh/internal/transport"
	"github.com/sobrinN/DASH.rh/pkg/logger"
)

type ServiceAPI interface {
	ListForCompany(comp *company.Company) ([]*TalentRequest, error)
	Create(comp *company.Company, dto CreateTalentRequestDTO) (*TalentRequest, error)
	UpdateStatus(comp *company.Company, id string, dto UpdateTalentRequestDTO) (*TalentRequest, error)
	Delete(comp *company.Company, id string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// GET /talent-requests
func (h *Handler) ListTalentRequests(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requests, err := h.Service.ListForCompany(session.Company)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, requests)
}

// POST /talent-requests
func (h *Handler) CreateTalentRequest(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateTalentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tr, err := h.Service.Create(session.Company, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusCreated, tr)
}

// PUT /talent-requests/{id}
func (h *Handler) UpdateTalentRequest(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")

	var dto UpdateTalentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tr, err := h.Service.UpdateStatus(session.Company, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, tr)
}

// DELETE /talent-requests/{id}
func (h *Handler) DeleteTalentRequest(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(session.Company, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, nil)
}
