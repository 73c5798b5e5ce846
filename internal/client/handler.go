package client

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/felixonline247/opolo-cbt-app/internal/auth"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
	"github.com/felixonline247/opolo-cbt-app/internal/transport"
	"github.com/felixonline247/opolo-cbt-app/pkg/logger"
)

type ServiceAPI interface {
	CreateClient(dto *CreateClientDTO, perms permission.Set) (*Client, error)
	ListClients(search string) ([]*Client, error)
	GetClient(id int64) (*Client, error)
	DeleteClient(id int64, perms permission.Set) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	perms, err := user.Permissions()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto CreateClientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateClient: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateClient(&dto, perms)
	if err != nil {
		h.Logger.Error("CreateClient: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	clients, err := h.Service.ListClients(r.URL.Query().Get("search"))
	if err != nil {
		h.Logger.Error("ListClients: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, clients)
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid client ID")
		return
	}

	got, err := h.Service.GetClient(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, got)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	perms, err := user.Permissions()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid client ID")
		return
	}

	if err := h.Service.DeleteClient(id, perms); err != nil {
		h.Logger.Error("DeleteClient: service error", "error", err, "client_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
