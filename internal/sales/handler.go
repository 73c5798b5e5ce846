package sales

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/felixonline247/opolo-cbt-app/internal/auth"
	"github.com/felixonline247/opolo-cbt-app/internal/payroll"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
	"github.com/felixonline247/opolo-cbt-app/internal/transport"
	"github.com/felixonline247/opolo-cbt-app/pkg/logger"
)

type ServiceAPI interface {
	CreateSale(dto *CreateSaleDTO, creatorID int64, perms permission.Set) (*Sale, error)
	GetSale(id int64, perms permission.Set) (*Sale, error)
	ListSales(filter ListFilter, perms permission.Set) ([]*Sale, error)
	UpdateSale(id int64, dto *UpdateSaleDTO, perms permission.Set) (*Sale, error)
	DeleteSale(id int64, perms permission.Set) error
	PerformanceSummary(period payroll.Period, perms permission.Set) ([]StaffPerformance, error)
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

func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateSale: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	perms, err := user.Permissions()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto CreateSaleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateSale: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sale, err := h.Service.CreateSale(&dto, user.ID, perms)
	if err != nil {
		h.Logger.Error("CreateSale: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, sale)
}

func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
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
		h.WriteError(w, http.StatusBadRequest, "invalid sale ID")
		return
	}

	sale, err := h.Service.GetSale(id, perms)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sale)
}

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
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

	filter := ListFilter{Limit: 20}

	if staffIDStr := r.URL.Query().Get("staff_id"); staffIDStr != "" {
		if id, err := strconv.ParseInt(staffIDStr, 10, 64); err == nil {
			filter.StaffID = id
		}
	}
	if periodStr := r.URL.Query().Get("period"); periodStr != "" {
		period, err := payroll.ParsePeriod(periodStr)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		filter.From, filter.To = period.Bounds()
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			filter.Limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
		}
	}

	list, err := h.Service.ListSales(filter, perms)
	if err != nil {
		h.Logger.Error("ListSales: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) UpdateSale(w http.ResponseWriter, r *http.Request) {
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
		h.WriteError(w, http.StatusBadRequest, "invalid sale ID")
		return
	}

	var dto UpdateSaleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateSale: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sale, err := h.Service.UpdateSale(id, &dto, perms)
	if err != nil {
		h.Logger.Error("UpdateSale: service error", "error", err, "sale_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sale)
}

func (h *Handler) DeleteSale(w http.ResponseWriter, r *http.Request) {
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
		h.WriteError(w, http.StatusBadRequest, "invalid sale ID")
		return
	}

	if err := h.Service.DeleteSale(id, perms); err != nil {
		h.Logger.Error("DeleteSale: service error", "error", err, "sale_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) GetPerformanceSummary(w http.ResponseWriter, r *http.Request) {
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

	period := payroll.CurrentPeriod(time.Now().UTC())
	if periodStr := r.URL.Query().Get("period"); periodStr != "" {
		period, err = payroll.ParsePeriod(periodStr)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
	}

	summary, err := h.Service.PerformanceSummary(period, perms)
	if err != nil {
		h.Logger.Error("GetPerformanceSummary: service error", "error", err, "period", period.Label())
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"period": period.Label(),
		"staff":  summary,
	})
}
