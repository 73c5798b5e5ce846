package payroll

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/xuri/excelize/v2"

	"github.com/felixonline247/opolo-cbt-app/internal/auth"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
	"github.com/felixonline247/opolo-cbt-app/internal/transport"
	"github.com/felixonline247/opolo-cbt-app/pkg/logger"
)

type ServiceAPI interface {
	ListPeriodCompensation(period Period, perms permission.Set) ([]CompensationRow, error)
	Disburse(staffID int64, period Period, perms permission.Set) (*Payout, error)
	ConfigureStrategy(staffID int64, strategy Strategy, perms permission.Set) error
	PayoutHistory(staffID int64, perms permission.Set) ([]*Payout, error)
	PeriodReport(period Period, perms permission.Set) (*excelize.File, error)
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

// periodFromQuery reads ?period=YYYY-MM, defaulting to the current month.
func periodFromQuery(r *http.Request) (Period, error) {
	label := r.URL.Query().Get("period")
	if label == "" {
		return CurrentPeriod(time.Now().UTC()), nil
	}
	return ParsePeriod(label)
}

func (h *Handler) GetPeriodCompensation(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("GetPeriodCompensation: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	perms, err := user.Permissions()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	period, err := periodFromQuery(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rows, err := h.Service.ListPeriodCompensation(period, perms)
	if err != nil {
		h.Logger.Error("GetPeriodCompensation: service error", "error", err, "period", period.Label())
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"period": period.Label(),
		"rows":   rows,
	})
}

func (h *Handler) DisbursePayout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("DisbursePayout: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	perms, err := user.Permissions()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	staffID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.Logger.Error("DisbursePayout: invalid staff ID", "id", chi.URLParam(r, "id"))
		h.WriteError(w, http.StatusBadRequest, "invalid staff ID")
		return
	}

	var dto DisburseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("DisbursePayout: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	period, err := dto.Validate()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	payout, err := h.Service.Disburse(staffID, period, perms)
	if err != nil {
		h.Logger.Error("DisbursePayout: service error", "error", err, "staff_id", staffID, "period", period.Label())
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("DisbursePayout: payout recorded",
		"payout_id", payout.ID,
		"staff_id", payout.StaffID,
		"period", payout.Period,
		"amount", payout.Amount)

	h.WriteJSON(w, http.StatusCreated, payout)
}

func (h *Handler) UpdateStrategy(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("UpdateStrategy: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	perms, err := user.Permissions()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	staffID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid staff ID")
		return
	}

	var dto StrategyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateStrategy: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	strategy, err := dto.Validate()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.ConfigureStrategy(staffID, strategy, perms); err != nil {
		h.Logger.Error("UpdateStrategy: service error", "error", err, "staff_id", staffID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) GetPayoutHistory(w http.ResponseWriter, r *http.Request) {
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

	staffID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid staff ID")
		return
	}

	payouts, err := h.Service.PayoutHistory(staffID, perms)
	if err != nil {
		h.Logger.Error("GetPayoutHistory: service error", "error", err, "staff_id", staffID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, payouts)
}

func (h *Handler) DownloadPeriodReport(w http.ResponseWriter, r *http.Request) {
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

	period, err := periodFromQuery(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	f, err := h.Service.PeriodReport(period, perms)
	if err != nil {
		h.Logger.Error("DownloadPeriodReport: service error", "error", err, "period", period.Label())
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payroll-%s.xlsx", period.Label()))
	if _, err := f.WriteTo(w); err != nil {
		h.Logger.Error("DownloadPeriodReport: failed to stream workbook", "error", err)
	}
}
