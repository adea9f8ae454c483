package handlers

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ecommerce-dashboard/internal/config"
	"ecommerce-dashboard/internal/dataset"
	"ecommerce-dashboard/internal/errors"
	"ecommerce-dashboard/internal/observability"
	"ecommerce-dashboard/internal/services"
)

const cacheControl = "public, max-age=300"

type APIHandlers struct {
	dashboard *services.Dashboard
	defaults  config.DataConfig
	logger    *slog.Logger
}

func NewAPIHandlers(dashboard *services.Dashboard, defaults config.DataConfig, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		dashboard: dashboard,
		defaults:  defaults,
		logger:    logger,
	}
}

func (h *APIHandlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	year, comparison, months, err := h.periodParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	overview, oerr := h.dashboard.Overview(year, comparison, months)
	if oerr != nil {
		h.writeError(w, r, oerr)
		return
	}

	errors.WriteSuccessWithHeaders(w, overview, map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	year, _, months, err := h.periodParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	trend, terr := h.dashboard.MonthlyTrend(year, months)
	if terr != nil {
		h.writeError(w, r, terr)
		return
	}

	errors.WriteSuccessWithHeaders(w, trend, map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleCategories(w http.ResponseWriter, r *http.Request) {
	year, _, months, err := h.periodParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	categories, cerr := h.dashboard.Categories(year, months)
	if cerr != nil {
		h.writeError(w, r, cerr)
		return
	}

	errors.WriteSuccessWithHeaders(w, categories, map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleStates(w http.ResponseWriter, r *http.Request) {
	year, _, months, err := h.periodParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	states, serr := h.dashboard.States(year, months)
	if serr != nil {
		h.writeError(w, r, serr)
		return
	}

	errors.WriteSuccessWithHeaders(w, states, map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleSatisfaction(w http.ResponseWriter, r *http.Request) {
	year, _, months, err := h.periodParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	satisfaction, serr := h.dashboard.Satisfaction(year, months)
	if serr != nil {
		h.writeError(w, r, serr)
		return
	}

	errors.WriteSuccessWithHeaders(w, satisfaction, map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleStatusDistribution(w http.ResponseWriter, r *http.Request) {
	year, _, _, err := h.periodParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	distribution, derr := h.dashboard.StatusDistribution(year)
	if derr != nil {
		h.writeError(w, r, derr)
		return
	}

	errors.WriteSuccessWithHeaders(w, distribution, map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	year, comparison, _, err := h.periodParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	summary, serr := h.dashboard.Summary(year, comparison)
	if serr != nil {
		h.writeError(w, r, serr)
		return
	}

	errors.WriteSuccess(w, map[string]string{"summary": summary})
}

func (h *APIHandlers) HandleYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.dashboard.Years()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, years, map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dashboard.Stats())
}

// periodParams reads year, comparison and months query parameters, falling
// back to the configured defaults. Malformed values are a client error, not a
// silent fallback.
func (h *APIHandlers) periodParams(r *http.Request) (year, comparison int, months []int, appErr *errors.AppError) {
	q := r.URL.Query()

	year = h.defaults.DefaultYear
	if raw := q.Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, nil, errors.BadRequest("year must be an integer")
		}
		year = v
	}

	comparison = h.defaults.ComparisonYear
	if raw := q.Get("comparison"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, nil, errors.BadRequest("comparison must be an integer")
		}
		comparison = v
	}

	if raw := q.Get("months"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			m, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || m < 1 || m > 12 {
				return 0, 0, nil, errors.BadRequest("months must be integers between 1 and 12")
			}
			months = append(months, m)
		}
	}

	return year, comparison, months, nil
}

func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := observability.GetRequestID(r.Context())

	if appErr, ok := err.(*errors.AppError); ok {
		errors.WriteError(w, h.logger, appErr, requestID)
		return
	}
	if stderrors.Is(err, dataset.ErrTableMissing) {
		errors.WriteError(w, h.logger, errors.ServiceUnavailableWrap(err, err.Error()), requestID)
		return
	}
	errors.WriteError(w, h.logger, errors.InternalWrap(err, "metric computation failed"), requestID)
}
