package janseva

import (
	"errors"
	"net/http"
	"strconv"

	"chandra-dukan-be/internal/httpx"
	"chandra-dukan-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// PublicRoutes exposes the service catalog without authentication.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/services", h.listServices)
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/applications", h.apply)
	r.Get("/applications", h.listApplications)
}

func (h *Handler) AdminRoutes(r chi.Router) {
	r.Put("/applications/{applicationID}/status", h.updateStatus)
}

func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.svc.ListServices(r.Context())
	if err != nil {
		httpx.Internal(w, r, err)
		return
	}
	httpx.OK(w, services)
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var input ApplyInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	app, err := h.svc.Apply(r.Context(), userID, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.Created(w, app)
}

func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var limit, page int32
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			limit = int32(n)
		}
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			page = int32(n)
		}
	}

	apps, total, err := h.svc.ListApplications(r.Context(), limit, page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, map[string]any{
		"applications": apps,
		"total":        total,
	})
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status ApplicationStatus `json:"status"`
		Note   *string           `json:"note"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !body.Status.Valid() {
		httpx.Fail(w, http.StatusBadRequest, "invalid application status")
		return
	}

	app, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "applicationID"), body.Status, body.Note)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, app)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrServiceNotFound), errors.Is(err, ErrApplicationNotFound):
		httpx.Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrApplicantIncomplete):
		httpx.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidTransition):
		httpx.Fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrForbidden):
		httpx.Fail(w, http.StatusForbidden, "not allowed")
	default:
		httpx.Internal(w, r, err)
	}
}
