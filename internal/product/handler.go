package product

import (
	"errors"
	"net/http"
	"strconv"

	"chandra-dukan-be/internal/httpx"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the public catalog endpoints. Admin mutations are mounted
// separately behind the admin middleware in cmd/server.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{productID}", h.get)
}

func (h *Handler) AdminRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Put("/{productID}", h.update)
	r.Delete("/{productID}", h.deactivate)
	r.Put("/{productID}/stock", h.adjustStock)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := ListOptions{
		InStock:         q.Get("in_stock") == "true",
		IncludeInactive: q.Get("include_inactive") == "true",
	}

	if v := q.Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		opts.CategoryID = &id
	}
	if v := q.Get("search"); v != "" {
		opts.Search = &v
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			opts.Limit = int32(n)
		}
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			opts.Page = int32(n)
		}
	}

	products, total, err := h.svc.List(r.Context(), opts)
	if err != nil {
		httpx.Internal(w, r, err)
		return
	}

	httpx.OK(w, map[string]any{
		"products": products,
		"total":    total,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, p)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.Created(w, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var input UpdateInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, p)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.svc.Deactivate(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, nil)
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var body struct {
		Delta int `json:"delta"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.AdjustStock(r.Context(), id, body.Delta); err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.OK(w, nil)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		httpx.FailBilingual(w, http.StatusNotFound, "product not found", "उत्पाद नहीं मिला")
	case errors.Is(err, ErrInsufficientStock):
		httpx.FailBilingual(w, http.StatusConflict, "insufficient stock", "पर्याप्त स्टॉक नहीं है")
	case errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrInvalidPrice), errors.Is(err, ErrNameRequired):
		httpx.Fail(w, http.StatusBadRequest, err.Error())
	default:
		httpx.Internal(w, r, err)
	}
}
