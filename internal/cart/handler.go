package cart

import (
	"errors"
	"net/http"
	"strconv"

	"chandra-dukan-be/internal/httpx"
	"chandra-dukan-be/internal/product"
	"chandra-dukan-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Post("/items", h.setItem)
	r.Delete("/items/{productID}", h.removeItem)
	r.Delete("/", h.clear)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	summary, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.OK(w, summary)
}

func (h *Handler) setItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var body struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := h.svc.SetItem(r.Context(), userID, body.ProductID, body.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.OK(w, summary)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid product id")
		return
	}

	summary, err := h.svc.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.OK(w, summary)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.svc.Clear(r.Context(), userID); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.OK(w, nil)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrCartItemNotFound):
		httpx.Fail(w, http.StatusNotFound, "cart item not found")
	case errors.Is(err, product.ErrProductNotFound):
		httpx.FailBilingual(w, http.StatusNotFound, "product not found", "उत्पाद नहीं मिला")
	case errors.Is(err, product.ErrInsufficientStock):
		httpx.FailBilingual(w, http.StatusConflict, err.Error(), "पर्याप्त स्टॉक नहीं है")
	case errors.Is(err, product.ErrProductInactive):
		httpx.Fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidQuantity):
		httpx.Fail(w, http.StatusBadRequest, err.Error())
	default:
		httpx.Internal(w, r, err)
	}
}
