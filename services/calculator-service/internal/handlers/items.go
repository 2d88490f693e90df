package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/md-rashed-zaman/costcalc/libs/httpx"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/model"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/storage"
	"github.com/shopspring/decimal"
)

type ItemStore interface {
	List(ctx context.Context) ([]model.Item, error)
	Get(ctx context.Context, id int64) (model.Item, error)
	Create(ctx context.Context, item model.Item) (int64, error)
	Update(ctx context.Context, item model.Item) error
	Delete(ctx context.Context, id int64) error
}

type ItemHandler struct {
	store  ItemStore
	logger *slog.Logger
}

func NewItemHandler(store ItemStore, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{store: store, logger: logger}
}

type itemRequest struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

func (req itemRequest) toItem() (model.Item, string) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Price == nil {
		return model.Item{}, "name and price are required"
	}
	if problem := model.CheckAmount(*req.Price); problem != "" {
		return model.Item{}, "price " + problem
	}
	return model.Item{Name: name, Price: *req.Price, Description: req.Description}, ""
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		serverError(w, r, h.logger, "error fetching items", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := h.store.Get(r.Context(), id)
	if storage.IsNotFound(err) {
		httpx.WriteError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		serverError(w, r, h.logger, "error fetching item", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	item, problem := req.toItem()
	if problem != "" {
		httpx.WriteError(w, http.StatusBadRequest, problem)
		return
	}

	id, err := h.store.Create(r.Context(), item)
	if err != nil {
		serverError(w, r, h.logger, "error creating item", err)
		return
	}
	item.ID = id
	httpx.WriteJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	item, problem := req.toItem()
	if problem != "" {
		httpx.WriteError(w, http.StatusBadRequest, problem)
		return
	}
	item.ID = id

	err := h.store.Update(r.Context(), item)
	if storage.IsNotFound(err) {
		httpx.WriteError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		serverError(w, r, h.logger, "error updating item", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	err := h.store.Delete(r.Context(), id)
	if storage.IsNotFound(err) {
		httpx.WriteError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		serverError(w, r, h.logger, "error deleting item", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "item deleted"})
}
