package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/md-rashed-zaman/costcalc/libs/httpx"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/pricing"
)

type calculateRequest struct {
	Items json.RawMessage `json:"items"`
}

// Calculate quotes the selected items. Anything but a JSON array under "items" is
// rejected before pricing.
func Calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	raw := bytes.TrimSpace(req.Items)
	if len(raw) == 0 || raw[0] != '[' {
		httpx.WriteError(w, http.StatusBadRequest, "items must be an array")
		return
	}

	var items []pricing.PricedItem
	if err := json.Unmarshal(raw, &items); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "items must be an array of objects with a numeric price")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pricing.Calculate(items))
}
