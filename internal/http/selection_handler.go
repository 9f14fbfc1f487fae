package httpapi

import (
	"net/http"

	"github.com/kaigoApp/kaigo-app/internal/store"

	"go.uber.org/zap"
)

const clientIDHeader = "X-Client-Id"

// SelectionHandler 画面最后选择状态（便利缓存）
type SelectionHandler struct {
	selections *store.SelectionStore
	logger     *zap.Logger
}

func NewSelectionHandler(selections *store.SelectionStore, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{selections: selections, logger: logger}
}

// GET /api/v1/selection
func (h *SelectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sel, err := h.selections.Load(r.Context(), r.Header.Get(clientIDHeader))
	if err != nil {
		h.logger.Warn("Failed to load selection", zap.Error(err))
		writeJSON(w, http.StatusOK, Ok(store.Selection{}))
		return
	}
	writeJSON(w, http.StatusOK, Ok(sel))
}

// PUT /api/v1/selection
// body: { unit_id?, resident_id?, date?, staff_name? }
func (h *SelectionHandler) Put(w http.ResponseWriter, r *http.Request) {
	var sel store.Selection
	if err := readBodyJSON(r, maxBodyBytes, &sel); err != nil {
		badRequest(w, "body", "invalid json")
		return
	}
	if err := h.selections.Save(r.Context(), r.Header.Get(clientIDHeader), sel); err != nil {
		h.logger.Warn("Failed to save selection", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("selection not saved"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(sel))
}
