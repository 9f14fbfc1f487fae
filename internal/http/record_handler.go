package httpapi

import (
	"net/http"

	"github.com/kaigoApp/kaigo-app/internal/service"

	"go.uber.org/zap"
)

// RecordHandler 支援记录
type RecordHandler struct {
	records *service.RecordService
	logger  *zap.Logger
}

func NewRecordHandler(records *service.RecordService, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{records: records, logger: logger}
}

// POST /api/v1/records
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.SaveRecordRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		badRequest(w, "body", "invalid json")
		return
	}
	resp, err := h.records.Save(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

// GET /api/v1/records?resident_id=&date=
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	residentID := parseID(q.Get("resident_id"))
	if residentID == 0 {
		badRequest(w, "resident_id", "is required")
		return
	}
	items, err := h.records.ListActive(r.Context(), residentID, q.Get("date"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(items))
}

// GET /api/v1/records/{id}
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := parseID(r.PathValue("id"))
	if id == 0 {
		badRequest(w, "record_id", "invalid id")
		return
	}
	item, err := h.records.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(item))
}

// DELETE /api/v1/records/{id}
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseID(r.PathValue("id"))
	if id == 0 {
		badRequest(w, "record_id", "invalid id")
		return
	}
	if err := h.records.SoftDelete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"record_id": id, "deleted": true}))
}

// GET /api/v1/residents/{id}/latest-vitals
func (h *RecordHandler) LatestVitals(w http.ResponseWriter, r *http.Request) {
	id := parseID(r.PathValue("id"))
	if id == 0 {
		badRequest(w, "resident_id", "invalid id")
		return
	}
	resp, err := h.records.LatestVitals(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}
