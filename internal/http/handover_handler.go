package httpapi

import (
	"net/http"

	"github.com/kaigoApp/kaigo-app/internal/service"

	"go.uber.org/zap"
)

// HandoverHandler 申し送り看板与确认标记
type HandoverHandler struct {
	handovers *service.HandoverService
	acks      *service.AcknowledgementService
	logger    *zap.Logger
}

func NewHandoverHandler(handovers *service.HandoverService, acks *service.AcknowledgementService, logger *zap.Logger) *HandoverHandler {
	return &HandoverHandler{handovers: handovers, acks: acks, logger: logger}
}

// POST /api/v1/handovers
// body: { unit_id, resident_id?, date, content, author_name }
func (h *HandoverHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req service.PostHandoverRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		badRequest(w, "body", "invalid json")
		return
	}
	id, err := h.handovers.Post(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"handover_id": id}))
}

// GET /api/v1/handovers?unit_id=&date=&viewer=&mark=
func (h *HandoverHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	unitID := parseID(q.Get("unit_id"))
	if unitID == 0 {
		badRequest(w, "unit_id", "is required")
		return
	}
	items, err := h.handovers.Board(r.Context(), unitID, q.Get("date"), q.Get("viewer"), q.Get("mark"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(items))
}

// DELETE /api/v1/handovers/{id}?confirm=true
// 两段式确认：没有 confirm=true 时不删除
func (h *HandoverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseID(r.PathValue("id"))
	if id == 0 {
		badRequest(w, "handover_id", "invalid id")
		return
	}
	if !parseBool(r.URL.Query().Get("confirm")) {
		badRequest(w, "confirm", "deletion must be confirmed with confirm=true")
		return
	}
	if err := h.handovers.SoftDelete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"handover_id": id, "deleted": true}))
}

// POST /api/v1/handovers/{id}/marks
// body: { person_name, mark_type? }
func (h *HandoverHandler) ToggleMark(w http.ResponseWriter, r *http.Request) {
	id := parseID(r.PathValue("id"))
	if id == 0 {
		badRequest(w, "handover_id", "invalid id")
		return
	}
	var req struct {
		PersonName string `json:"person_name"`
		MarkType   string `json:"mark_type"`
	}
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		badRequest(w, "body", "invalid json")
		return
	}
	res, err := h.acks.Toggle(r.Context(), id, req.PersonName, req.MarkType)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"handover_id": id, "result": res}))
}

// GET /api/v1/handovers/{id}/marks?mark=
func (h *HandoverHandler) ListMarks(w http.ResponseWriter, r *http.Request) {
	id := parseID(r.PathValue("id"))
	if id == 0 {
		badRequest(w, "handover_id", "invalid id")
		return
	}
	marks, err := h.acks.ListMarks(r.Context(), id, r.URL.Query().Get("mark"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(marks))
}
