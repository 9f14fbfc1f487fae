package httpapi

import (
	"net/http"

	"github.com/kaigoApp/kaigo-app/internal/service"

	"go.uber.org/zap"
)

// DirectoryHandler 单元 / 入居者
type DirectoryHandler struct {
	directory *service.DirectoryService
	logger    *zap.Logger
}

func NewDirectoryHandler(directory *service.DirectoryService, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, logger: logger}
}

// GET /api/v1/units?include_inactive=true
func (h *DirectoryHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.directory.ListUnits(r.Context(), parseBool(r.URL.Query().Get("include_inactive")))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(units))
}

// POST /api/v1/units
// body: { name }
func (h *DirectoryHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req service.CreateUnitRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		badRequest(w, "body", "invalid json")
		return
	}
	u, err := h.directory.CreateUnit(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(u))
}

// GET /api/v1/units/{unitID}/residents
func (h *DirectoryHandler) ListResidents(w http.ResponseWriter, r *http.Request) {
	unitID := parseID(r.PathValue("unitID"))
	if unitID == 0 {
		badRequest(w, "unit_id", "invalid id")
		return
	}
	residents, err := h.directory.ListResidents(r.Context(), unitID, parseBool(r.URL.Query().Get("include_inactive")))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(residents))
}

// POST /api/v1/residents
// body: { unit_id, name, care_level?, disease? }
func (h *DirectoryHandler) CreateResident(w http.ResponseWriter, r *http.Request) {
	var req service.CreateResidentRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		badRequest(w, "body", "invalid json")
		return
	}
	res, err := h.directory.CreateResident(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(res))
}
