package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kaigoApp/kaigo-app/internal/domain"
	"github.com/kaigoApp/kaigo-app/internal/export"

	"go.uber.org/zap"
)

// ExportHandler xlsx 导出
type ExportHandler struct {
	collector *export.Collector
	logger    *zap.Logger
}

func NewExportHandler(collector *export.Collector, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{collector: collector, logger: logger}
}

// GET /api/v1/export/records.xlsx?unit_id=&date=
func (h *ExportHandler) Records(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	unitID := parseID(q.Get("unit_id"))
	if unitID == 0 {
		badRequest(w, "unit_id", "is required")
		return
	}
	date := q.Get("date")
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		badRequest(w, "date", "must be YYYY-MM-DD")
		return
	}

	report, err := h.collector.Collect(r.Context(), unitID, date)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	data, err := export.BuildWorkbook(report)
	if err != nil {
		h.logger.Error("Failed to build workbook", zap.Int64("unit_id", unitID), zap.String("date", date), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to build export"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(report)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
