package httpapi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（方法 + 路径变量模式）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handler 带访问日志的最外层 handler
func (r *Router) Handler() http.Handler {
	return withRequestLog(r, r.logger)
}

func (r *Router) RegisterDirectoryRoutes(h *DirectoryHandler) {
	r.Handle("GET /api/v1/units", h.ListUnits)
	r.Handle("POST /api/v1/units", h.CreateUnit)
	r.Handle("GET /api/v1/units/{unitID}/residents", h.ListResidents)
	r.Handle("POST /api/v1/residents", h.CreateResident)
}

func (r *Router) RegisterRecordRoutes(h *RecordHandler) {
	r.Handle("POST /api/v1/records", h.Create)
	r.Handle("GET /api/v1/records", h.List)
	r.Handle("GET /api/v1/records/{id}", h.Get)
	r.Handle("DELETE /api/v1/records/{id}", h.Delete)
	r.Handle("GET /api/v1/residents/{id}/latest-vitals", h.LatestVitals)
}

func (r *Router) RegisterHandoverRoutes(h *HandoverHandler) {
	r.Handle("POST /api/v1/handovers", h.Post)
	r.Handle("GET /api/v1/handovers", h.List)
	r.Handle("DELETE /api/v1/handovers/{id}", h.Delete)
	r.Handle("POST /api/v1/handovers/{id}/marks", h.ToggleMark)
	r.Handle("GET /api/v1/handovers/{id}/marks", h.ListMarks)
}

func (r *Router) RegisterExportRoutes(h *ExportHandler) {
	r.Handle("GET /api/v1/export/records.xlsx", h.Records)
}

func (r *Router) RegisterSelectionRoutes(h *SelectionHandler) {
	r.Handle("GET /api/v1/selection", h.Get)
	r.Handle("PUT /api/v1/selection", h.Put)
}

// RegisterHealth /healthz：ping 失败返回 503
func (r *Router) RegisterHealth(ping func(ctx context.Context) error) {
	r.Handle("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			r.logger.Warn("Health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, Fail("database unavailable"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]string{"status": "ok"}))
	})
}
