package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/adfharrison1/employees-api/pkg/archive"
)

// HandleExportEmployees handles GET requests producing an archive of every
// employee row
func (h *Handler) HandleExportEmployees(w http.ResponseWriter, r *http.Request) {
	logger := h.log(r)
	logger.Info("handleExportEmployees called")

	records, err := h.store.List(r.Context())
	if err != nil {
		h.writeFailure(w, r, err, msgExportFailed)
		return
	}

	snap := archive.NewSnapshot(records)

	// Encode fully before writing so a failure can still become a 500
	var buf bytes.Buffer
	if err := archive.Write(&buf, snap); err != nil {
		h.writeFailure(w, r, err, msgExportFailed)
		return
	}

	filename := fmt.Sprintf("employees-%s%s", snap.ExportedAt.Format("20060102T150405Z"), archive.FileExtension)
	w.Header().Set("Content-Type", archive.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("failed to write export", zap.Error(err))
		return
	}

	logger.Info("Exported employees", zap.Int("count", len(records)))
}
