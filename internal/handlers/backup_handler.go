package handlers

import (
	"github.com/gin-gonic/gin"

	"khplwak/internal/services"
)

// BackupHandler serves the full-ledger backup snapshot.
type BackupHandler struct {
	exportService services.ExportServicer
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(exportService services.ExportServicer) *BackupHandler {
	return &BackupHandler{exportService: exportService}
}

// GetBackup streams the multi-section CSV snapshot of investors, expenses,
// and income. It is mounted twice: behind the user token for manual
// downloads, and behind the pipeline API key for the nightly export job.
// @Summary     Backup snapshot
// @Description Download the combined investors/expenses/income CSV snapshot
// @Tags        pipeline
// @Accept      json
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {string} string "CSV file"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /backup/export/csv [get]
// @Router      /pipeline/backup [get]
func (h *BackupHandler) GetBackup(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="khplwak_backup.csv"`)

	if err := h.exportService.WriteBackupCSV(c.Writer); err != nil {
		respondWithError(c, err)
		return
	}
}
