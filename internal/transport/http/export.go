package httptransport

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"rankboard/internal/platform/middleware"
	"rankboard/pkg/domainerrors"
)

const exportSheet = "Universities"

// handleExport streams the filtered table as an Excel workbook.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query, err := parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	records := h.service.Filter(ctx, query.Filter)

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		h.exportError(w, r, err)
		return
	}

	headers := []string{"Global Rank", "University", "Country", "City"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, header)
	}
	for i, rec := range records {
		row := i + 2
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), rec.GlobalRank)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), rec.Name)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("C%d", row), rec.Country)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("D%d", row), rec.City)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="universities.xlsx"`)
	if err := f.Write(w); err != nil {
		// Headers are already out; all we can do is log.
		h.logger.ErrorContext(ctx, "write export",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		return
	}
	h.metrics.ExportsTotal.Inc()
}

func (h *Handler) exportError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "build export",
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err.Error(),
	)
	writeError(w, domainerrors.Wrap(domainerrors.CodeInternal, "build export", err))
}
