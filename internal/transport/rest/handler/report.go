package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"reeltrivia/internal/service"
)

// ReportHandler serves the final-scores PDF.
type ReportHandler struct {
	reportSvc *service.ReportService
}

func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Scores handles GET /v1/games/{id}/report.
func (h *ReportHandler) Scores(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	pdf, err := h.reportSvc.FinalScoresPDF(id)
	if err != nil {
		writeGameError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="scores-`+id+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
