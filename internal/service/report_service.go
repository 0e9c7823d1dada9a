package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"reeltrivia/internal/model"
)

// ReportService renders the final standings of a finished game as a PDF
// scorecard.
type ReportService struct {
	games *GameService
}

func NewReportService(games *GameService) *ReportService {
	return &ReportService{games: games}
}

// FinalScoresPDF builds the scorecard for a game. The game must have
// reached its final standings.
func (s *ReportService) FinalScoresPDF(gameID string) ([]byte, error) {
	state, err := s.games.Get(gameID)
	if err != nil {
		return nil, err
	}
	ranking, err := s.games.FinalRanking(gameID)
	if err != nil {
		return nil, err
	}
	return renderScoresPDF(state.ID, ranking, time.Now())
}

func renderScoresPDF(gameID string, ranking []model.FinalRank, date time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(0, 16, "Final Scores", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8, "Movie Trivia Night | "+date.Format("2006-01-02"), "", 1, "C", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(30, 7, "Rank", "1", 0, "C", false, 0, "")
	pdf.CellFormat(110, 7, "Player", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Score", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range ranking {
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", row.Rank), "1", 0, "C", false, 0, "")
		pdf.CellFormat(110, 7, row.Player.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", row.Player.Score), "1", 1, "C", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Game ID: "+gameID, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
