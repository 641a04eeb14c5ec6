package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/MinoPlay/mexicano/models"
)

const (
	standingsSheet = "Standings"
	roundsSheet    = "Rounds"
)

var standingsHeader = []any{"Rank", "Player", "Points", "Games", "Wins", "Losses", "Points/Game", "Win %"}
var roundsHeader = []any{"Round", "Match", "Team 1", "Team 2", "Team 1 Score", "Team 2 Score"}

// WriteStandingsXLSX writes a workbook with the ranked standings on the first
// sheet and every round's matches on the second.
func WriteStandingsXLSX(w io.Writer, t *models.Tournament, ranked []models.PlayerStats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", standingsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeStandings(f, ranked); err != nil {
		return err
	}

	if _, err := f.NewSheet(roundsSheet); err != nil {
		return fmt.Errorf("create rounds sheet: %w", err)
	}
	if err := writeRounds(f, t); err != nil {
		return err
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   fmt.Sprintf("%s (%s)", t.Name, t.TournamentDate),
		Creator: "mexicano",
	}); err != nil {
		return fmt.Errorf("set document properties: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeStandings(f *excelize.File, ranked []models.PlayerStats) error {
	if err := f.SetSheetRow(standingsSheet, "A1", &standingsHeader); err != nil {
		return fmt.Errorf("write standings header: %w", err)
	}
	for i, s := range ranked {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{s.Rank, s.Name, s.TotalPoints, s.GamesPlayed, s.Wins, s.Losses, s.PointsPerGame, s.WinPercentage}
		if err := f.SetSheetRow(standingsSheet, cell, &row); err != nil {
			return fmt.Errorf("write standings row %d: %w", i+1, err)
		}
	}
	return f.SetColWidth(standingsSheet, "B", "B", 24)
}

func writeRounds(f *excelize.File, t *models.Tournament) error {
	if err := f.SetSheetRow(roundsSheet, "A1", &roundsHeader); err != nil {
		return fmt.Errorf("write rounds header: %w", err)
	}
	line := 2
	for _, r := range t.Rounds {
		for _, m := range r.Matches {
			cell, err := excelize.CoordinatesToCellName(1, line)
			if err != nil {
				return err
			}
			t1 := m.TeamPlayers(models.Team1)
			t2 := m.TeamPlayers(models.Team2)
			row := []any{
				r.RoundNumber,
				m.ID,
				t1[0] + " & " + t1[1],
				t2[0] + " & " + t2[1],
				scoreCell(m.Team1Score),
				scoreCell(m.Team2Score),
			}
			if err := f.SetSheetRow(roundsSheet, cell, &row); err != nil {
				return fmt.Errorf("write match %d: %w", m.ID, err)
			}
			line++
		}
	}
	return f.SetColWidth(roundsSheet, "C", "D", 28)
}

func scoreCell(score *int) any {
	if score == nil {
		return ""
	}
	return *score
}
