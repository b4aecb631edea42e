package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"physim-backend/internal/models"
)

type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

// NewWorkbook builds an XLSX file with one sheet per spec: bold headers with
// an autofilter on the header row, column widths sized from content.
func NewWorkbook(sheets []SheetSpec) (*excelize.File, error) {
	f := excelize.NewFile()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}

		for col, h := range s.Header {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		end, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		for r, row := range s.Rows {
			for c, val := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}

		// Width heuristic from the header and the first rows
		for c := 1; c <= len(s.Header); c++ {
			max := len(s.Header[c-1])
			for r := 0; r < len(s.Rows) && r < 50; r++ {
				if l := len(s.Rows[r][c-1]); l > max {
					max = l
				}
			}
			w := float64(max) * 0.9
			if w < 12 {
				w = 12
			}
			if w > 40 {
				w = 40
			}
			col, _ := excelize.ColumnNumberToName(c)
			_ = f.SetColWidth(name, col, col, w)
		}
	}
	return f, nil
}

// StudentReportSheets flattens a student-reports payload into a summary sheet
// and a per-simulation detail sheet.
func StudentReportSheets(reports *models.StudentReports) []SheetSpec {
	summary := SheetSpec{
		Title: "Students",
		Header: []string{
			"Name", "Email", "Total Simulations", "Completed",
			"Completion Rate (%)", "Total Time (min)", "Avg Time (min)",
		},
	}
	detail := SheetSpec{
		Title: "Simulations",
		Header: []string{
			"Student", "Simulation", "Started", "Ended",
			"Duration (min)", "Completed", "Observations",
		},
	}

	for _, r := range reports.StudentReports {
		summary.Rows = append(summary.Rows, []string{
			r.Name,
			r.Email,
			strconv.Itoa(r.TotalSimulations),
			strconv.Itoa(r.CompletedSimulations),
			strconv.Itoa(r.CompletionRate),
			strconv.Itoa(r.TotalTimeMinutes),
			strconv.Itoa(r.AvgTimeMinutes),
		})

		for _, sim := range r.Simulations {
			ended := ""
			if sim.Ended != nil {
				ended = sim.Ended.UTC().Format(time.RFC3339)
			}
			duration := ""
			if sim.DurationMinutes != nil {
				duration = strconv.Itoa(*sim.DurationMinutes)
			}
			texts := make([]string, 0, len(sim.Observations))
			for _, obs := range sim.Observations {
				texts = append(texts, obs.Text)
			}
			detail.Rows = append(detail.Rows, []string{
				r.Name,
				sim.Name,
				sim.Started.UTC().Format(time.RFC3339),
				ended,
				duration,
				strconv.FormatBool(sim.IsCompleted),
				strings.Join(texts, "; "),
			})
		}
	}

	return []SheetSpec{summary, detail}
}
