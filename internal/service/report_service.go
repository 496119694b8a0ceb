package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/xuri/excelize/v2"
)

var reportColumns = []string{
	"ID", "Name", "Email", "Account Name", "Account Email", "Mobile",
	"Predicted Field", "User Level", "Resume Score", "Pages",
	"Actual Skills", "Recommended Skills", "Recommended Courses",
	"PDF Name", "IP Address", "City", "State", "Country", "Timestamp", "Created At",
}

func reportRow(r model.AnalysisRecord) []string {
	return []string{
		r.ID.String(), r.Name, r.EmailID, r.ActName, r.ActMail, r.ActMob,
		r.PredictedField, r.UserLevel, strconv.Itoa(r.ResumeScore), strconv.Itoa(r.PageNo),
		string(r.ActualSkills), string(r.RecommendedSkills), string(r.RecommendedCourses),
		r.PDFName, r.IPAddress, r.City, r.State, r.Country, r.Timestamp,
		r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// WriteCSV writes the full analysis report as CSV.
func WriteCSV(w io.Writer, records []model.AnalysisRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportColumns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(reportRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// BuildWorkbook renders a Summary sheet with distributions and a Records
// sheet with every analysis.
func BuildWorkbook(records []model.AnalysisRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet, recordsSheet = "Summary", "Records"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(recordsSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeSummarySheet(f, summarySheet, records, headerStyle); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeRecordsSheet(f, recordsSheet, records, headerStyle); err != nil {
		return nil, fmt.Errorf("records sheet: %w", err)
	}

	return f.WriteToBuffer()
}

func writeSummarySheet(f *excelize.File, sheet string, records []model.AnalysisRecord, headerStyle int) error {
	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "B", 12)

	fields := map[string]int{}
	levels := map[string]int{}
	var fieldOrder, levelOrder []string
	total := 0
	for _, r := range records {
		if fields[r.PredictedField] == 0 {
			fieldOrder = append(fieldOrder, r.PredictedField)
		}
		fields[r.PredictedField]++
		if levels[r.UserLevel] == 0 {
			levelOrder = append(levelOrder, r.UserLevel)
		}
		levels[r.UserLevel]++
		total += r.ResumeScore
	}

	avg := 0.0
	if len(records) > 0 {
		avg = float64(total) / float64(len(records))
	}

	rows := [][]any{
		{"Total Users", len(records)},
		{"Average Score", fmt.Sprintf("%.1f", avg)},
		{"Generated", time.Now().UTC().Format(time.RFC3339)},
		{},
		{"Predicted Field", "Count"},
	}
	fieldHeader := len(rows)
	for _, k := range fieldOrder {
		rows = append(rows, []any{k, fields[k]})
	}
	rows = append(rows, []any{}, []any{"User Level", "Count"})
	levelHeader := len(rows)
	for _, k := range levelOrder {
		rows = append(rows, []any{k, levels[k]})
	}

	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	for _, r := range []int{fieldHeader, levelHeader} {
		if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", r), fmt.Sprintf("B%d", r), headerStyle); err != nil {
			return err
		}
	}
	return nil
}

func writeRecordsSheet(f *excelize.File, sheet string, records []model.AnalysisRecord, headerStyle int) error {
	for i, h := range reportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(reportColumns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, r := range records {
		for j, v := range reportRow(r) {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			var value any = v
			// keep numeric columns numeric
			if j == 8 {
				value = r.ResumeScore
			} else if j == 9 {
				value = r.PageNo
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}
