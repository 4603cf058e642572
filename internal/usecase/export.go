package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"go-careers-backend/internal/domain"
)

var exportColumns = []string{
	"ID", "Name", "Email", "Phone", "Position", "Job Title", "Stage",
	"Rating", "Experience", "Tags", "Reviewer", "Archived", "Applied At",
}

func exportRow(app domain.Application) domain.ExportRow {
	row := domain.ExportRow{
		ID:         app.ID,
		JobID:      app.JobID,
		JobTitle:   app.JobTitle,
		Name:       app.Name,
		Email:      app.Email,
		Phone:      app.Phone,
		Position:   app.Position,
		Stage:      app.Stage,
		Rating:     app.Rating,
		Experience: app.Experience,
		Tags:       append([]string{}, app.Tags...),
		IsArchived: app.IsArchived,
		AppliedAt:  app.AppliedAt,
	}
	if app.ReviewerID != nil {
		row.ReviewerID = *app.ReviewerID
	}
	return row
}

func exportValues(row domain.ExportRow) []string {
	return []string{
		row.ID,
		row.Name,
		row.Email,
		row.Phone,
		row.Position,
		row.JobTitle,
		string(row.Stage),
		strconv.FormatFloat(row.Rating, 'f', 2, 64),
		row.Experience,
		strings.Join(row.Tags, "; "),
		row.ReviewerID,
		strconv.FormatBool(row.IsArchived),
		row.AppliedAt.UTC().Format(time.RFC3339),
	}
}

// renderExport builds the downloadable file for rows
func renderExport(rows []domain.ExportRow, format domain.ExportFormat, now time.Time) (*domain.ExportFile, error) {
	stamp := now.Format("20060102_150405")

	switch format {
	case domain.ExportExcel:
		content, err := exportExcel(rows)
		if err != nil {
			return nil, err
		}
		return &domain.ExportFile{
			Format:      format,
			Filename:    fmt.Sprintf("applications_%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
			Rows:        rows,
		}, nil
	default:
		content, err := exportCSV(rows)
		if err != nil {
			return nil, err
		}
		return &domain.ExportFile{
			Format:      domain.ExportCSV,
			Filename:    fmt.Sprintf("applications_%s.csv", stamp),
			ContentType: "text/csv; charset=utf-8",
			Content:     content,
			Rows:        rows,
		}, nil
	}
}

func exportCSV(rows []domain.ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(exportValues(row)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportExcel(rows []domain.ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applications"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to prepare sheet: %w", err)
	}

	for i, header := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#3B82F6"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, row := range rows {
		for colIdx, value := range exportValues(row) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
