package excel

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"driftlens/domain/dataset"
	"driftlens/domain/drift"
)

const reportSheet = "Report"

// ReportWriter renders a result table to an Excel workbook: one row and one
// chart bar per field, probability-colored cells, drift rows filled blue, and
// neutral rows for fields that were not computed and not ignored. Implements
// ports.Reporter.
type ReportWriter struct{}

// NewReportWriter creates a new Excel report writer
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// reportRow is one rendered line: analyzed fields carry their score, the
// rest a "not computed" marker.
type reportRow struct {
	field       string
	probability float64
	status      string
	details     string
	drift       bool
}

// Render writes the workbook to path
func (w *ReportWriter) Render(table drift.Table, fields []dataset.FieldDescriptor, path string) error {
	rows := buildRows(table, fields)

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(reportSheet)
	if err != nil {
		return fmt.Errorf("failed to create report sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	header := []interface{}{"field", "probability", "status", "details"}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	driftStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Font: &excelize.Font{Color: "#FFFFFF"},
	})
	if err != nil {
		return fmt.Errorf("failed to create drift style: %w", err)
	}

	for i, row := range rows {
		rowIdx := i + 2
		cells := []interface{}{row.field, row.probability, row.status, row.details}
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := f.SetSheetRow(reportSheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row for field %q: %w", row.field, err)
		}
		if row.drift {
			start, _ := excelize.CoordinatesToCellName(1, rowIdx)
			end, _ := excelize.CoordinatesToCellName(4, rowIdx)
			if err := f.SetCellStyle(reportSheet, start, end, driftStyle); err != nil {
				return fmt.Errorf("failed to style drift row: %w", err)
			}
		}
	}

	lastRow := len(rows) + 1
	if err := w.colorScale(f, lastRow); err != nil {
		return err
	}
	if err := w.addChart(f, lastRow); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	log.Printf("[ReportWriter] report saved at %s (%d fields)", path, len(rows))
	return nil
}

// colorScale applies a green-to-red scale over the probability column
func (w *ReportWriter) colorScale(f *excelize.File, lastRow int) error {
	area := fmt.Sprintf("B2:B%d", lastRow)
	err := f.SetConditionalFormat(reportSheet, area, []excelize.ConditionalFormatOptions{
		{
			Type:     "3_color_scale",
			Criteria: "=",
			MinType:  "num", MinValue: "0", MinColor: "#63BE7B",
			MidType: "num", MidValue: "50", MidColor: "#FFEB84",
			MaxType: "num", MaxValue: "100", MaxColor: "#F8696B",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to apply color scale: %w", err)
	}
	return nil
}

// addChart renders one bar per field, height = probability
func (w *ReportWriter) addChart(f *excelize.File, lastRow int) error {
	max := 100.0
	err := f.AddChart(reportSheet, "F2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", reportSheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", reportSheet, lastRow),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", reportSheet, lastRow),
		}},
		Title: []excelize.RichTextRun{{Text: "Error Analysis for All Fields"}},
		YAxis: excelize.ChartAxis{Maximum: &max},
	})
	if err != nil {
		return fmt.Errorf("failed to add chart: %w", err)
	}
	return nil
}

// buildRows merges the result table with the full field set: analyzed fields
// in table order first, then not-computed fields (present in the descriptors
// but absent from the table) in descriptor order.
func buildRows(table drift.Table, fields []dataset.FieldDescriptor) []reportRow {
	rows := make([]reportRow, 0, len(fields))

	for _, r := range table.Rows {
		status := "analyzed"
		if r.ExtraStatus {
			status = "drift"
		}
		rows = append(rows, reportRow{
			field:       r.Field,
			probability: r.Probability,
			status:      status,
			details:     r.Details,
			drift:       r.ExtraStatus,
		})
	}

	for _, d := range fields {
		if _, ok := table.Lookup(d.Name); ok {
			continue
		}
		rows = append(rows, reportRow{
			field:   d.Name,
			status:  "not computed",
			details: fmt.Sprintf("field kind: %s", d.Kind),
		})
	}

	return rows
}
