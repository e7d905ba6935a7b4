package report

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/MikeSquared-Agency/Ranker/internal/enrich"
	"github.com/MikeSquared-Agency/Ranker/internal/store"
)

const workbookSheet = "Sheet1"

// WorkbookHeaders returns the enriched workbook's column names: the
// identifier and domain columns as parsed, then one score column per
// stakeholder perspective, one rank column per perspective, the derived
// metrics and the category.
func WorkbookHeaders(a *store.Analysis) []string {
	headers := append([]string{"Intervention"}, a.Domains...)
	if len(a.Items) == 0 {
		return append(headers, "Category")
	}

	first := a.Items[0]
	headers = append(headers, "Weighted Score")
	for _, p := range first.Perspectives {
		if p.Name != enrich.BaselinePerspective {
			headers = append(headers, p.Name+"-Focused")
		}
	}
	for _, p := range first.Perspectives {
		headers = append(headers, p.Name+" rank")
	}
	for _, d := range first.Derived {
		headers = append(headers, d.Name)
	}
	return append(headers, "Category")
}

func workbookRow(it store.ItemResult) []interface{} {
	row := []interface{}{it.Item}
	for _, s := range it.Scores {
		row = append(row, s)
	}
	for _, p := range it.Perspectives {
		if p.Name == enrich.BaselinePerspective {
			row = append(row, p.Score)
		}
	}
	for _, p := range it.Perspectives {
		if p.Name != enrich.BaselinePerspective {
			row = append(row, p.Score)
		}
	}
	for _, p := range it.Perspectives {
		row = append(row, p.Rank)
	}
	for _, d := range it.Derived {
		row = append(row, d.Value)
	}
	return append(row, it.Category)
}

// WriteWorkbook writes the enriched dataset as a single-sheet xlsx in input
// item order.
func WriteWorkbook(w io.Writer, a *store.Analysis) error {
	f := excelize.NewFile()
	defer f.Close()

	headers := WorkbookHeaders(a)
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(workbookSheet, "A1", &headerRow); err != nil {
		return err
	}

	for i, it := range a.Items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := workbookRow(it)
		if err := f.SetSheetRow(workbookSheet, cell, &row); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(workbookSheet, "A1", last, style); err != nil {
		return err
	}
	if err := f.SetPanes(workbookSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	if err := f.SetColWidth(workbookSheet, "A", "A", 32); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
