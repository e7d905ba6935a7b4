package sheet

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	in := "\ufeffIntervention, Safety (20%) ,Cost (80%)\nMetformin,5,5\n\n,,\nRapamycin,3\n"
	tbl, err := Read(strings.NewReader(in), FormatCSV, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Intervention", "Safety (20%)", "Cost (80%)"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2, "blank rows are dropped")
	assert.Equal(t, "Rapamycin", tbl.Cell(1, 0))
	assert.Equal(t, "", tbl.Cell(1, 2), "short rows read as empty cells")
	assert.Equal(t, []string{"5", "3"}, tbl.Column(1))
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := Read(strings.NewReader(""), FormatCSV, "")
	assert.Error(t, err)
}

func TestReadFileXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("Scoring")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Scoring", "A1", &[]interface{}{"Intervention", "Lifespan (30%)", "Safety (70%)"}))
	require.NoError(t, f.SetSheetRow("Scoring", "A2", &[]interface{}{"Acarbose", 3, 3}))
	require.NoError(t, f.SetSheetRow("Scoring", "A3", &[]interface{}{"Metformin", 2, 5}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := ReadFile(path, "Scoring")
	require.NoError(t, err)
	assert.Equal(t, []string{"Intervention", "Lifespan (30%)", "Safety (70%)"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "Metformin", tbl.Cell(1, 0))
	assert.Equal(t, "5", tbl.Cell(1, 2))

	_, err = ReadFile(path, "Missing")
	assert.ErrorContains(t, err, `sheet "Missing" not found`)
}

func TestFormatFromName(t *testing.T) {
	assert.Equal(t, FormatCSV, FormatFromName("scores.CSV"))
	assert.Equal(t, FormatXLSX, FormatFromName("scores.xlsx"))
	assert.Equal(t, FormatXLSX, FormatFromName("scores"))
}

func TestColumnIndex(t *testing.T) {
	tbl := &Table{Headers: []string{"a", "b"}}
	assert.Equal(t, 1, tbl.ColumnIndex("b"))
	assert.Equal(t, -1, tbl.ColumnIndex("c"))
}
