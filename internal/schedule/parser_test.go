package schedule

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"proctorcal/internal/config"
)

// testScheduleConfig mirrors the default sheet layout.
func testScheduleConfig() config.ScheduleConfig {
	return config.ScheduleConfig{
		HeaderRow:       2,
		StartOffsetMins: 30,
		Columns: config.ColumnSchema{
			Exam:          "Subject",
			Date:          "Date",
			StartTime:     "Start time",
			EndTime:       "End time",
			Location:      "Location",
			ProctorPrefix: "Proctor",
			Course:        "Course",
			Section:       "Section",
			Instructor:    "Instructor",
			Enrolled:      "Students enrolled",
		},
	}
}

// writeWorkbook builds a temp workbook from cell values. Nil cells are left
// unset so merged-cell gaps look the way excelize reports them.
func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	path := filepath.Join(t.TempDir(), "winter proctoring schedule.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func defaultHeader() []interface{} {
	return []interface{}{
		"Date", "Start time", "End time", "Subject", "Course", "Section",
		"Instructor", "Students enrolled", "Location", "Proctor 1", "Proctor 2",
	}
}

func TestParseFileMapsColumns(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Winter Exam Proctoring Schedule"},
		{"Department of Science"},
		defaultHeader(),
		{"2025-03-10", "09:00", "12:00", "CALC", "1000", "001", "Dr. Smith", "120", "PAB-148", "Alice Jones", "Bob Lee"},
	})

	rows, err := NewParser(testScheduleConfig()).ParseFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 4, row.Row)
	assert.Equal(t, "2025-03-10", row.Cells["Date"])
	assert.Equal(t, "09:00", row.Cells["Start time"])
	assert.Equal(t, "12:00", row.Cells["End time"])
	assert.Equal(t, "CALC", row.Cells["Subject"])
	assert.Equal(t, "PAB-148", row.Cells["Location"])
	assert.Equal(t, "Dr. Smith", row.Cells["Instructor"])
	assert.Equal(t, []string{"Alice Jones", "Bob Lee"}, row.Proctors)
}

func TestParseFileMissingColumns(t *testing.T) {
	// Header lacks the date column and any proctor columns.
	path := writeWorkbook(t, [][]interface{}{
		{"banner"},
		{"banner"},
		{"Start time", "End time", "Subject", "Location"},
		{"09:00", "12:00", "CALC", "PAB-148"},
	})

	_, err := NewParser(testScheduleConfig()).ParseFile(path)
	require.Error(t, err)

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Columns, "Date")
	assert.Contains(t, missing.Columns, "Proctor")
	assert.NotContains(t, missing.Columns, "Subject")
	assert.Contains(t, err.Error(), "does not exist")
}

func TestParseFileForwardFillsMergedCells(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"banner"},
		{"banner"},
		defaultHeader(),
		{"2025-03-10", "09:00", "12:00", "CALC", "1000", "001", "Dr. Smith", "120", "PAB-148", "Alice Jones"},
		// Continuation row of the same slot: merged cells come back empty.
		{nil, nil, nil, nil, nil, nil, nil, nil, nil, "Cara Diaz"},
	})

	rows, err := NewParser(testScheduleConfig()).ParseFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	cont := rows[1]
	assert.Equal(t, 5, cont.Row)
	assert.Equal(t, "2025-03-10", cont.Cells["Date"])
	assert.Equal(t, "CALC", cont.Cells["Subject"])
	assert.Equal(t, "09:00", cont.Cells["Start time"])
	assert.Equal(t, []string{"Cara Diaz"}, cont.Proctors)
}

func TestParseFileSkipsEmptyRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"banner"},
		{"banner"},
		defaultHeader(),
		{"2025-03-10", "09:00", "12:00", "CALC", nil, nil, nil, nil, nil, "Alice Jones"},
		{nil, nil, nil, nil, nil, nil, nil, nil, nil, nil},
		{"2025-03-11", "13:00", "15:00", "BIO", nil, nil, nil, nil, nil, "Bob Lee"},
	})

	rows, err := NewParser(testScheduleConfig()).ParseFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-03-10", rows[0].Cells["Date"])
	assert.Equal(t, "2025-03-11", rows[1].Cells["Date"])
}

func TestParseFileHeaderRowBeyondSheet(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"just one banner row"},
	})

	_, err := NewParser(testScheduleConfig()).ParseFile(path)

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Columns, "Date")
	assert.Contains(t, missing.Columns, "Subject")
}

func TestParseFileNamedSheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Schedule"))
	header := defaultHeader()
	for j, v := range header {
		cell, err := excelize.CoordinatesToCellName(j+1, 3)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Schedule", cell, v))
	}
	require.NoError(t, f.SetCellValue("Schedule", "A4", "2025-03-10"))
	require.NoError(t, f.SetCellValue("Schedule", "B4", "09:00"))
	require.NoError(t, f.SetCellValue("Schedule", "C4", "12:00"))
	require.NoError(t, f.SetCellValue("Schedule", "D4", "CALC"))
	require.NoError(t, f.SetCellValue("Schedule", "J4", "Alice Jones"))
	path := filepath.Join(t.TempDir(), "named.xlsx")
	require.NoError(t, f.SaveAs(path))

	cfg := testScheduleConfig()
	cfg.Sheet = "Schedule"
	rows, err := NewParser(cfg).ParseFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	cfg.Sheet = "NoSuchSheet"
	_, err = NewParser(cfg).ParseFile(path)
	assert.Error(t, err)
}

func TestParseFileMissingWorkbook(t *testing.T) {
	_, err := NewParser(testScheduleConfig()).ParseFile(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}
