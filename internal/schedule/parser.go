package schedule

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"proctorcal/internal/config"
)

// RawRow holds one data row of the schedule sheet, keyed by column name.
// Cell values are trimmed but otherwise untyped; type validation happens in
// the normalizer.
type RawRow struct {
	// Row is the 1-based row number in the sheet, for diagnostics.
	Row int
	// Cells maps configured column names to cell values.
	Cells map[string]string
	// Proctors holds the values of every proctor column, in sheet order.
	// Empty cells are included so positions stay stable.
	Proctors []string
}

// Parser reads a schedule workbook into raw rows.
type Parser struct {
	cfg config.ScheduleConfig
}

// NewParser creates a parser for the configured sheet layout.
func NewParser(cfg config.ScheduleConfig) *Parser {
	return &Parser{cfg: cfg}
}

// ParseFile reads the schedule sheet of an xlsx workbook and returns its data
// rows. It verifies that every required column exists and returns a
// *MissingColumnError naming the absent ones otherwise.
func (p *Parser) ParseFile(path string) ([]RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := p.cfg.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s contains no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	if len(rows) <= p.cfg.HeaderRow {
		return nil, &MissingColumnError{Columns: p.requiredColumns()}
	}

	columnIndex, proctorColumns := p.mapColumns(rows[p.cfg.HeaderRow])

	var missing []string
	for _, name := range p.requiredColumns() {
		if name == p.cfg.Columns.ProctorPrefix {
			if len(proctorColumns) == 0 {
				missing = append(missing, name)
			}
			continue
		}
		if _, ok := columnIndex[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing}
	}

	slog.Debug("mapped schedule columns",
		slog.String("sheet", sheet),
		slog.Int("header_row", p.cfg.HeaderRow),
		slog.Int("proctor_columns", len(proctorColumns)))

	var out []RawRow
	var prev map[string]string
	for i := p.cfg.HeaderRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		cells := make(map[string]string, len(columnIndex))
		for name, idx := range columnIndex {
			cells[name] = cellAt(row, idx)
		}

		// Merged exam cells in the source sheet surface as empty cells on
		// continuation rows; carry the previous row's value forward. This
		// fill is imperfect around make-up exams, same as the source data.
		if prev != nil {
			for name, v := range cells {
				if v == "" {
					cells[name] = prev[name]
				}
			}
		}
		prev = cells

		proctors := make([]string, len(proctorColumns))
		for j, idx := range proctorColumns {
			proctors[j] = cellAt(row, idx)
		}

		out = append(out, RawRow{
			Row:      i + 1,
			Cells:    cells,
			Proctors: proctors,
		})
	}

	slog.Info("parsed schedule sheet",
		slog.String("file", path),
		slog.String("sheet", sheet),
		slog.Int("rows", len(out)))

	return out, nil
}

// mapColumns maps configured column names to their positions in the header
// row and collects the positions of the proctor columns.
func (p *Parser) mapColumns(header []string) (map[string]int, []int) {
	columnIndex := make(map[string]int)
	var proctorColumns []int

	names := []string{
		p.cfg.Columns.Exam,
		p.cfg.Columns.Date,
		p.cfg.Columns.StartTime,
		p.cfg.Columns.EndTime,
		p.cfg.Columns.Location,
		p.cfg.Columns.Course,
		p.cfg.Columns.Section,
		p.cfg.Columns.Instructor,
		p.cfg.Columns.Enrolled,
	}

	for idx, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if strings.HasPrefix(h, p.cfg.Columns.ProctorPrefix) {
			proctorColumns = append(proctorColumns, idx)
			continue
		}
		for _, name := range names {
			if name != "" && strings.EqualFold(h, name) {
				if _, exists := columnIndex[name]; !exists {
					columnIndex[name] = idx
				}
				break
			}
		}
	}

	return columnIndex, proctorColumns
}

// requiredColumns lists the columns the sheet must provide.
func (p *Parser) requiredColumns() []string {
	return []string{
		p.cfg.Columns.Exam,
		p.cfg.Columns.Date,
		p.cfg.Columns.StartTime,
		p.cfg.Columns.EndTime,
		p.cfg.Columns.ProctorPrefix,
	}
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
