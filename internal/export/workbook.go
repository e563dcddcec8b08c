// Package export writes the in-memory collection to a single-sheet xlsx
// workbook. The export always serializes the full unfiltered collection,
// field for field; active view filters do not apply.
package export

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"

	"github.com/Minahil-Hamza/taskdesk/internal/domain"
)

type ColumnConfig struct {
	FieldName string  `yaml:"field_name"`
	Header    string  `yaml:"header"`
	Width     float64 `yaml:"width"`
}

type SheetConfig struct {
	Name    string         `yaml:"name"`
	Columns []ColumnConfig `yaml:"columns"`
}

type layoutFile struct {
	Sheet SheetConfig `yaml:"sheet"`
}

// DefaultStudentLayout is the built-in students.xlsx layout.
func DefaultStudentLayout() SheetConfig {
	return SheetConfig{
		Name: "Students",
		Columns: []ColumnConfig{
			{FieldName: "ID", Header: "ID", Width: 10},
			{FieldName: "Name", Header: "Name", Width: 25},
			{FieldName: "Email", Header: "Email", Width: 30},
			{FieldName: "Age", Header: "Age", Width: 10},
		},
	}
}

// LayoutFromYAML loads a sheet layout from YAML, allowing headers and
// widths to be changed without a rebuild.
func LayoutFromYAML(data []byte) (SheetConfig, error) {
	var lf layoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return SheetConfig{}, fmt.Errorf("parse layout: %w", err)
	}
	if lf.Sheet.Name == "" || len(lf.Sheet.Columns) == 0 {
		return SheetConfig{}, fmt.Errorf("layout must name a sheet and at least one column")
	}
	return lf.Sheet, nil
}

// WriteWorkbook renders rows (a slice of structs) into w according to cfg.
// Column values are resolved by struct field name via reflection.
func WriteWorkbook(cfg SheetConfig, rows interface{}, w io.Writer) error {
	val := reflect.ValueOf(rows)
	if val.Kind() != reflect.Slice {
		return fmt.Errorf("rows must be a slice, got %v", val.Kind())
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", cfg.Name); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, col := range cfg.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(cfg.Name, cell, col.Header); err != nil {
			return err
		}
		if col.Width > 0 {
			name, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(cfg.Name, name, name, col.Width); err != nil {
				return err
			}
		}
	}

	for r := 0; r < val.Len(); r++ {
		item := val.Index(r)
		for colIdx, col := range cfg.Columns {
			field := item.FieldByName(col.FieldName)
			if !field.IsValid() {
				return fmt.Errorf("field %s not found in row struct", col.FieldName)
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(cfg.Name, cell, field.Interface()); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteStudentsFile renders the full student collection to path using the
// default layout. The conventional path is students.xlsx.
func WriteStudentsFile(path string, students []domain.Student) error {
	return writeFile(path, DefaultStudentLayout(), students)
}

func writeFile(path string, cfg SheetConfig, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteWorkbook(cfg, rows, f)
}
