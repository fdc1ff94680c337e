// Package filestore reads the flat-file layout exported by the desktop payroll
// application: a semicolon separated employee.txt and a comma separated attendance.txt.
package filestore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	EmployeeFile   = "employee.txt"
	AttendanceFile = "attendance.txt"
)

// Paths returns the employee and attendance file locations inside dir.
func Paths(dir string) (employeePath, attendancePath string) {
	return filepath.Join(dir, EmployeeFile), filepath.Join(dir, AttendanceFile)
}

// readRows returns every non-blank row of a delimited file. Quotes are handled
// leniently and rows may have any number of fields.
func readRows(path string, comma rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// field returns row[i], or "" when the row is short.
func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
