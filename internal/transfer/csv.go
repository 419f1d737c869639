// Package transfer converts between credential stores and CSV files in the
// username,password,url layout used by browser password exports.
package transfer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/semmy-space/fa/internal/store"
)

// CSV column names
const (
	ColumnUsername = "username"
	ColumnPassword = "password"
	ColumnURL      = "url"
)

var (
	// ErrMissingColumn is returned when the CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing required CSV column")
	// ErrInvalidRow is returned for rows without a username or password.
	ErrInvalidRow = errors.New("invalid CSV row")
)

// Result summarizes an import
type Result struct {
	Imported int
	Skipped  int
}

// Import adds every CSV row to st. Rows whose username/password pair is
// already stored are skipped. The store is not saved; callers save once
// after Import returns.
func Import(st *store.Store, r io.Reader) (Result, error) {
	creds, err := Read(r)
	if err != nil {
		return Result{}, err
	}
	return Merge(st, creds)
}

// Read parses a CSV export without touching any store. A missing column or
// an incomplete row fails the whole file.
func Read(r io.Reader) ([]store.Credential, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s (empty file)", ErrMissingColumn, ColumnUsername)
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := indexColumns(header)
	for _, required := range []string{ColumnUsername, ColumnPassword} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	creds := []store.Credential{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)

		c := store.Credential{
			User:     field(record, cols, ColumnUsername),
			Password: field(record, cols, ColumnPassword),
			Site:     field(record, cols, ColumnURL),
		}
		if c.User == "" || c.Password == "" {
			return nil, fmt.Errorf("%w: line %d needs both a username and a password", ErrInvalidRow, line)
		}
		creds = append(creds, c)
	}

	return creds, nil
}

// Merge adds creds to st, skipping pairs the store already holds
func Merge(st *store.Store, creds []store.Credential) (Result, error) {
	var res Result
	for _, c := range creds {
		if st.Contains(c.User, c.Password) {
			res.Skipped++
			continue
		}
		if err := st.Add(c); err != nil {
			return res, err
		}
		res.Imported++
	}
	return res, nil
}

// Export writes a header and one row per credential in store order.
// It returns the number of credentials written.
func Export(st *store.Store, w io.Writer) (int, error) {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{ColumnUsername, ColumnPassword, ColumnURL}); err != nil {
		return 0, fmt.Errorf("failed to write CSV header: %w", err)
	}

	count := 0
	for _, c := range st.Credentials() {
		if err := writer.Write([]string{c.User, c.Password, c.Site}); err != nil {
			return count, fmt.Errorf("failed to write CSV row: %w", err)
		}
		count++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return count, fmt.Errorf("failed to write CSV: %w", err)
	}
	return count, nil
}

// indexColumns maps lowercased header names to their positions
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		name = strings.ToLower(strings.TrimSpace(name))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	return cols
}

// field returns the named column of record, or "" when absent
func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
