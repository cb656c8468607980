package csvdata

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

// Header rows start with one of these prefixes
var headerPrefixes = []string{"ItemID", "TechType"}

// rowFunc parses one record. A returned error skips the row.
type rowFunc func(fields []string) error

// readRows streams a CSV file through parse. Malformed rows are logged as
// *shared.RowParseError, collected and skipped. Only an unreadable source is
// returned as an error.
func readRows(ctx context.Context, source string, in io.Reader, columns int, parse rowFunc) ([]error, error) {
	logger := common.LoggerFromContext(ctx)

	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'

	var warnings []error
	skip := func(line int, err error) {
		rowErr := shared.NewRowParseError(source, line, err)
		warnings = append(warnings, rowErr)
		logger.Log(common.LevelError, "Failed to parse row", map[string]interface{}{
			"source": source,
			"line":   line,
			"error":  err.Error(),
		})
	}

	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skip(parseErr.Line, parseErr.Err)
				continue
			}
			return warnings, shared.NewDataLoadError(source, "read failed", err)
		}

		line, _ := r.FieldPos(0)
		if isHeader(fields) || isBlank(fields) {
			continue
		}
		if len(fields) != columns {
			skip(line, fmt.Errorf("unexpected number of columns: %d (want %d)", len(fields), columns))
			continue
		}
		if err := parse(fields); err != nil {
			skip(line, err)
		}
	}

	return warnings, nil
}

// openSource opens a data file, mapping failures to *shared.DataLoadError
func openSource(source, path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, shared.NewDataLoadError(source, "cannot open "+path, err)
	}
	return f, nil
}

func isHeader(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	for _, prefix := range headerPrefixes {
		if strings.HasPrefix(fields[0], prefix) {
			return true
		}
	}
	return false
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// splitList splits a ";"-separated cell, dropping empty entries
func splitList(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// optionalInt parses a cell that defaults to 0 when empty
func optionalInt(name, cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(cell)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, cell)
	}
	return n, nil
}

// flag parses a 0/1 cell; empty means false
func flag(name, cell string) (bool, error) {
	n, err := optionalInt(name, cell)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
