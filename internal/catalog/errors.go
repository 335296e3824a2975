package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDataSourceNotFound is returned when the catalog resource does not exist.
var ErrDataSourceNotFound = errors.New("catalog: data source not found")

// SchemaError reports required columns missing from the source table.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog: %s is missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
}
