package domain

import "fmt"

// ConfigurationError reports an invalid column-letter mapping. It is fatal
// for the run: the pipeline surfaces it before any row is processed.
type ConfigurationError struct {
	Field  string
	Letter string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: column %q (%s): %s", e.Field, e.Letter, e.Reason)
}

// SchemaError reports a snapshot file that lacks one of its required named
// columns. It is fatal for that snapshot only; today's processing may still
// proceed without day-over-day comparison.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("snapshot schema error: missing required columns %v", e.Missing)
}
