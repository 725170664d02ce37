package datasource

import "errors"

var (
	// ErrMissingColumn is returned when a required header column is absent
	// from an input table.
	ErrMissingColumn = errors.New("datasource: missing required column")

	// ErrMalformedRow is returned when a data row cannot be parsed against
	// its table's column types. Per §7's Data error kind, callers are
	// expected to log and skip the offending row rather than treat this as
	// fatal, except where noted otherwise.
	ErrMalformedRow = errors.New("datasource: malformed row")

	// ErrEmptyHeader is returned when a table has no header row at all.
	ErrEmptyHeader = errors.New("datasource: empty header row")
)
