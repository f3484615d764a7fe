package ledger

import "fmt"

// ParseError reports a category file that could not be read. Row is
// 1-based counting the header and is zero when the row is unknown.
type ParseError struct {
	File string
	Row  int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: row %d: %v", e.File, e.Row, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
