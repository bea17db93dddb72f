package dataset

import "fmt"

// MissingFileError indicates the source path does not reference an existing
// regular file.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("data file not found: %s", e.Path)
}

// MalformedRecordError indicates a row whose shape or content does not match
// the schema. The whole load aborts; no partial table is returned.
type MalformedRecordError struct {
	Path   string
	Line   int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at %s:%d: %s", e.Path, e.Line, e.Reason)
}
