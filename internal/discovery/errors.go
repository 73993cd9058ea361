package discovery

import (
	"errors"
	"fmt"
)

// ErrNoQueries means synthesis produced an empty query list: the extracted
// record had neither a title nor a company to anchor a search.
var ErrNoQueries = errors.New("no search queries could be generated from the job details")

// ErrNoCandidates means every query completed but the aggregate is empty.
// A terminal "nothing found" outcome, not a provider failure.
var ErrNoCandidates = errors.New("no candidate profiles found via web search")

// SchemaError means a model call returned output that does not parse into
// the required structured schema. Fatal to the stage: no partial record is
// usable downstream.
type SchemaError struct {
	Stage string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: model output does not match schema: %v", e.Stage, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
