package db

import (
	"errors"
	"fmt"
	"strings"
)

// Precondition violations, reported to callers as single messages.
var (
	ErrNotFound              = errors.New("asset not found in inventory")
	ErrDecommissioned        = errors.New("asset is decommissioned")
	ErrAlreadyDecommissioned = errors.New("asset is already decommissioned")
	ErrAlreadyOnLoan         = errors.New("asset is already on loan")
	ErrNoOpenLoan            = errors.New("no open loan for this asset")
	ErrNoPendingRepair       = errors.New("no pending repair for this asset")
	ErrRepairPending         = errors.New("a pending repair already exists for this asset")
)

// RowError is one validation failure. Row is the spreadsheet row the
// candidate came from (header is row 1), or 0 for single-record input.
type RowError struct {
	Row int    `json:"row,omitempty"`
	Msg string `json:"message"`
}

func (e RowError) String() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, e.Msg)
	}
	return e.Msg
}

// ValidationErrors accumulates every failure of a validation pass; nothing
// is persisted while it is non-empty.
type ValidationErrors []RowError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.String()
	}
	return strings.Join(msgs, "; ")
}
