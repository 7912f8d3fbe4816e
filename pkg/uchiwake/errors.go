package uchiwake

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates a named sheet is absent from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrNoMainTable indicates a sheet has no recognizable estimate header.
var ErrNoMainTable = errors.New("no main table header")

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Stage     string // "grid", "subtables", "hierarchy", "verification"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, stage string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}
