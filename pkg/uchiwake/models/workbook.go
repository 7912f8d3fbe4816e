package models

// SheetResult holds everything extracted from one sheet.
type SheetResult struct {
	// Subtables are the reference-numbered blocks found on the sheet.
	Subtables []Subtable `json:"subtables,omitempty"`
	// Items is the verified hierarchy built from the sheet's main table.
	Items []*Node `json:"items,omitempty"`
	// Report reconciles the verification passes over Items.
	Report *Report `json:"report,omitempty"`
}

// WorkbookResult is the workbook-level container with per-sheet results.
type WorkbookResult struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets maps sheet name to its result.
	Sheets map[string]SheetResult `json:"sheets"`
}
