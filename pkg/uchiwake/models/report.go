package models

// AggregateMismatch reports a level-0 (or parent) node whose amount
// disagrees with its derivable value.
type AggregateMismatch struct {
	ItemName string `json:"item_name"`
	Level    int    `json:"level"`
	// Amount is the stated value; Expected the derived one (children sum
	// or named formula).
	Amount     float64 `json:"amount"`
	Expected   float64 `json:"children_sum"`
	Difference float64 `json:"difference"`

	TableNumber     int    `json:"table_number,omitempty"`
	ReferenceNumber string `json:"reference_number,omitempty"`
}

// RowCalculationMismatch reports a node whose unit_price × quantity
// disagrees with its stated amount, or whose populated numeric field
// failed to parse.
type RowCalculationMismatch struct {
	ItemName       string  `json:"item_name"`
	Level          int     `json:"level"`
	UnitPrice      string  `json:"unit_price"`
	Quantity       string  `json:"quantity"`
	ExpectedAmount float64 `json:"expected_amount"`
	ActualAmount   float64 `json:"actual_amount"`
	Difference     float64 `json:"difference"`
	Error          string  `json:"error,omitempty"`

	TableNumber     int    `json:"table_number,omitempty"`
	ReferenceNumber string `json:"reference_number,omitempty"`
}

// Report is the reconciled verification result for one extraction pass.
type Report struct {
	TotalItems      int `json:"total_items"`
	VerifiedItems   int `json:"verified_items"`
	MismatchedItems int `json:"mismatched_items"`

	Mismatches []AggregateMismatch `json:"mismatches"`
	// RowMismatches are row-level price×quantity failures. They are kept
	// apart from aggregate mismatches and never deduplicated against them.
	RowMismatches []RowCalculationMismatch `json:"row_calculation_mismatches"`

	BusinessLogicVerified bool   `json:"business_logic_verified"`
	ExtractionSuccessful  bool   `json:"extraction_successful"`
	ErrorMessage          string `json:"error_message,omitempty"`
}
