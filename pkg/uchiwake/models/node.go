package models

// VerificationRecord captures the outcome of one numeric check on a
// node. Records are owned by their node and never shared.
type VerificationRecord struct {
	IsMatched bool    `json:"is_matched"`
	Expected  float64 `json:"expected_amount"`
	Actual    float64 `json:"actual_amount"`
	// Difference is signed: actual − expected.
	Difference float64 `json:"difference"`
	// Error is set when a populated field failed to parse.
	Error string `json:"error,omitempty"`
}

// Node is one line of the cost hierarchy. Level 0 is a root; a node's
// level equals the indentation depth of its item name. A node
// exclusively owns its children.
type Node struct {
	ItemName  string  `json:"item_name"`
	Unit      string  `json:"unit"`
	Quantity  string  `json:"quantity"`
	UnitPrice string  `json:"unit_price"`
	Amount    string  `json:"amount"`
	Notes     string  `json:"notes"`
	Level     int     `json:"level"`
	Children  []*Node `json:"children"`

	RawFields map[string]string `json:"raw_fields,omitempty"`

	TableNumber     int    `json:"table_number,omitempty"`
	ReferenceNumber string `json:"reference_number,omitempty"`
	IsMainTable     bool   `json:"is_main_table"`

	AmountVerification      *VerificationRecord `json:"amount_verification,omitempty"`
	CalculationVerification *VerificationRecord `json:"calculation_verification,omitempty"`
}

// Walk visits n and every descendant in depth-first order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
