// Package models defines the JSON wire types shared by the one-shot CLI
// report (-json, -o) and the HTTP API.
//
// Integer values travel as decimal strings: a BigInt can be arbitrarily long
// and a JSON number would lose precision in most decoders.
package models

import "github.com/agbru/bigcalc/internal/bigint"

// Operation names accepted by the CLI (-op) and the HTTP API (op=).
const (
	OpAll = "all"
	OpAdd = "add"
	OpSub = "sub"
	OpMul = "mul"
	OpDiv = "div"
	OpCmp = "cmp"
)

// Operations lists the single operations in report order.
var Operations = []string{OpAdd, OpSub, OpMul, OpDiv, OpCmp}

// DivisionResult is one division strategy's entry in a Report.
type DivisionResult struct {
	Algorithm string         `json:"algorithm"`
	Duration  string         `json:"duration"`
	Result    *bigint.BigInt `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Report is the full one-shot result for a pair of operands.
// Quotient is absent when the division failed; Error then carries the reason.
type Report struct {
	A          bigint.BigInt    `json:"a"`
	B          bigint.BigInt    `json:"b"`
	Sum        *bigint.BigInt   `json:"sum,omitempty"`
	Difference *bigint.BigInt   `json:"difference,omitempty"`
	Product    *bigint.BigInt   `json:"product,omitempty"`
	Quotient   *bigint.BigInt   `json:"quotient,omitempty"`
	Comparison *int             `json:"comparison,omitempty"`
	Error      string           `json:"error,omitempty"`
	Divisions  []DivisionResult `json:"divisions,omitempty"`
}

// OperationResponse is the body returned by GET /calculate.
type OperationResponse struct {
	Op        string `json:"op"`
	A         string `json:"a"`
	B         string `json:"b"`
	Result    string `json:"result,omitempty"`
	Algorithm string `json:"algorithm,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ErrorResponse is the body returned for rejected requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
