package bigint

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// GoldenData represents the structure of our golden file entries
type GoldenData struct {
	A          string `json:"a"`
	B          string `json:"b"`
	Sum        string `json:"sum"`
	Difference string `json:"difference"`
	Product    string `json:"product"`
	Quotient   string `json:"quotient,omitempty"`
	Remainder  string `json:"remainder,omitempty"`
	DivByZero  bool   `json:"div_by_zero,omitempty"`
	Cmp        int    `json:"cmp"`
}

func TestArithmeticAgainstGoldenFile(t *testing.T) {
	goldenPath := filepath.Join("testdata", "arith_golden.json")
	file, err := os.Open(goldenPath)
	if err != nil {
		t.Fatalf("Failed to open golden file: %v. Did you run 'go run ./cmd/generate-golden'?", err)
	}
	defer file.Close()

	var cases []GoldenData
	if err := json.NewDecoder(file).Decode(&cases); err != nil {
		t.Fatalf("Failed to decode golden file: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("golden file is empty")
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.A+"_"+tc.B, func(t *testing.T) {
			t.Parallel()

			a, b := MustParse(tc.A), MustParse(tc.B)

			if got := a.Add(b).String(); got != tc.Sum {
				t.Errorf("Add mismatch.\nExpected: %s\nGot:      %s", tc.Sum, got)
			}
			if got := a.Sub(b).String(); got != tc.Difference {
				t.Errorf("Sub mismatch.\nExpected: %s\nGot:      %s", tc.Difference, got)
			}
			if got := a.Mul(b).String(); got != tc.Product {
				t.Errorf("Mul mismatch.\nExpected: %s\nGot:      %s", tc.Product, got)
			}
			if got := a.Cmp(b); got != tc.Cmp {
				t.Errorf("Cmp mismatch: expected %d, got %d", tc.Cmp, got)
			}

			q, r, err := a.QuoRem(b)
			if tc.DivByZero {
				if !errors.Is(err, ErrDivisionByZero) {
					t.Errorf("expected ErrDivisionByZero, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("QuoRem failed: %v", err)
			}
			if q.String() != tc.Quotient || r.String() != tc.Remainder {
				t.Errorf("QuoRem mismatch.\nExpected: %s r %s\nGot:      %s r %s", tc.Quotient, tc.Remainder, q, r)
			}
		})
	}
}
