package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// GoldenData represents a single test case in the golden file
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

func main() {
	outputDir := flag.String("out", "internal/bigint/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "arith_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Every ordered pair of operands is recorded. The operand set covers:
	// - zero and the units
	// - carry and borrow chains (999..., 1000...)
	// - mixed signs
	// - values wider than 64 bits
	operands := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(-1),
		big.NewInt(7),
		big.NewInt(-17),
		big.NewInt(999),
		big.NewInt(1000),
		pow(10, 30),
		new(big.Int).Sub(pow(10, 30), big.NewInt(1)),
		new(big.Int).Neg(pow(3, 100)),
		new(big.Int).Add(pow(2, 200), big.NewInt(12345)),
		new(big.Int).Neg(pow(7, 45)),
	}

	var data []GoldenData

	fmt.Println("Generating golden data...")

	for _, a := range operands {
		for _, b := range operands {
			data = append(data, oracle(a, b))
		}
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated %d cases in %s\n", len(data), filename)
}

// oracle computes every operation for one pair with math/big.
// QuoRem truncates toward zero, matching the bigint package.
func oracle(a, b *big.Int) GoldenData {
	g := GoldenData{
		A:          a.String(),
		B:          b.String(),
		Sum:        new(big.Int).Add(a, b).String(),
		Difference: new(big.Int).Sub(a, b).String(),
		Product:    new(big.Int).Mul(a, b).String(),
		Cmp:        a.Cmp(b),
	}
	if b.Sign() == 0 {
		g.DivByZero = true
		return g
	}
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	g.Quotient = q.String()
	g.Remainder = r.String()
	return g
}

func pow(base, exp int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(base), big.NewInt(exp), nil)
}
