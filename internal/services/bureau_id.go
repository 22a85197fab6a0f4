package services

import (
	"math/rand/v2"
	"strconv"
)

const (
	minBureauID   = 1000000
	bureauIDRange = 9000000
)

// BureauIDGenerator issues public 7-digit bureau identifiers.
// Values are not checked against existing rows.
type BureauIDGenerator struct {
	intn func(n int) int
}

// NewBureauIDGenerator creates a generator backed by math/rand/v2
func NewBureauIDGenerator() *BureauIDGenerator {
	return &BureauIDGenerator{intn: rand.IntN}
}

// Generate returns a decimal string drawn uniformly from [1000000, 9999999]
func (g *BureauIDGenerator) Generate() string {
	return strconv.Itoa(minBureauID + g.intn(bureauIDRange))
}
