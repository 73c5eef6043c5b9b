package member

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		name     string
		points   int
		expected Tier
	}{
		{"zero points", 0, TierNormal},
		{"just below vip", 1999, TierNormal},
		{"vip threshold", 2000, TierVIP},
		{"between vip and diamond", 4999, TierVIP},
		{"diamond threshold", 5000, TierDiamond},
		{"far beyond diamond", 100000, TierDiamond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TierForPoints(tt.points))
		})
	}
}

func TestPointsEarned(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		expected int
	}{
		{"whole amount", "50.00", 500},
		{"large amount", "1000.00", 10000},
		{"fraction truncated", "9.99", 99},
		{"zero", "0.00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PointsEarned(decimal.RequireFromString(tt.total)))
		})
	}
}
