package utils

import (
	"math"

	"solfolio/internal/domain/entity"
)

// LamportsToSol converts a base-unit balance to the human-readable SOL amount.
func LamportsToSol(lamports uint64) float64 {
	return float64(lamports) / float64(entity.LamportsPerSol)
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	factor := math.Pow10(places)
	return math.Round(v*factor) / factor
}
