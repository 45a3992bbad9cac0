package model

import "errors"

// Domain errors for the capacitance model.
var (
	// ErrMixingDenominator indicates the Clausius-Mossotti mixing rule
	// denominator vanished for the given permittivity and volume fraction.
	ErrMixingDenominator = errors.New("model: dielectric mixing denominator is zero")

	// ErrNotBracketed indicates a root-finding interval whose endpoints do
	// not straddle a sign change.
	ErrNotBracketed = errors.New("model: root is not bracketed by the interval")

	// ErrNoConvergence indicates an iterative solve that exhausted its
	// iteration budget without meeting tolerance.
	ErrNoConvergence = errors.New("model: solver did not converge")
)
