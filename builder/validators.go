// SPDX-License-Identifier: MIT

package builder

import "fmt"

func validateMin(method string, got, min int) error {
	if got < min {
		return fmt.Errorf("%s: n=%d < min=%d: %w", method, got, min, ErrTooFewVertices)
	}

	return nil
}

func validatePartition(method string, n1, n2 int) error {
	if n1 < MinPartition || n2 < MinPartition {
		return fmt.Errorf("%s: partition sizes %d and %d must be ≥ %d: %w", method, n1, n2, MinPartition, ErrTooFewVertices)
	}

	return nil
}

func validateProbability(method string, p float64) error {
	if p < MinProbability || p > MaxProbability {
		return fmt.Errorf("%s: p=%g outside [%g,%g]: %w", method, p, MinProbability, MaxProbability, ErrInvalidProbability)
	}

	return nil
}
