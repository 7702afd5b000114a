package agent

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// SaveTable writes an action-value table to path in gonum's binary dense
// format. The encoded dimensions are the load-time compatibility contract.
func SaveTable(path string, q *mat.Dense) error {
	data, err := q.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// LoadTable reads a persisted table and verifies it matches the expected
// shape. A table trained against a different (ambulances, hospitals)
// configuration is rejected rather than silently misused.
func LoadTable(path string, nStates, nActions int) (*mat.Dense, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	var q mat.Dense
	if err := q.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("unmarshal table: %w", err)
	}
	r, c := q.Dims()
	if r != nStates || c != nActions {
		return nil, fmt.Errorf("table shape %dx%d does not match environment %dx%d", r, c, nStates, nActions)
	}
	return &q, nil
}

// Greedy returns the lowest-indexed maximizing action of the table row for
// state. Inference-only consumers use it to act without an agent.
func Greedy(q *mat.Dense, state int) int {
	row := q.RawRowView(state)
	best := 0
	for i, v := range row {
		if v > row[best] {
			best = i
		}
	}
	return best
}
