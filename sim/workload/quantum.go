package workload

import (
	"strconv"
	"strings"
)

// ParseQuantum converts command-line text into a quantum. A leading sign is
// allowed; zero and negative values are returned as-is and make the
// simulation a no-op.
func ParseQuantum(text string) (int64, error) {
	q, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, &QuantumError{Text: text, Err: err}
	}
	return q, nil
}
