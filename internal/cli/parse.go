package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseAngles parses a comma-separated list of joint angles, e.g.
// "0.1,-0.5,1.2". Whitespace around entries is ignored. An empty string
// yields an empty slice.
func parseAngles(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float64{}, nil
	}
	parts := strings.Split(s, ",")
	angles := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parse angle %q: %w", strings.TrimSpace(p), err)
		}
		angles[i] = v
	}
	return angles, nil
}
