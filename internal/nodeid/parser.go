// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse converts the canonical decimal representation into an ID. An empty
// string or the literal "auto" yields Auto.
func Parse(rawID string) (ID, error) {
	raw := strings.TrimSpace(rawID)
	if raw == "" || strings.EqualFold(raw, "auto") {
		return Auto, nil
	}

	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid node id %q: %w", rawID, err)
	}
	if v < 0 {
		return Auto, nil
	}
	return ID(v), nil
}
