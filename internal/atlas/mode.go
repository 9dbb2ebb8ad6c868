package atlas

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMode parses a layout mode string: "auto", "row", "col", or a fixed
// grid written as "RxC" (for example "2x3"). Returned rows/cols are zero for
// non-fixed modes.
func ParseMode(s string) (mode Mode, rows, cols int, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, 0, 0, nil
	case "row":
		return ModeRow, 0, 0, nil
	case "col":
		return ModeCol, 0, 0, nil
	}

	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) == 2 {
		r, rerr := strconv.Atoi(strings.TrimSpace(parts[0]))
		c, cerr := strconv.Atoi(strings.TrimSpace(parts[1]))
		if rerr == nil && cerr == nil {
			return ModeFixed, r, c, nil
		}
	}
	return ModeAuto, 0, 0, fmt.Errorf("atlas: unknown layout mode %q (want auto, row, col or RxC)", s)
}
