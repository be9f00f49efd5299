package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/sortviz/internal/ir"
)

// Line formats f on one line, e.g.
//
//	#3 compare [0 1] 3 5 4 1 2
func Line(f ir.Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s [", f.Seq(), f.Op())
	b.WriteString(joinInts(f.Highlighted()))
	b.WriteString("]")
	if f.Len() > 0 {
		b.WriteString(" ")
		b.WriteString(joinInts(f.Snapshot()))
	}
	return b.String()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
