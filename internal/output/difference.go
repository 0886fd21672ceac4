package output

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/reflectdiff/pkg/reflectdiff"
)

// Difference prints the difference tree rooted at d, one node per line,
// children indented under their parent. Leaves also print the two values
// found at their location.
func (w *Writer) Difference(d reflectdiff.Difference) {
	if d == nil {
		return
	}
	w.difference(cases.Title(language.English), d, 0)
}

func (w *Writer) difference(title cases.Caser, d reflectdiff.Difference, depth int) {
	indent := strings.Repeat("  ", depth)
	label := title.String(d.Kind().String())
	path := reflectdiff.RenderPath(d)
	detail := ""
	if d.Detail() != "" {
		detail = " (" + d.Detail() + ")"
	}

	if w.color {
		w.Println("%s%s%s%s %s%s%s: %s%s", indent, dim, label, reset, bold, path, reset, d.Message(), detail)
	} else {
		w.Println("%s%s %s: %s%s", indent, label, path, d.Message(), detail)
	}

	children := reflectdiff.Children(d)
	if len(children) == 0 {
		w.operand(indent+"  ", "left: ", red, d.Left())
		w.operand(indent+"  ", "right:", green, d.Right())
		return
	}
	for _, c := range children {
		w.difference(title, c, depth+1)
	}
}

func (w *Writer) operand(indent, label, color string, v any) {
	if w.color {
		w.Println("%s%s %s%s%s", indent, label, color, FormatValue(v), reset)
	} else {
		w.Println("%s%s %s", indent, label, FormatValue(v))
	}
}

// FormatValue renders a compared value for display: strings quoted, times
// in RFC 3339 and nil as <nil>.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return fmt.Sprintf("%q", x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// DifferenceLeaves prints one line per leaf of d: its path, message and detail.
func (w *Writer) DifferenceLeaves(d reflectdiff.Difference) {
	for _, leaf := range reflectdiff.Leaves(d) {
		line := fmt.Sprintf("%s: %s", reflectdiff.RenderPath(leaf), leaf.Message())
		if leaf.Detail() != "" {
			line += " (" + leaf.Detail() + ")"
		}
		w.Println("  %s", line)
	}
}
