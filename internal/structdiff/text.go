package structdiff

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zaremba/dq/internal/value"
)

// inlineDiffMinLen is the string length from which changed strings get an
// inline character-level diff appended in text output.
const inlineDiffMinLen = 16

var (
	addedColor   = color.New(color.FgGreen)
	removedColor = color.New(color.FgRed)
	changedColor = color.New(color.FgYellow)
)

// RenderText formats changes as a line-oriented report: one line per
// change, prefixed +, -, or ~. Color is handled by the color package and
// disabled automatically when stdout is not a terminal.
func RenderText(changes []Change) string {
	if len(changes) == 0 {
		return "No differences.\n"
	}
	var b strings.Builder
	for _, c := range changes {
		switch c.Kind {
		case KindAdded:
			b.WriteString(addedColor.Sprintf("+ %s: %s", c.Path, literal(c.Right)))
		case KindRemoved:
			b.WriteString(removedColor.Sprintf("- %s: %s", c.Path, literal(c.Left)))
		case KindTypeChange:
			b.WriteString(changedColor.Sprintf("~ %s: type %s -> %s (left=%s, right=%s)",
				c.Path, c.LeftType, c.RightType, literal(c.Left), literal(c.Right)))
		case KindArraySetChange:
			b.WriteString(changedColor.Sprintf("~ %s: array contents differ as sets (left=%s, right=%s)",
				c.Path, literal(c.Left), literal(c.Right)))
		default:
			b.WriteString(changedColor.Sprintf("~ %s: %s -> %s", c.Path, literal(c.Left), literal(c.Right)))
			if inline := inlineStringDiff(c.Left, c.Right); inline != "" {
				b.WriteString("\n")
				b.WriteString(fmt.Sprintf("  %s", inline))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// inlineStringDiff renders a character-level diff for a changed pair of
// long strings; empty for everything else.
func inlineStringDiff(left, right *value.Value) string {
	if left == nil || right == nil {
		return ""
	}
	if left.Kind != value.StringType || right.Kind != value.StringType {
		return ""
	}
	if len(left.Str) < inlineDiffMinLen && len(right.Str) < inlineDiffMinLen {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(left.Str, right.Str, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			b.WriteString(addedColor.Sprintf("{+%s+}", d.Text))
		case diffmatchpatch.DiffDelete:
			b.WriteString(removedColor.Sprintf("{-%s-}", d.Text))
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

func literal(v *value.Value) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return v.StableKey()
	}
	return string(b)
}
