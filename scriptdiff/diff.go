// Package scriptdiff compares two rendered scripts line by line. It
// backs golden-script testing and the debugging workflow of comparing
// a batch render against an equivalent incremental render.
package scriptdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type OpType int

const (
	OpEqual OpType = iota
	OpInsert
	OpDelete
)

// Op is one run of script lines shared, added or removed.
type Op struct {
	Type  OpType
	Lines []string
}

// Diff computes a line-level diff between two scripts.
func Diff(from, to []string) []Op {
	diffCfg := diffpatch.New()
	a, b, arr := diffCfg.DiffLinesToChars(join(from), join(to))
	diffs := diffCfg.DiffCharsToLines(diffCfg.DiffMain(a, b, false), arr)
	var res []Op
	for i := range diffs {
		d := &diffs[i]
		op := Op{Lines: splitLines(d.Text)}
		switch d.Type {
		case diffpatch.DiffInsert:
			op.Type = OpInsert
		case diffpatch.DiffDelete:
			op.Type = OpDelete
		case diffpatch.DiffEqual:
			op.Type = OpEqual
		}
		if len(op.Lines) > 0 {
			res = append(res, op)
		}
	}
	return res
}

// Equal reports whether the two scripts are identical line for line.
func Equal(from, to []string) bool {
	for _, op := range Diff(from, to) {
		if op.Type != OpEqual {
			return false
		}
	}
	return true
}

// Format renders the diff in unified style, a marker per line.
func Format(ops []Op) string {
	var sb strings.Builder
	for _, op := range ops {
		marker := "  "
		switch op.Type {
		case OpInsert:
			marker = "+ "
		case OpDelete:
			marker = "- "
		}
		for _, ln := range op.Lines {
			sb.WriteString(marker)
			sb.WriteString(ln)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
