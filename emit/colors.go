package emit

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// LineClass buckets script lines for display purposes.
type LineClass int

const (
	CommentLine LineClass = iota
	OptionLine
	LogicLine
	DeclLine
	DatatypeLine
	DefineLine
	AssertLine
	OtherLine
)

// ClassOf classifies one script line by its leading command.
func ClassOf(line string) LineClass {
	s := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(s, ";"):
		return CommentLine
	case strings.HasPrefix(s, "(set-option"):
		return OptionLine
	case strings.HasPrefix(s, "(set-logic"):
		return LogicLine
	case strings.HasPrefix(s, "(declare-datatype"):
		return DatatypeLine
	case strings.HasPrefix(s, "(declare-"):
		return DeclLine
	case strings.HasPrefix(s, "(define-"):
		return DefineLine
	case strings.HasPrefix(s, "(assert"):
		return AssertLine
	default:
		return OtherLine
	}
}

type Colors struct {
	Default func(string, ...any) string
	Map     map[LineClass]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[LineClass]func(string, ...any) string{},
	}
	colors.Map[CommentLine] = color.BlueString
	colors.Map[OptionLine] = color.RGB(96, 96, 96).SprintfFunc()
	colors.Map[LogicLine] = color.RGB(255, 0, 196).SprintfFunc()
	colors.Map[DatatypeLine] = color.RGB(74, 92, 138).SprintfFunc()
	colors.Map[DeclLine] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[DefineLine] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[AssertLine] = color.RGB(8, 196, 16).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Get(lc LineClass) func(string, ...any) string {
	f := c.Map[lc]
	if f == nil {
		return c.Default
	}
	return f
}

func (c *Colors) Line(s string) string {
	return c.Get(ClassOf(s))(s)
}

// WriteScript writes the script to w, one command per line, colorized
// when w is a terminal.
func WriteScript(w io.Writer, lines []string) error {
	var colors *Colors
	if f, ok := w.(*os.File); ok &&
		(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		colors = NewColors()
	}
	for _, ln := range lines {
		if colors != nil {
			ln = colors.Line(ln)
		}
		if _, err := fmt.Fprintln(w, ln); err != nil {
			return err
		}
	}
	return nil
}
