package solver

import "fmt"

// DiagnosticOutput is the one repeatable option keyword; when a user
// supplies it more than once only the last occurrence is kept.
const DiagnosticOutput = ":diagnostic-output-channel"

// Option is a user-requested solver option, rendered as a set-option
// line.
type Option struct {
	Keyword string
	Value   string
}

func (o Option) Line() string {
	return fmt.Sprintf("(set-option %s %s)", o.Keyword, o.Value)
}

// DedupOptions drops all but the last diagnostic-output occurrence,
// preserving the relative order of everything else.
func DedupOptions(opts []Option) []Option {
	lastDiag := -1
	for i := range opts {
		if opts[i].Keyword == DiagnosticOutput {
			lastDiag = i
		}
	}
	res := make([]Option, 0, len(opts))
	for i := range opts {
		if opts[i].Keyword == DiagnosticOutput && i != lastDiag {
			continue
		}
		res = append(res, opts[i])
	}
	return res
}
