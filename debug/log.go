package debug

import (
	"fmt"
	"os"
	"strings"
)

func Logf(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
