package errhandler

import (
	"errors"
	"os"
	"unicode"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
)

// HandleError reports a command failure on stderr and exits. An aborted prompt is
// not a failure.
func HandleError(err error) {
	os.Exit(Report(err))
}

// Report prints err and returns the exit code HandleError would use.
func Report(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, huh.ErrUserAborted) {
		pterm.Warning.WithWriter(os.Stderr).Println("Operation Cancelled")
		return 0
	}

	pterm.Error.WithWriter(os.Stderr).Println(Capitalize(err.Error()))
	return 1
}

func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
