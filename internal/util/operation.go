package util

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-sif/triage"
	"github.com/go-sif/triage/errors"
)

const maxTraceDepth = 32

// SafeParse runs a Parser such that panics are recovered and converted into errors carrying a stack trace
func SafeParse(parser triage.Parser, data []byte) (table *triage.Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			table = nil
			// skip runtime.Callers, stackTrace and this deferred func
			err = &errors.ParsePanicError{Value: r, Trace: stackTrace(3)}
		}
	}()
	if parser == nil {
		return nil, fmt.Errorf("no parser configured")
	}
	table, err = parser.Parse(data)
	if err == nil && table == nil {
		err = fmt.Errorf("%s parser returned neither a table nor an error", parser.Name())
	}
	return
}

// stackTrace renders the calling goroutine's stack, omitting runtime frames such as gopanic
func stackTrace(skip int) string {
	pcs := make([]uintptr, maxTraceDepth)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	var res strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") {
			fmt.Fprintf(&res, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return res.String()
}

// FormatErrors renders a list of errors as a numbered list. Multi-line
// messages, such as those carrying stack traces, are indented under their number.
func FormatErrors(errs []error) string {
	var res strings.Builder
	for i, err := range errs {
		msg := strings.TrimRight(err.Error(), "\n")
		fmt.Fprintf(&res, "%d. %s\n", i+1, strings.ReplaceAll(msg, "\n", "\n   "))
	}
	return res.String()
}
