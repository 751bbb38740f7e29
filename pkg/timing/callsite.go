package timing

import (
	"fmt"
	"runtime"
)

// callSite reports the source file and line of a frame above the function
// that invokes it. skip=0 is that function's immediate caller, skip=1 the
// caller's caller, and so on.
func callSite(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip + 2)
	if !ok {
		return "?", 0
	}
	return file, line
}

func formatSite(file string, line int) string {
	return fmt.Sprintf("%s:%5d", file, line)
}
