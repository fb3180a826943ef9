package dispatcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	"github.com/MKhiriev/go-api-dispatch/models"
)

const unknownOrigin = "unknown"

// faultResponse builds the 500 envelope describing an unexpected failure.
func faultResponse(name, message, file string, line int) *models.Response {
	return models.NewInternalServerError(
		fmt.Sprintf("Name: %s. Message: %s. File: %s. Line: %d.", name, message, file, line),
	)
}

// errorFault describes an error returned by handler.
// The origin is the location recorded by [models.WithOrigin] when present
// and the location where the handler function is defined otherwise.
func errorFault(err error, handler models.HandlerFunc) *models.Response {
	var origin *models.OriginError
	if errors.As(err, &origin) {
		name := fmt.Sprintf("%T", err)
		if err == error(origin) {
			name = fmt.Sprintf("%T", origin.Err)
		}
		return faultResponse(name, err.Error(), origin.File, origin.Line)
	}

	file, line := handlerOrigin(handler)
	return faultResponse(fmt.Sprintf("%T", err), err.Error(), file, line)
}

// panicFault describes a recovered panic value. It must be called from the
// deferred function that recovered v.
func panicFault(v any) *models.Response {
	name := "panic"
	if err, ok := v.(error); ok {
		name = fmt.Sprintf("%T", err)
	}

	file, line := panicOrigin()
	return faultResponse(name, fmt.Sprint(v), file, line)
}

// handlerOrigin returns the file and line where handler is declared.
// Method values resolve to a compiler-generated wrapper with no source
// location, so they report the unknown origin.
func handlerOrigin(handler models.HandlerFunc) (string, int) {
	if handler == nil {
		return unknownOrigin, 0
	}

	fn := runtime.FuncForPC(reflect.ValueOf(handler).Pointer())
	if fn == nil || strings.HasSuffix(fn.Name(), "-fm") {
		return unknownOrigin, 0
	}

	file, line := fn.FileLine(fn.Entry())
	if file == "" || strings.HasPrefix(file, "<") {
		return unknownOrigin, 0
	}
	return filepath.Base(file), line
}

// panicOrigin walks the stack of a panicking goroutine and returns the first
// non-runtime frame below runtime.gopanic, i.e. the code that panicked.
func panicOrigin() (string, int) {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	panicking := false
	for {
		frame, more := frames.Next()
		if panicking && !strings.HasPrefix(frame.Function, "runtime.") {
			return filepath.Base(frame.File), frame.Line
		}
		if frame.Function == "runtime.gopanic" {
			panicking = true
		}
		if !more {
			break
		}
	}

	return unknownOrigin, 0
}
