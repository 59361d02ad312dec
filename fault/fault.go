// Package fault holds the error categories shared by the client core and the
// narrow interface the core reports recoverable problems through.
package fault

import "errors"

var (
	// ErrNoMemory means a buffer or map table could not grow. It is fatal to
	// the current session.
	ErrNoMemory = errors.New("not enough memory")
	// ErrBadIndex means an update named an ordinal outside the known range.
	ErrBadIndex = errors.New("bad index")
	// ErrNotFound means a position lookup had no matching entity.
	ErrNotFound = errors.New("not found")
	// ErrInconsistent marks a diagnostic for an update that was still applied.
	ErrInconsistent = errors.New("BUG")
	// ErrUnknownPlayer means an update referenced a player id never joined.
	ErrUnknownPlayer = errors.New("unknown player")
)

// Fatal reports whether err must tear down the session.
func Fatal(err error) bool {
	return errors.Is(err, ErrNoMemory)
}

// Category returns a short label for the error class, used to throttle logs.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoMemory):
		return "memory"
	case errors.Is(err, ErrBadIndex):
		return "index"
	case errors.Is(err, ErrNotFound):
		return "lookup"
	case errors.Is(err, ErrInconsistent):
		return "bug"
	case errors.Is(err, ErrUnknownPlayer):
		return "player"
	}
	return "other"
}

// Reporter receives every recoverable problem the core runs into.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(err error)

func (f ReporterFunc) Report(err error) {
	if f != nil && err != nil {
		f(err)
	}
}

// Discard drops every report.
var Discard Reporter = ReporterFunc(func(error) {})
