package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"xpclient/fault"
)

var (
	errorLogger *log.Logger
	debugLogger *log.Logger

	throttleMu sync.Mutex
	throttles  = map[string]*throttle{}
)

// throttle limits how often one category of recoverable error is logged.
type throttle struct {
	lim        *rate.Limiter
	suppressed int
}

// logWriter tees to stdout and a timestamped file in logs/errors. Without a
// usable file it is stdout alone.
func logWriter(kind string) io.Writer {
	dir := filepath.Join(baseDir, "logs", "errors")
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("could not create log directory: %v\n", err)
		return os.Stdout
	}
	name := fmt.Sprintf("%s-%s.log", kind, time.Now().Format("20060102-150405"))
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		fmt.Printf("could not create %s: %v\n", name, err)
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, f)
}

func setupLogging(debug bool) {
	w := logWriter("error")
	errorLogger = log.New(w, "", log.LstdFlags)
	log.SetOutput(w)
	setDebugLogging(debug)
}

func logError(format string, v ...interface{}) {
	if errorLogger != nil {
		errorLogger.Printf(format, v...)
	}
}

func logDebug(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf(format, v...)
	}
}

// setDebugLogging opens a debug log the first time it is switched on after being off.
func setDebugLogging(enabled bool) {
	if !enabled {
		debugLogger = nil
		return
	}
	if debugLogger == nil {
		debugLogger = log.New(logWriter("debug"), "D ", log.LstdFlags|log.Lmicroseconds)
	}
}

// admit reports whether a line of category cat may be logged now and how
// many lines of that category were dropped since the last one admitted.
func admit(cat string) (bool, int) {
	throttleMu.Lock()
	defer throttleMu.Unlock()
	t, ok := throttles[cat]
	if !ok {
		t = &throttle{lim: rate.NewLimiter(rate.Every(time.Second), 5)}
		throttles[cat] = t
	}
	if !t.lim.Allow() {
		t.suppressed++
		return false, 0
	}
	n := t.suppressed
	t.suppressed = 0
	return true, n
}

// reportError is the fault.Reporter the client core logs through. Fatal
// errors are never throttled.
func reportError(err error) {
	if fault.Fatal(err) {
		logError("fatal: %v", err)
		return
	}
	ok, dropped := admit(fault.Category(err))
	if !ok {
		return
	}
	if dropped > 0 {
		logError("%v (%d similar suppressed)", err, dropped)
		return
	}
	logError("%v", err)
}

var coreReporter = fault.ReporterFunc(reportError)
