// Package logging sets up the two rotated-by-append file sinks the teacher
// wires in setupLogging, generalized into a struct instead of package
// globals so tests can inject a discard logger.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

type Logger struct {
	Info  *log.Logger
	Error *log.Logger
}

// New opens (creating if needed) server.log and error.log under dir and
// tees them to stdout and stderr respectively, matching the teacher's append-mode file sinks plus
// a console mirror so `go test` output and local runs stay visible.
func New(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	infoFile, err := os.OpenFile(filepath.Join(dir, "server.log"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	errFile, err := os.OpenFile(filepath.Join(dir, "error.log"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	return &Logger{
		Info:  log.New(io.MultiWriter(infoFile, os.Stdout), "INFO: ", log.Ldate|log.Ltime|log.Lshortfile),
		Error: log.New(io.MultiWriter(errFile, os.Stderr), "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile),
	}, nil
}

// Discard returns a Logger that writes nowhere, for unit tests that don't
// want log noise or filesystem side effects.
func Discard() *Logger {
	return &Logger{
		Info:  log.New(io.Discard, "", 0),
		Error: log.New(io.Discard, "", 0),
	}
}
