/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modlog

import (
	"fmt"
	"io"
	builtinlog "log"
	"os"

	"github.com/hyperledger/aries-bbs-signatures-go/spi/log"
)

const (
	logLevelFormatter  = "UTC -> %s "
	logPrefixFormatter = " [%s] "
)

// NewDefLog returns new DefLog instance based on given module.
// Output goes to stderr so that it never mixes with command output written to stdout.
func NewDefLog(module string) *DefLog {
	logger := builtinlog.New(os.Stderr, fmt.Sprintf(logPrefixFormatter, module),
		builtinlog.Ldate|builtinlog.Ltime|builtinlog.LUTC)

	return &DefLog{logger: logger}
}

// DefLog is a logger implementation built on top of standard go log.
// Log Format : [<MODULE NAME>] <TIME IN UTC> -> <LOG LEVEL> <LOG TEXT>.
type DefLog struct {
	logger *builtinlog.Logger
}

// Fatalf is CRITICAL log formatted followed by a call to os.Exit(1).
func (l *DefLog) Fatalf(format string, args ...interface{}) {
	l.logf(log.CRITICAL, format, args...)
	os.Exit(1)
}

// Panicf is CRITICAL log formatted followed by a call to panic().
func (l *DefLog) Panicf(format string, args ...interface{}) {
	l.logf(log.CRITICAL, format, args...)
	panic(fmt.Sprintf(format, args...))
}

// Debugf logs verbose messages.
func (l *DefLog) Debugf(format string, args ...interface{}) {
	l.logf(log.DEBUG, format, args...)
}

// Infof logs general information messages.
func (l *DefLog) Infof(format string, args ...interface{}) {
	l.logf(log.INFO, format, args...)
}

// Warnf logs possible errors.
func (l *DefLog) Warnf(format string, args ...interface{}) {
	l.logf(log.WARNING, format, args...)
}

// Errorf logs errors.
func (l *DefLog) Errorf(format string, args ...interface{}) {
	l.logf(log.ERROR, format, args...)
}

// SetOutput sets the output destination for the logger.
func (l *DefLog) SetOutput(output io.Writer) {
	l.logger.SetOutput(output)
}

func (l *DefLog) logf(level log.Level, format string, args ...interface{}) {
	const callDepth = 3

	err := l.logger.Output(callDepth, fmt.Sprintf(logLevelFormatter, level)+fmt.Sprintf(format, args...))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error from logger.Output %v\n", err)
	}
}
