/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/aries-bbs-signatures-go/spi/log"
)

type recordingProvider struct {
	lines []string
}

func (p *recordingProvider) GetLogger(module string) log.Logger {
	return &recordingLogger{module: module, p: p}
}

type recordingLogger struct {
	module string
	p      *recordingProvider
}

func (l *recordingLogger) record(level, msg string, args ...interface{}) {
	l.p.lines = append(l.p.lines, fmt.Sprintf("%s %s %s", l.module, level, fmt.Sprintf(msg, args...)))
}

func (l *recordingLogger) Panicf(msg string, args ...interface{}) {
	l.record("CRITICAL", msg, args...)
	panic(fmt.Sprintf(msg, args...))
}

func (l *recordingLogger) Fatalf(msg string, args ...interface{}) { l.record("CRITICAL", msg, args...) }
func (l *recordingLogger) Errorf(msg string, args ...interface{}) { l.record("ERROR", msg, args...) }
func (l *recordingLogger) Warnf(msg string, args ...interface{})  { l.record("WARNING", msg, args...) }
func (l *recordingLogger) Infof(msg string, args ...interface{})  { l.record("INFO", msg, args...) }
func (l *recordingLogger) Debugf(msg string, args ...interface{}) { l.record("DEBUG", msg, args...) }

// TestDefaultLogger tests default logging feature when no custom logging provider is supplied via 'Initialize()' call.
func TestDefaultLogger(t *testing.T) {
	defer func() { loggerProviderOnce = sync.Once{} }()

	loggerProviderOnce = sync.Once{}

	var buf bytes.Buffer

	Initialize(NewDefaultProvider(&buf))

	const module = "sample-module-default"

	SetLevel(module, log.INFO)

	logger := New(module)

	logger.Infof("brown %s jumps over the lazy %s", "fox", "dog")
	require.Regexp(t, `\[sample-module-default\] .* UTC -> INFO brown fox jumps over the lazy dog`, buf.String())

	buf.Reset()
	logger.Debugf("not logged")
	require.Empty(t, buf.String())

	logger.Errorf("failure %d", 1)
	require.Contains(t, buf.String(), "ERROR failure 1")

	defer func() {
		r := recover()
		require.NotNil(t, r, "supposed to panic")
		require.Contains(t, buf.String(), "CRITICAL panic message")
	}()

	logger.Panicf("panic message")
}

func TestCustomLogger(t *testing.T) {
	defer func() { loggerProviderOnce = sync.Once{} }()

	loggerProviderOnce = sync.Once{}

	provider := &recordingProvider{}
	Initialize(provider)

	// ignored, the provider is already set
	Initialize(NewDefaultProvider(&bytes.Buffer{}))

	const module = "sample-module-custom"

	SetLevel(module, log.WARNING)

	logger := New(module)
	logger.Debugf("debug")
	logger.Infof("info")
	logger.Warnf("warn %s", "message")
	logger.Errorf("error")

	require.Equal(t, []string{
		"sample-module-custom WARNING warn message",
		"sample-module-custom ERROR error",
	}, provider.lines)
}

// TestAllLevels tests logging level behaviour
// logging levels can be set per modules, if not set then it will default to 'INFO'.
func TestAllLevels(t *testing.T) {
	module := "sample-module-critical"
	SetLevel(module, log.CRITICAL)
	require.Equal(t, log.CRITICAL, GetLevel(module))
	verifyLevels(t, module, []log.Level{log.CRITICAL}, []log.Level{log.ERROR, log.WARNING, log.INFO, log.DEBUG})

	module = "sample-module-warning"
	SetLevel(module, log.WARNING)
	require.Equal(t, log.WARNING, GetLevel(module))
	verifyLevels(t, module, []log.Level{log.CRITICAL, log.ERROR, log.WARNING}, []log.Level{log.INFO, log.DEBUG})

	module = "sample-module-debug"
	SetLevel(module, log.DEBUG)
	require.Equal(t, log.DEBUG, GetLevel(module))
	verifyLevels(t, module, []log.Level{log.CRITICAL, log.ERROR, log.WARNING, log.INFO, log.DEBUG}, []log.Level{})

	require.Equal(t, log.INFO, GetLevel("sample-module-unset"))

	SetDefaultLevel(log.ERROR)
	defer SetDefaultLevel(log.INFO)

	require.Equal(t, log.ERROR, GetLevel("sample-module-unset"))
	require.Equal(t, log.DEBUG, GetLevel("sample-module-debug"))
}

// TestLogLevel testing 'ParseLevel()' used for parsing log levels from strings.
func TestLogLevel(t *testing.T) {
	verifyLevelsNoError := func(expected log.Level, levels ...string) {
		for _, level := range levels {
			actual, err := ParseLevel(level)
			require.NoError(t, err, "not supposed to fail while parsing level string [%s]", level)
			require.Equal(t, expected, actual)
			require.Equal(t, expected.String(), actual.String())
		}
	}

	verifyLevelsNoError(log.CRITICAL, "critical", "CRITICAL", "CriticAL")
	verifyLevelsNoError(log.ERROR, "error", "ERROR", "ErroR")
	verifyLevelsNoError(log.WARNING, "warning", "WARNING", "WarninG")
	verifyLevelsNoError(log.DEBUG, "debug", "DEBUG", "DebUg")
	verifyLevelsNoError(log.INFO, "info", "INFO", "iNFo")

	for _, level := range []string{"", "D", "DE BUG", "."} {
		_, err := ParseLevel(level)
		require.Error(t, err, "not supposed to succeed while parsing level string [%s]", level)
	}

	require.Equal(t, "Level(9)", log.Level(9).String())
}

func verifyLevels(t *testing.T, module string, enabled, disabled []log.Level) {
	t.Helper()

	for _, level := range enabled {
		require.True(t, IsEnabledFor(module, level),
			"expected level [%s] to be enabled for module [%s]", level, module)
	}

	for _, level := range disabled {
		require.False(t, IsEnabledFor(module, level),
			"expected level [%s] to be disabled for module [%s]", level, module)
	}
}
