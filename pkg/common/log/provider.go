/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"io"
	"os"
	"sync"

	"github.com/hyperledger/aries-bbs-signatures-go/pkg/common/log/internal/modlog"
	"github.com/hyperledger/aries-bbs-signatures-go/spi/log"
)

// loggerProviderInstance is logger factory singleton - access only via loggerProvider().
//
//nolint:gochecknoglobals
var (
	loggerProviderInstance log.LoggerProvider
	loggerProviderOnce     sync.Once
)

// Initialize sets new custom logging provider which takes over logging operations.
// It has effect only when called before the first line is logged, later calls are ignored.
func Initialize(l log.LoggerProvider) {
	loggerProviderOnce.Do(func() {
		loggerProviderInstance = &modlogProvider{custom: l}
		loggerProviderInstance.GetLogger(loggerModule).Debugf("Logger provider initialized")
	})
}

func loggerProvider() log.LoggerProvider {
	loggerProviderOnce.Do(func() {
		loggerProviderInstance = &modlogProvider{custom: NewDefaultProvider(os.Stderr)}
		loggerProviderInstance.GetLogger(loggerModule).Debugf(loggerNotInitializedMsg)
	})

	return loggerProviderInstance
}

// NewDefaultProvider returns the built-in logging provider writing plain text lines to w.
func NewDefaultProvider(w io.Writer) log.LoggerProvider {
	return &defaultProvider{output: w}
}

type defaultProvider struct {
	output io.Writer
}

func (p *defaultProvider) GetLogger(module string) log.Logger {
	logger := modlog.NewDefLog(module)
	logger.SetOutput(p.output)

	return logger
}

// modlogProvider applies the per module levels on top of the loggers of another provider.
type modlogProvider struct {
	custom log.LoggerProvider
}

// GetLogger returns moduled logger implementation.
func (p *modlogProvider) GetLogger(module string) log.Logger {
	if p.custom == nil {
		return modlog.NewModLog(modlog.NewDefLog(module), module)
	}

	return modlog.NewModLog(p.custom.GetLogger(module), module)
}
