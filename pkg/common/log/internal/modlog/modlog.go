/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package modlog provides a moduled wrapper for any underlying log.Logger implementation.
package modlog

import (
	"github.com/hyperledger/aries-bbs-signatures-go/pkg/common/log/internal/metadata"
	"github.com/hyperledger/aries-bbs-signatures-go/spi/log"
)

// NewModLog returns new moduled logger instance based on given logger implementation and module.
func NewModLog(logger log.Logger, module string) *ModLog {
	return &ModLog{logger: logger, module: module}
}

// ModLog drops messages below the level configured for its module (default is INFO)
// and passes the rest to the underlying logger.
type ModLog struct {
	logger log.Logger
	module string
}

// Fatalf calls underlying logger.Fatal.
func (m *ModLog) Fatalf(format string, args ...interface{}) {
	m.logger.Fatalf(format, args...)
}

// Panicf calls underlying logger.Panic.
func (m *ModLog) Panicf(format string, args ...interface{}) {
	m.logger.Panicf(format, args...)
}

// Debugf calls debug log function if DEBUG level enabled.
func (m *ModLog) Debugf(format string, args ...interface{}) {
	if metadata.IsEnabledFor(m.module, log.DEBUG) {
		m.logger.Debugf(format, args...)
	}
}

// Infof calls info log function if INFO level enabled.
func (m *ModLog) Infof(format string, args ...interface{}) {
	if metadata.IsEnabledFor(m.module, log.INFO) {
		m.logger.Infof(format, args...)
	}
}

// Warnf calls warning log function if WARNING level enabled.
func (m *ModLog) Warnf(format string, args ...interface{}) {
	if metadata.IsEnabledFor(m.module, log.WARNING) {
		m.logger.Warnf(format, args...)
	}
}

// Errorf calls error log function if ERROR level enabled.
func (m *ModLog) Errorf(format string, args ...interface{}) {
	if metadata.IsEnabledFor(m.module, log.ERROR) {
		m.logger.Errorf(format, args...)
	}
}
