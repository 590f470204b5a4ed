/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package logutil formats the log lines of controller commands.
package logutil

import (
	"fmt"
	"strings"

	"github.com/hyperledger/aries-bbs-signatures-go/spi/log"
)

const lineFormat = "command=[%s] action=[%s] %s %s=[%s]"

// LogError is a utility function to log error messages.
func LogError(logger log.Logger, command, action, errMsg string, data ...string) {
	logger.Errorf(lineFormat, command, action, joinData(data), "errMsg", errMsg)
}

// LogDebug is a utility function to log debug messages.
func LogDebug(logger log.Logger, command, action, msg string, data ...string) {
	logger.Debugf(lineFormat, command, action, joinData(data), "msg", msg)
}

// LogInfo is a utility function to log info messages.
func LogInfo(logger log.Logger, command, action, msg string, data ...string) {
	logger.Infof(lineFormat, command, action, joinData(data), "msg", msg)
}

// CreateKeyValueString creates a concatenated string.
func CreateKeyValueString(key, val string) string {
	return fmt.Sprintf("%s=[%s]", key, val)
}

func joinData(data []string) string {
	return strings.Join(data, " ")
}
