/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package command defines the contract of controller commands: a command reads a JSON request,
// writes a JSON response and reports failures as typed errors with numeric codes.
package command

import (
	"io"
)

// Exec is controller command execution function type.
type Exec func(rw io.Writer, req io.Reader) Error

// Handler for each controller command.
type Handler interface {
	// name of the command
	Name() string
	// method name of the command
	Method() string
	// execute function of the command
	Handle() Exec
}

// LookupHandler returns the handler registered for the command name and method.
func LookupHandler(handlers []Handler, name, method string) (Handler, bool) {
	for _, h := range handlers {
		if h.Name() == name && h.Method() == method {
			return h, true
		}
	}

	return nil, false
}
