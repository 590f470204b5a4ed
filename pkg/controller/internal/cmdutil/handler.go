/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cmdutil builds controller command handlers.
package cmdutil

import (
	"github.com/hyperledger/aries-bbs-signatures-go/pkg/controller/command"
)

// NewCommandHandler returns instance of CommandHandler which can be used handle
// controller commands.
func NewCommandHandler(name, method string, exec command.Exec) *CommandHandler {
	return &CommandHandler{name: name, method: method, handle: exec}
}

// CommandHandler contains command handling details which can be used to build controller
// commands.
type CommandHandler struct {
	name   string
	method string
	handle command.Exec
}

// Name of the command.
func (c *CommandHandler) Name() string {
	return c.name
}

// Method name of the command.
func (c *CommandHandler) Method() string {
	return c.method
}

// Handle returns execute function of the command handler.
func (c *CommandHandler) Handle() command.Exec {
	return c.handle
}
