/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package command

import (
	"encoding/json"
	"io"

	"github.com/hyperledger/aries-bbs-signatures-go/spi/log"
)

// WriteNillableResponse is a utility function that writes v to w.
// If v is nil then an empty object is written.
func WriteNillableResponse(w io.Writer, v interface{}, l log.Logger) {
	obj := v
	if v == nil {
		obj = map[string]interface{}{}
	}

	// errors of writing response are only logged, the command itself succeeded
	if err := json.NewEncoder(w).Encode(obj); err != nil {
		l.Errorf("Unable to send error response, %s", err)
	}
}

// ErrorResponse is the JSON form of a command error.
type ErrorResponse struct {
	Code    Code   `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewErrorResponse converts a command error into its JSON form.
func NewErrorResponse(err Error) *ErrorResponse {
	return &ErrorResponse{
		Code:    err.Code(),
		Type:    err.Type().String(),
		Message: err.Error(),
	}
}
