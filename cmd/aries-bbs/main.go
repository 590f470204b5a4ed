/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package main is the aries-bbs command line tool. It runs a single BBS+ command per invocation:
// the JSON request is read from a file or stdin and the JSON response is written to stdout.
package main

import (
	"os"

	"github.com/hyperledger/aries-bbs-signatures-go/cmd/aries-bbs/bbscmd"
	"github.com/hyperledger/aries-bbs-signatures-go/pkg/common/log"
)

func main() {
	logger := log.New("aries-bbs/cli")

	rootCmd := bbscmd.Cmd(os.Stdout, os.Stdin)

	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("Failed to run aries-bbs: %s", err)
		os.Exit(1)
	}
}
