/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbscmd builds the cobra commands of the aries-bbs tool, one sub-command per BBS+ controller method.
package bbscmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-bbs-signatures-go/pkg/common/log"
	"github.com/hyperledger/aries-bbs-signatures-go/pkg/controller/command"
	"github.com/hyperledger/aries-bbs-signatures-go/pkg/controller/command/bbs"
)

const (
	// request flag.
	requestFlagName      = "request"
	requestEnvKey        = "BBS_REQUEST"
	requestFlagShorthand = "r"
	requestFlagUsage     = "Path of the JSON request file, " + stdinRequest + " reads the request from standard input." +
		" Alternatively, this can be set with the following environment variable: " + requestEnvKey

	// log level.
	logLevelFlagName  = "log-level"
	logLevelEnvKey    = "BBS_LOG_LEVEL"
	logLevelFlagUsage = "Log level." +
		" Possible values [INFO] [DEBUG] [ERROR] [WARNING] [CRITICAL] . Defaults to INFO if not set." +
		" Alternatively, this can be set with the following environment variable: " + logLevelEnvKey

	stdinRequest = "-"
)

var logger = log.New("aries-bbs/bbscmd")

// nolint:gochecknoglobals
var methodCommands = []struct {
	use    string
	method string
	short  string
}{
	{"generate-key-pair", bbs.GenerateKeyPairCommandMethod, "Generate a BLS12-381 key pair"},
	{"bls-to-bbs-key", bbs.BlsToBbsKeyCommandMethod, "Expand a BLS public key to a BBS+ public key"},
	{"sign", bbs.SignCommandMethod, "Sign messages"},
	{"verify", bbs.VerifyCommandMethod, "Verify a signature"},
	{"blind-commit", bbs.BlindCommitCommandMethod, "Commit to messages hidden from the signer"},
	{"verify-blind-commit", bbs.VerifyBlindCommitCommandMethod, "Verify the proof of a blind commitment"},
	{"blind-sign", bbs.BlindSignCommandMethod, "Sign a blind commitment and known messages"},
	{"unblind", bbs.UnblindCommandMethod, "Unblind a blind signature"},
	{"create-proof", bbs.CreateProofCommandMethod, "Derive a selective disclosure proof of a signature"},
	{"verify-proof", bbs.VerifyProofCommandMethod, "Verify a selective disclosure proof"},
	{"bls-sign", bbs.BlsSignCommandMethod, "Sign messages with a secret key only"},
	{"bls-verify", bbs.BlsVerifyCommandMethod, "Verify a signature with a BLS public key"},
	{"bls-create-proof", bbs.BlsCreateProofCommandMethod, "Derive a selective disclosure proof with a BLS public key"},
	{"bls-verify-proof", bbs.BlsVerifyProofCommandMethod, "Verify a selective disclosure proof with a BLS public key"},
}

// Cmd returns the aries-bbs root command. Responses are written to out, in is the request source of "-".
func Cmd(out io.Writer, in io.Reader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "aries-bbs",
		Short:         "BBS+ signatures",
		Long:          "Sign, blind sign and derive selective disclosure proofs with BBS+ signatures over BLS12-381",
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	handlers := bbs.New().GetHandlers()

	for _, mc := range methodCommands {
		handler, ok := command.LookupHandler(handlers, bbs.CommandName, mc.method)
		if !ok {
			logger.Warnf("no handler for %s %s", bbs.CommandName, mc.method)

			continue
		}

		rootCmd.AddCommand(createMethodCmd(mc.use, mc.short, handler, out, in))
	}

	return rootCmd
}

func createMethodCmd(use, short string, handler command.Handler, out io.Writer, in io.Reader) *cobra.Command {
	methodCmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + ". The request is the JSON document of the " + handler.Method() +
			" command, the JSON response or error is written to standard output.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logLevel, err := getUserSetVar(cmd, logLevelFlagName, logLevelEnvKey, true)
			if err != nil {
				return err
			}

			if err = setLogLevel(logLevel); err != nil {
				return err
			}

			requestPath, err := getUserSetVar(cmd, requestFlagName, requestEnvKey, false)
			if err != nil {
				return err
			}

			req, closeReq, err := openRequest(requestPath, in)
			if err != nil {
				return err
			}

			defer closeReq()

			return execute(handler, out, req)
		},
	}

	createFlags(methodCmd)

	return methodCmd
}

func createFlags(methodCmd *cobra.Command) {
	methodCmd.Flags().StringP(requestFlagName, requestFlagShorthand, "", requestFlagUsage)
	methodCmd.Flags().StringP(logLevelFlagName, "", "", logLevelFlagUsage)
}

// execute buffers the response so that a failed command writes the error document only.
func execute(handler command.Handler, out io.Writer, req io.Reader) error {
	var rw bytes.Buffer

	if cmdErr := handler.Handle()(&rw, req); cmdErr != nil {
		command.WriteNillableResponse(out, command.NewErrorResponse(cmdErr), logger)

		return fmt.Errorf("%s %s: %w", handler.Name(), handler.Method(), cmdErr)
	}

	if _, err := rw.WriteTo(out); err != nil {
		return fmt.Errorf("write response: %w", err)
	}

	return nil
}

func openRequest(path string, in io.Reader) (io.Reader, func(), error) {
	if path == stdinRequest {
		return in, func() {}, nil
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, nil, fmt.Errorf("open request: %w", err)
	}

	return f, func() {
		if err := f.Close(); err != nil {
			logger.Warnf("failed to close request file: %s", err)
		}
	}, nil
}

func getUserSetVar(cmd *cobra.Command, flagName, envKey string, isOptional bool) (string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", fmt.Errorf(flagName+" flag not found: %s", err)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	if isOptional || isSet {
		return value, nil
	}

	return "", errors.New("Neither " + flagName + " (command line flag) nor " + envKey +
		" (environment variable) have been set.")
}

func setLogLevel(logLevel string) error {
	if logLevel != "" {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("failed to parse log level '%s' : %w", logLevel, err)
		}

		log.SetLevel("", level)

		logger.Debugf("logger level set to %s", logLevel)
	}

	return nil
}
