/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package metadata keeps the per module log levels.
package metadata

import (
	"sync"

	"github.com/hyperledger/aries-bbs-signatures-go/spi/log"
)

const (
	defaultLogLevel = log.INFO

	// DefaultModule is the module whose level applies to every module without its own level.
	DefaultModule = ""
)

//nolint:gochecknoglobals
var (
	rwmutex = &sync.RWMutex{}
	levels  = make(map[string]log.Level)
)

// SetLevel - setting log level for given module.
func SetLevel(module string, level log.Level) {
	rwmutex.Lock()
	defer rwmutex.Unlock()

	levels[module] = level
}

// GetLevel - getting log level for given module, falling back to the default module and then to INFO.
func GetLevel(module string) log.Level {
	rwmutex.RLock()
	defer rwmutex.RUnlock()

	return getLevel(module)
}

// IsEnabledFor - Check if given log level is enabled for given module.
func IsEnabledFor(module string, level log.Level) bool {
	rwmutex.RLock()
	defer rwmutex.RUnlock()

	return level <= getLevel(module)
}

func getLevel(module string) log.Level {
	if level, ok := levels[module]; ok {
		return level
	}

	if level, ok := levels[DefaultModule]; ok {
		return level
	}

	return defaultLogLevel
}
