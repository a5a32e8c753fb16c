// Copyright (c) 2025 SciGo NWB Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package nwb

import "github.com/rs/zerolog"

// CheckOption configures CheckIntegrity.
// This follows the functional options pattern.
//
// Example:
//
//	report, err := nwb.CheckIntegrity(s,
//	    nwb.WithLogger(logger),
//	    nwb.WithMaxMajorVersion(1),
//	)
type CheckOption func(*checkConfig)

type checkConfig struct {
	logger   zerolog.Logger
	maxMajor int
}

func defaultCheckConfig() checkConfig {
	return checkConfig{
		logger:   zerolog.Nop(),
		maxMajor: SupportedMajorVersion,
	}
}

// WithLogger sets the logger progress and findings are reported to.
// Default: zerolog.Nop().
func WithLogger(logger zerolog.Logger) CheckOption {
	return func(c *checkConfig) {
		c.logger = logger
	}
}

// WithMaxMajorVersion sets the newest major format version that is accepted.
// Containers with a newer major version fail with ErrUnsupportedVersion.
// Values below 1 are ignored.
//
// Default: SupportedMajorVersion.
func WithMaxMajorVersion(major int) CheckOption {
	return func(c *checkConfig) {
		if major >= 1 {
			c.maxMajor = major
		}
	}
}
