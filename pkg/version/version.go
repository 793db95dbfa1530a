// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package version holds build-time metadata, set via linker flags, and
// formats it for --version output.
package version

import (
	"fmt"
	"os"
	"path/filepath"
)

var (
	version     = "dev"
	buildCommit string
	buildTime   string
)

// GetVersionString returns a standard version header: program name,
// version, build commit and build time.
func GetVersionString() string {
	return fmt.Sprintf("%s %v (%s), built %v", filepath.Base(os.Args[0]), version, buildCommit, buildTime)
}

// GetVersion returns the semver-compatible version number.
func GetVersion() string {
	return version
}

// GetBuildCommit returns the commit the binary was built from.
func GetBuildCommit() string {
	return buildCommit
}

// GetBuildTime returns the time at which the build took place.
func GetBuildTime() string {
	return buildTime
}
