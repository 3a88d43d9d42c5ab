/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package core

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Build variables, set through -ldflags "-X github.com/nuts-foundation/ion-crawler/core.GitVersion=..." when releasing.
var (
	GitCommit  string
	GitVersion string
	GitBranch  = "development"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Version returns the release tag, or the branch for builds that aren't tagged.
func Version() string {
	if GitVersion == "" || GitVersion == "undefined" {
		return GitBranch
	}
	return GitVersion
}

// Commit returns the commit the binary was built from. Without -ldflags it falls back to the VCS revision
// the Go toolchain embedded, suffixed with "-dirty" for builds with local modifications.
func Commit() string {
	if GitCommit != "" {
		return GitCommit
	}
	info, ok := readBuildInfo()
	if !ok {
		return "unknown"
	}
	var revision, modified string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value
		}
	}
	if revision == "" {
		return "unknown"
	}
	if modified == "true" {
		revision += "-dirty"
	}
	return revision
}

// OSArch returns the platform the binary runs on, e.g. linux/amd64.
func OSArch() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// BuildInfo describes the build on multiple lines, logged when the server starts.
func BuildInfo() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "Git version: %s\n", Version())
	_, _ = fmt.Fprintf(&b, "Git commit: %s\n", Commit())
	_, _ = fmt.Fprintf(&b, "OS/Arch: %s\n", OSArch())
	_, _ = fmt.Fprintf(&b, "Go: %s\n", runtime.Version())
	return b.String()
}
