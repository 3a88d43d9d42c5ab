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
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	testCases := []struct {
		gitVersion string
		expected   string
	}{
		{"", "development"},
		{"undefined", "development"},
		{"v1.2.3", "v1.2.3"},
	}
	for _, tc := range testCases {
		t.Run("version "+tc.gitVersion, func(t *testing.T) {
			GitVersion = tc.gitVersion
			defer func() { GitVersion = "" }()

			assert.Equal(t, tc.expected, Version())
		})
	}
}

func TestCommit(t *testing.T) {
	stubBuildInfo := func(t *testing.T, settings ...debug.BuildSetting) {
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Settings: settings}, true
		}
		t.Cleanup(func() {
			readBuildInfo = debug.ReadBuildInfo
		})
	}

	t.Run("set through ldflags", func(t *testing.T) {
		GitCommit = "abc"
		defer func() { GitCommit = "" }()

		assert.Equal(t, "abc", Commit())
	})
	t.Run("VCS revision", func(t *testing.T) {
		stubBuildInfo(t, debug.BuildSetting{Key: "vcs.revision", Value: "def"}, debug.BuildSetting{Key: "vcs.modified", Value: "false"})

		assert.Equal(t, "def", Commit())
	})
	t.Run("modified VCS revision", func(t *testing.T) {
		stubBuildInfo(t, debug.BuildSetting{Key: "vcs.revision", Value: "def"}, debug.BuildSetting{Key: "vcs.modified", Value: "true"})

		assert.Equal(t, "def-dirty", Commit())
	})
	t.Run("no VCS info", func(t *testing.T) {
		stubBuildInfo(t)

		assert.Equal(t, "unknown", Commit())
	})
	t.Run("no build info", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return nil, false
		}
		defer func() { readBuildInfo = debug.ReadBuildInfo }()

		assert.Equal(t, "unknown", Commit())
	})
}

func TestBuildInfo(t *testing.T) {
	GitCommit = "abc"
	defer func() { GitCommit = "" }()

	assert.Equal(t, "Git version: development\nGit commit: abc\nOS/Arch: "+OSArch()+"\nGo: "+runtime.Version()+"\n", BuildInfo())
}
