// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"bytes"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	savedCommit, savedDirty, savedTime := GitCommit, GitDirty, BuildTime
	t.Cleanup(func() { GitCommit, GitDirty, BuildTime = savedCommit, savedDirty, savedTime })

	GitCommit, GitDirty, BuildTime = "abc1234", "true", "2026-10-01T00:00:00Z"
	if got, want := Info(), Version+" (abc1234-dirty, 2026-10-01T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}

	GitDirty = "false"
	if strings.Contains(Info(), "-dirty") {
		t.Errorf("clean build reported dirty: %q", Info())
	}
}

func TestPrint(t *testing.T) {
	var buffer bytes.Buffer
	Print(&buffer, "clogs-dashboard")
	output := buffer.String()
	if !strings.HasPrefix(output, "clogs-dashboard "+Version) {
		t.Errorf("Print output %q does not start with the binary and version", output)
	}
	if !strings.Contains(output, "Go: go") {
		t.Errorf("Print output %q lacks the Go version", output)
	}
}
