// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"fmt"
	"io"
	"os"

	"github.com/clogs-dev/clogs/lib/cli"
)

// Fatal writes "error: err" to stderr and exits with the code of the
// error's category. Use it in main() for errors from run(), where the
// structured logger may not be initialized.
func Fatal(err error) {
	os.Exit(Report(os.Stderr, err))
}

// Report writes err to w and returns the exit code for it. A nil
// error writes nothing and returns 0.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return cli.ExitCode(err)
}
