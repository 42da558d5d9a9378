// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"

	"github.com/ik5/scansynth/bitmap"
)

func runPatterns(_ []string, stdout io.Writer) error {
	for _, name := range bitmap.PatternNames() {
		fmt.Fprintln(stdout, name)
	}

	return nil
}
