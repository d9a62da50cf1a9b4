// Package stacktrace trims goroutine dumps down to frames that belong to this module.
package stacktrace

import (
	"bufio"
	"bytes"
	"strings"
)

const marker = "/internal/"

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" locations found
// in a raw stack as produced by runtime/debug.Stack.
func InternalPaths(stack []byte) []string {
	var paths []string

	sc := bufio.NewScanner(bytes.NewReader(stack))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		goIdx := strings.Index(line, ".go:")
		if goIdx == -1 {
			continue
		}

		loc := line
		if sp := strings.IndexByte(line[goIdx:], ' '); sp != -1 {
			loc = line[:goIdx+sp]
		}

		idx := strings.Index(loc, marker)
		if idx == -1 {
			continue
		}
		paths = append(paths, loc[idx+1:])
	}

	return paths
}
