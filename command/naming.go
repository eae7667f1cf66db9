package command

import (
	"fmt"
	"strconv"
	"strings"
)

// splitSuffix splits "Name.012" into ("Name", 12, true).
func splitSuffix(name string) (string, int, bool) {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot == len(name)-1 {
		return name, 0, false
	}
	digits := name[dot+1:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return name, 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return name, 0, false
	}
	return name[:dot], n, true
}

// DuplicateName returns the name for a copy of name among siblings: the base
// name with the lowest free ".NNN" suffix. The bare base name occupies 0, so
// the first copy of "Cube" is "Cube.001" and gaps are filled before the
// highest suffix is extended.
func DuplicateName(name string, siblings []string) string {
	base, _, _ := splitSuffix(name)

	used := map[int]bool{}
	for _, sibling := range siblings {
		if sibling == base {
			used[0] = true
			continue
		}
		if b, n, ok := splitSuffix(sibling); ok && b == base {
			used[n] = true
		}
	}

	n := 1
	for used[n] {
		n++
	}
	return fmt.Sprintf("%s.%03d", base, n)
}
