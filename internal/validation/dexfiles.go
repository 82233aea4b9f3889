package validation

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/vk/bundlecheck/internal/bundle"
)

var dexFileNamePattern = regexp.MustCompile(`^classes(\d*)\.dex$`)

// ValidateDexFiles checks that a module's dex containers follow the
// required naming sequence: classes.dex first, then classes2.dex,
// classes3.dex and so on, with no gaps and no classes1.dex. A module with
// no dex files is valid.
func ValidateDexFiles(m *bundle.Module) error {
	names := append([]string(nil), m.DexFiles...)
	sort.Slice(names, func(i, j int) bool {
		a, b := dexFileIndex(names[i]), dexFileIndex(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})

	for i, name := range names {
		expected := "classes.dex"
		if i > 0 {
			expected = fmt.Sprintf("classes%d.dex", i+1)
		}
		if name != expected {
			return newError(InvalidDexNaming,
				"module '%s' has invalid dex files: expecting file '%s' but found '%s'",
				m.Name, expected, name)
		}
	}

	return nil
}

// dexFileIndex extracts the sequence number of a dex container name, with
// classes.dex counting as 1. Names outside the classesN.dex shape sort
// last so the sequence check reports them against the expected name.
func dexFileIndex(name string) int {
	match := dexFileNamePattern.FindStringSubmatch(name)
	if match == nil {
		return math.MaxInt
	}
	if match[1] == "" {
		return 1
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return math.MaxInt
	}
	return n
}
