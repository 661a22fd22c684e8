// SPDX-License-Identifier: MIT

package builder

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// IDFn maps a zero-based layout index to the ID requested for that node.
// The store keeps the ID unless another node already holds it, in which case
// it assigns a UUID instead, so a scheme never has to guarantee uniqueness
// across layouts.
type IDFn func(idx int) string

// ErrUnknownIDScheme is returned by ParseIDScheme for an unregistered name.
var ErrUnknownIDScheme = errors.New("builder: unknown id scheme")

// DecimalIDs yields "0", "1", …, "42". It is the default scheme.
func DecimalIDs(idx int) string { return strconv.Itoa(idx) }

// LetterIDs yields spreadsheet column names: "A"…"Z", "AA", "AB", …
// Negative indexes fall back to DecimalIDs.
func LetterIDs(idx int) string {
	if idx < 0 {
		return DecimalIDs(idx)
	}
	var buf [16]byte
	i := len(buf)
	for n := idx + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}

	return string(buf[i:])
}

// HexIDs yields lowercase hexadecimal: "0", "a", "ff".
func HexIDs(idx int) string { return strconv.FormatInt(int64(idx), 16) }

// Base36IDs yields lowercase base-36: "0", "z", "10".
func Base36IDs(idx int) string { return strconv.FormatInt(int64(idx), 36) }

// PrefixedIDs yields prefix followed by the decimal index, e.g. "v0", "v1".
func PrefixedIDs(prefix string) IDFn {
	return func(idx int) string { return prefix + strconv.Itoa(idx) }
}

var idSchemes = map[string]IDFn{
	"decimal": DecimalIDs,
	"letters": LetterIDs,
	"hex":     HexIDs,
	"base36":  Base36IDs,
}

// IDSchemes lists the names ParseIDScheme accepts, sorted.
func IDSchemes() []string {
	names := make([]string, 0, len(idSchemes))
	for k := range idSchemes {
		names = append(names, k)
	}
	sort.Strings(names)

	return names
}

// ParseIDScheme resolves a scheme name. The empty name selects "decimal".
func ParseIDScheme(name string) (IDFn, error) {
	if name == "" {
		return DecimalIDs, nil
	}
	fn, ok := idSchemes[name]
	if !ok {
		return nil, fmt.Errorf("ParseIDScheme(%q): %w", name, ErrUnknownIDScheme)
	}

	return fn, nil
}

// WithLetterIDs names nodes "A", "B", … in layout order.
func WithLetterIDs() BuilderOption { return WithIDScheme(LetterIDs) }

// WithPrefixedIDs names nodes prefix+index.
func WithPrefixedIDs(prefix string) BuilderOption { return WithIDScheme(PrefixedIDs(prefix)) }
