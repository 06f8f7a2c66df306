package navconfig

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// LabelKey is the comparison key for label uniqueness: whitespace runs
// collapse to one space and the result is NFC normalized. Case is kept.
func LabelKey(label string) string {
	return norm.NFC.String(strings.Join(strings.Fields(label), " "))
}
