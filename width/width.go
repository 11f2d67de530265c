// Package width classifies the display width of runes for the printing
// algorithm (spec §4.I step 2): 2 columns for wide characters (CJK
// ideographs, fullwidth forms, most emoji), 1 for normal text, 0 for
// zero-width marks and control codes. Grounded on the teacher's
// width.go, which delegates to uniwidth; termcore keeps that as the
// primary classifier and adds golang.org/x/text/width as a second opinion
// for ambiguous East-Asian punctuation uniwidth treats as narrow in some
// locales but that render fullwidth in East-Asian-Wide contexts.
package width

import (
	"github.com/unilibs/uniwidth"
	xtwidth "golang.org/x/text/width"
)

// RuneWidth returns the terminal column width of r: 0, 1, or 2.
func RuneWidth(r rune) int {
	if w := uniwidth.RuneWidth(r); w != 1 {
		return w
	}
	// uniwidth called it narrow; check whether x/text/width's East Asian
	// Width property disagrees (fullwidth/wide forms it recognizes that
	// uniwidth's table version may not yet).
	switch xtwidth.LookupRune(r).Kind() {
	case xtwidth.EastAsianFullwidth, xtwidth.EastAsianWide:
		return 2
	default:
		return 1
	}
}

// IsWide reports whether r occupies two terminal columns.
func IsWide(r rune) bool {
	return RuneWidth(r) == 2
}

// IsZeroWidth reports whether r occupies no terminal column (combining
// marks, most C0/C1 controls if misrouted here).
func IsZeroWidth(r rune) bool {
	return RuneWidth(r) == 0
}

// StringWidth returns the total display width of a string: the sum of its
// runes' widths.
func StringWidth(s string) int {
	total := 0
	for _, r := range s {
		total += RuneWidth(r)
	}
	return total
}
