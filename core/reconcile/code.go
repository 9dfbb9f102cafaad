package reconcile

import (
	"strings"

	"golang.org/x/text/width"
)

// CanonicalCode normalises a site or SKU code so that the same code typed,
// exported or stored differently compares equal: surrounding whitespace is
// dropped, full-width characters are folded to ASCII, and an integer written
// as a float ("1001.0") loses its zero fraction.
func CanonicalCode(raw string) string {
	code := strings.TrimSpace(width.Narrow.String(raw))
	if dot := strings.IndexByte(code, '.'); dot > 0 && allDigits(code[:dot]) {
		frac := code[dot+1:]
		if frac != "" && strings.Trim(frac, "0") == "" {
			code = code[:dot]
		}
	}
	return code
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
