package snap

import (
	"fmt"
	"strings"
)

// Keyword names a diagnostic log column that can be appended to a
// snapped well path.
type Keyword string

const (
	KwLength  Keyword = "LENGTH"
	KwTVDDiff Keyword = "TVD_DIFF"
	KwOldTVD  Keyword = "OLD_TVD"
	KwOWC     Keyword = "OWC"
	KwPermX   Keyword = "PERMX"
	KwSwat    Keyword = "SWAT"
	KwSgas    Keyword = "SGAS"
	KwSoil    Keyword = "SOIL"
)

// Keywords lists every supported log keyword.
func Keywords() []Keyword {
	return []Keyword{KwLength, KwTVDDiff, KwOldTVD, KwOWC, KwPermX, KwSwat, KwSgas, KwSoil}
}

// ParseKeyword maps a case-insensitive name to its Keyword.
func ParseKeyword(s string) (Keyword, error) {
	kw := Keyword(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Keywords() {
		if kw == known {
			return kw, nil
		}
	}
	return "", fmt.Errorf("unrecognized log keyword %q", s)
}
