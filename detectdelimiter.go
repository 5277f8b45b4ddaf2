package ontomisc

import (
	"io"
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// Delimiters that a sample sheet may plausibly use, in order of preference.
const candidateDelimiters = ",\t;|"

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. Characters that merely
// repeat consistently within values (such as the dots in file names) are not
// accepted; if nothing better is found, fallback is returned.
func DetermineDelimiter(r io.Reader, fallback rune) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	for _, delim := range delimiters {
		if len(delim) == 1 && strings.ContainsRune(candidateDelimiters, rune(delim[0])) {
			return rune(delim[0])
		}
	}

	return fallback
}
