package ocr

import (
	"regexp"
	"strconv"
	"strings"
)

// The percentage may OCR as "29%", "29 %", "% 29" or just "29"; the bare
// number is the last resort. Checked in order of reliability.
var percentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,3})\s*%`),
	regexp.MustCompile(`%\s*(\d{1,3})`),
	regexp.MustCompile(`(\d{1,3})`),
}

var digitsRe = regexp.MustCompile(`\d+`)

// ExtractPercent pulls a percentage in [0,100] out of OCR text.
func ExtractPercent(text string) (int, bool) {
	for _, re := range percentPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err == nil && n >= 0 && n <= 100 {
			return n, true
		}
	}
	return 0, false
}

// ExtractNumber returns the first run of digits in text.
func ExtractNumber(text string) (int, bool) {
	m := digitsRe.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// digitConfusions are character swaps tesseract commonly makes on the
// turn counter font.
var digitConfusions = strings.NewReplacer(
	"y", "9",
	"]", "1",
	"l", "1",
	"I", "1",
	"o", "0",
	"O", "0",
	"/", "7",
)

// FixDigitConfusions repairs common OCR misreads before digit extraction.
// Only apply this to text that is known to be numeric.
func FixDigitConfusions(text string) string {
	return digitConfusions.Replace(text)
}
