package util

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var slugPunctuation = regexp.MustCompile("[\\t !\"#$%&'()*\\-/<=>?@\\[\\\\\\]^_`{|},.]+")

// Slugify builds a url-safe slug from a neighborhood name.
// Tokens are NFKD-normalized but not transliterated, so non-ascii letters survive.
func Slugify(input string) string {
	words := slugPunctuation.Split(strings.ToLower(input), -1)

	result := make([]string, 0, len(words))
	for _, word := range words {
		word = norm.NFKD.String(word)
		if word == "" {
			continue
		}

		result = append(result, word)
	}

	return strings.Join(result, "-")
}
