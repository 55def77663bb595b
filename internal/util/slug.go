// Package util holds small shared helpers.
package util

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Slugify derives a URL-safe identifier from a display name: lowercase,
// runs of non-alphanumerics collapsed into single hyphens, no leading or
// trailing hyphen.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false

			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// SlugWithSuffix disambiguates a taken slug by appending the current unix
// timestamp in milliseconds.
func SlugWithSuffix(slug string) string {
	return slug + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}
