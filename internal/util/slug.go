// Package util provides common utility functions.
package util

import (
	"regexp"

	"golang.org/x/text/cases"
)

// Matches everything that is not a Unicode letter or digit.
// Underscore is intentionally in the removed set even though it is a
// word character: slugs are strictly alphanumeric.
var nonAlphanumericRe = regexp.MustCompile(`[^\p{L}\p{N}]|_`)

// Slug converts a show title to its canonical feed slug.
// The slug is the show's identity in feed URLs.
//
// Normalization rules:
//  1. Case-fold (simple folding, no locale assumptions)
//  2. Remove every character that is not a letter or digit
//
// Examples:
//
//	"My Show!"      → "myshow"
//	"MY SHOW"       → "myshow"
//	"Nyheter 24/7"  → "nyheter247"
//	"sær_og_skjær"  → "særogskjær"
//
// Slug is pure and idempotent. It is not guaranteed collision-free
// across distinct titles.
func Slug(title string) string {
	// Casers are stateful and not safe for concurrent use; construct per call.
	folded := cases.Fold().String(title)
	return nonAlphanumericRe.ReplaceAllString(folded, "")
}
