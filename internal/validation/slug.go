package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var newsSlugRegex = regexp.MustCompile(`^[a-z0-9-]{3,80}$`)

var reservedNewsSlugs = map[string]struct{}{
	"admin":      {},
	"api":        {},
	"auth":       {},
	"news":       {},
	"categories": {},
	"comments":   {},
	"favorites":  {},
	"trending":   {},
	"users":      {},
	"metrics":    {},
	"health":     {},
	"login":      {},
	"register":   {},
}

// ValidateNewsSlug validates article slug format and reserved names.
func ValidateNewsSlug(slug string) error {
	if !newsSlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 3-80 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug cannot start or end with a hyphen")
	}

	if _, exists := reservedNewsSlugs[slug]; exists {
		return fmt.Errorf("slug is reserved")
	}

	return nil
}

var slugScrubRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the input and collapses runs of non-alphanumeric
// characters into single hyphens. The result may still need a uniqueness
// suffix before use.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugScrubRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
