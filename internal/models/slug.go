package models

import "strings"

// NormalizeSlug turns a raw slug (or, when the slug is empty, the product
// title) into its stored form: lowercase, spaces replaced by underscores,
// apostrophes removed.
func NormalizeSlug(slug, title string) string {
	if slug == "" {
		slug = title
	}
	slug = strings.ToLower(slug)
	slug = strings.ReplaceAll(slug, " ", "_")
	slug = strings.ReplaceAll(slug, "'", "")
	return slug
}
