package helper

import "strings"

// PlaceholderImageURL is used whenever a book has no cover.
const PlaceholderImageURL = "https://placehold.co/128x192/e2e8f0/1e293b?text=No+Image"

// NormalizeImageURL returns a displayable cover URL: placeholder when empty,
// and https enforced for Google Books thumbnails (they are served over
// plain http by the API).
func NormalizeImageURL(image string) string {
	if strings.TrimSpace(image) == "" {
		return PlaceholderImageURL
	}
	if strings.Contains(image, "books.google.com") {
		return strings.Replace(image, "http://", "https://", 1)
	}
	return image
}
