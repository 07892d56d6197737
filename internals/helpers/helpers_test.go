package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeImageURL(t *testing.T) {
	assert.Equal(t, PlaceholderImageURL, NormalizeImageURL(""))
	assert.Equal(t, PlaceholderImageURL, NormalizeImageURL("   "))

	// Google Books thumbnails come over plain http
	assert.Equal(t,
		"https://books.google.com/books/content?id=x",
		NormalizeImageURL("http://books.google.com/books/content?id=x"))

	// everything else passes through untouched
	assert.Equal(t, "http://example.com/a.jpg", NormalizeImageURL("http://example.com/a.jpg"))
	assert.Equal(t, "/uploads/books/a.webp", NormalizeImageURL("/uploads/books/a.webp"))
}

func TestConvertToINR(t *testing.T) {
	assert.Equal(t, 0, ConvertToINR(0))
	assert.Equal(t, 83, ConvertToINR(1))
	assert.Equal(t, 1659, ConvertToINR(19.99)) // 1659.17 rounds down
	assert.Equal(t, 2074, ConvertToINR(24.99)) // 2074.17 rounds down
	assert.Equal(t, 42, ConvertToINR(0.505))
}

func TestGenerateUniqueFilename(t *testing.T) {
	name := GenerateUniqueFilename("books", "my cover (final).jpg")

	assert.True(t, strings.HasPrefix(name, "books/"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotContains(t, name, " ")
	assert.NotContains(t, name, "(")

	// two calls never collide
	assert.NotEqual(t, name, GenerateUniqueFilename("books", "my cover (final).jpg"))
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(45, 2, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = BuildPagination(0, 1, 20)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}
