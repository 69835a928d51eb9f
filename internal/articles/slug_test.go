package articles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation and double space", "Hello, World!  Foo", "hello-world-foo"},
		{"already a slug", "hello-world-foo", "hello-world-foo"},
		{"mixed case", "Go Is NOT JavaScript", "go-is-not-javascript"},
		{"leading and trailing space", "  Spaces Everywhere  ", "spaces-everywhere"},
		{"repeated hyphens", "one -- two", "one-two"},
		{"unicode punctuation stripped", "C'est l'été?", "cest-lt"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{
		"Hello, World!  Foo",
		"A Very--Strange    Title!!!",
		"plain",
	}
	for _, title := range titles {
		once := Slugify(title)
		assert.Equal(t, once, Slugify(once), "slugify must be idempotent for %q", title)
	}
}
