package articles

import (
	"regexp"
	"strings"
)

var (
	slugStripRx    = regexp.MustCompile(`[^\w\s-]`)
	slugSpaceRx    = regexp.MustCompile(`\s+`)
	slugCollapseRx = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from a title: lowercase, drop everything
// that is not a word character, whitespace, or hyphen, turn whitespace runs
// into single hyphens, and collapse hyphen runs. The function is idempotent,
// so a slug fed back in comes out unchanged.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStripRx.ReplaceAllString(s, "")
	s = slugSpaceRx.ReplaceAllString(s, "-")
	s = slugCollapseRx.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
