package stories

import (
	"strings"

	"github.com/gosimple/slug"

	"storyhub-backend/models/story"
)

// wordsPerMinute is the reading speed used for read-time estimates.
const wordsPerMinute = 275

// Title returns the text of the first content block.
func Title(s *story.Story) (string, error) {
	if len(s.Content.Blocks) == 0 {
		return "", story.ErrMalformedContent
	}
	return s.Content.Blocks[0].Text, nil
}

// Slug derives the canonical URL slug: the transliterated, hyphenated title
// followed by "-" and the unique hash. Stable for a given title+hash pair;
// the hash suffix disambiguates colliding title prefixes.
func Slug(s *story.Story) (string, error) {
	title, err := Title(s)
	if err != nil {
		return "", err
	}
	return slug.Make(title) + "-" + s.UniqueHash, nil
}

// WordCount joins every block's text with a single space and counts
// whitespace-separated tokens.
func WordCount(s *story.Story) int {
	texts := make([]string, 0, len(s.Content.Blocks))
	for _, b := range s.Content.Blocks {
		texts = append(texts, b.Text)
	}
	return len(strings.Fields(strings.Join(texts, " ")))
}

// ReadTime estimates reading minutes, rounded down with a floor of one
// minute: any word count under wordsPerMinute still reads as one minute.
func ReadTime(s *story.Story) int {
	minutes := WordCount(s) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
