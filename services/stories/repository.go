package stories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"storyhub-backend/models/story"
)

// Repository wraps lookups over story rows. Soft lookups return (nil, nil)
// on a miss; MustGetByID fails with story.ErrStoryNotFound instead.
// Read failures propagate immediately, there are no retries.
type Repository struct {
	DB *gorm.DB
}

func (r Repository) GetByID(id uint) (*story.Story, error) {
	var s story.Story
	if err := r.DB.Preload("Tags").First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r Repository) MustGetByID(id uint) (*story.Story, error) {
	s, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, story.ErrStoryNotFound
	}
	return s, nil
}

// GetBySlug resolves a slug by its trailing hyphen-delimited segment, which
// carries the unique hash. The human-readable prefix is cosmetic and is not
// validated against the story's content.
func (r Repository) GetBySlug(slug string) (*story.Story, error) {
	hash := slug
	if i := strings.LastIndex(slug, "-"); i >= 0 {
		hash = slug[i+1:]
	}
	return r.GetByUniqueHash(hash)
}

func (r Repository) GetByUniqueHash(hash string) (*story.Story, error) {
	return r.GetByClauses(map[string]any{"unique_hash": hash})
}

// GetByClauses looks up a single story by equality predicates on its columns.
func (r Repository) GetByClauses(clauses map[string]any) (*story.Story, error) {
	var s story.Story
	if err := r.DB.Preload("Tags").Where(clauses).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// CountPublished counts stories whose author is not deactivated. It ignores
// both audience and publish date; callers relying on this count depend on
// that behavior.
func (r Repository) CountPublished() (int64, error) {
	var n int64
	err := r.DB.Model(&story.Story{}).
		Joins("JOIN users ON users.id = stories.author_id").
		Where("users.deactivated = ?", false).
		Count(&n).Error
	return n, err
}

func (r Repository) ListByAuthor(authorID uint) ([]story.Story, error) {
	var out []story.Story
	err := r.DB.Preload("Tags").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r Repository) ListByPublication(publicationID uint) ([]story.Story, error) {
	var out []story.Story
	err := r.DB.Preload("Tags").
		Where("publication_id = ?", publicationID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r Repository) ListByTag(name string) ([]story.Story, error) {
	var out []story.Story
	err := r.DB.Preload("Tags").
		Select("stories.*").
		Joins("JOIN story_tags ON story_tags.story_id = stories.id").
		Joins("JOIN tags ON tags.id = story_tags.tag_id").
		Where("tags.name = ?", name).
		Order("stories.created_at DESC").
		Find(&out).Error
	return out, err
}
