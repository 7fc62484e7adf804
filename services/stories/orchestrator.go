package stories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"storyhub-backend/models/story"
	"storyhub-backend/models/users"
)

var validate = validator.New()

// StoryInput is the changeset for Insert.
type StoryInput struct {
	Content       story.Content
	Audience      string // defaults to "all" when empty
	AuthorID      uint
	PublicationID *uint
	PublishedAt   *time.Time
	Tags          []string
}

// StoryChanges is the changeset for Update. Nil fields are left untouched;
// ClearPublication nulls the publication reference. The author never changes.
type StoryChanges struct {
	Content          *story.Content
	Audience         *string
	PublicationID    *uint
	ClearPublication bool
	PublishedAt      *time.Time
	Tags             *[]string // nil = keep current tags
}

// Orchestrator drives multi-step story mutations. Insert and Update run
// their constituent steps inside a single transaction so a tag-resolution
// failure cannot leave an orphaned story and vice versa.
type Orchestrator struct {
	DB *gorm.DB
}

// Insert validates the changeset, resolves tags and persists the story, all
// in one transaction. The unique hash is assigned here and never changes.
func (o Orchestrator) Insert(input StoryInput) (*story.Story, error) {
	s := &story.Story{
		Content:       input.Content,
		Audience:      input.Audience,
		AuthorID:      input.AuthorID,
		PublicationID: input.PublicationID,
		PublishedAt:   input.PublishedAt,
		UniqueHash:    newUniqueHash(),
	}
	if s.Audience == "" {
		s.Audience = story.AudienceAll
	}

	m := NewMulti().
		Step("validate", func(_ *gorm.DB, _ map[string]any) (any, error) {
			return nil, validateChangeset(s, input.Tags)
		}).
		Step("tags", func(tx *gorm.DB, _ map[string]any) (any, error) {
			return ResolveTags(tx, input.Tags)
		}).
		Step("story", func(tx *gorm.DB, results map[string]any) (any, error) {
			s.Tags = results["tags"].([]story.Tag)
			// Tags.* keeps the resolved rows as-is and only writes the
			// join table references.
			if err := tx.Omit("Author", "Tags.*").Create(s).Error; err != nil {
				return nil, translateConstraint(err)
			}
			return s, nil
		})

	if _, err := m.Run(o.DB); err != nil {
		return nil, err
	}
	return s, nil
}

// Update loads the story, merges the changes, validates the result and
// persists it, replacing the tag association when a tag list was given.
// All steps run in one transaction.
func (o Orchestrator) Update(id uint, changes StoryChanges) (*story.Story, error) {
	var s *story.Story
	tagNames := []string{}
	if changes.Tags != nil {
		tagNames = *changes.Tags
	}

	m := NewMulti().
		Step("story", func(tx *gorm.DB, _ map[string]any) (any, error) {
			loaded, err := Repository{DB: tx}.MustGetByID(id)
			if err != nil {
				return nil, err
			}
			s = loaded
			mergeChanges(s, changes)
			return s, nil
		}).
		Step("validate", func(_ *gorm.DB, _ map[string]any) (any, error) {
			return nil, validateChangeset(s, tagNames)
		}).
		Step("tags", func(tx *gorm.DB, _ map[string]any) (any, error) {
			if changes.Tags == nil {
				return []story.Tag(nil), nil
			}
			return ResolveTags(tx, tagNames)
		}).
		Step("persist", func(tx *gorm.DB, results map[string]any) (any, error) {
			if err := tx.Omit("Tags", "Author").Save(s).Error; err != nil {
				return nil, translateConstraint(err)
			}
			if changes.Tags != nil {
				resolved := results["tags"].([]story.Tag)
				if err := tx.Model(s).Association("Tags").Replace(&resolved); err != nil {
					return nil, err
				}
				s.Tags = resolved
			}
			return s, nil
		})

	if _, err := m.Run(o.DB); err != nil {
		return nil, err
	}
	return s, nil
}

// RemoveFromPublication detaches the story from its publication.
func (o Orchestrator) RemoveFromPublication(id uint) (*story.Story, error) {
	return o.Update(id, StoryChanges{ClearPublication: true})
}

// Delete hard-deletes a story. Author only; cleanup of dependent rows is the
// storage layer's concern, no multi-step wrapper is involved.
func (o Orchestrator) Delete(id uint, u *users.User) error {
	s, err := Repository{DB: o.DB}.MustGetByID(id)
	if err != nil {
		return err
	}
	if !(Permissions{}).CanDelete(s, u) {
		return story.ErrNotAllowed
	}
	return o.DB.Delete(&story.Story{}, s.ID).Error
}

func mergeChanges(s *story.Story, changes StoryChanges) {
	if changes.Content != nil {
		s.Content = *changes.Content
	}
	if changes.Audience != nil {
		s.Audience = *changes.Audience
	}
	switch {
	case changes.ClearPublication:
		s.PublicationID = nil
	case changes.PublicationID != nil:
		s.PublicationID = changes.PublicationID
	}
	if changes.PublishedAt != nil {
		s.PublishedAt = changes.PublishedAt
	}
}

// validateChangeset reports every field violation of the merged story at
// once, so callers can surface them field by field.
func validateChangeset(s *story.Story, tagNames []string) error {
	var errs story.ValidationErrors
	if s.AuthorID == 0 {
		errs = append(errs, story.FieldError{Field: "author_id", Message: "can't be blank"})
	}
	if len(s.Content.Blocks) == 0 || strings.TrimSpace(s.Content.Blocks[0].Text) == "" {
		errs = append(errs, story.FieldError{Field: "content", Message: "must contain a title block"})
	}
	if err := validate.Var(s.Audience, "oneof=all members"); err != nil {
		errs = append(errs, story.FieldError{Field: "audience", Message: "is invalid"})
	}
	for _, name := range tagNames {
		if err := validate.Var(name, "required,max=100"); err != nil {
			errs = append(errs, story.FieldError{Field: "tags", Message: fmt.Sprintf("name %q is invalid", name)})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// translateConstraint maps driver uniqueness conflicts onto the field-level
// constraint error. The only unique column on stories is the hash.
func translateConstraint(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &story.ConstraintError{Field: "unique_hash"}
	}
	return err
}

// newUniqueHash returns the short opaque discriminator appended to slugs.
func newUniqueHash() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
