package stories

import (
	"errors"

	"gorm.io/gorm"

	"storyhub-backend/models/story"
)

// ResolveTags returns one tag row per distinct name, inserting the missing
// ones. A concurrent insert of the same name loses the uniqueness race and
// falls back to re-fetching the winner's row, so resolution is idempotent.
// Callers running inside a transaction pass their transaction handle.
func ResolveTags(db *gorm.DB, names []string) ([]story.Tag, error) {
	seen := make(map[string]bool, len(names))
	tags := make([]story.Tag, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		var t story.Tag
		err := db.Where("name = ?", name).First(&t).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			t = story.Tag{Name: name}
			err = db.Create(&t).Error
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				t = story.Tag{}
				err = db.Where("name = ?", name).First(&t).Error
			}
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}
