package publications

import (
	"time"

	"gorm.io/gorm"

	"storyhub-backend/models/users"
)

type Publication struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `json:"name" gorm:"not null"`
	Description string       `json:"description" gorm:"type:text"`
	OwnerID     uint         `json:"owner_id" gorm:"index;not null"`
	Editors     []users.User `json:"editors" gorm:"many2many:publication_editors"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Policy answers capability lookups against the editors join table.
// The owner is stored as an editor row as well, so a single lookup covers both.
type Policy struct {
	DB *gorm.DB
}

func (p Policy) CanEditStories(publicationID, userID uint) bool {
	var n int64
	err := p.DB.Table("publication_editors").
		Where("publication_id = ? AND user_id = ?", publicationID, userID).
		Count(&n).Error
	return err == nil && n > 0
}
