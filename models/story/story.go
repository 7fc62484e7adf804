package story

import (
	"time"

	"storyhub-backend/models/users"
)

const (
	AudienceAll     = "all"
	AudienceMembers = "members"
)

// Block is one unit of a story document (paragraph, heading, quote...).
// The first block's text is the story title.
type Block struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text"`
}

// Content is the structured story document, persisted as a JSON column.
type Content struct {
	Blocks []Block `json:"blocks"`
}

type Story struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Content       Content    `json:"content" gorm:"serializer:json"`
	UniqueHash    string     `json:"unique_hash" gorm:"uniqueIndex;size:16;not null"` // immutable, assigned at creation
	Audience      string     `json:"audience" gorm:"not null;default:'all'"`
	PublishedAt   *time.Time `json:"published_at"` // nil = draft
	AuthorID      uint       `json:"author_id" gorm:"index;not null"`
	Author        users.User `json:"author" gorm:"foreignKey:AuthorID"`
	PublicationID *uint      `json:"publication_id" gorm:"index"`
	Tags          []Tag      `json:"tags" gorm:"many2many:story_tags"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`
}
