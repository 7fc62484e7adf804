package stories

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storyhub-backend/config"
	"storyhub-backend/models/story"
	"storyhub-backend/models/users"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.AutoMigrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *users.User {
	t.Helper()
	u := &users.User{Name: email, Email: email}
	require.NoError(t, db.Create(u).Error)
	return u
}

func blocksOf(texts ...string) story.Content {
	blocks := make([]story.Block, len(texts))
	for i, txt := range texts {
		blocks[i] = story.Block{Text: txt}
	}
	return story.Content{Blocks: blocks}
}

func timePtr(ts time.Time) *time.Time {
	return &ts
}
