package publications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storyhub-backend/models/users"
)

func TestPolicyCanEditStories(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:publications_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}, &Publication{}))

	editor := users.User{Name: "Editor", Email: "editor@example.com"}
	require.NoError(t, db.Create(&editor).Error)
	outsider := users.User{Name: "Outsider", Email: "outsider@example.com"}
	require.NoError(t, db.Create(&outsider).Error)

	pub := Publication{Name: "The Quill", OwnerID: editor.ID, Editors: []users.User{editor}}
	require.NoError(t, db.Create(&pub).Error)

	policy := Policy{DB: db}
	assert.True(t, policy.CanEditStories(pub.ID, editor.ID))
	assert.False(t, policy.CanEditStories(pub.ID, outsider.ID))
	assert.False(t, policy.CanEditStories(999, editor.ID))
}
