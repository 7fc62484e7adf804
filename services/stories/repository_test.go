package stories

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyhub-backend/models/story"
)

func TestGetByIDSoftMiss(t *testing.T) {
	db := openTestDB(t)
	repo := Repository{DB: db}

	s, err := repo.GetByID(12345)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestMustGetByID(t *testing.T) {
	db := openTestDB(t)
	repo := Repository{DB: db}

	_, err := repo.MustGetByID(12345)
	assert.True(t, errors.Is(err, story.ErrStoryNotFound))

	author := createUser(t, db, "author@example.com")
	created, err := Orchestrator{DB: db}.Insert(StoryInput{
		Content:  blocksOf("A Story"),
		AuthorID: author.ID,
	})
	require.NoError(t, err)

	found, err := repo.MustGetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestGetBySlugRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := Repository{DB: db}
	author := createUser(t, db, "author@example.com")

	created, err := Orchestrator{DB: db}.Insert(StoryInput{
		Content:  blocksOf("Hello World"),
		AuthorID: author.ID,
	})
	require.NoError(t, err)

	slg, err := Slug(created)
	require.NoError(t, err)

	found, err := repo.GetBySlug(slg)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	// the human-readable prefix is cosmetic
	mangled, err := repo.GetBySlug("totally-different-title-" + created.UniqueHash)
	require.NoError(t, err)
	require.NotNil(t, mangled)
	assert.Equal(t, created.ID, mangled.ID)

	missing, err := repo.GetBySlug("whatever-nosuchhash")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetByClauses(t *testing.T) {
	db := openTestDB(t)
	repo := Repository{DB: db}
	author := createUser(t, db, "author@example.com")

	created, err := Orchestrator{DB: db}.Insert(StoryInput{
		Content:  blocksOf("Members Only"),
		Audience: story.AudienceMembers,
		AuthorID: author.ID,
	})
	require.NoError(t, err)

	found, err := repo.GetByClauses(map[string]any{
		"audience":  story.AudienceMembers,
		"author_id": author.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	none, err := repo.GetByClauses(map[string]any{"audience": story.AudienceAll})
	require.NoError(t, err)
	assert.Nil(t, none)
}

// CountPublished intentionally counts every story of a non-deactivated
// author, drafts and members-only stories included.
func TestCountPublishedQuirk(t *testing.T) {
	db := openTestDB(t)
	repo := Repository{DB: db}
	orc := Orchestrator{DB: db}

	active := createUser(t, db, "active@example.com")
	gone := createUser(t, db, "gone@example.com")
	require.NoError(t, db.Model(gone).Update("deactivated", true).Error)

	_, err := orc.Insert(StoryInput{Content: blocksOf("Draft"), AuthorID: active.ID})
	require.NoError(t, err)
	_, err = orc.Insert(StoryInput{
		Content:     blocksOf("Future"),
		AuthorID:    active.ID,
		PublishedAt: timePtr(time.Now().Add(time.Hour)),
	})
	require.NoError(t, err)
	_, err = orc.Insert(StoryInput{Content: blocksOf("Orphaned"), AuthorID: gone.ID})
	require.NoError(t, err)

	n, err := repo.CountPublished()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestListByTag(t *testing.T) {
	db := openTestDB(t)
	repo := Repository{DB: db}
	orc := Orchestrator{DB: db}
	author := createUser(t, db, "author@example.com")

	tagged, err := orc.Insert(StoryInput{
		Content:  blocksOf("Tagged"),
		AuthorID: author.ID,
		Tags:     []string{"go", "testing"},
	})
	require.NoError(t, err)
	_, err = orc.Insert(StoryInput{
		Content:  blocksOf("Untagged"),
		AuthorID: author.ID,
	})
	require.NoError(t, err)

	found, err := repo.ListByTag("go")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, tagged.ID, found[0].ID)

	none, err := repo.ListByTag("rust")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListByAuthorAndPublication(t *testing.T) {
	db := openTestDB(t)
	repo := Repository{DB: db}
	orc := Orchestrator{DB: db}

	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	pubID := uint(42)

	mine, err := orc.Insert(StoryInput{
		Content:       blocksOf("Mine"),
		AuthorID:      alice.ID,
		PublicationID: &pubID,
	})
	require.NoError(t, err)
	_, err = orc.Insert(StoryInput{Content: blocksOf("Theirs"), AuthorID: bob.ID})
	require.NoError(t, err)

	byAuthor, err := repo.ListByAuthor(alice.ID)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, mine.ID, byAuthor[0].ID)

	byPublication, err := repo.ListByPublication(pubID)
	require.NoError(t, err)
	require.Len(t, byPublication, 1)
	assert.Equal(t, mine.ID, byPublication[0].ID)
}
