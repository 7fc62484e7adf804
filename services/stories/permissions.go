package stories

import (
	"time"

	"storyhub-backend/models/story"
	"storyhub-backend/models/users"
)

// PublicationPolicy answers whether a user may edit stories in a publication.
type PublicationPolicy interface {
	CanEditStories(publicationID, userID uint) bool
}

// Accounts answers membership status for a loaded user.
type Accounts interface {
	IsMember(u *users.User) bool
}

// MemberAccounts derives membership from the user record itself.
type MemberAccounts struct{}

func (MemberAccounts) IsMember(u *users.User) bool {
	return u.IsMember()
}

// Permissions evaluates visibility rules over already-loaded records. It
// performs no queries of its own; publication capability lookups go through
// the injected policy.
type Permissions struct {
	Publications PublicationPolicy
	Accounts     Accounts
}

// HasBeenPublished reports whether the story's publish date is set and not
// in the future.
func HasBeenPublished(s *story.Story) bool {
	return s != nil && s.PublishedAt != nil && !s.PublishedAt.After(time.Now())
}

// IsPublic reports whether the story is visible to anyone, logged in or not.
// A nil story is never public.
func IsPublic(s *story.Story) bool {
	return s != nil && s.Audience == story.AudienceAll && HasBeenPublished(s)
}

// CanSee decides read visibility. The branches are ordered and terminal:
// the author always sees their own story; a publication story is answered
// entirely by the publication's edit capability; a members-only story is
// visible to members once published; anything else falls back to IsPublic.
func (p Permissions) CanSee(s *story.Story, u *users.User) bool {
	switch {
	case s == nil:
		return false
	case u != nil && u.ID == s.AuthorID:
		return true
	case s.PublicationID != nil:
		return u != nil && p.Publications.CanEditStories(*s.PublicationID, u.ID)
	case s.Audience == story.AudienceMembers:
		return p.Accounts.IsMember(u) && HasBeenPublished(s)
	default:
		return IsPublic(s)
	}
}

// CanUpdate follows the same precedence as CanSee without the audience
// branch: author or publication editor only.
func (p Permissions) CanUpdate(s *story.Story, u *users.User) bool {
	switch {
	case s == nil || u == nil:
		return false
	case u.ID == s.AuthorID:
		return true
	case s.PublicationID != nil:
		return p.Publications.CanEditStories(*s.PublicationID, u.ID)
	default:
		return false
	}
}

// CanDelete is author-only; publication editors may not delete.
func (p Permissions) CanDelete(s *story.Story, u *users.User) bool {
	return s != nil && u != nil && u.ID == s.AuthorID
}
