package users

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email" gorm:"unique;not null"`
	Deactivated bool       `json:"deactivated" gorm:"not null;default:false"`
	MemberUntil *time.Time `json:"member_until"` // nil = never had a membership
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsMember reports whether the user currently holds an active membership.
func (u *User) IsMember() bool {
	return u != nil && u.MemberUntil != nil && u.MemberUntil.After(time.Now())
}

func GetByID(db *gorm.DB, id uint) (*User, error) {
	var user User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
