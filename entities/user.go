package entities

import "time"

// User rows are never hard-deleted; IsDeleted marks an account as inactive
// while keeping its recipes and reviews queryable. Follower/following counts
// are derived from UserFollow rows on read, never stored here.
type User struct {
	ID           int64   `gorm:"primaryKey" json:"author_id"`
	Name         string  `gorm:"size:255;uniqueIndex;not null" json:"author_name"`
	Gender       string  `gorm:"size:10;not null" json:"gender"`
	Age          int     `gorm:"not null" json:"age"`
	Email        *string `gorm:"size:255" json:"email,omitempty"`
	PasswordHash string  `gorm:"size:255" json:"-"`
	IsDeleted    bool    `gorm:"not null;default:false;index" json:"is_deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserFollow is one directed follow edge. The composite primary key keeps
// the (follower, followee) pair unique so follow/unfollow can be modeled as
// row presence instead of a flag.
type UserFollow struct {
	FollowerID int64     `gorm:"primaryKey" json:"follower_id"`
	FolloweeID int64     `gorm:"primaryKey" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower *User `gorm:"foreignKey:FollowerID" json:"-"`
	Followee *User `gorm:"foreignKey:FolloweeID" json:"-"`
}
