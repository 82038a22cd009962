package entities

import "time"

// Review is hard-deleted (together with its likes) when removed; the owning
// recipe's aggregate fields are recomputed in the same transaction as every
// review mutation.
type Review struct {
	ID            int64     `gorm:"primaryKey" json:"review_id"`
	RecipeID      int64     `gorm:"not null;index" json:"recipe_id"`
	AuthorID      int64     `gorm:"not null;index" json:"author_id"`
	Rating        int       `gorm:"not null" json:"rating"`
	Body          string    `gorm:"type:text" json:"review"`
	DateSubmitted time.Time `gorm:"not null" json:"date_submitted"`
	DateModified  time.Time `gorm:"not null;index" json:"date_modified"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
	Author *User   `gorm:"foreignKey:AuthorID" json:"-"`
}

// ReviewLike records one user liking one review; the composite primary key
// makes repeated likes collapse into a single row.
type ReviewLike struct {
	ReviewID  int64     `gorm:"primaryKey" json:"review_id"`
	UserID    int64     `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Review *Review `gorm:"foreignKey:ReviewID" json:"-"`
	User   *User   `gorm:"foreignKey:UserID" json:"-"`
}
