package models

const (
	ThemeSlideshow = "slideshow"
	ThemeThumbnail = "thumbnail"

	DefaultBackgroundColor = "#101828"
)

type Album struct {
	ID              string  `gorm:"primaryKey;type:varchar(40)" json:"id"`
	OwnerID         *string `gorm:"type:varchar(40);index:owner_created,priority:1" json:"owner_id"`
	Title           string  `gorm:"type:varchar(300)" json:"title"`
	Theme           string  `gorm:"type:varchar(20)" json:"theme"`
	BackgroundColor string  `gorm:"type:varchar(50)" json:"background_color"`
	AddNewFirst     bool    `gorm:"not null;default:0" json:"add_new_first"`
	SortOrder       *int    `json:"sort_order"`
	CreatedAt       int64   `gorm:"index:owner_created,priority:2" json:"created_at"`
}

// Owned reports whether the album has been claimed by a user.
func (a *Album) Owned() bool {
	return a.OwnerID != nil && *a.OwnerID != ""
}
