package models

type Image struct {
	ID         string  `gorm:"primaryKey;type:varchar(40)" json:"id"`
	AlbumID    string  `gorm:"type:varchar(40);not null;index:album_order,priority:1" json:"album_id"`
	Album      Album   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Path       string  `gorm:"type:varchar(500)" json:"path"`
	Caption    string  `gorm:"type:varchar(1000)" json:"caption"`
	CustomLink *string `gorm:"type:varchar(2000)" json:"custom_link"`
	SortOrder  int     `gorm:"index:album_order,priority:2" json:"sort_order"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	CreatedAt  int64   `json:"created_at"`
}
