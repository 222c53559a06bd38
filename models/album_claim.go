package models

// AlbumClaim records an album created by an anonymous visitor so its ownership
// can be transferred once, on the visitor's first sign-in.
type AlbumClaim struct {
	Token     string `gorm:"primaryKey;type:varchar(100)"` // visitor token of the anonymous session
	AlbumID   string `gorm:"type:varchar(40);not null"`
	CreatedAt int64
}
