package models

import "gallery/db"

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Album{})
	db.Instance.AutoMigrate(&Image{})
	db.Instance.AutoMigrate(&AlbumClaim{})
}
