package gallery

import (
	"errors"

	"gallery/models"

	"gorm.io/gorm"
)

// Store is the relational collaborator behind the session: the single durable
// source of truth for album and image rows. Implementations map row-missing
// conditions to ErrNotFound and everything else to *StoreError.
type Store interface {
	Album(id string) (*models.Album, error)
	AlbumsByOwner(ownerID string) ([]models.Album, error)
	InsertAlbum(album *models.Album) error
	UpdateAlbum(id string, fields map[string]interface{}) error
	DeleteAlbum(id string) error
	// DeleteAnonymousAlbum removes an album row only while it is still
	// unclaimed (owner_id null).
	DeleteAnonymousAlbum(id string) error

	// Images returns an album's images ordered by sort_order ascending.
	// limit <= 0 fetches all of them.
	Images(albumID string, limit int) ([]models.Image, error)
	InsertImage(image *models.Image) error
	UpdateImage(id string, fields map[string]interface{}) error
	DeleteImage(id string) error
	DeleteAlbumImages(albumID string) error

	InsertClaim(claim *models.AlbumClaim) error
	Claim(token string) (*models.AlbumClaim, error)
	DeleteClaim(token string) error
}

// DataStore is the gorm-backed Store.
type DataStore struct {
	db *gorm.DB
}

func NewDataStore(db *gorm.DB) *DataStore {
	return &DataStore{db: db}
}

func (d *DataStore) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return &StoreError{Op: op, Err: err}
}

func (d *DataStore) Album(id string) (*models.Album, error) {
	album := models.Album{}
	if err := d.db.First(&album, "id = ?", id).Error; err != nil {
		return nil, d.wrap("load album", err)
	}
	return &album, nil
}

func (d *DataStore) AlbumsByOwner(ownerID string) ([]models.Album, error) {
	albums := []models.Album{}
	err := d.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&albums).Error
	if err != nil {
		return nil, d.wrap("load albums", err)
	}
	return albums, nil
}

func (d *DataStore) InsertAlbum(album *models.Album) error {
	return d.wrap("create album", d.db.Create(album).Error)
}

func (d *DataStore) UpdateAlbum(id string, fields map[string]interface{}) error {
	return d.wrap("update album", d.db.Model(&models.Album{}).Where("id = ?", id).Updates(fields).Error)
}

func (d *DataStore) DeleteAlbum(id string) error {
	return d.wrap("delete album", d.db.Delete(&models.Album{}, "id = ?", id).Error)
}

func (d *DataStore) DeleteAnonymousAlbum(id string) error {
	return d.wrap("delete album", d.db.Delete(&models.Album{}, "id = ? AND owner_id IS NULL", id).Error)
}

func (d *DataStore) Images(albumID string, limit int) ([]models.Image, error) {
	images := []models.Image{}
	query := d.db.Where("album_id = ?", albumID).Order("sort_order ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&images).Error; err != nil {
		return nil, d.wrap("load images", err)
	}
	return images, nil
}

func (d *DataStore) InsertImage(image *models.Image) error {
	return d.wrap("create image", d.db.Create(image).Error)
}

func (d *DataStore) UpdateImage(id string, fields map[string]interface{}) error {
	return d.wrap("update image", d.db.Model(&models.Image{}).Where("id = ?", id).Updates(fields).Error)
}

func (d *DataStore) DeleteImage(id string) error {
	return d.wrap("delete image", d.db.Delete(&models.Image{}, "id = ?", id).Error)
}

func (d *DataStore) DeleteAlbumImages(albumID string) error {
	return d.wrap("delete images", d.db.Delete(&models.Image{}, "album_id = ?", albumID).Error)
}

func (d *DataStore) InsertClaim(claim *models.AlbumClaim) error {
	return d.wrap("record claim", d.db.Create(claim).Error)
}

func (d *DataStore) Claim(token string) (*models.AlbumClaim, error) {
	claim := models.AlbumClaim{}
	if err := d.db.First(&claim, "token = ?", token).Error; err != nil {
		return nil, d.wrap("load claim", err)
	}
	return &claim, nil
}

func (d *DataStore) DeleteClaim(token string) error {
	return d.wrap("clear claim", d.db.Delete(&models.AlbumClaim{}, "token = ?", token).Error)
}
