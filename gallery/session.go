// Package gallery keeps one builder session's local snapshot (current
// identity, selected album, its ordered images) convergent with the remote
// store. The store stays the single source of truth on every full load;
// the snapshot is a cache that the mutation operations patch in place.
//
// Reorder and upload mutate the snapshot optimistically and persist
// afterwards; single-field patches (caption, link, settings) persist first
// and patch the snapshot only on success. Nothing here is transactional
// across calls: a failing batch leaves earlier writes in place until the next
// full load.
package gallery

import (
	"bytes"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"gallery/config"
	"gallery/imaging"
	"gallery/models"
	"gallery/order"
	"gallery/storage"
	"gallery/utils"
)

const (
	anonymousAlbumTitle = "My album"
	ownedAlbumPrefix    = "Album-"
)

var ownedTitlePattern = regexp.MustCompile(`^Album-(\d+)$`)

// UploadFile is one file from an upload batch, already read into memory.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// AlbumSummary is one entry of the owner's album list: the album row plus a
// bounded preview of its first images.
type AlbumSummary struct {
	Album   models.Album   `json:"album"`
	Preview []models.Image `json:"preview"`
}

// AlbumSettings carries the presentation fields of the settings form.
type AlbumSettings struct {
	Theme           string `json:"theme"`
	BackgroundColor string `json:"background_color"`
	AddNewFirst     bool   `json:"add_new_first"`
}

// Session owns the local snapshot for one visitor. All mutation goes through
// its methods; handlers never touch the snapshot directly.
type Session struct {
	store Store
	blobs storage.StorageAPI
	token string // visitor token, keys the pending ownership claim

	mu        sync.Mutex
	userID    string // empty means anonymous
	album     *models.Album
	images    []models.Image
	albumList []AlbumSummary
	loadGen   int64
}

func NewSession(store Store, blobs storage.StorageAPI, token string) *Session {
	return &Session{store: store, blobs: blobs, token: token}
}

// UserID returns the signed-in identity, or "" for anonymous visitors.
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Album returns a copy of the currently selected album, or nil.
func (s *Session) Album() *models.Album {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.album == nil {
		return nil
	}
	album := *s.album
	return &album
}

// Images returns a copy of the selected album's image list, in display order.
func (s *Session) Images() []models.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Image(nil), s.images...)
}

// AlbumList returns the most recently loaded owner album list.
func (s *Session) AlbumList() []AlbumSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]AlbumSummary(nil), s.albumList...)
}

// SignIn records the authenticated identity and attempts the one-shot
// ownership transfer of any album this visitor created while anonymous.
func (s *Session) SignIn(userID string) {
	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()
	s.claimPending(userID)
}

// SignOut drops the identity and the whole snapshot.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.album = nil
	s.images = nil
	s.albumList = nil
}

// LoadAlbum fetches an album and its images and replaces the snapshot's
// selection wholesale. On any error the previous selection is left untouched.
func (s *Session) LoadAlbum(id string) error {
	album, err := s.store.Album(id)
	if err != nil {
		return err
	}
	images, err := s.store.Images(id, 0)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.album = album
	s.images = images
	return nil
}

// LoadOwnerAlbums fetches the signed-in identity's albums, newest first, each
// with a preview of its first config.PREVIEW_COUNT images. Anonymous visitors
// get nothing. Overlapping calls are guarded by a generation counter: a call
// that resolves after a newer one has started discards its results instead of
// overwriting newer state.
func (s *Session) LoadOwnerAlbums() ([]AlbumSummary, error) {
	s.mu.Lock()
	s.loadGen++
	gen := s.loadGen
	userID := s.userID
	s.mu.Unlock()

	if userID == "" {
		return nil, nil
	}
	albums, err := s.store.AlbumsByOwner(userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]AlbumSummary, 0, len(albums))
	for _, album := range albums {
		// Preview failures degrade to an empty preview, they don't fail the list
		preview, _ := s.store.Images(album.ID, config.PREVIEW_COUNT)
		summaries = append(summaries, AlbumSummary{Album: album, Preview: preview})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.loadGen {
		return nil, nil // stale result, a newer load has started
	}
	s.albumList = summaries
	return summaries, nil
}

// CreateAlbum inserts a new album and selects it. An empty title is filled
// in: anonymous visitors get a fixed name, owners get the next free
// "Album-N". Albums created anonymously leave a claim record behind so they
// can be handed over on sign-in.
func (s *Session) CreateAlbum(title string) (*models.Album, error) {
	s.mu.Lock()
	userID := s.userID
	s.mu.Unlock()

	if title == "" {
		if userID == "" {
			title = anonymousAlbumTitle
		} else {
			albums, err := s.store.AlbumsByOwner(userID)
			if err != nil {
				return nil, err
			}
			title = nextOwnedTitle(albums)
		}
	}
	album := &models.Album{
		ID:              utils.NewID(),
		Title:           title,
		Theme:           models.ThemeSlideshow,
		BackgroundColor: models.DefaultBackgroundColor,
		CreatedAt:       time.Now().Unix(),
	}
	if userID != "" {
		album.OwnerID = &userID
	}
	if err := s.store.InsertAlbum(album); err != nil {
		return nil, err
	}
	if userID == "" {
		claim := &models.AlbumClaim{Token: s.token, AlbumID: album.ID, CreatedAt: album.CreatedAt}
		if err := s.store.InsertClaim(claim); err != nil {
			log.Printf("Could not record ownership claim for album %s: %v", album.ID, err)
		}
	}
	s.mu.Lock()
	s.album = album
	s.images = nil
	s.mu.Unlock()
	return album, nil
}

func nextOwnedTitle(albums []models.Album) string {
	maxNum := 0
	for _, album := range albums {
		match := ownedTitlePattern.FindStringSubmatch(album.Title)
		if match == nil {
			continue
		}
		if n, err := strconv.Atoi(match[1]); err == nil && n > maxNum {
			maxNum = n
		}
	}
	return ownedAlbumPrefix + strconv.Itoa(maxNum+1)
}

// UploadImages re-encodes and persists a batch of files into the selected
// album, creating one when nothing is selected. Target sort orders come from
// the ordering engine, computed once from the list state before the batch
// begins. Non-image files are skipped; a batch with nothing usable in it is
// rejected before any album is created. Any real failure aborts the rest of
// the batch immediately and already-persisted files stay persisted.
func (s *Session) UploadImages(files []UploadFile) ([]models.Image, error) {
	accepted := make([]UploadFile, 0, len(files))
	for _, file := range files {
		if !strings.HasPrefix(file.ContentType, "image/") {
			log.Printf("Skipping non-image upload %q (%s)", file.Name, file.ContentType)
			continue
		}
		accepted = append(accepted, file)
	}
	if len(accepted) == 0 {
		return nil, &ValidationError{Field: "files", Message: "no images in batch"}
	}

	s.mu.Lock()
	selected := s.album != nil
	s.mu.Unlock()
	if !selected {
		if _, err := s.CreateAlbum(""); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	// The selection can vanish between the checks (concurrent sign-out or a
	// cascade delete on the same browser session)
	if s.album == nil {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	albumID := s.album.ID
	addFirst := s.album.AddNewFirst
	existing := toOrderItems(s.images)
	s.mu.Unlock()

	orders := order.InsertOrders(existing, addFirst, len(accepted))

	inserted := make([]models.Image, 0, len(accepted))
	for i, file := range accepted {
		encoded, err := imaging.Prepare(file.Data)
		if err != nil {
			return inserted, &ValidationError{Field: "file", Message: fmt.Sprintf("%s: %v", file.Name, err)}
		}
		image := models.Image{
			ID:        utils.NewID(),
			AlbumID:   albumID,
			Caption:   "",
			SortOrder: orders[i],
			Width:     encoded.Width,
			Height:    encoded.Height,
			CreatedAt: time.Now().Unix(),
		}
		image.Path = albumID + "/" + image.ID + "." + encoded.Extension
		if _, err := s.blobs.Save(image.Path, encoded.ContentType, bytes.NewReader(encoded.Data)); err != nil {
			return inserted, &StoreError{Op: "upload blob", Err: err}
		}
		if err := s.store.InsertImage(&image); err != nil {
			return inserted, err
		}
		inserted = append(inserted, image)
	}
	if err := s.reloadImages(albumID); err != nil {
		return inserted, err
	}
	return inserted, nil
}

// Reorder moves the image at display position from to position to. The
// snapshot is respliced and renumbered immediately; the new orders are then
// persisted one row at a time, in ascending position. A mid-batch failure is
// surfaced but earlier writes are not rolled back — the list and the store
// may diverge until the next full load.
func (s *Session) Reorder(from, to int) error {
	s.mu.Lock()
	if s.album == nil {
		s.mu.Unlock()
		return ErrNotFound
	}
	if from < 0 || from >= len(s.images) || to < 0 || to >= len(s.images) {
		s.mu.Unlock()
		return &ValidationError{Field: "index", Message: "position out of range"}
	}
	reordered := order.Reorder(toOrderItems(s.images), from, to)
	byID := make(map[string]models.Image, len(s.images))
	for _, image := range s.images {
		byID[image.ID] = image
	}
	images := make([]models.Image, len(reordered))
	for i, item := range reordered {
		image := byID[item.ID]
		image.SortOrder = item.SortOrder
		images[i] = image
	}
	s.images = images
	s.mu.Unlock()

	for _, item := range reordered {
		err := s.store.UpdateImage(item.ID, map[string]interface{}{"sort_order": item.SortOrder})
		if err != nil {
			return err
		}
	}
	return nil
}

// UpdateCaption persists a caption change and only then patches the snapshot.
func (s *Session) UpdateCaption(imageID, caption string) error {
	if err := s.store.UpdateImage(imageID, map[string]interface{}{"caption": caption}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.images {
		if s.images[i].ID == imageID {
			s.images[i].Caption = caption
			break
		}
	}
	return nil
}

// UpdateImageLink validates and persists a custom external link. An empty
// value clears the link.
func (s *Session) UpdateImageLink(imageID, rawLink string) error {
	link, err := NormalizeLink(rawLink)
	if err != nil {
		return err
	}
	var value interface{}
	var stored *string
	if link != "" {
		value = link
		stored = &link
	}
	if err := s.store.UpdateImage(imageID, map[string]interface{}{"custom_link": value}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.images {
		if s.images[i].ID == imageID {
			s.images[i].CustomLink = stored
			break
		}
	}
	return nil
}

// UpdateSettings persists the presentation settings of the selected album and
// patches the snapshot on success.
func (s *Session) UpdateSettings(settings AlbumSettings) error {
	s.mu.Lock()
	if s.album == nil {
		s.mu.Unlock()
		return ErrNotFound
	}
	albumID := s.album.ID
	s.mu.Unlock()

	if settings.Theme != models.ThemeSlideshow && settings.Theme != models.ThemeThumbnail {
		return &ValidationError{Field: "theme", Message: "unknown theme " + settings.Theme}
	}
	background := strings.TrimSpace(settings.BackgroundColor)
	if background == "" {
		background = models.DefaultBackgroundColor
	}
	err := s.store.UpdateAlbum(albumID, map[string]interface{}{
		"theme":            settings.Theme,
		"background_color": background,
		"add_new_first":    settings.AddNewFirst,
	})
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.album != nil && s.album.ID == albumID {
		s.album.Theme = settings.Theme
		s.album.BackgroundColor = background
		s.album.AddNewFirst = settings.AddNewFirst
	}
	return nil
}

// UpdateAlbumTitle renames an album (any of the owner's albums, not just the
// selected one) and patches the snapshot if it is the selected one.
func (s *Session) UpdateAlbumTitle(albumID, title string) error {
	if err := s.store.UpdateAlbum(albumID, map[string]interface{}{"title": strings.TrimSpace(title)}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.album != nil && s.album.ID == albumID {
		s.album.Title = strings.TrimSpace(title)
	}
	return nil
}

// DeleteImage removes an image row (authoritative), then its blob
// (best-effort), then reloads the list. Deleting the last image cascades to
// the album itself: the full cascade for owners, row-only for the anonymous
// creator of a still-unclaimed album.
func (s *Session) DeleteImage(imageID string) error {
	s.mu.Lock()
	album := s.album
	var path string
	found := false
	for _, image := range s.images {
		if image.ID == imageID {
			path = image.Path
			found = true
			break
		}
	}
	s.mu.Unlock()
	if album == nil || !found {
		return ErrNotFound
	}

	if err := s.store.DeleteImage(imageID); err != nil {
		return err
	}
	if err := s.blobs.Delete(path); err != nil {
		log.Printf("Blob delete failed for %s: %v", path, err)
	}
	if err := s.reloadImages(album.ID); err != nil {
		return err
	}

	s.mu.Lock()
	empty := s.album != nil && s.album.ID == album.ID && len(s.images) == 0
	userID := s.userID
	if empty {
		s.album = nil
		s.images = nil
	}
	s.mu.Unlock()
	if !empty {
		return nil
	}
	if userID != "" {
		return s.DeleteAlbum(album.ID)
	}
	// Anonymous visitors may only drop the unclaimed row they created
	if err := s.store.DeleteAnonymousAlbum(album.ID); err != nil {
		log.Printf("Could not remove empty anonymous album %s: %v", album.ID, err)
	}
	return nil
}

// DeleteAlbum removes an album with everything in it: image rows first, then
// their blobs (best-effort), then the album row. Owner-only.
func (s *Session) DeleteAlbum(albumID string) error {
	s.mu.Lock()
	userID := s.userID
	s.mu.Unlock()
	if userID == "" {
		return ErrPermissionDenied
	}

	images, err := s.store.Images(albumID, 0)
	if err != nil {
		return err
	}
	if err := s.store.DeleteAlbumImages(albumID); err != nil {
		return err
	}
	paths := make([]string, 0, len(images))
	for _, image := range images {
		paths = append(paths, image.Path)
	}
	storage.DeleteAll(s.blobs, paths)
	if err := s.store.DeleteAlbum(albumID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.album != nil && s.album.ID == albumID {
		s.album = nil
		s.images = nil
	}
	return nil
}

// claimPending runs the at-most-once ownership transfer. The claim record is
// cleared no matter how the transfer goes, so a failed attempt is never
// retried on the next sign-in.
func (s *Session) claimPending(userID string) {
	claim, err := s.store.Claim(s.token)
	if err != nil {
		return // nothing pending
	}
	defer func() {
		if err := s.store.DeleteClaim(s.token); err != nil {
			log.Printf("Could not clear ownership claim %s: %v", s.token, err)
		}
	}()

	// Re-verify against the store, not the stale local flag
	album, err := s.store.Album(claim.AlbumID)
	if err != nil || album.Owned() {
		return // album gone or already claimed elsewhere
	}
	if err := s.store.UpdateAlbum(claim.AlbumID, map[string]interface{}{"owner_id": userID}); err != nil {
		log.Printf("Ownership transfer of album %s failed: %v", claim.AlbumID, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.album != nil && s.album.ID == claim.AlbumID {
		// Force a fresh load under the new identity
		s.album = nil
		s.images = nil
	}
}

func (s *Session) reloadImages(albumID string) error {
	images, err := s.store.Images(albumID, 0)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.album != nil && s.album.ID == albumID {
		s.images = images
	}
	return nil
}

func toOrderItems(images []models.Image) []order.Item {
	items := make([]order.Item, len(images))
	for i, image := range images {
		items[i] = order.Item{ID: image.ID, SortOrder: image.SortOrder}
	}
	return items
}
