package gallery

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery/models"
)

// fakeStore is an in-memory Store with per-call failure injection and a hook
// to stall the album list query, used to exercise overlapping loads.
type fakeStore struct {
	mu     sync.Mutex
	albums map[string]models.Album
	images map[string]models.Image
	claims map[string]models.AlbumClaim

	updateImageCalls  int
	failUpdateImageAt int // 1-based call number, 0 means never
	failInsertImage   bool
	failUpdateAlbum   bool
	deleteClaimCalls  int

	albumsByOwnerHook func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		albums: map[string]models.Album{},
		images: map[string]models.Image{},
		claims: map[string]models.AlbumClaim{},
	}
}

func (f *fakeStore) Album(id string) (*models.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	album, ok := f.albums[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &album, nil
}

func (f *fakeStore) AlbumsByOwner(ownerID string) ([]models.Album, error) {
	f.mu.Lock()
	hook := f.albumsByOwnerHook
	var result []models.Album
	for _, album := range f.albums {
		if album.OwnerID != nil && *album.OwnerID == ownerID {
			result = append(result, album)
		}
	}
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt > result[j].CreatedAt })
	return result, nil
}

func (f *fakeStore) InsertAlbum(album *models.Album) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.albums[album.ID] = *album
	return nil
}

func (f *fakeStore) UpdateAlbum(id string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdateAlbum {
		return &StoreError{Op: "update album", Err: errors.New("injected")}
	}
	album, ok := f.albums[id]
	if !ok {
		return ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "title":
			album.Title = value.(string)
		case "theme":
			album.Theme = value.(string)
		case "background_color":
			album.BackgroundColor = value.(string)
		case "add_new_first":
			album.AddNewFirst = value.(bool)
		case "owner_id":
			owner := value.(string)
			album.OwnerID = &owner
		}
	}
	f.albums[id] = album
	return nil
}

func (f *fakeStore) DeleteAlbum(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.albums[id]; !ok {
		return ErrNotFound
	}
	delete(f.albums, id)
	return nil
}

func (f *fakeStore) DeleteAnonymousAlbum(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	album, ok := f.albums[id]
	if !ok || album.Owned() {
		return ErrNotFound
	}
	delete(f.albums, id)
	return nil
}

func (f *fakeStore) Images(albumID string, limit int) ([]models.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Image
	for _, image := range f.images {
		if image.AlbumID == albumID {
			result = append(result, image)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeStore) InsertImage(image *models.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsertImage {
		return &StoreError{Op: "insert image", Err: errors.New("injected")}
	}
	f.images[image.ID] = *image
	return nil
}

func (f *fakeStore) UpdateImage(id string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateImageCalls++
	if f.failUpdateImageAt > 0 && f.updateImageCalls >= f.failUpdateImageAt {
		return &StoreError{Op: "update image", Err: errors.New("injected")}
	}
	image, ok := f.images[id]
	if !ok {
		return ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "sort_order":
			image.SortOrder = value.(int)
		case "caption":
			image.Caption = value.(string)
		case "custom_link":
			if value == nil {
				image.CustomLink = nil
			} else {
				link := value.(string)
				image.CustomLink = &link
			}
		}
	}
	f.images[id] = image
	return nil
}

func (f *fakeStore) DeleteImage(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.images[id]; !ok {
		return ErrNotFound
	}
	delete(f.images, id)
	return nil
}

func (f *fakeStore) DeleteAlbumImages(albumID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, image := range f.images {
		if image.AlbumID == albumID {
			delete(f.images, id)
		}
	}
	return nil
}

func (f *fakeStore) InsertClaim(claim *models.AlbumClaim) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.claims[claim.Token] = *claim
	return nil
}

func (f *fakeStore) Claim(token string) (*models.AlbumClaim, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	claim, ok := f.claims[token]
	if !ok {
		return nil, ErrNotFound
	}
	return &claim, nil
}

func (f *fakeStore) DeleteClaim(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteClaimCalls++
	delete(f.claims, token)
	return nil
}

type fakeBlobs struct {
	mu         sync.Mutex
	saved      map[string][]byte
	deleted    []string
	failSave   bool
	failDelete bool
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{saved: map[string][]byte{}}
}

func (f *fakeBlobs) Save(path, contentType string, reader io.Reader) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return 0, errors.New("injected")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return 0, err
	}
	f.saved[path] = data
	return int64(len(data)), nil
}

func (f *fakeBlobs) Delete(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errors.New("injected")
	}
	f.deleted = append(f.deleted, path)
	delete(f.saved, path)
	return nil
}

func (f *fakeBlobs) PublicURL(path string) string { return "/blob/" + path }

func (f *fakeBlobs) Serve(path string, req *http.Request, writer http.ResponseWriter) {}

func pngFile(name string, w, h int) UploadFile {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return UploadFile{Name: name, ContentType: "image/png", Data: buf.Bytes()}
}

func seedAlbum(store *fakeStore, id string, ownerID *string) {
	store.albums[id] = models.Album{
		ID: id, OwnerID: ownerID, Title: "Seeded",
		Theme: models.ThemeSlideshow, BackgroundColor: models.DefaultBackgroundColor,
	}
}

func seedImages(store *fakeStore, albumID string, orders ...int) []string {
	ids := make([]string, len(orders))
	for i, so := range orders {
		id := fmt.Sprintf("img-%d", i)
		store.images[id] = models.Image{
			ID: id, AlbumID: albumID, Path: albumID + "/" + id + ".jpg", SortOrder: so,
		}
		ids[i] = id
	}
	return ids
}

func TestCreateAlbumAnonymousLeavesClaim(t *testing.T) {
	store := newFakeStore()
	session := NewSession(store, newFakeBlobs(), "visitor-1")

	album, err := session.CreateAlbum("")
	require.NoError(t, err)
	assert.Equal(t, "My album", album.Title)
	assert.Nil(t, album.OwnerID)
	assert.Equal(t, models.ThemeSlideshow, album.Theme)

	claim, err := store.Claim("visitor-1")
	require.NoError(t, err)
	assert.Equal(t, album.ID, claim.AlbumID)
}

func TestCreateAlbumOwnedPicksNextTitle(t *testing.T) {
	store := newFakeStore()
	owner := "user-1"
	store.albums["a1"] = models.Album{ID: "a1", OwnerID: &owner, Title: "Album-2"}
	store.albums["a2"] = models.Album{ID: "a2", OwnerID: &owner, Title: "Holiday"}

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	session.SignIn(owner)

	album, err := session.CreateAlbum("")
	require.NoError(t, err)
	assert.Equal(t, "Album-3", album.Title)
	require.NotNil(t, album.OwnerID)
	assert.Equal(t, owner, *album.OwnerID)
	assert.Empty(t, store.claims, "owned albums need no claim record")
}

func TestUploadIntoEmptySessionCreatesAlbum(t *testing.T) {
	store := newFakeStore()
	blobs := newFakeBlobs()
	session := NewSession(store, blobs, "visitor-1")

	inserted, err := session.UploadImages([]UploadFile{
		pngFile("a.png", 4, 4), pngFile("b.png", 4, 4), pngFile("c.png", 4, 4),
	})
	require.NoError(t, err)
	require.Len(t, inserted, 3)

	album := session.Album()
	require.NotNil(t, album)
	images := session.Images()
	require.Len(t, images, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{images[0].SortOrder, images[1].SortOrder, images[2].SortOrder})
	for _, image := range images {
		assert.Contains(t, blobs.saved, image.Path)
	}
}

func TestUploadPrependsWhenAddNewFirst(t *testing.T) {
	store := newFakeStore()
	seedAlbum(store, "alb", nil)
	album := store.albums["alb"]
	album.AddNewFirst = true
	store.albums["alb"] = album
	seedImages(store, "alb", 1, 2)

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	require.NoError(t, session.LoadAlbum("alb"))

	inserted, err := session.UploadImages([]UploadFile{pngFile("new.png", 4, 4)})
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.Equal(t, 0, inserted[0].SortOrder)

	images := session.Images()
	require.Len(t, images, 3)
	assert.Equal(t, inserted[0].ID, images[0].ID, "new image sorts first")
}

func TestUploadSkipsNonImages(t *testing.T) {
	store := newFakeStore()
	session := NewSession(store, newFakeBlobs(), "visitor-1")

	inserted, err := session.UploadImages([]UploadFile{
		{Name: "notes.txt", ContentType: "text/plain", Data: []byte("hello")},
		pngFile("a.png", 4, 4),
	})
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.Equal(t, 1, inserted[0].SortOrder, "orders computed over accepted files only")
}

func TestUploadStopsOnFirstFailure(t *testing.T) {
	store := newFakeStore()
	session := NewSession(store, newFakeBlobs(), "visitor-1")

	_, err := session.UploadImages([]UploadFile{pngFile("a.png", 4, 4)})
	require.NoError(t, err)

	store.failInsertImage = true
	inserted, err := session.UploadImages([]UploadFile{
		pngFile("b.png", 4, 4), pngFile("c.png", 4, 4),
	})
	require.Error(t, err)
	assert.Empty(t, inserted)
	assert.Len(t, store.images, 1, "first batch stays persisted, failed batch wrote nothing")
}

func TestUploadRejectsEmptyBatch(t *testing.T) {
	store := newFakeStore()
	session := NewSession(store, newFakeBlobs(), "visitor-1")

	var verr *ValidationError
	_, err := session.UploadImages(nil)
	require.ErrorAs(t, err, &verr)

	_, err = session.UploadImages([]UploadFile{
		{Name: "notes.txt", ContentType: "text/plain", Data: []byte("hello")},
	})
	require.ErrorAs(t, err, &verr)

	assert.Empty(t, store.albums, "no stray album from a rejected batch")
	assert.Empty(t, store.claims)
	assert.Nil(t, session.Album())
}

func TestUploadSurvivesConcurrentSignOut(t *testing.T) {
	store := newFakeStore()
	session := NewSession(store, newFakeBlobs(), "visitor-1")
	file := pngFile("a.png", 4, 4)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			session.SignOut()
		}
	}()
	for i := 0; i < 200; i++ {
		if _, err := session.UploadImages([]UploadFile{file}); err != nil {
			require.ErrorIs(t, err, ErrNotFound)
		}
	}
	<-done
}

func TestUploadBadFileAborts(t *testing.T) {
	store := newFakeStore()
	session := NewSession(store, newFakeBlobs(), "visitor-1")

	inserted, err := session.UploadImages([]UploadFile{
		pngFile("a.png", 4, 4),
		{Name: "broken.png", ContentType: "image/png", Data: []byte("not a png")},
		pngFile("c.png", 4, 4),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, inserted, 1, "files before the bad one are kept")
}

func TestReorderMovesAndRenumbers(t *testing.T) {
	store := newFakeStore()
	seedAlbum(store, "alb", nil)
	ids := seedImages(store, "alb", 5, 7, 10, 20)

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	require.NoError(t, session.LoadAlbum("alb"))
	require.NoError(t, session.Reorder(0, 3))

	images := session.Images()
	require.Len(t, images, 4)
	wantIDs := []string{ids[1], ids[2], ids[3], ids[0]}
	for i, image := range images {
		assert.Equal(t, wantIDs[i], image.ID)
		assert.Equal(t, i, image.SortOrder)
		assert.Equal(t, i, store.images[image.ID].SortOrder, "persisted order matches")
	}
}

func TestReorderRejectsBadIndex(t *testing.T) {
	store := newFakeStore()
	seedAlbum(store, "alb", nil)
	seedImages(store, "alb", 0, 1)

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	require.NoError(t, session.LoadAlbum("alb"))

	var verr *ValidationError
	require.ErrorAs(t, session.Reorder(0, 5), &verr)
	require.ErrorAs(t, session.Reorder(-1, 0), &verr)
	assert.Zero(t, store.updateImageCalls)
}

func TestReorderPartialFailureKeepsLocalOrder(t *testing.T) {
	store := newFakeStore()
	seedAlbum(store, "alb", nil)
	seedImages(store, "alb", 0, 1, 2)

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	require.NoError(t, session.LoadAlbum("alb"))

	store.failUpdateImageAt = 2
	err := session.Reorder(2, 0)
	require.Error(t, err)

	// Local list already holds the new order, only some rows were written
	images := session.Images()
	assert.Equal(t, "img-2", images[0].ID)
	assert.Equal(t, 0, images[0].SortOrder)

	require.NoError(t, session.LoadAlbum("alb"))
	assert.Len(t, session.Images(), 3, "full load converges to store state")
}

func TestLoadAlbumIsIdempotent(t *testing.T) {
	store := newFakeStore()
	seedAlbum(store, "alb", nil)
	seedImages(store, "alb", 2, 0, 1)

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	require.NoError(t, session.LoadAlbum("alb"))
	first := session.Images()
	require.NoError(t, session.LoadAlbum("alb"))
	second := session.Images()

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"img-1", "img-2", "img-0"}, []string{first[0].ID, first[1].ID, first[2].ID})
}

func TestLoadAlbumFailureKeepsPreviousSelection(t *testing.T) {
	store := newFakeStore()
	seedAlbum(store, "alb", nil)
	seedImages(store, "alb", 0)

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	require.NoError(t, session.LoadAlbum("alb"))

	err := session.LoadAlbum("missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.NotNil(t, session.Album())
	assert.Equal(t, "alb", session.Album().ID)
}

func TestLoadOwnerAlbumsStaleResultDiscarded(t *testing.T) {
	store := newFakeStore()
	owner := "user-1"
	seedAlbum(store, "old", &owner)

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	session.SignIn(owner)

	release := make(chan struct{})
	started := make(chan struct{})
	store.mu.Lock()
	store.albumsByOwnerHook = func() {
		close(started)
		<-release
	}
	store.mu.Unlock()

	done := make(chan []AlbumSummary)
	go func() {
		result, _ := session.LoadOwnerAlbums()
		done <- result
	}()
	<-started

	// A newer load starts and finishes while the first is stalled
	store.mu.Lock()
	store.albumsByOwnerHook = nil
	seedAlbum(store, "new", &owner)
	store.mu.Unlock()
	fresh, err := session.LoadOwnerAlbums()
	require.NoError(t, err)
	require.Len(t, fresh, 2)

	close(release)
	stale := <-done
	assert.Nil(t, stale, "stalled load must not report results")
	assert.Len(t, session.AlbumList(), 2, "newer result survives")
}

func TestLoadOwnerAlbumsAnonymous(t *testing.T) {
	session := NewSession(newFakeStore(), newFakeBlobs(), "visitor-1")
	result, err := session.LoadOwnerAlbums()
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestUpdateCaptionPersistsFirst(t *testing.T) {
	store := newFakeStore()
	seedAlbum(store, "alb", nil)
	seedImages(store, "alb", 0)

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	require.NoError(t, session.LoadAlbum("alb"))

	store.failUpdateImageAt = 1
	require.Error(t, session.UpdateCaption("img-0", "sunset"))
	assert.Empty(t, session.Images()[0].Caption, "snapshot untouched on store failure")

	store.failUpdateImageAt = 0
	require.NoError(t, session.UpdateCaption("img-0", "sunset"))
	assert.Equal(t, "sunset", session.Images()[0].Caption)
	assert.Equal(t, "sunset", store.images["img-0"].Caption)
}

func TestUpdateImageLink(t *testing.T) {
	store := newFakeStore()
	seedAlbum(store, "alb", nil)
	seedImages(store, "alb", 0)

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	require.NoError(t, session.LoadAlbum("alb"))

	require.NoError(t, session.UpdateImageLink("img-0", "example.com/page"))
	require.NotNil(t, session.Images()[0].CustomLink)
	assert.Equal(t, "https://example.com/page", *session.Images()[0].CustomLink)

	require.NoError(t, session.UpdateImageLink("img-0", ""))
	assert.Nil(t, session.Images()[0].CustomLink)

	var verr *ValidationError
	require.ErrorAs(t, session.UpdateImageLink("img-0", "javascript:alert(1)"), &verr)
}

func TestUpdateSettings(t *testing.T) {
	store := newFakeStore()
	seedAlbum(store, "alb", nil)

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	require.NoError(t, session.LoadAlbum("alb"))

	var verr *ValidationError
	require.ErrorAs(t, session.UpdateSettings(AlbumSettings{Theme: "mosaic"}), &verr)

	require.NoError(t, session.UpdateSettings(AlbumSettings{
		Theme: models.ThemeThumbnail, BackgroundColor: "#000000", AddNewFirst: true,
	}))
	assert.Equal(t, models.ThemeThumbnail, session.Album().Theme)
	assert.True(t, store.albums["alb"].AddNewFirst)

	require.NoError(t, session.UpdateSettings(AlbumSettings{Theme: models.ThemeSlideshow}))
	assert.Equal(t, models.DefaultBackgroundColor, session.Album().BackgroundColor, "blank color falls back to default")
}

func TestDeleteImageKeepsRowAuthoritative(t *testing.T) {
	store := newFakeStore()
	blobs := newFakeBlobs()
	seedAlbum(store, "alb", nil)
	seedImages(store, "alb", 0, 1)

	session := NewSession(store, blobs, "visitor-1")
	require.NoError(t, session.LoadAlbum("alb"))

	blobs.failDelete = true
	require.NoError(t, session.DeleteImage("img-0"), "blob failure does not fail the delete")
	assert.NotContains(t, store.images, "img-0")
	assert.Len(t, session.Images(), 1)
}

func TestDeleteLastImageCascadesAnonymousAlbum(t *testing.T) {
	store := newFakeStore()
	seedAlbum(store, "alb", nil)
	seedImages(store, "alb", 0)

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	require.NoError(t, session.LoadAlbum("alb"))
	require.NoError(t, session.DeleteImage("img-0"))

	assert.NotContains(t, store.albums, "alb")
	assert.Nil(t, session.Album())
}

func TestDeleteLastImageLeavesClaimedAlbumOfOthers(t *testing.T) {
	store := newFakeStore()
	owner := "someone-else"
	seedAlbum(store, "alb", &owner)
	seedImages(store, "alb", 0)

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	require.NoError(t, session.LoadAlbum("alb"))
	require.NoError(t, session.DeleteImage("img-0"))

	// Anonymous cascade only reaches unclaimed albums
	assert.Contains(t, store.albums, "alb")
}

func TestDeleteAlbumRequiresOwner(t *testing.T) {
	store := newFakeStore()
	seedAlbum(store, "alb", nil)

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	require.ErrorIs(t, session.DeleteAlbum("alb"), ErrPermissionDenied)
	assert.Contains(t, store.albums, "alb")
}

func TestDeleteAlbumRemovesEverything(t *testing.T) {
	store := newFakeStore()
	blobs := newFakeBlobs()
	owner := "user-1"
	seedAlbum(store, "alb", &owner)
	seedImages(store, "alb", 0, 1)

	session := NewSession(store, blobs, "visitor-1")
	session.SignIn(owner)
	require.NoError(t, session.LoadAlbum("alb"))
	require.NoError(t, session.DeleteAlbum("alb"))

	assert.Empty(t, store.albums)
	assert.Empty(t, store.images)
	assert.Len(t, blobs.deleted, 2)
	assert.Nil(t, session.Album())
}

func TestSignInClaimsAnonymousAlbum(t *testing.T) {
	store := newFakeStore()
	session := NewSession(store, newFakeBlobs(), "visitor-1")
	album, err := session.CreateAlbum("")
	require.NoError(t, err)

	session.SignIn("user-1")

	claimed := store.albums[album.ID]
	require.NotNil(t, claimed.OwnerID)
	assert.Equal(t, "user-1", *claimed.OwnerID)
	assert.Empty(t, store.claims, "claim consumed")
}

func TestSignInClaimIsAtMostOnce(t *testing.T) {
	store := newFakeStore()
	session := NewSession(store, newFakeBlobs(), "visitor-1")
	album, err := session.CreateAlbum("")
	require.NoError(t, err)

	store.failUpdateAlbum = true
	session.SignIn("user-1")
	assert.Empty(t, store.claims, "claim cleared even when transfer fails")
	failed := store.albums[album.ID]
	assert.Nil(t, failed.OwnerID)

	store.failUpdateAlbum = false
	session.SignOut()
	session.SignIn("user-1")
	assert.Equal(t, 1, store.deleteClaimCalls, "no second transfer attempt")
	assert.Nil(t, store.albums[album.ID].OwnerID)
}

func TestSignInSkipsAlreadyClaimedAlbum(t *testing.T) {
	store := newFakeStore()
	session := NewSession(store, newFakeBlobs(), "visitor-1")
	album, err := session.CreateAlbum("")
	require.NoError(t, err)

	// Someone else claims it out of band
	other := "user-2"
	claimed := store.albums[album.ID]
	claimed.OwnerID = &other
	store.albums[album.ID] = claimed

	session.SignIn("user-1")
	assert.Equal(t, other, *store.albums[album.ID].OwnerID, "existing owner untouched")
	assert.Empty(t, store.claims)
}

func TestEmbedURL(t *testing.T) {
	store := newFakeStore()
	owner := "user-1"
	seedAlbum(store, "alb", &owner)

	session := NewSession(store, newFakeBlobs(), "visitor-1")
	assert.Empty(t, session.EmbedURL())

	require.NoError(t, session.LoadAlbum("alb"))
	assert.Equal(t, "http://localhost:8080/w/embed?album=alb", session.EmbedURL())

	session.SignIn(owner)
	require.NoError(t, session.LoadAlbum("alb"))
	assert.Equal(t, "http://localhost:8080/w/embed?album=alb&owner=1", session.EmbedURL())
}

func TestNormalizeLink(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"https://example.com", "https://example.com", false},
		{"http://example.com", "http://example.com", false},
		{"mailto:me@example.com", "mailto:me@example.com", false},
		{"tel:+1555", "tel:+1555", false},
		{"example.com/x", "https://example.com/x", false},
		{"  example.com  ", "https://example.com", false},
		{"ftp://example.com", "", true},
	}
	for _, tc := range tests {
		got, err := NormalizeLink(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
