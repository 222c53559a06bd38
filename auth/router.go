package auth

import (
	"net/http"

	"gallery/gallery"
	"gallery/storage"

	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// HandlerFunc receives the builder session bound to the calling browser
type HandlerFunc func(c *gin.Context, s *gallery.Session)

var (
	store    gallery.Store
	blobs    storage.StorageAPI
	active   = cmap.New[*gallery.Session]()
)

// Init wires the backends new builder sessions are created with.
func Init(galleryStore gallery.Store, blobStorage storage.StorageAPI) {
	store = galleryStore
	blobs = blobStorage
}

// Current returns the builder session for this browser, creating one keyed by
// its visitor token. A cookie carrying a signed-in user restores that
// identity on the freshly created session.
func Current(c *gin.Context) *gallery.Session {
	authSession := LoadSession(c)
	token := authSession.VisitorToken()
	current := active.Upsert(token, nil, func(exist bool, valueInMap, _ *gallery.Session) *gallery.Session {
		if exist {
			return valueInMap
		}
		return gallery.NewSession(store, blobs, token)
	})
	if userID := authSession.UserID(); userID != "" && current.UserID() != userID {
		current.SignIn(userID)
	}
	return current
}

// Drop forgets the builder session of this browser.
func Drop(token string) {
	active.Remove(token)
}

// Router is a wrapper class that binds handlers to the caller's builder
// session, with an optional signed-in check
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, ownerOnly bool) {
	session := Current(c)
	if ownerOnly && session.UserID() == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	handler(c, session)
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, false)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, false)
	})
}

func (cr *Router) OwnerGET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, true)
	})
}

func (cr *Router) OwnerPOST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, true)
	})
}
