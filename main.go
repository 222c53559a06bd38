package main

import (
	"log"
	"strings"
	"time"

	"gallery/auth"
	"gallery/config"
	"gallery/db"
	"gallery/gallery"
	"gallery/handlers"
	"gallery/models"
	"gallery/storage"
	"gallery/utils"
	"gallery/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionStoreKey       = "this is a long key" // TODO: convert to env variable
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	db.Init()
	models.Init()
	storage.Init()
	auth.Init(gallery.NewDataStore(db.Instance), storage.Get())

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	// HTML templates
	router.LoadHTMLGlob("templates/*.tmpl")

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(sessionStoreKey))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/blob/", "/image/upload"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that
	// Session-bound router
	sessionRouter := &auth.Router{Base: router}
	// User handlers
	sessionRouter.POST("/user/login", handlers.UserLogin)
	sessionRouter.POST("/user/logout", handlers.UserLogout)
	sessionRouter.GET("/user/status", handlers.UserStatus)
	// Album handlers
	sessionRouter.OwnerGET("/album/list", handlers.AlbumList)
	sessionRouter.POST("/album/create", handlers.AlbumCreate)
	sessionRouter.GET("/album/load", handlers.AlbumLoad)
	sessionRouter.OwnerPOST("/album/title", handlers.AlbumTitle)
	sessionRouter.POST("/album/settings", handlers.AlbumSettings)
	sessionRouter.OwnerPOST("/album/delete", handlers.AlbumDelete)
	sessionRouter.GET("/album/embed", handlers.AlbumEmbed)
	// Image handlers
	sessionRouter.POST("/image/upload", handlers.ImageUpload)
	sessionRouter.POST("/image/reorder", handlers.ImageReorder)
	sessionRouter.POST("/image/caption", handlers.ImageCaption)
	sessionRouter.POST("/image/link", handlers.ImageLink)
	sessionRouter.POST("/image/delete", handlers.ImageDelete)
	// Albumizr migration
	sessionRouter.GET("/migrate/ws", handlers.MigrateWebSocket)
	sessionRouter.GET("/migrate/status", handlers.MigrateStatus)

	/*
	 *	Web interface
	 */
	router.GET("/w/embed", web.EmbedView)
	router.GET("/blob/*path", func(c *gin.Context) {
		path := strings.TrimPrefix(c.Param("path"), "/")
		storage.Get().Serve(path, c.Request, c.Writer)
	})
	// Misc
	router.GET("/robots.txt", web.DisallowRobots)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
