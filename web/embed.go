package web

import (
	"errors"
	"net/http"

	"gallery/db"
	"gallery/gallery"
	"gallery/storage"

	"github.com/gin-gonic/gin"
)

type embedImage struct {
	URL     string  `json:"url"`
	Caption string  `json:"caption"`
	Link    *string `json:"link"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
}

// EmbedView renders the public, read-only view of an album as referenced by
// its share link. The owner flag only marks links cut by the album's owner;
// it grants nothing.
func EmbedView(c *gin.Context) {
	albumID := c.Query("album")
	if albumID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "album is required"})
		return
	}
	store := gallery.NewDataStore(db.Instance)
	album, err := store.Album(albumID)
	if err != nil {
		if errors.Is(err, gallery.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such album"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	images, err := store.Images(albumID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	result := make([]embedImage, 0, len(images))
	for _, image := range images {
		result = append(result, embedImage{
			URL:     storage.Get().PublicURL(image.Path),
			Caption: image.Caption,
			Link:    image.CustomLink,
			Width:   image.Width,
			Height:  image.Height,
		})
	}
	json := gin.H{
		"title":           album.Title,
		"theme":           album.Theme,
		"backgroundColor": album.BackgroundColor,
		"ownerLink":       c.Query("owner") == "1",
		"images":          result,
	}
	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, json)
		return
	}
	c.HTML(http.StatusOK, "embed_view.tmpl", json)
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}
