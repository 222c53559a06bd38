package handlers

import (
	"net/http"

	"gallery/gallery"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type AlbumCreateRequest struct {
	Title string `form:"title"`
}
type AlbumLoadRequest struct {
	ID string `form:"id" binding:"required"`
}
type AlbumTitleRequest struct {
	ID    string `form:"id" binding:"required"`
	Title string `form:"title" binding:"required"`
}
type AlbumSettingsRequest struct {
	Theme           string `form:"theme" binding:"required"`
	BackgroundColor string `form:"background_color"`
	AddNewFirst     bool   `form:"add_new_first"`
}
type AlbumDeleteRequest struct {
	ID string `form:"id" binding:"required"`
}

type AlbumResponse struct {
	Error  string      `json:"error"`
	Album  interface{} `json:"album"`
	Images interface{} `json:"images"`
}

func AlbumCreate(c *gin.Context, s *gallery.Session) {
	req := AlbumCreateRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	album, err := s.CreateAlbum(req.Title)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "album": album})
}

func AlbumLoad(c *gin.Context, s *gallery.Session) {
	req := AlbumLoadRequest{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if err := s.LoadAlbum(req.ID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, AlbumResponse{Album: s.Album(), Images: s.Images()})
}

func AlbumList(c *gin.Context, s *gallery.Session) {
	albums, err := s.LoadOwnerAlbums()
	if err != nil {
		abortWithError(c, err)
		return
	}
	if albums == nil {
		albums = []gallery.AlbumSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "albums": albums})
}

func AlbumTitle(c *gin.Context, s *gallery.Session) {
	req := AlbumTitleRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if err := s.UpdateAlbumTitle(req.ID, req.Title); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func AlbumSettings(c *gin.Context, s *gallery.Session) {
	req := AlbumSettingsRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	err := s.UpdateSettings(gallery.AlbumSettings{
		Theme:           req.Theme,
		BackgroundColor: req.BackgroundColor,
		AddNewFirst:     req.AddNewFirst,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "album": s.Album()})
}

func AlbumDelete(c *gin.Context, s *gallery.Session) {
	req := AlbumDeleteRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if err := s.DeleteAlbum(req.ID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func AlbumEmbed(c *gin.Context, s *gallery.Session) {
	url := s.EmbedURL()
	if url == "" {
		c.JSON(http.StatusNotFound, Response{Error: "no album selected"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "url": url})
}
