package handlers

import (
	"errors"
	"io"
	"net/http"

	"gallery/gallery"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ImageReorderRequest struct {
	From *int `form:"from" binding:"required"`
	To   *int `form:"to" binding:"required"`
}
type ImageCaptionRequest struct {
	ID      string `form:"id" binding:"required"`
	Caption string `form:"caption"`
}
type ImageLinkRequest struct {
	ID   string `form:"id" binding:"required"`
	Link string `form:"link"`
}
type ImageDeleteRequest struct {
	ID string `form:"id" binding:"required"`
}

// ImageUpload ingests a multipart batch under the "files" field. Already
// saved files survive a mid-batch failure, so the response always carries the
// inserted rows alongside any error.
func ImageUpload(c *gin.Context, s *gallery.Session) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	files := make([]gallery.UploadFile, 0, len(form.File["files"]))
	for _, header := range form.File["files"] {
		opened, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
			return
		}
		data, err := io.ReadAll(opened)
		opened.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
			return
		}
		files = append(files, gallery.UploadFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	inserted, err := s.UploadImages(files)
	if err != nil {
		status := http.StatusInternalServerError
		var verr *gallery.ValidationError
		if errors.As(err, &verr) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error(), "images": inserted, "album": s.Album()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "images": inserted, "album": s.Album()})
}

func ImageReorder(c *gin.Context, s *gallery.Session) {
	req := ImageReorderRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if err := s.Reorder(*req.From, *req.To); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "images": s.Images()})
}

func ImageCaption(c *gin.Context, s *gallery.Session) {
	req := ImageCaptionRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if err := s.UpdateCaption(req.ID, req.Caption); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func ImageLink(c *gin.Context, s *gallery.Session) {
	req := ImageLinkRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if err := s.UpdateImageLink(req.ID, req.Link); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func ImageDelete(c *gin.Context, s *gallery.Session) {
	req := ImageDeleteRequest{}
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if err := s.DeleteImage(req.ID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "images": s.Images(), "album": s.Album()})
}
