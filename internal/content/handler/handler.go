package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/globalsolutions/website/backend/internal/assets"
	"github.com/globalsolutions/website/backend/internal/content"
	"github.com/globalsolutions/website/backend/internal/content/service"
	"github.com/globalsolutions/website/backend/pkg/logger"
)

// RegisterContentRoutes mounts GET/POST plus the image routes for every
// registered section under /api/<area>/<key>. admin guards the writes.
func RegisterContentRoutes(r gin.IRouter, gw service.Gateway, files *assets.Service, admin ...gin.HandlerFunc) {
	r.GET("/api/sections", func(c *gin.Context) {
		c.JSON(http.StatusOK, gw.Sections())
	})

	for _, info := range gw.Sections() {
		key := info.Key
		r.GET(info.Path, func(c *gin.Context) { load(c, gw, key) })
		r.POST(info.Path, chain(admin, func(c *gin.Context) { save(c, gw, key) })...)
		r.POST(info.Path+"/upload", chain(admin, func(c *gin.Context) { upload(c, files, key) })...)
		r.POST(info.Path+"/delete-image", chain(admin, func(c *gin.Context) { deleteImage(c, files) })...)
	}
}

func chain(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	return append(append(out, mw...), h)
}

func load(c *gin.Context, gw service.Gateway, key string) {
	payload, err := gw.Load(c.Request.Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, content.ErrNotFound), errors.Is(err, content.ErrUnknownSection):
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		default:
			logger.Errorf("content: load %s: %v", key, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
		}
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func save(c *gin.Context, gw service.Gateway, key string) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body is required"})
		return
	}
	saved, err := gw.Save(c.Request.Context(), key, body)
	if err != nil {
		var verr *content.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": verr.Details})
		case errors.Is(err, content.ErrUnknownSection):
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		default:
			logger.Errorf("content: save %s: %v", key, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save content"})
		}
		return
	}
	logger.Infof("content: section %s saved", key)
	c.JSON(http.StatusOK, gin.H{"message": "Content saved successfully", "data": saved})
}

func upload(c *gin.Context, files *assets.Service, key string) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer f.Close()

	res, err := files.Attach(c.Request.Context(), assets.AttachInput{
		Section: key,
		Field:   c.PostForm("field"),
		Body:    f,
		OldRef:  c.PostForm("oldImagePath"),
	})
	if err != nil {
		switch {
		case errors.Is(err, assets.ErrTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File is too large"})
		case errors.Is(err, assets.ErrNotImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "File must be a PNG, JPEG, GIF or WebP image"})
		case errors.Is(err, assets.ErrBadField):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid field name"})
		default:
			logger.Errorf("content: upload for %s: %v", key, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		}
		return
	}
	out := gin.H{"imagePath": res.Ref}
	if res.OldDeleteErr != nil {
		out["warning"] = "Previous image could not be deleted"
	}
	c.JSON(http.StatusOK, out)
}

func deleteImage(c *gin.Context, files *assets.Service) {
	var req struct {
		ImagePath string `json:"imagePath" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imagePath is required"})
		return
	}
	if err := files.Detach(c.Request.Context(), req.ImagePath); err != nil {
		if errors.Is(err, assets.ErrInvalidRef) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image path"})
			return
		}
		logger.Errorf("content: delete image %s: %v", req.ImagePath, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
