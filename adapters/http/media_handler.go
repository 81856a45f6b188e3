package http

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tuanng/mediahost/internal/application/service"
	mediaUC "github.com/tuanng/mediahost/internal/application/usecase/media"
	"github.com/tuanng/mediahost/pkg/apperror"
	"github.com/tuanng/mediahost/pkg/logger"
)

type MediaHandler struct {
	ingestMediaUC *mediaUC.IngestMediaUseCase
	getMediaUC    *mediaUC.GetMediaUseCase
	listMediaUC   *mediaUC.ListMediaUseCase
	updateMediaUC *mediaUC.UpdateMediaUseCase
	deleteMediaUC *mediaUC.DeleteMediaUseCase
	store         service.BlobStore
	logger        logger.Logger
}

func NewMediaHandler(
	ingestUC *mediaUC.IngestMediaUseCase,
	getUC *mediaUC.GetMediaUseCase,
	listUC *mediaUC.ListMediaUseCase,
	updateUC *mediaUC.UpdateMediaUseCase,
	deleteUC *mediaUC.DeleteMediaUseCase,
	store service.BlobStore,
	log logger.Logger,
) *MediaHandler {
	return &MediaHandler{
		ingestMediaUC: ingestUC,
		getMediaUC:    getUC,
		listMediaUC:   listUC,
		updateMediaUC: updateUC,
		deleteMediaUC: deleteUC,
		store:         store,
		logger:        log,
	}
}

func (h *MediaHandler) UploadMedia(c *gin.Context) {
	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Error(apperror.NewInternal("failed to read file", err))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	input := mediaUC.IngestMediaInput{
		OwnerID:  ownerID,
		Filename: fileHeader.Filename,
		MimeType: mimeType,
		Data:     data,
		Title:    optionalForm(c, "title"),
		Caption:  optionalForm(c, "caption"),
	}

	if raw := c.PostForm("collection_id"); raw != "" {
		collectionID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.Error(apperror.NewInvalidInput("'collection_id' must be an integer", err))
			return
		}
		input.CollectionID = &collectionID
	}

	output, err := h.ingestMediaUC.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"media_id":  output.MediaID,
		"public_id": output.PublicID,
		"kind":      output.Kind,
		"url":       output.URL,
	})
}

func (h *MediaHandler) GetMedia(c *gin.Context) {
	publicID := c.Param("publicId")

	output, err := h.getMediaUC.Execute(c.Request.Context(), mediaUC.GetMediaInput{PublicID: publicID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToMediaDTO(output.Media, h.store.PublicURL))
}

func (h *MediaHandler) ListMedia(c *gin.Context) {
	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	output, err := h.listMediaUC.Execute(c.Request.Context(), mediaUC.ListMediaInput{
		OwnerID: ownerID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]MediaDTO, len(output.Media))
	for i, m := range output.Media {
		items[i] = ToMediaDTO(m, h.store.PublicURL)
	}
	c.JSON(http.StatusOK, gin.H{"media": items})
}

func (h *MediaHandler) UpdateMedia(c *gin.Context) {
	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	mediaID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid media ID", err))
		return
	}

	var req UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := mediaUC.UpdateMediaInput{
		OwnerID: ownerID,
		MediaID: mediaID,
		Title:   req.Title,
		Caption: req.Caption,
		AltText: req.AltText,
	}

	if err := h.updateMediaUC.Execute(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Media updated"})
}

func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	mediaID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid media ID", err))
		return
	}

	input := mediaUC.DeleteMediaInput{OwnerID: ownerID, MediaID: mediaID}
	if err := h.deleteMediaUC.Execute(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Media deleted"})
}

// RedirectBlob serves GET /m/*key by bouncing the client to the public
// object URL, so rendition links stay stable even if the bucket moves.
func (h *MediaHandler) RedirectBlob(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.Error(apperror.NewInvalidInput("blob key is required", nil))
		return
	}
	c.Redirect(http.StatusFound, h.store.PublicURL(key))
}

func optionalForm(c *gin.Context, field string) *string {
	if v, ok := c.GetPostForm(field); ok && v != "" {
		return &v
	}
	return nil
}
