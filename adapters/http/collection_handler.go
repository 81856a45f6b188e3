package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tuanng/mediahost/internal/application/service"
	collectionUC "github.com/tuanng/mediahost/internal/application/usecase/collection"
	"github.com/tuanng/mediahost/pkg/apperror"
	"github.com/tuanng/mediahost/pkg/logger"
)

type CollectionHandler struct {
	createUC     *collectionUC.CreateCollectionUseCase
	listUC       *collectionUC.ListCollectionsUseCase
	getUC        *collectionUC.GetCollectionUseCase
	getDefaultUC *collectionUC.GetDefaultCollectionUseCase
	updateUC     *collectionUC.UpdateCollectionUseCase
	deleteUC     *collectionUC.DeleteCollectionUseCase
	store        service.BlobStore
	logger       logger.Logger
}

func NewCollectionHandler(
	createUC *collectionUC.CreateCollectionUseCase,
	listUC *collectionUC.ListCollectionsUseCase,
	getUC *collectionUC.GetCollectionUseCase,
	getDefaultUC *collectionUC.GetDefaultCollectionUseCase,
	updateUC *collectionUC.UpdateCollectionUseCase,
	deleteUC *collectionUC.DeleteCollectionUseCase,
	store service.BlobStore,
	log logger.Logger,
) *CollectionHandler {
	return &CollectionHandler{
		createUC:     createUC,
		listUC:       listUC,
		getUC:        getUC,
		getDefaultUC: getDefaultUC,
		updateUC:     updateUC,
		deleteUC:     deleteUC,
		store:        store,
		logger:       log,
	}
}

func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.createUC.Execute(c.Request.Context(), collectionUC.CreateCollectionInput{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToCollectionDTO(output.Collection))
}

func (h *CollectionHandler) ListCollections(c *gin.Context) {
	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.listUC.Execute(c.Request.Context(), collectionUC.ListCollectionsInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]CollectionDTO, len(output.Collections))
	for i, col := range output.Collections {
		items[i] = ToCollectionDTO(col)
	}
	c.JSON(http.StatusOK, gin.H{"collections": items})
}

func (h *CollectionHandler) GetCollection(c *gin.Context) {
	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	collectionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid collection ID", err))
		return
	}

	output, err := h.getUC.Execute(c.Request.Context(), collectionUC.GetCollectionInput{
		OwnerID:      ownerID,
		CollectionID: collectionID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToCollectionWithMediaDTO(output.Collection, h.store.PublicURL))
}

func (h *CollectionHandler) GetDefaultCollection(c *gin.Context) {
	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.getDefaultUC.Execute(c.Request.Context(), collectionUC.GetDefaultCollectionInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}
	if output.Collection == nil {
		c.JSON(http.StatusOK, gin.H{"collection": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": ToCollectionDTO(output.Collection)})
}

func (h *CollectionHandler) UpdateCollection(c *gin.Context) {
	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	collectionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid collection ID", err))
		return
	}

	var req UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := collectionUC.UpdateCollectionInput{
		OwnerID:      ownerID,
		CollectionID: collectionID,
		Title:        req.Title,
		Description:  req.Description,
	}
	if err := h.updateUC.Execute(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Collection updated"})
}

func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	collectionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid collection ID", err))
		return
	}

	input := collectionUC.DeleteCollectionInput{OwnerID: ownerID, CollectionID: collectionID}
	if err := h.deleteUC.Execute(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Collection deleted"})
}
