package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"realo-api/internal/models"
	"realo-api/internal/repository"
	"realo-api/internal/search"
	"realo-api/internal/share"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PropertyHandler handles property and property-image requests
type PropertyHandler struct {
	repo      *repository.PropertyRepository
	search    *search.SearchClient // nil when search is disabled
	responder *share.Responder
	log       *logrus.Logger
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(repo *repository.PropertyRepository, searchClient *search.SearchClient, responder *share.Responder, log *logrus.Logger) *PropertyHandler {
	return &PropertyHandler{
		repo:      repo,
		search:    searchClient,
		responder: responder,
		log:       log,
	}
}

// serverError logs full detail and returns a generic message; driver error
// text never reaches clients.
func (h *PropertyHandler) serverError(c *gin.Context, op string, err error) {
	h.log.WithError(err).WithField("op", op).Error("store failure")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}

// GetProperties handles GET /api/Property/GetProperties
func (h *PropertyHandler) GetProperties(c *gin.Context) {
	properties, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "GetProperties", err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetProperty handles GET /api/Property/GetProperty/:id
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	property, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		h.serverError(c, "GetProperty", err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// PostProperty handles POST /api/Property/PostProperty. Missing optional
// fields default through Go zero values: strings to "", booleans to false,
// numbers to 0. Supplied images are inserted in the same transaction.
func (h *PropertyHandler) PostProperty(c *gin.Context) {
	var p models.Property
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	id, err := h.repo.Create(c.Request.Context(), &p)
	if err != nil {
		h.serverError(c, "PostProperty", err)
		return
	}

	h.syncSearch(c, id)
	c.JSON(http.StatusOK, gin.H{"message": "OK", "propertyId": id})
}

// PutProperty handles PUT /api/Property/PutProperty/:id — a full overwrite of
// every mutable column. An unmatched id is a 404, never silent success.
func (h *PropertyHandler) PutProperty(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var p models.Property
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	affected, err := h.repo.Update(c.Request.Context(), id, &p)
	if err != nil {
		h.serverError(c, "PutProperty", err)
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	h.syncSearch(c, id)
	c.JSON(http.StatusOK, gin.H{"message": "Property updated successfully!"})
}

// DeleteProperty handles DELETE /api/Property/DeleteProperty/:id. Images go
// first, then the property, in one transaction.
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	affected, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, "DeleteProperty", err)
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if h.search != nil {
		if err := h.search.RemoveProperty(id); err != nil {
			h.log.WithError(err).WithField("property_id", id).Warn("failed to remove property from search index")
		}
	}
	c.Status(http.StatusNoContent)
}

// GetPropertyImages handles GET /api/Property/GetPropertyImages/:propertyId
func (h *PropertyHandler) GetPropertyImages(c *gin.Context) {
	propertyID, ok := parseID(c.Param("propertyId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid propertyId"})
		return
	}

	images, err := h.repo.ListImages(c.Request.Context(), propertyID)
	if err != nil {
		h.serverError(c, "GetPropertyImages", err)
		return
	}
	if len(images) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No images found for this property"})
		return
	}
	c.JSON(http.StatusOK, images)
}

// GetPropertyMainImage handles GET /api/Property/GetPropertyMainImage/:propertyId
func (h *PropertyHandler) GetPropertyMainImage(c *gin.Context) {
	propertyID, ok := parseID(c.Param("propertyId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid propertyId"})
		return
	}

	image, err := h.repo.MainImage(c.Request.Context(), propertyID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "No image found for this property"})
		return
	}
	if err != nil {
		h.serverError(c, "GetPropertyMainImage", err)
		return
	}
	c.JSON(http.StatusOK, image)
}

type addImageRequest struct {
	ImageURL string `json:"imageUrl"`
}

// AddPropertyImage handles POST /api/Property/AddPropertyImage/:propertyId
func (h *PropertyHandler) AddPropertyImage(c *gin.Context) {
	propertyID, ok := parseID(c.Param("propertyId"))
	var req addImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || !ok || req.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing propertyId or imageUrl"})
		return
	}

	image, err := h.repo.AddImage(c.Request.Context(), propertyID, req.ImageURL)
	if err != nil {
		h.serverError(c, "AddPropertyImage", err)
		return
	}

	h.syncSearch(c, propertyID)
	c.JSON(http.StatusOK, image)
}

// UpdatePropertyImages handles PUT /api/Property/UpdatePropertyImages/:propertyId.
// The body must be a JSON array of URL strings; an empty array clears every
// image. Any other shape is rejected outright.
func (h *PropertyHandler) UpdatePropertyImages(c *gin.Context) {
	propertyID, ok := parseID(c.Param("propertyId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid propertyId"})
		return
	}

	var urls []string
	if err := c.ShouldBindJSON(&urls); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be an array of image URLs"})
		return
	}

	if err := h.repo.ReplaceImages(c.Request.Context(), propertyID, urls); err != nil {
		h.serverError(c, "UpdatePropertyImages", err)
		return
	}

	h.syncSearch(c, propertyID)
	c.JSON(http.StatusOK, gin.H{"message": "Images updated successfully!"})
}

// DeletePropertyImage handles DELETE /api/Property/DeletePropertyImage/:propertyId/:imageId
func (h *PropertyHandler) DeletePropertyImage(c *gin.Context) {
	propertyID, okP := parseID(c.Param("propertyId"))
	imageID, okI := parseID(c.Param("imageId"))
	if !okP || !okI {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid params"})
		return
	}

	err := h.repo.DeleteImage(c.Request.Context(), propertyID, imageID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Image not found or does not belong to the property"})
		return
	}
	if err != nil {
		h.serverError(c, "DeletePropertyImage", err)
		return
	}

	h.syncSearch(c, propertyID)
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully!"})
}

// ShareProperty handles GET /api/Property/ShareProperty/:id. Crawlers get a
// head-only Open Graph document with caching disabled; humans get a 302 to
// the viewer page. Errors here are plain text, matching what link scrapers
// historically received from this endpoint.
func (h *PropertyHandler) ShareProperty(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.String(http.StatusBadRequest, "Invalid id")
		return
	}

	property, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.String(http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("op", "ShareProperty").Error("store failure")
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	if !share.IsPreviewBot(c.GetHeader("User-Agent")) {
		c.Redirect(http.StatusFound, h.responder.ViewerURL(property, id))
		return
	}

	// Stale preview images are the failure mode this endpoint exists to
	// prevent; nothing between the crawler and this process may cache it.
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(h.responder.RenderPreview(property, id)))
}

// SearchProperties handles GET /api/Property/SearchProperties
func (h *PropertyHandler) SearchProperties(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search is not enabled"})
		return
	}

	params := search.FilterParams{
		Query:        c.Query("q"),
		City:         c.Query("city"),
		PropertyType: c.Query("propertyType"),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.ParseInt(limitStr, 10, 64); err == nil && limit > 0 {
			params.Limit = limit
		}
	}
	if v := c.Query("forSale"); v != "" {
		forSale := v == "true"
		params.ForSale = &forSale
	}
	if v := c.Query("forRent"); v != "" {
		forRent := v == "true"
		params.ForRent = &forRent
	}

	properties, err := h.search.FilterSearch(params)
	if err != nil {
		h.serverError(c, "SearchProperties", err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

// syncSearch refreshes a property's search document after a write. Indexing
// is best-effort: a search outage must not fail the write that succeeded.
func (h *PropertyHandler) syncSearch(c *gin.Context, id int) {
	if h.search == nil {
		return
	}
	property, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.log.WithError(err).WithField("property_id", id).Warn("failed to load property for indexing")
		return
	}
	if err := h.search.IndexProperty(property); err != nil {
		h.log.WithError(err).WithField("property_id", id).Warn("failed to index property")
	}
}
