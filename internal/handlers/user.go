package handlers

import (
	"errors"
	"net/http"

	"realo-api/internal/models"
	"realo-api/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler handles requests for the users resource (the historical
// "Mjeku" routes keep their names for existing clients).
type UserHandler struct {
	repo *repository.UserRepository
	log  *logrus.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo *repository.UserRepository, log *logrus.Logger) *UserHandler {
	return &UserHandler{repo: repo, log: log}
}

func (h *UserHandler) serverError(c *gin.Context, op string, err error) {
	h.log.WithError(err).WithField("op", op).Error("store failure")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}

// GetUsers handles GET /api/Mjeku/GetMjeket
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "GetUsers", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/Mjeku/GetMjeku/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	user, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		h.serverError(c, "GetUser", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// PostUser handles POST /api/Mjeku/PostMjeku
func (h *UserHandler) PostUser(c *gin.Context) {
	var u models.User
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	id, err := h.repo.Create(c.Request.Context(), &u)
	if err != nil {
		h.serverError(c, "PostUser", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OK", "id": id})
}

// PutUser handles PUT /api/Mjeku/PutMjeku/:id
func (h *UserHandler) PutUser(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var u models.User
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	affected, err := h.repo.Update(c.Request.Context(), id, &u)
	if err != nil {
		h.serverError(c, "PutUser", err)
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mjeku updated successfully!"})
}

// DeleteUser handles DELETE /api/Mjeku/DeleteMjeku/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	affected, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, "DeleteUser", err)
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
