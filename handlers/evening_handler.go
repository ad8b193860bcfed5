package handlers

import (
	"net/http"
	"strconv"

	"gamenight/services"

	"github.com/gin-gonic/gin"
)

type EveningHandler struct {
	eveningService *services.EveningService
}

func NewEveningHandler(eveningService *services.EveningService) *EveningHandler {
	return &EveningHandler{
		eveningService: eveningService,
	}
}

func (h *EveningHandler) CreateEvening(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.CreateEveningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evening, err := h.eveningService.CreateEvening(userID.(uint), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, evening)
}

func (h *EveningHandler) GetUserEvenings(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	evenings, err := h.eveningService.GetUserEvenings(userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, evenings)
}

func (h *EveningHandler) GetEveningByID(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	eveningID, err := strconv.ParseUint(c.Param("eveningId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evening ID"})
		return
	}

	evening, err := h.eveningService.GetEveningByID(uint(eveningID), userID.(uint))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evening not found"})
		return
	}

	c.JSON(http.StatusOK, evening)
}

// GetEveningByCode is the public guest view of an evening.
func (h *EveningHandler) GetEveningByCode(c *gin.Context) {
	evening, err := h.eveningService.GetEveningByCode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evening not found"})
		return
	}

	c.JSON(http.StatusOK, evening)
}

func (h *EveningHandler) UpdateEvening(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	eveningID, err := strconv.ParseUint(c.Param("eveningId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evening ID"})
		return
	}

	var req services.UpdateEveningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evening, err := h.eveningService.UpdateEvening(uint(eveningID), userID.(uint), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, evening)
}

func (h *EveningHandler) AddPlayer(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	eveningID, err := strconv.ParseUint(c.Param("eveningId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evening ID"})
		return
	}

	var req services.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.eveningService.AddPlayer(uint(eveningID), userID.(uint), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, player)
}

func (h *EveningHandler) DeleteEvening(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	eveningID, err := strconv.ParseUint(c.Param("eveningId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evening ID"})
		return
	}

	if err := h.eveningService.DeleteEvening(uint(eveningID), userID.(uint)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Evening deleted successfully"})
}
