package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gamenight/engine"
	"gamenight/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService *services.GameService
	hub         *services.Hub
}

func NewGameHandler(gameService *services.GameService, hub *services.Hub) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		hub:         hub,
	}
}

type addRoundRequest struct {
	Round json.RawMessage `json:"round" binding:"required"`
}

type updateRoundRequest struct {
	Round json.RawMessage `json:"round" binding:"required"`
}

type dartsScoresRequest struct {
	Scores map[int]engine.DartsScore `json:"scores" binding:"required"`
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	userID, eveningID, ok := h.scope(c)
	if !ok {
		return
	}

	var req services.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.gameService.CreateGame(userID, eveningID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *GameHandler) StartGame(c *gin.Context) {
	userID, eveningID, ok := h.scope(c)
	if !ok {
		return
	}

	record, err := h.gameService.StartGame(userID, eveningID, c.Param("blockId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *GameHandler) AddRound(c *gin.Context) {
	userID, eveningID, ok := h.scope(c)
	if !ok {
		return
	}

	var req addRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scorecard, err := h.gameService.AddRound(userID, eveningID, c.Param("blockId"), req.Round, h.hub)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, scorecard)
}

func (h *GameHandler) UpdateRound(c *gin.Context) {
	userID, eveningID, ok := h.scope(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid round index"})
		return
	}

	var req updateRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scorecard, err := h.gameService.UpdateRound(userID, eveningID, c.Param("blockId"), index, req.Round, h.hub)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, scorecard)
}

func (h *GameHandler) RecordMatch(c *gin.Context) {
	userID, eveningID, ok := h.scope(c)
	if !ok {
		return
	}

	var req services.RecordMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scorecard, err := h.gameService.RecordMatch(userID, eveningID, c.Param("blockId"), &req, h.hub)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, scorecard)
}

func (h *GameHandler) SetDartsScores(c *gin.Context) {
	userID, eveningID, ok := h.scope(c)
	if !ok {
		return
	}

	var req dartsScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scorecard, err := h.gameService.SetDartsScores(userID, eveningID, c.Param("blockId"), req.Scores, h.hub)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, scorecard)
}

func (h *GameHandler) CompleteGame(c *gin.Context) {
	userID, eveningID, ok := h.scope(c)
	if !ok {
		return
	}

	record, err := h.gameService.CompleteGame(userID, eveningID, c.Param("blockId"), h.hub)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *GameHandler) CancelGame(c *gin.Context) {
	userID, eveningID, ok := h.scope(c)
	if !ok {
		return
	}

	record, err := h.gameService.CancelGame(userID, eveningID, c.Param("blockId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetGame is the public read of one game record by evening code.
func (h *GameHandler) GetGame(c *gin.Context) {
	record, err := h.gameService.GetGame(c.Param("code"), c.Param("blockId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetStandings is the public read of one game's current standings.
func (h *GameHandler) GetStandings(c *gin.Context) {
	scorecard, err := h.gameService.GetStandings(c.Param("code"), c.Param("blockId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, scorecard)
}

// GetEveningSummary is the public read of the cross-game ranking.
func (h *GameHandler) GetEveningSummary(c *gin.Context) {
	summary, err := h.gameService.EveningSummary(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// scope pulls the authenticated user and the evening id out of the
// request context.
func (h *GameHandler) scope(c *gin.Context) (uint, uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, 0, false
	}

	eveningID, err := strconv.ParseUint(c.Param("eveningId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evening ID"})
		return 0, 0, false
	}

	return userID.(uint), uint(eveningID), true
}
