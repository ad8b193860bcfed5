package routes

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"gamenight/handlers"
	"gamenight/middleware"
	"gamenight/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	eveningHandler *handlers.EveningHandler,
	gameHandler *handlers.GameHandler,
	hub *services.Hub,
	eveningService *services.EveningService,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			// User profile
			protected.GET("/auth/profile", authHandler.GetProfile)

			// Evening routes
			evenings := protected.Group("/evenings")
			{
				evenings.GET("", eveningHandler.GetUserEvenings)
				evenings.POST("", eveningHandler.CreateEvening)
				evenings.GET("/:eveningId", eveningHandler.GetEveningByID)
				evenings.PUT("/:eveningId", eveningHandler.UpdateEvening)
				evenings.DELETE("/:eveningId", eveningHandler.DeleteEvening)
				evenings.POST("/:eveningId/players", eveningHandler.AddPlayer)

				// Game blocks within an evening
				games := evenings.Group("/:eveningId/games")
				{
					games.POST("", gameHandler.CreateGame)
					games.POST("/:blockId/start", gameHandler.StartGame)
					games.POST("/:blockId/rounds", gameHandler.AddRound)
					games.PUT("/:blockId/rounds/:index", gameHandler.UpdateRound)
					games.POST("/:blockId/matches", gameHandler.RecordMatch)
					games.PUT("/:blockId/scores", gameHandler.SetDartsScores)
					games.POST("/:blockId/complete", gameHandler.CompleteGame)
					games.POST("/:blockId/cancel", gameHandler.CancelGame)
				}
			}
		}

		// Public guest routes (join by code, read only)
		public := api.Group("/public")
		{
			public.GET("/:code", eveningHandler.GetEveningByCode)
			public.GET("/:code/summary", gameHandler.GetEveningSummary)
			public.GET("/:code/games/:blockId", gameHandler.GetGame)
			public.GET("/:code/games/:blockId/standings", gameHandler.GetStandings)
		}
	}

	// WebSocket endpoint for live standings updates
	router.GET("/ws/:code/:playerID", func(c *gin.Context) {
		code := strings.ToLower(c.Param("code"))
		playerIDStr := c.Param("playerID")
		playerName := c.Query("playerName")

		var playerID int
		if _, err := fmt.Sscanf(playerIDStr, "%d", &playerID); err != nil {
			log.Printf("Failed to parse player ID '%s' for evening %s: %v", playerIDStr, code, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player ID"})
			return
		}

		// Reject connections for players that are not on the evening roster
		if err := validatePlayerAccess(eveningService, code, playerID); err != nil {
			log.Printf("Player access validation failed for evening %s, player %d: %v", code, playerID, err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Player not found in evening"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for evening %s, player %s: %v", code, playerIDStr, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}

		if playerName == "" {
			if evening, err := eveningService.GetEveningByCode(code); err == nil {
				for _, player := range evening.Players {
					if player.ID == playerID {
						playerName = player.Name
						break
					}
				}
			}
			if playerName == "" {
				playerName = "Unknown Player"
			}
		}

		log.Printf("WebSocket connection established for evening %s, player %d (%s)", code, playerID, playerName)

		hub.RegisterClient(conn, code, playerID, playerName)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// validatePlayerAccess checks that the player belongs to the evening's roster,
// or is the host who created it.
func validatePlayerAccess(eveningService *services.EveningService, code string, playerID int) error {
	evening, err := eveningService.GetEveningByCode(code)
	if err != nil {
		return fmt.Errorf("evening not found: %v", err)
	}

	for _, player := range evening.Players {
		if player.ID == playerID {
			return nil
		}
	}

	// The host connects with their user ID rather than a roster player ID
	if playerID > 0 && evening.UserID == uint(playerID) {
		return nil
	}

	return fmt.Errorf("player %d not found in evening %s", playerID, code)
}
