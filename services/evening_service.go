package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"gamenight/models"

	"gorm.io/gorm"
)

type EveningService struct {
	db *gorm.DB
}

func NewEveningService(db *gorm.DB) *EveningService {
	return &EveningService{db: db}
}

type CreateEveningRequest struct {
	Title   string                `json:"title" binding:"required"`
	Players []CreatePlayerRequest `json:"players" binding:"required,min=1,max=10"`
}

type CreatePlayerRequest struct {
	Name      string `json:"name" binding:"required"`
	AvatarURL string `json:"avatarUrl"`
}

type UpdateEveningRequest struct {
	Title string `json:"title"`
}

func (s *EveningService) CreateEvening(userID uint, req *CreateEveningRequest) (*models.Evening, error) {
	// Start transaction
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	evening := models.Evening{
		Title:  req.Title,
		UserID: userID,
		Code:   s.generateCode(),
	}
	if err := tx.Create(&evening).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Player names must be unique within the evening.
	seen := make(map[string]bool, len(req.Players))
	for _, pReq := range req.Players {
		name := strings.TrimSpace(pReq.Name)
		if name == "" {
			tx.Rollback()
			return nil, errors.New("player name must not be empty")
		}
		if seen[strings.ToLower(name)] {
			tx.Rollback()
			return nil, errors.New("player name already taken")
		}
		seen[strings.ToLower(name)] = true

		player := models.Player{
			EveningID: evening.ID,
			Name:      name,
			AvatarURL: pReq.AvatarURL,
		}
		if err := tx.Create(&player).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetEveningByID(evening.ID, userID)
}

func (s *EveningService) GetUserEvenings(userID uint) ([]models.Evening, error) {
	var evenings []models.Evening
	err := s.db.Where("user_id = ?", userID).
		Preload("Players").
		Preload("Games", func(db *gorm.DB) *gorm.DB {
			return db.Order("game_records.created_at")
		}).
		Order("created_at DESC").
		Find(&evenings).Error
	return evenings, err
}

func (s *EveningService) GetEveningByID(eveningID uint, userID uint) (*models.Evening, error) {
	var evening models.Evening
	err := s.db.Where("id = ? AND user_id = ?", eveningID, userID).
		Preload("Players").
		Preload("Games", func(db *gorm.DB) *gorm.DB {
			return db.Order("game_records.created_at")
		}).
		First(&evening).Error
	return &evening, err
}

// GetEveningByCode is the public lookup guests use with the join code.
func (s *EveningService) GetEveningByCode(code string) (*models.Evening, error) {
	var evening models.Evening
	err := s.db.Where("code = ?", strings.ToLower(code)).
		Preload("Players").
		Preload("Games", func(db *gorm.DB) *gorm.DB {
			return db.Order("game_records.created_at")
		}).
		First(&evening).Error
	return &evening, err
}

func (s *EveningService) UpdateEvening(eveningID uint, userID uint, req *UpdateEveningRequest) (*models.Evening, error) {
	evening, err := s.GetEveningByID(eveningID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		evening.Title = req.Title
	}
	if err := s.db.Save(evening).Error; err != nil {
		return nil, err
	}
	return s.GetEveningByID(evening.ID, userID)
}

// AddPlayer extends the roster of an existing evening. Players already in
// recorded games cannot be removed, so there is no delete counterpart.
func (s *EveningService) AddPlayer(eveningID uint, userID uint, req *CreatePlayerRequest) (*models.Player, error) {
	evening, err := s.GetEveningByID(eveningID, userID)
	if err != nil {
		return nil, errors.New("evening not found")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("player name must not be empty")
	}
	for _, existing := range evening.Players {
		if strings.EqualFold(existing.Name, name) {
			return nil, errors.New("player name already taken")
		}
	}

	player := models.Player{
		EveningID: evening.ID,
		Name:      name,
		AvatarURL: req.AvatarURL,
	}
	if err := s.db.Create(&player).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *EveningService) DeleteEvening(eveningID uint, userID uint) error {
	_, err := s.GetEveningByID(eveningID, userID)
	if err != nil {
		return err
	}
	return s.db.Delete(&models.Evening{}, eveningID).Error
}

func (s *EveningService) generateCode() string {
	bytes := make([]byte, 3)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)[:6]
}
