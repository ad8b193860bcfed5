package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gamenight/engine"
	"gamenight/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type GameService struct {
	db           *gorm.DB
	redis        *redis.Client
	registry     engine.Registry
	editWindow   time.Duration
	standingsTTL time.Duration
}

func NewGameService(db *gorm.DB, redisClient *redis.Client, registry engine.Registry, editWindow, standingsTTL time.Duration) *GameService {
	return &GameService{
		db:           db,
		redis:        redisClient,
		registry:     registry,
		editWindow:   editWindow,
		standingsTTL: standingsTTL,
	}
}

type CreateGameRequest struct {
	BlockID   string `json:"block_id" binding:"required"`
	GameType  string `json:"game_type" binding:"required"`
	PlayerIDs []int  `json:"player_ids" binding:"required,min=1"`
}

type RecordMatchRequest struct {
	Player1       int  `json:"player1" binding:"required"`
	Player2       int  `json:"player2" binding:"required"`
	WinnerID      int  `json:"winnerId" binding:"required"`
	BallsLeft     *int `json:"ballsLeft"`
	EightBallFoul bool `json:"eightBallFoul"`
}

func (s *GameService) CreateGame(userID uint, eveningID uint, req *CreateGameRequest) (*models.GameRecord, error) {
	evening, err := s.ownedEvening(userID, eveningID)
	if err != nil {
		return nil, err
	}

	gameType := engine.GameType(req.GameType)
	if err := s.registry.ValidatePlayerCount(gameType, len(req.PlayerIDs)); err != nil {
		return nil, err
	}

	// Every listed player must belong to the evening roster, exactly once.
	roster := make(map[int]bool, len(evening.Players))
	for _, player := range evening.Players {
		roster[player.ID] = true
	}
	seen := make(map[int]bool, len(req.PlayerIDs))
	for _, id := range req.PlayerIDs {
		if !roster[id] {
			return nil, fmt.Errorf("player %d is not part of this evening", id)
		}
		if seen[id] {
			return nil, fmt.Errorf("player %d listed twice", id)
		}
		seen[id] = true
	}

	record := models.GameRecord{
		EveningID: evening.ID,
		BlockID:   req.BlockID,
		GameType:  gameType,
		PlayerIDs: req.PlayerIDs,
		Status:    models.StatusPending,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *GameService) StartGame(userID uint, eveningID uint, blockID string) (*models.GameRecord, error) {
	record, err := s.ownedRecord(userID, eveningID, blockID)
	if err != nil {
		return nil, err
	}
	if record.Status != models.StatusPending {
		return nil, fmt.Errorf("game has status '%s' - cannot start", record.Status)
	}

	now := time.Now()
	record.Status = models.StatusInProgress
	record.StartedAt = &now
	if err := s.db.Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// AddRound appends one raw round object to a running round-based game
// (wizard, phase 10), rescores and broadcasts the fresh standings.
func (s *GameService) AddRound(userID uint, eveningID uint, blockID string, round json.RawMessage, hub *Hub) (*engine.Scorecard, error) {
	return s.mutateRounds(userID, eveningID, blockID, hub, func(rounds []json.RawMessage) ([]json.RawMessage, error) {
		return append(rounds, round), nil
	})
}

// UpdateRound replaces the round at the given 0-based index.
func (s *GameService) UpdateRound(userID uint, eveningID uint, blockID string, index int, round json.RawMessage, hub *Hub) (*engine.Scorecard, error) {
	return s.mutateRounds(userID, eveningID, blockID, hub, func(rounds []json.RawMessage) ([]json.RawMessage, error) {
		if index < 0 || index >= len(rounds) {
			return nil, fmt.Errorf("round index %d out of range", index)
		}
		rounds[index] = round
		return rounds, nil
	})
}

func (s *GameService) mutateRounds(userID uint, eveningID uint, blockID string, hub *Hub, mutate func([]json.RawMessage) ([]json.RawMessage, error)) (*engine.Scorecard, error) {
	record, err := s.editableRecord(userID, eveningID, blockID)
	if err != nil {
		return nil, err
	}
	if record.GameType != engine.GameTypeWizard && record.GameType != engine.GameTypePhase10 {
		return nil, fmt.Errorf("%s games do not record rounds", record.GameType)
	}

	var rounds []json.RawMessage
	if len(record.Rounds) > 0 {
		if err := json.Unmarshal([]byte(record.Rounds), &rounds); err != nil {
			return nil, fmt.Errorf("stored rounds are corrupt: %w", err)
		}
	}
	rounds, err = mutate(rounds)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(rounds)
	if err != nil {
		return nil, err
	}
	record.Rounds = models.RawPayload(payload)

	// Reject payloads the engine cannot decode before persisting them.
	scorecard, err := s.registry.Score(record.Snapshot())
	if err != nil {
		return nil, err
	}

	if err := s.db.Save(record).Error; err != nil {
		return nil, err
	}
	s.publishStandings(record, scorecard, hub)
	return scorecard, nil
}

// RecordMatch appends one match to a pool game's match log.
func (s *GameService) RecordMatch(userID uint, eveningID uint, blockID string, req *RecordMatchRequest, hub *Hub) (*engine.Scorecard, error) {
	record, err := s.editableRecord(userID, eveningID, blockID)
	if err != nil {
		return nil, err
	}
	if record.GameType != engine.GameTypePool {
		return nil, fmt.Errorf("%s games do not record matches", record.GameType)
	}
	if req.WinnerID != req.Player1 && req.WinnerID != req.Player2 {
		return nil, errors.New("winner must be one of the two players")
	}

	var matches []engine.PoolMatch
	if len(record.Games) > 0 {
		if err := json.Unmarshal([]byte(record.Games), &matches); err != nil {
			return nil, fmt.Errorf("stored matches are corrupt: %w", err)
		}
	}
	matches = append(matches, engine.PoolMatch{
		Player1:       req.Player1,
		Player2:       req.Player2,
		WinnerID:      req.WinnerID,
		BallsLeft:     req.BallsLeft,
		EightBallFoul: req.EightBallFoul,
	})
	payload, err := json.Marshal(matches)
	if err != nil {
		return nil, err
	}
	record.Games = models.RawPayload(payload)

	scorecard, err := s.registry.Score(record.Snapshot())
	if err != nil {
		return nil, err
	}
	if err := s.db.Save(record).Error; err != nil {
		return nil, err
	}
	s.publishStandings(record, scorecard, hub)
	return scorecard, nil
}

// SetDartsScores records the final remaining-score entries of a darts
// game. Darts has no incremental rounds; the entries are set once when
// the game wraps up.
func (s *GameService) SetDartsScores(userID uint, eveningID uint, blockID string, scores map[int]engine.DartsScore, hub *Hub) (*engine.Scorecard, error) {
	record, err := s.editableRecord(userID, eveningID, blockID)
	if err != nil {
		return nil, err
	}
	if record.GameType != engine.GameTypeDarts {
		return nil, fmt.Errorf("%s games do not take darts scores", record.GameType)
	}

	payload, err := json.Marshal(scores)
	if err != nil {
		return nil, err
	}
	record.Scores = models.RawPayload(payload)

	scorecard, err := s.registry.Score(record.Snapshot())
	if err != nil {
		return nil, err
	}
	if err := s.db.Save(record).Error; err != nil {
		return nil, err
	}
	s.publishStandings(record, scorecard, hub)
	return scorecard, nil
}

// CompleteGame rescores one final time and freezes the result onto the
// record. From here on the stored scores and positions are served
// verbatim; the raw payload is never rescored again.
func (s *GameService) CompleteGame(userID uint, eveningID uint, blockID string, hub *Hub) (*models.GameRecord, error) {
	record, err := s.ownedRecord(userID, eveningID, blockID)
	if err != nil {
		return nil, err
	}
	if record.Status != models.StatusInProgress {
		return nil, fmt.Errorf("game has status '%s' - cannot complete", record.Status)
	}

	if record.GameType == engine.GameTypeWizard {
		var rounds []engine.WizardRound
		if len(record.Rounds) > 0 {
			if err := json.Unmarshal([]byte(record.Rounds), &rounds); err != nil {
				return nil, fmt.Errorf("stored rounds are corrupt: %w", err)
			}
		}
		progress := engine.ScoreWizard(rounds, record.PlayerIDs)
		if progress.CompletedRounds < progress.TotalRounds {
			return nil, fmt.Errorf("wizard game has %d of %d rounds completed", progress.CompletedRounds, progress.TotalRounds)
		}
	}

	scorecard, err := s.registry.Score(record.Snapshot())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record.Status = models.StatusCompleted
	record.CompletedAt = &now
	record.FinalScores = scorecard.FinalScores
	record.Positions = scorecard.Positions
	record.WinnerIDs = scorecard.WinnerIDs
	record.WinnerID = nil
	if len(scorecard.WinnerIDs) == 1 {
		winner := scorecard.WinnerIDs[0]
		record.WinnerID = &winner
	}
	if err := s.db.Save(record).Error; err != nil {
		return nil, err
	}

	s.releaseEdit(record.EveningID, record.BlockID)
	s.publishStandings(record, scorecard, hub)
	return record, nil
}

func (s *GameService) CancelGame(userID uint, eveningID uint, blockID string) (*models.GameRecord, error) {
	record, err := s.ownedRecord(userID, eveningID, blockID)
	if err != nil {
		return nil, err
	}
	if record.Status == models.StatusCompleted || record.Status == models.StatusCancelled {
		return nil, fmt.Errorf("game has status '%s' - cannot cancel", record.Status)
	}
	record.Status = models.StatusCancelled
	if err := s.db.Save(record).Error; err != nil {
		return nil, err
	}
	s.releaseEdit(record.EveningID, record.BlockID)
	return record, nil
}

// GetStandings returns the current standings of one game, looked up by
// evening join code so guests can read it. Completed records serve their
// frozen snapshot; running records are rescored on every read, with a
// short-lived redis cache in front.
func (s *GameService) GetStandings(code string, blockID string) (*engine.Scorecard, error) {
	evening, record, err := s.recordByCode(code, blockID)
	if err != nil {
		return nil, err
	}

	if record.Status != models.StatusCompleted {
		if cached := s.cachedStandings(evening.ID, blockID); cached != nil {
			return cached, nil
		}
	}
	scorecard, err := standingsFor(s.registry, record)
	if err != nil {
		return nil, err
	}
	if record.Status != models.StatusCompleted {
		s.cacheStandings(evening.ID, blockID, scorecard)
	}
	return scorecard, nil
}

// EveningSummary aggregates the completed games of an evening into the
// cross-game ranking. It is recomputed on every read and never persisted.
func (s *GameService) EveningSummary(code string) (*engine.SummaryResult, error) {
	var evening models.Evening
	if err := s.db.Where("code = ?", strings.ToLower(code)).
		Preload("Games", func(db *gorm.DB) *gorm.DB {
			return db.Order("game_records.created_at")
		}).
		First(&evening).Error; err != nil {
		return nil, errors.New("evening not found")
	}

	// The summary roster is every player appearing in any sibling game,
	// running games included; cancelled ones don't count.
	rosterSeen := make(map[int]bool)
	var roster []int
	var completed []engine.CompletedGame
	for _, record := range evening.Games {
		if record.Status == models.StatusCancelled {
			continue
		}
		for _, id := range record.PlayerIDs {
			if !rosterSeen[id] {
				rosterSeen[id] = true
				roster = append(roster, id)
			}
		}
		if record.Status == models.StatusCompleted && len(record.Positions) > 0 {
			completed = append(completed, engine.CompletedGame{
				GameType:  record.GameType,
				PlayerIDs: record.PlayerIDs,
				Positions: record.Positions,
			})
		}
	}

	result := engine.ScoreEveningSummary(completed, roster)
	return &result, nil
}

func (s *GameService) GetGame(code string, blockID string) (*models.GameRecord, error) {
	_, record, err := s.recordByCode(code, blockID)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// standingsFor implements the freeze rule: completed records return their
// stored snapshot untouched, everything else is rescored from the raw
// payload.
func standingsFor(registry engine.Registry, record *models.GameRecord) (*engine.Scorecard, error) {
	if record.Status == models.StatusCompleted {
		return &engine.Scorecard{Result: engine.Result{
			FinalScores: map[int]int(record.FinalScores),
			Positions:   map[int]int(record.Positions),
			WinnerIDs:   append([]int(nil), record.WinnerIDs...),
		}}, nil
	}
	return registry.Score(record.Snapshot())
}

// editableRecord loads an in-progress record after claiming the exclusive
// edit window for this user.
func (s *GameService) editableRecord(userID uint, eveningID uint, blockID string) (*models.GameRecord, error) {
	record, err := s.ownedRecord(userID, eveningID, blockID)
	if err != nil {
		return nil, err
	}
	if record.Status != models.StatusInProgress {
		return nil, fmt.Errorf("game has status '%s' - cannot edit", record.Status)
	}
	if err := s.claimEdit(eveningID, blockID, userID); err != nil {
		return nil, err
	}
	return record, nil
}

// claimEdit takes or refreshes the time-boxed single-writer claim on a
// record. The scoring engine stays lock-free; this boundary is where the
// single-authoritative-writer assumption is enforced.
func (s *GameService) claimEdit(eveningID uint, blockID string, userID uint) error {
	ctx := context.Background()
	key := editKey(eveningID, blockID)
	holder := strconv.FormatUint(uint64(userID), 10)

	ok, err := s.redis.SetNX(ctx, key, holder, s.editWindow).Result()
	if err != nil {
		return fmt.Errorf("failed to claim edit window: %w", err)
	}
	if ok {
		return nil
	}
	current, err := s.redis.Get(ctx, key).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to claim edit window: %w", err)
	}
	if current != holder {
		return errors.New("another host is editing this game")
	}
	// Same holder, refresh the window.
	if err := s.redis.Set(ctx, key, holder, s.editWindow).Err(); err != nil {
		log.Printf("Failed to refresh edit window for %s: %v", key, err)
	}
	return nil
}

func (s *GameService) releaseEdit(eveningID uint, blockID string) {
	if err := s.redis.Del(context.Background(), editKey(eveningID, blockID)).Err(); err != nil {
		log.Printf("Failed to release edit window for evening %d block %s: %v", eveningID, blockID, err)
	}
}

func editKey(eveningID uint, blockID string) string {
	return fmt.Sprintf("edit:%d:%s", eveningID, blockID)
}

func standingsKey(eveningID uint, blockID string) string {
	return fmt.Sprintf("standings:%d:%s", eveningID, blockID)
}

func (s *GameService) cacheStandings(eveningID uint, blockID string, scorecard *engine.Scorecard) {
	data, err := json.Marshal(scorecard)
	if err != nil {
		log.Printf("Failed to marshal standings for cache: %v", err)
		return
	}
	if err := s.redis.Set(context.Background(), standingsKey(eveningID, blockID), data, s.standingsTTL).Err(); err != nil {
		log.Printf("Failed to cache standings for evening %d block %s: %v", eveningID, blockID, err)
	}
}

func (s *GameService) cachedStandings(eveningID uint, blockID string) *engine.Scorecard {
	data, err := s.redis.Get(context.Background(), standingsKey(eveningID, blockID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error reading standings for evening %d block %s: %v", eveningID, blockID, err)
		}
		return nil
	}
	var scorecard engine.Scorecard
	if err := json.Unmarshal([]byte(data), &scorecard); err != nil {
		log.Printf("Failed to unmarshal cached standings: %v", err)
		return nil
	}
	return &scorecard
}

// publishStandings refreshes the cache and pushes the update to every
// connected client of the evening.
func (s *GameService) publishStandings(record *models.GameRecord, scorecard *engine.Scorecard, hub *Hub) {
	s.cacheStandings(record.EveningID, record.BlockID, scorecard)

	if hub == nil {
		return
	}
	var evening models.Evening
	if err := s.db.First(&evening, record.EveningID).Error; err != nil {
		log.Printf("Failed to load evening %d for broadcast: %v", record.EveningID, err)
		return
	}
	hub.BroadcastToEvening(evening.Code, "standings_update", map[string]interface{}{
		"block_id":    record.BlockID,
		"game_type":   record.GameType,
		"status":      record.Status,
		"finalScores": scorecard.FinalScores,
		"positions":   scorecard.Positions,
		"winnerIds":   scorecard.WinnerIDs,
		"details":     scorecard.Details,
	})
}

func (s *GameService) ownedEvening(userID uint, eveningID uint) (*models.Evening, error) {
	var evening models.Evening
	if err := s.db.Where("id = ? AND user_id = ?", eveningID, userID).
		Preload("Players").
		First(&evening).Error; err != nil {
		return nil, errors.New("evening not found")
	}
	return &evening, nil
}

func (s *GameService) ownedRecord(userID uint, eveningID uint, blockID string) (*models.GameRecord, error) {
	if _, err := s.ownedEvening(userID, eveningID); err != nil {
		return nil, err
	}
	var record models.GameRecord
	if err := s.db.Where("evening_id = ? AND block_id = ?", eveningID, blockID).
		First(&record).Error; err != nil {
		return nil, errors.New("game not found")
	}
	return &record, nil
}

func (s *GameService) recordByCode(code string, blockID string) (*models.Evening, *models.GameRecord, error) {
	var evening models.Evening
	if err := s.db.Where("code = ?", strings.ToLower(code)).First(&evening).Error; err != nil {
		return nil, nil, errors.New("evening not found")
	}
	var record models.GameRecord
	if err := s.db.Where("evening_id = ? AND block_id = ?", evening.ID, blockID).
		First(&record).Error; err != nil {
		return nil, nil, errors.New("game not found")
	}
	return &evening, &record, nil
}
