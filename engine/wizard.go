package engine

import (
	"encoding/json"
	"sort"
	"strconv"
)

// WizardEntry is one player's bid/result pair for a round. Both fields
// stay nil until the player enters them; a round only counts toward the
// running total once the result is in.
type WizardEntry struct {
	Bid *int `json:"bid,omitempty"`
	Won *int `json:"won,omitempty"`
}

// WizardMeta carries the optional per-round werewolf modifier: a one-time
// bid offset applied to exactly one player.
type WizardMeta struct {
	WerewolfPlayerID   int `json:"werewolfPlayerId"`
	WerewolfAdjustment int `json:"werewolfAdjustment"`
}

// WizardRound maps player ids to their entries for one round. On the wire
// the round is a single object keyed by stringified player id, with the
// modifier tucked under a reserved "_meta" key.
type WizardRound struct {
	Entries map[int]WizardEntry
	Meta    *WizardMeta
}

func (r *WizardRound) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Entries = make(map[int]WizardEntry, len(raw))
	for key, value := range raw {
		if key == "_meta" {
			meta := &WizardMeta{}
			if err := json.Unmarshal(value, meta); err != nil {
				return err
			}
			r.Meta = meta
			continue
		}
		id, err := strconv.Atoi(key)
		if err != nil {
			// Not a player key, ignore it.
			continue
		}
		var entry WizardEntry
		if err := json.Unmarshal(value, &entry); err != nil {
			return err
		}
		r.Entries[id] = entry
	}
	return nil
}

func (r WizardRound) MarshalJSON() ([]byte, error) {
	raw := make(map[string]interface{}, len(r.Entries)+1)
	for id, entry := range r.Entries {
		raw[strconv.Itoa(id)] = entry
	}
	if r.Meta != nil {
		raw["_meta"] = r.Meta
	}
	return json.Marshal(raw)
}

// WizardResult extends the common result with per-round progress data.
type WizardResult struct {
	Result
	RunningTotals   map[int][]int `json:"runningTotals"`
	CurrentRound    int           `json:"currentRound"`
	CompletedRounds int           `json:"completedRounds"`
	TotalRounds     int           `json:"totalRounds"`
}

// WizardRoundScore scores a single bid/result pair: hitting the bid pays
// 20 plus 10 per trick, missing costs 10 per trick off.
func WizardRoundScore(bid, won int) int {
	if bid == won {
		return 20 + won*10
	}
	return -10 * abs(bid-won)
}

// WizardTotalRounds returns the round count of a full game, 60 cards
// dealt evenly. Wizard is only playable with 3 to 6 players; anything
// else yields 0 and the caller must refuse to start the game.
func WizardTotalRounds(playerCount int) int {
	if playerCount < 3 || playerCount > 6 {
		return 0
	}
	return 60 / playerCount
}

// ScoreWizard computes running totals over all complete rounds and ranks
// players by descending total. A trailing round where someone has bid but
// not yet recorded a result contributes nothing and marks the round
// incomplete for progress display.
func ScoreWizard(rounds []WizardRound, playerIDs []int) WizardResult {
	totals := make(map[int]int, len(playerIDs))
	running := make(map[int][]int, len(playerIDs))
	for _, id := range playerIDs {
		totals[id] = 0
		running[id] = []int{}
	}

	incomplete := false
	for _, round := range rounds {
		for _, id := range playerIDs {
			entry := round.Entries[id]
			if entry.Bid != nil && entry.Won == nil {
				incomplete = true
			}
			if entry.Bid != nil && entry.Won != nil {
				bid := *entry.Bid
				if round.Meta != nil && round.Meta.WerewolfPlayerID == id {
					bid += round.Meta.WerewolfAdjustment
				}
				totals[id] += WizardRoundScore(bid, *entry.Won)
			}
			running[id] = append(running[id], totals[id])
		}
	}

	ids := append([]int(nil), playerIDs...)
	sort.Slice(ids, func(i, j int) bool {
		if totals[ids[i]] != totals[ids[j]] {
			return totals[ids[i]] > totals[ids[j]]
		}
		return ids[i] < ids[j]
	})
	entries := make([]RankEntry, len(ids))
	for i, id := range ids {
		entries[i] = RankEntry{PlayerID: id, Key: strconv.Itoa(totals[id])}
	}
	positions := AssignPositions(entries)

	currentRound := len(rounds)
	completedRounds := currentRound
	if incomplete {
		completedRounds--
	}

	return WizardResult{
		Result: Result{
			FinalScores: totals,
			Positions:   positions,
			WinnerIDs:   winnerIDs(positions),
		},
		RunningTotals:   running,
		CurrentRound:    currentRound,
		CompletedRounds: completedRounds,
		TotalRounds:     WizardTotalRounds(len(playerIDs)),
	}
}
