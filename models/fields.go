package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IntSlice is an ordered list of player ids stored as a jsonb column.
type IntSlice []int

func (s IntSlice) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *IntSlice) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// IntMap is a player-keyed numeric map (finalScores, positions) stored as
// a jsonb column. Keys are stringified player ids on the wire.
type IntMap map[int]int

func (m IntMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *IntMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// RawPayload is an opaque jsonb column holding the per-game-type round,
// match or score data. The engine decodes it; the model just carries it.
type RawPayload json.RawMessage

func (p RawPayload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

func (p *RawPayload) UnmarshalJSON(data []byte) error {
	*p = append((*p)[0:0], data...)
	return nil
}

func (p RawPayload) Value() (driver.Value, error) {
	if len(p) == 0 {
		return nil, nil
	}
	return []byte(p), nil
}

func (p *RawPayload) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		*p = append((*p)[0:0], v...)
		return nil
	case string:
		*p = RawPayload(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into RawPayload", value)
	}
}

func scanJSON(value interface{}, target interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, target)
	case string:
		return json.Unmarshal([]byte(v), target)
	default:
		return fmt.Errorf("cannot scan %T into %T", value, target)
	}
}
