package models

import (
	"encoding/json"
	"time"
)

// NullFloat64 is a float64 that may be absent. Source fields that fail to
// parse are coerced to the invalid value instead of aborting the load.
type NullFloat64 struct {
	Float64 float64
	Valid   bool
}

func Float(v float64) NullFloat64 {
	return NullFloat64{Float64: v, Valid: true}
}

func (n NullFloat64) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

func (n *NullFloat64) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat64{}
		return nil
	}
	if err := json.Unmarshal(data, &n.Float64); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// NullTime is a timestamp that may be absent.
type NullTime struct {
	Time  time.Time
	Valid bool
}

func Time(t time.Time) NullTime {
	return NullTime{Time: t, Valid: true}
}

func (n NullTime) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Time)
}

func (n *NullTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullTime{}
		return nil
	}
	if err := json.Unmarshal(data, &n.Time); err != nil {
		return err
	}
	n.Valid = true
	return nil
}
