package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Blob codecs for the entities kept under fixed keys in the kv table.
//
// Decoding is version tolerant: unknown fields are ignored, missing fields take
// their zero value, and field names written by earlier releases are accepted.
// Entries that cannot be valid (no timestamp, non-positive amount) are dropped.
// An empty blob decodes to an empty collection without error.

type sessionWire struct {
	ID         string     `json:"id"`
	OccurredAt *time.Time `json:"occurredAt,omitempty"`
	Minutes    int        `json:"minutes"`
	Category   string     `json:"category"`
	TaskLabel  string     `json:"taskLabel"`

	// Earlier field names.
	Date     *time.Time `json:"date,omitempty"`
	TaskName string     `json:"taskName,omitempty"`
}

type waterWire struct {
	ID          string     `json:"id"`
	OccurredAt  *time.Time `json:"occurredAt,omitempty"`
	Milliliters int        `json:"milliliters"`

	Time *time.Time `json:"time,omitempty"`
	ML   int        `json:"ml,omitempty"`
}

type dailyWaterWire struct {
	DateKey          string `json:"dateKey"`
	TotalMilliliters int    `json:"totalMilliliters"`

	Date string `json:"date,omitempty"`
	ML   int    `json:"ml,omitempty"`
}

func EncodeSessions(entries []SessionEntry) (string, error) {
	wire := make([]sessionWire, 0, len(entries))
	for _, e := range entries {
		at := e.OccurredAt.UTC()
		wire = append(wire, sessionWire{
			ID:         e.ID,
			OccurredAt: &at,
			Minutes:    e.Minutes,
			Category:   string(e.Category),
			TaskLabel:  e.TaskLabel,
		})
	}
	return encode(wire)
}

func DecodeSessions(blob string) ([]SessionEntry, error) {
	var wire []sessionWire
	if err := decode(blob, &wire); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	var entries []SessionEntry
	for _, w := range wire {
		at := firstTime(w.OccurredAt, w.Date)
		if at.IsZero() || w.Minutes <= 0 {
			continue
		}
		cat := Category(w.Category)
		if !cat.Valid() {
			cat = CategoryStudy
		}
		label := w.TaskLabel
		if label == "" {
			label = w.TaskName
		}
		entries = append(entries, SessionEntry{
			ID:         w.ID,
			OccurredAt: at,
			Minutes:    w.Minutes,
			Category:   cat,
			TaskLabel:  label,
		})
	}
	return entries, nil
}

func EncodeWaterLog(entries []WaterLogEntry) (string, error) {
	wire := make([]waterWire, 0, len(entries))
	for _, e := range entries {
		at := e.OccurredAt.UTC()
		wire = append(wire, waterWire{ID: e.ID, OccurredAt: &at, Milliliters: e.Milliliters})
	}
	return encode(wire)
}

func DecodeWaterLog(blob string) ([]WaterLogEntry, error) {
	var wire []waterWire
	if err := decode(blob, &wire); err != nil {
		return nil, fmt.Errorf("decode water log: %w", err)
	}
	var entries []WaterLogEntry
	for _, w := range wire {
		at := firstTime(w.OccurredAt, w.Time)
		ml := w.Milliliters
		if ml == 0 {
			ml = w.ML
		}
		if at.IsZero() || ml <= 0 {
			continue
		}
		entries = append(entries, WaterLogEntry{ID: w.ID, OccurredAt: at, Milliliters: ml})
	}
	return entries, nil
}

func EncodeWaterHistory(records []DailyWaterRecord) (string, error) {
	wire := make([]dailyWaterWire, 0, len(records))
	for _, r := range records {
		wire = append(wire, dailyWaterWire{DateKey: r.DateKey, TotalMilliliters: r.TotalMilliliters})
	}
	return encode(wire)
}

func DecodeWaterHistory(blob string) ([]DailyWaterRecord, error) {
	var wire []dailyWaterWire
	if err := decode(blob, &wire); err != nil {
		return nil, fmt.Errorf("decode water history: %w", err)
	}
	var records []DailyWaterRecord
	for _, w := range wire {
		key := w.DateKey
		if key == "" {
			key = w.Date
		}
		total := w.TotalMilliliters
		if total == 0 {
			total = w.ML
		}
		if _, err := time.Parse("2006-01-02", key); err != nil {
			continue
		}
		records = append(records, DailyWaterRecord{DateKey: key, TotalMilliliters: total})
	}
	return records, nil
}

// EncodeStringSet writes the set as a sorted JSON array.
func EncodeStringSet(set map[string]bool) (string, error) {
	keys := make([]string, 0, len(set))
	for k, ok := range set {
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return encode(keys)
}

func DecodeStringSet(blob string) (map[string]bool, error) {
	var keys []string
	if err := decode(blob, &keys); err != nil {
		return map[string]bool{}, fmt.Errorf("decode string set: %w", err)
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set, nil
}

// EncodeStringList writes an ordered JSON array.
func EncodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	return encode(list)
}

func DecodeStringList(blob string) ([]string, error) {
	var list []string
	if err := decode(blob, &list); err != nil {
		return nil, fmt.Errorf("decode string list: %w", err)
	}
	return list, nil
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decode(blob string, v any) error {
	if strings.TrimSpace(blob) == "" {
		return nil
	}
	return json.Unmarshal([]byte(blob), v)
}

func firstTime(ts ...*time.Time) time.Time {
	for _, t := range ts {
		if t != nil && !t.IsZero() {
			return *t
		}
	}
	return time.Time{}
}
