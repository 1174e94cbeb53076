package store

import "time"

// Category groups focus sessions and notes.
type Category string

const (
	CategoryStudy    Category = "Study"
	CategoryWork     Category = "Work"
	CategoryCreative Category = "Creative"
	CategoryHealth   Category = "Health"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryStudy, CategoryWork, CategoryCreative, CategoryHealth}

func (c Category) Valid() bool {
	switch c {
	case CategoryStudy, CategoryWork, CategoryCreative, CategoryHealth:
		return true
	}
	return false
}

// Icon is the glyph shown next to the category in status lines.
func (c Category) Icon() string {
	switch c {
	case CategoryStudy:
		return "📖"
	case CategoryWork:
		return "💼"
	case CategoryCreative:
		return "🎨"
	case CategoryHealth:
		return "❤"
	}
	return "•"
}

// SessionEntry is one fully completed focus interval.
type SessionEntry struct {
	ID         string
	OccurredAt time.Time
	Minutes    int
	Category   Category
	TaskLabel  string
}

func (e SessionEntry) Timestamp() time.Time { return e.OccurredAt }

// WaterLogEntry is one hydration log call.
type WaterLogEntry struct {
	ID          string
	OccurredAt  time.Time
	Milliliters int
}

func (e WaterLogEntry) Timestamp() time.Time { return e.OccurredAt }

// DailyWaterRecord is the rollup of one finished day of water intake.
type DailyWaterRecord struct {
	DateKey          string // YYYY-MM-DD, local calendar day
	TotalMilliliters int
}

type Note struct {
	ID         string
	Title      string
	Content    string
	Category   Category
	Pinned     bool
	LinkedTask string
	ColorTag   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Setting struct {
	Key   string
	Value string
}

// NoteFilter is used to filter notes in queries.
type NoteFilter struct {
	Category    *Category
	Search      string // matched against title, content and linked task
	OldestFirst bool
}
