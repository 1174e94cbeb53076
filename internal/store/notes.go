package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NoteColors are the colour tags a note may carry.
var NoteColors = []string{"blue", "purple", "green", "orange", "red", "pink"}

// noteTimeLayout is fixed width so created_at sorts lexically.
const noteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var ErrEmptyTitle = errors.New("note title is empty")

func (s *Store) CreateNote(n Note) (*Note, error) {
	if strings.TrimSpace(n.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if !n.Category.Valid() {
		n.Category = CategoryStudy
	}
	if n.ColorTag == "" {
		n.ColorTag = NoteColors[0]
	}
	n.ID = uuid.NewString()
	now := time.Now().UTC().Format(noteTimeLayout)

	err := retryOnContention(func() error {
		_, err := s.db.Exec(
			`INSERT INTO notes (id, title, content, category, pinned, linked_task, color_tag, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			n.ID, n.Title, n.Content, string(n.Category), boolToInt(n.Pinned), n.LinkedTask, n.ColorTag, now, now,
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return s.GetNote(n.ID)
}

func (s *Store) GetNote(id string) (*Note, error) {
	row := s.db.QueryRow(
		`SELECT id, title, content, category, pinned, linked_task, color_tag, created_at, updated_at
		 FROM notes WHERE id = ?`, id,
	)
	n, err := scanNote(row)
	if err != nil {
		return nil, fmt.Errorf("get note %s: %w", id, err)
	}
	return n, nil
}

// ListNotes returns pinned notes first, then the rest, each group newest first
// unless f.OldestFirst is set.
func (s *Store) ListNotes(f NoteFilter) ([]Note, error) {
	query := `SELECT id, title, content, category, pinned, linked_task, color_tag, created_at, updated_at FROM notes WHERE 1=1`
	var args []any

	if f.Category != nil {
		query += ` AND category = ?`
		args = append(args, string(*f.Category))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		like := "%" + q + "%"
		query += ` AND (title LIKE ? OR content LIKE ? OR linked_task LIKE ?)`
		args = append(args, like, like, like)
	}
	query += ` ORDER BY pinned DESC, created_at`
	if !f.OldestFirst {
		query += ` DESC`
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (s *Store) UpdateNote(n Note) error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	if !n.Category.Valid() {
		n.Category = CategoryStudy
	}
	now := time.Now().UTC().Format(noteTimeLayout)
	return s.execNote(
		`UPDATE notes SET title = ?, content = ?, category = ?, pinned = ?, linked_task = ?, color_tag = ?, updated_at = ? WHERE id = ?`,
		n.Title, n.Content, string(n.Category), boolToInt(n.Pinned), n.LinkedTask, n.ColorTag, now, n.ID,
	)
}

func (s *Store) DeleteNote(id string) error {
	return s.execNote(`DELETE FROM notes WHERE id = ?`, id)
}

func (s *Store) ToggleNotePin(id string) error {
	now := time.Now().UTC().Format(noteTimeLayout)
	return s.execNote(`UPDATE notes SET pinned = 1 - pinned, updated_at = ? WHERE id = ?`, now, id)
}

func (s *Store) SetNoteColor(id, color string) error {
	now := time.Now().UTC().Format(noteTimeLayout)
	return s.execNote(`UPDATE notes SET color_tag = ?, updated_at = ? WHERE id = ?`, color, now, id)
}

func (s *Store) execNote(query string, args ...any) error {
	err := retryOnContention(func() error {
		_, err := s.db.Exec(query, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(r rowScanner) (*Note, error) {
	n := &Note{}
	var category, createdAt, updatedAt string
	var pinned int
	if err := r.Scan(&n.ID, &n.Title, &n.Content, &category, &pinned, &n.LinkedTask, &n.ColorTag, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	n.Category = Category(category)
	n.Pinned = pinned == 1
	n.CreatedAt, _ = time.Parse(noteTimeLayout, createdAt)
	n.UpdatedAt, _ = time.Parse(noteTimeLayout, updatedAt)
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
