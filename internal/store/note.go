package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/quill/internal/model"
)

// NoteStore persists notes. Every operation takes the owner id and scopes its
// statement with it, so a note another user owns is indistinguishable from a
// note that does not exist.
type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

func scanNote(scanner interface{ Scan(...any) error }) (*model.Note, error) {
	var n model.Note
	err := scanner.Scan(&n.ID, &n.Title, &n.Content, &n.OwnerID, &n.CreatedOn, &n.LastUpdate)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

const noteCols = `id, title, content, owner_id, created_on, last_update`

func (s *NoteStore) Create(ownerID, title, content string) (*model.Note, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO notes (id, title, content, owner_id, created_on, last_update) VALUES (?, ?, ?, ?, ?, ?)`,
		id, title, content, ownerID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return s.Get(id, ownerID)
}

func (s *NoteStore) Get(id, ownerID string) (*model.Note, error) {
	row := s.db.QueryRow(`SELECT `+noteCols+` FROM notes WHERE id = ? AND owner_id = ?`, id, ownerID)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// ListByOwner returns all of the owner's notes, most recently updated first.
func (s *NoteStore) ListByOwner(ownerID string) ([]model.Note, error) {
	rows, err := s.db.Query(
		`SELECT `+noteCols+` FROM notes WHERE owner_id = ? ORDER BY last_update DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

// Update sets title, content, and last_update in one owner-scoped statement.
// A zero match count is the sole not-found signal and returns nil, nil;
// created_on is never touched.
func (s *NoteStore) Update(id, ownerID, title, content string) (*model.Note, error) {
	result, err := s.db.Exec(
		`UPDATE notes SET title = ?, content = ?, last_update = ? WHERE id = ? AND owner_id = ?`,
		title, content, time.Now().UTC(), id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return s.Get(id, ownerID)
}

// Delete removes the note if the caller owns it, reporting whether a row
// matched.
func (s *NoteStore) Delete(id, ownerID string) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM notes WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
