package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/wmannis/lexifer/internal/domain"
)

//go:embed schema.sql
var schema string

var ErrNotFound = errors.New("lexicon not found")

// Store handles database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveWords adds words to the named lexicon, creating it if needed.
// Words already in the lexicon are skipped. It returns the lexicon and
// the number of words added.
func (s *Store) SaveWords(name, source string, words []string) (*domain.Lexicon, int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	lex, err := getOrCreateLexicon(tx, name, source)
	if err != nil {
		return nil, 0, err
	}

	var position int
	err = tx.QueryRow(
		"SELECT COALESCE(MAX(position) + 1, 0) FROM words WHERE lexicon_id = ?",
		lex.ID,
	).Scan(&position)
	if err != nil {
		return nil, 0, fmt.Errorf("next position: %w", err)
	}

	now := time.Now()
	added := 0
	for _, w := range words {
		res, err := tx.Exec(
			"INSERT OR IGNORE INTO words (id, lexicon_id, text, position, created_at) VALUES (?, ?, ?, ?, ?)",
			uuid.New().String(), lex.ID, w, position, now,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("insert word: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
			position++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("commit: %w", err)
	}
	lex.WordCount = position
	return lex, added, nil
}

func getOrCreateLexicon(tx *sql.Tx, name, source string) (*domain.Lexicon, error) {
	var lex domain.Lexicon
	err := tx.QueryRow(
		"SELECT id, name, source, created_at FROM lexicons WHERE name = ?",
		name,
	).Scan(&lex.ID, &lex.Name, &lex.Source, &lex.CreatedAt)

	if err == nil {
		return &lex, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("find lexicon: %w", err)
	}

	lex = domain.Lexicon{
		ID:        uuid.New().String(),
		Name:      name,
		Source:    source,
		CreatedAt: time.Now(),
	}
	_, err = tx.Exec(
		"INSERT INTO lexicons (id, name, source, created_at) VALUES (?, ?, ?, ?)",
		lex.ID, lex.Name, lex.Source, lex.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert lexicon: %w", err)
	}
	return &lex, nil
}

// GetLexicon retrieves a lexicon by name with its words in saved order
func (s *Store) GetLexicon(name string) (*domain.Lexicon, error) {
	var lex domain.Lexicon
	err := s.db.QueryRow(
		"SELECT id, name, source, created_at FROM lexicons WHERE name = ?",
		name,
	).Scan(&lex.ID, &lex.Name, &lex.Source, &lex.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get lexicon: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT id, lexicon_id, text, position, created_at FROM words WHERE lexicon_id = ? ORDER BY position",
		lex.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("get words: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		w := domain.Word{Lexicon: lex.Name}
		if err := rows.Scan(&w.ID, &w.LexiconID, &w.Text, &w.Position, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		lex.Words = append(lex.Words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get words: %w", err)
	}
	lex.WordCount = len(lex.Words)

	return &lex, nil
}

// ListLexicons returns all lexicons with their word counts
func (s *Store) ListLexicons() ([]domain.Lexicon, error) {
	rows, err := s.db.Query(`
		SELECT l.id, l.name, l.source, l.created_at, COUNT(w.id)
		FROM lexicons l
		LEFT JOIN words w ON w.lexicon_id = l.id
		GROUP BY l.id
		ORDER BY l.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list lexicons: %w", err)
	}
	defer rows.Close()

	var lexicons []domain.Lexicon
	for rows.Next() {
		var l domain.Lexicon
		if err := rows.Scan(&l.ID, &l.Name, &l.Source, &l.CreatedAt, &l.WordCount); err != nil {
			return nil, fmt.Errorf("scan lexicon: %w", err)
		}
		lexicons = append(lexicons, l)
	}

	return lexicons, rows.Err()
}

// SearchWords performs a simple substring search across all lexicons
func (s *Store) SearchWords(query string) ([]domain.Word, error) {
	rows, err := s.db.Query(`
		SELECT w.id, w.lexicon_id, l.name, w.text, w.position, w.created_at
		FROM words w
		JOIN lexicons l ON l.id = w.lexicon_id
		WHERE w.text LIKE ?
		ORDER BY l.name, w.position
	`, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("search words: %w", err)
	}
	defer rows.Close()

	var words []domain.Word
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.ID, &w.LexiconID, &w.Lexicon, &w.Text, &w.Position, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// DeleteLexicon removes a lexicon and its words
func (s *Store) DeleteLexicon(name string) error {
	res, err := s.db.Exec("DELETE FROM lexicons WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete lexicon: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}
