package mockapi

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/saravenpi/outreach/internal/models"
)

// ErrNotFound is returned when a chat, message or user does not exist.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	email           TEXT NOT NULL UNIQUE,
	password_hash   TEXT NOT NULL,
	role            TEXT NOT NULL DEFAULT 'MEMBER',
	gmail_connected INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS chats (
	id               TEXT PRIMARY KEY,
	client           TEXT NOT NULL,
	company          TEXT NOT NULL DEFAULT '',
	sales_owner      TEXT NOT NULL DEFAULT '',
	linkedin_profile TEXT NOT NULL DEFAULT '',
	created_at       INTEGER NOT NULL,
	updated_at       INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS threads (
	chat_id      TEXT NOT NULL REFERENCES chats(id),
	thread_id    TEXT NOT NULL,
	subject      TEXT NOT NULL DEFAULT '',
	client_email TEXT NOT NULL DEFAULT '',
	position     INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS messages (
	id           TEXT PRIMARY KEY,
	chat_id      TEXT NOT NULL REFERENCES chats(id),
	type         TEXT NOT NULL,
	content      TEXT NOT NULL,
	message_from TEXT NOT NULL,
	feedback     INTEGER,
	created_at   INTEGER NOT NULL,
	updated_at   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_chat_created ON messages(chat_id, created_at DESC);
`

// Repo stores the fake API's data in SQLite.
type Repo struct {
	db  *sql.DB
	now func() time.Time
}

// OpenRepo opens (or creates) the database at path. ":memory:" gives a
// private in-memory database.
func OpenRepo(path string) (*Repo, error) {
	var dsn string
	if path == ":memory:" {
		dsn = fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", newID())
	} else {
		dsn = path + "?_foreign_keys=1&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer; in-memory databases also vanish with their
	// last connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Repo{db: db, now: time.Now}, nil
}

func (r *Repo) Close() error {
	return r.db.Close()
}

func newID() string {
	return strings.ToLower(ulid.Make().String())
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

type userRecord struct {
	models.User
	PasswordHash string
}

func (r *Repo) CreateUser(ctx context.Context, u models.User, passwordHash string) (models.User, error) {
	if u.ID == "" {
		u.ID = newID()
	}
	if u.Role == "" {
		u.Role = models.RoleMember
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, gmail_connected)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.ID, u.Name, strings.ToLower(u.Email), passwordHash, string(u.Role), u.GmailConnected)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

func (r *Repo) userByEmail(ctx context.Context, email string) (userRecord, error) {
	var rec userRecord
	var role string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, gmail_connected
		FROM users WHERE email = ?
	`, strings.ToLower(email)).Scan(&rec.ID, &rec.Name, &rec.Email, &rec.PasswordHash, &role, &rec.GmailConnected)
	if errors.Is(err, sql.ErrNoRows) {
		return userRecord{}, ErrNotFound
	}
	if err != nil {
		return userRecord{}, fmt.Errorf("failed to query user: %w", err)
	}
	rec.Role = models.Role(role)
	return rec, nil
}

func (r *Repo) UserByEmail(ctx context.Context, email string) (models.User, error) {
	rec, err := r.userByEmail(ctx, email)
	return rec.User, err
}

// CreateChat stores the chat with its threads and messages.
func (r *Repo) CreateChat(ctx context.Context, c models.Chat) (models.Chat, error) {
	if c.ID == "" {
		c.ID = newID()
	}
	now := r.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Chat{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO chats (id, client, company, sales_owner, linkedin_profile, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Client, c.Company, c.SalesOwner, c.LinkedInProfile, toMillis(c.CreatedAt), toMillis(c.UpdatedAt)); err != nil {
		return models.Chat{}, fmt.Errorf("failed to insert chat: %w", err)
	}

	for i, t := range c.Threads {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO threads (chat_id, thread_id, subject, client_email, position)
			VALUES (?, ?, ?, ?, ?)
		`, c.ID, t.ThreadID, t.Subject, t.ClientEmail, i); err != nil {
			return models.Chat{}, fmt.Errorf("failed to insert thread: %w", err)
		}
	}

	for i, m := range c.Messages {
		stored, err := insertMessage(ctx, tx, c.ID, m)
		if err != nil {
			return models.Chat{}, err
		}
		c.Messages[i] = stored
	}

	if err := tx.Commit(); err != nil {
		return models.Chat{}, fmt.Errorf("failed to commit chat: %w", err)
	}
	return c, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertMessage(ctx context.Context, db execer, chatID string, m models.Message) (models.Message, error) {
	if m.ID == "" {
		m.ID = newID()
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = m.CreatedAt
	}
	var feedback any
	if m.Feedback != nil {
		feedback = *m.Feedback
	}
	if _, err := db.ExecContext(ctx, `
		INSERT INTO messages (id, chat_id, type, content, message_from, feedback, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, chatID, string(m.Type), m.Content, string(m.MessageFrom), feedback, toMillis(m.CreatedAt), toMillis(m.UpdatedAt)); err != nil {
		return models.Message{}, fmt.Errorf("failed to insert message: %w", err)
	}
	return m, nil
}

// AddMessage stores m in chat chatID and bumps the chat's updated time.
func (r *Repo) AddMessage(ctx context.Context, chatID string, m models.Message) (models.Message, error) {
	now := r.now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE chats SET updated_at = ? WHERE id = ?`, toMillis(m.CreatedAt), chatID)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to touch chat: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Message{}, ErrNotFound
	}

	stored, err := insertMessage(ctx, tx, chatID, m)
	if err != nil {
		return models.Message{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Message{}, fmt.Errorf("failed to commit message: %w", err)
	}
	return stored, nil
}

// Chat returns one page of chat id. Messages are newest first; page counts
// pages of limit messages.
func (r *Repo) Chat(ctx context.Context, id string, page, limit int) (models.Chat, int, error) {
	var c models.Chat
	var created, updated int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, client, company, sales_owner, linkedin_profile, created_at, updated_at
		FROM chats WHERE id = ?
	`, id).Scan(&c.ID, &c.Client, &c.Company, &c.SalesOwner, &c.LinkedInProfile, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, 0, ErrNotFound
	}
	if err != nil {
		return models.Chat{}, 0, fmt.Errorf("failed to query chat: %w", err)
	}
	c.CreatedAt = fromMillis(created)
	c.UpdatedAt = fromMillis(updated)

	threads, err := r.threads(ctx, id)
	if err != nil {
		return models.Chat{}, 0, err
	}
	c.Threads = threads

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE chat_id = ?`, id).Scan(&total); err != nil {
		return models.Chat{}, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, content, message_from, feedback, created_at, updated_at
		FROM messages
		WHERE chat_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`, id, limit, page*limit)
	if err != nil {
		return models.Chat{}, 0, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	c.Messages = make([]models.Message, 0, limit)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return models.Chat{}, 0, err
		}
		c.Messages = append(c.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return models.Chat{}, 0, fmt.Errorf("failed to read messages: %w", err)
	}
	return c, total, nil
}

func (r *Repo) threads(ctx context.Context, chatID string) ([]models.Thread, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT thread_id, subject, client_email FROM threads
		WHERE chat_id = ? ORDER BY position
	`, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query threads: %w", err)
	}
	defer rows.Close()

	var out []models.Thread
	for rows.Next() {
		var t models.Thread
		if err := rows.Scan(&t.ThreadID, &t.Subject, &t.ClientEmail); err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(s scanner) (models.Message, error) {
	var m models.Message
	var typ, from string
	var feedback sql.NullInt64
	var created, updated int64
	if err := s.Scan(&m.ID, &typ, &m.Content, &from, &feedback, &created, &updated); err != nil {
		return models.Message{}, fmt.Errorf("failed to scan message: %w", err)
	}
	m.Type = models.MessageType(typ)
	m.MessageFrom = models.MessageFrom(from)
	if feedback.Valid {
		m.Feedback = models.IntPtr(int(feedback.Int64))
	}
	m.CreatedAt = fromMillis(created)
	m.UpdatedAt = fromMillis(updated)
	return m, nil
}

// Message returns a message and the chat it belongs to.
func (r *Repo) Message(ctx context.Context, id string) (models.Message, string, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, type, content, message_from, feedback, created_at, updated_at, chat_id
		FROM messages WHERE id = ?
	`, id)

	var m models.Message
	var typ, from, chatID string
	var feedback sql.NullInt64
	var created, updated int64
	err := row.Scan(&m.ID, &typ, &m.Content, &from, &feedback, &created, &updated, &chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, "", ErrNotFound
	}
	if err != nil {
		return models.Message{}, "", fmt.Errorf("failed to query message: %w", err)
	}
	m.Type = models.MessageType(typ)
	m.MessageFrom = models.MessageFrom(from)
	if feedback.Valid {
		m.Feedback = models.IntPtr(int(feedback.Int64))
	}
	m.CreatedAt = fromMillis(created)
	m.UpdatedAt = fromMillis(updated)
	return m, chatID, nil
}

// UpdateContent rewrites a message. from is left unchanged when empty.
func (r *Repo) UpdateContent(ctx context.Context, id, content string, from models.MessageFrom) error {
	now := toMillis(r.now())
	var res sql.Result
	var err error
	if from == "" {
		res, err = r.db.ExecContext(ctx, `UPDATE messages SET content = ?, updated_at = ? WHERE id = ?`, content, now, id)
	} else {
		res, err = r.db.ExecContext(ctx, `UPDATE messages SET content = ?, message_from = ?, updated_at = ? WHERE id = ?`, content, string(from), now, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) SetFeedback(ctx context.Context, id string, value int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE messages SET feedback = ? WHERE id = ?`, value, id)
	if err != nil {
		return fmt.Errorf("failed to update feedback: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchChat sets the chat's updated time.
func (r *Repo) TouchChat(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE chats SET updated_at = ? WHERE id = ?`, toMillis(at), id)
	if err != nil {
		return fmt.Errorf("failed to touch chat: %w", err)
	}
	return nil
}

// ListChats returns chats owned by salesOwner, most recently updated first.
// An empty owner lists every chat.
func (r *Repo) ListChats(ctx context.Context, salesOwner string) ([]models.ChatSummary, error) {
	query := `SELECT id, client, company, updated_at FROM chats`
	var args []any
	if salesOwner != "" {
		query += ` WHERE sales_owner = ?`
		args = append(args, salesOwner)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	out := []models.ChatSummary{}
	for rows.Next() {
		var s models.ChatSummary
		var updated int64
		if err := rows.Scan(&s.ID, &s.Client, &s.Company, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		s.UpdatedAt = fromMillis(updated)
		out = append(out, s)
	}
	return out, rows.Err()
}
