package topics

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLRepository stores topics with the quiz serialized as a JSON array.
type SQLRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

const topicColumns = `id, user_id, topic, difficulty, explanation, quiz, score, created_at`

func (r *SQLRepository) Create(ctx context.Context, t Topic) error {
	quiz, err := json.Marshal(t.Quiz)
	if err != nil {
		return fmt.Errorf("encode quiz: %w", err)
	}
	var score sql.NullInt64
	if t.Score != nil {
		score = sql.NullInt64{Int64: int64(*t.Score), Valid: true}
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO topics (`+topicColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Topic, string(t.Difficulty), t.Explanation, string(quiz), score, t.CreatedAt.UTC(),
	)
	return err
}

func (r *SQLRepository) ByIDForUser(ctx context.Context, userID, id string) (Topic, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+topicColumns+` FROM topics WHERE id = ? AND user_id = ? LIMIT 1`, id, userID)
	t, err := scanTopic(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Topic{}, ErrTopicNotFound
	}
	return t, err
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID string, limit int) ([]Topic, error) {
	if limit <= 0 {
		limit = HistoryLimit
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+topicColumns+` FROM topics WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Topic{}
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateScore does not inspect RowsAffected: MySQL reports 0 when the score is unchanged.
func (r *SQLRepository) UpdateScore(ctx context.Context, userID, id string, score int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE topics SET score = ? WHERE id = ? AND user_id = ?`, score, id, userID)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTopic(s scanner) (Topic, error) {
	var (
		t          Topic
		difficulty string
		quiz       string
		score      sql.NullInt64
	)
	if err := s.Scan(&t.ID, &t.UserID, &t.Topic, &difficulty, &t.Explanation, &quiz, &score, &t.CreatedAt); err != nil {
		return Topic{}, err
	}
	t.Difficulty = Difficulty(difficulty)
	if err := json.Unmarshal([]byte(quiz), &t.Quiz); err != nil {
		return Topic{}, fmt.Errorf("decode quiz for topic %s: %w", t.ID, err)
	}
	if score.Valid {
		v := int(score.Int64)
		t.Score = &v
	}
	return t, nil
}
