package topics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"studymate-backend/apierr"
	"studymate-backend/logger"
)

type Repository interface {
	Create(ctx context.Context, t Topic) error
	// ByIDForUser returns ErrTopicNotFound unless the topic exists and belongs to userID.
	ByIDForUser(ctx context.Context, userID, id string) (Topic, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Topic, error)
	UpdateScore(ctx context.Context, userID, id string, score int) error
	Progress(ctx context.Context, userID string) (Progress, error)
}

type ContentGenerator interface {
	Generate(ctx context.Context, topic string, d Difficulty) (Content, error)
}

type Service struct {
	repo  Repository
	gen   ContentGenerator
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository, gen ContentGenerator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		gen:   gen,
		log:   log.With("component", "topics"),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Generate validates the request, calls the generator and stores an unscored topic.
func (s *Service) Generate(ctx context.Context, userID, topic, difficulty string) (Topic, error) {
	d, err := ParseDifficulty(difficulty)
	if err != nil {
		return Topic{}, err
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Topic{}, apierr.Validation("Topic must not be empty")
	}

	content, err := s.gen.Generate(ctx, topic, d)
	if err != nil {
		return Topic{}, err
	}

	t := Topic{
		ID:          s.newID(),
		UserID:      userID,
		Topic:       topic,
		Difficulty:  d,
		Explanation: content.Explanation,
		Quiz:        content.Quiz,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Topic{}, fmt.Errorf("save topic: %w", err)
	}
	s.log.Info("topic generated", "user_id", userID, "topic_id", t.ID, "difficulty", d)
	return t, nil
}

// SubmitQuiz scores answers against the stored quiz and overwrites the topic's score.
func (s *Service) SubmitQuiz(ctx context.Context, userID, topicID string, answers []string) (QuizResult, error) {
	t, err := s.load(ctx, userID, topicID)
	if err != nil {
		return QuizResult{}, err
	}
	res, err := ScoreQuiz(t.Quiz, answers)
	if err != nil {
		return QuizResult{}, err
	}
	if err := s.repo.UpdateScore(ctx, userID, topicID, res.Score); err != nil {
		if errors.Is(err, ErrTopicNotFound) {
			return QuizResult{}, apierr.NotFound("Topic not found")
		}
		return QuizResult{}, fmt.Errorf("save score: %w", err)
	}
	s.log.Info("quiz submitted", "user_id", userID, "topic_id", topicID, "score", res.Score, "total", res.Total)
	return res, nil
}

// History returns the user's topics, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]Topic, error) {
	list, err := s.repo.ListByUser(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	if list == nil {
		list = []Topic{}
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, userID, topicID string) (Topic, error) {
	return s.load(ctx, userID, topicID)
}

func (s *Service) load(ctx context.Context, userID, topicID string) (Topic, error) {
	t, err := s.repo.ByIDForUser(ctx, userID, topicID)
	if err != nil {
		if errors.Is(err, ErrTopicNotFound) {
			return Topic{}, apierr.NotFound("Topic not found")
		}
		return Topic{}, fmt.Errorf("load topic: %w", err)
	}
	return t, nil
}
