package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"quizbank-service/internal/event"
	"quizbank-service/internal/models"
	"quizbank-service/internal/repository"
)

type QuizService struct {
	Questions  *repository.QuestionRepository
	Codes      *repository.CodeRepository
	Publisher  *event.EventPublisher
	SampleSize int

	mu   sync.Mutex
	rand *rand.Rand
}

func NewQuizService(questions *repository.QuestionRepository, codes *repository.CodeRepository, publisher *event.EventPublisher, sampleSize int) *QuizService {
	return &QuizService{
		Questions:  questions,
		Codes:      codes,
		Publisher:  publisher,
		SampleSize: sampleSize,
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Sample draws up to SampleSize questions for a code and shuffles each
// question's option order for presentation. Correctness rides on option ids,
// so the shuffle never touches it.
func (s *QuizService) Sample(ctx context.Context, code string) ([]models.Question, error) {
	questions, err := s.Questions.SampleByCode(ctx, code, s.SampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to sample questions for %s: %w", code, err)
	}

	for i := range questions {
		s.shuffleOptions(&questions[i])
	}

	s.Publisher.Publish(event.TypeQuizSampled, map[string]any{
		"code":  code,
		"count": len(questions),
	})
	return questions, nil
}

func (s *QuizService) shuffleOptions(q *models.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rand.Shuffle(len(q.Options), func(i, j int) {
		q.Options[i], q.Options[j] = q.Options[j], q.Options[i]
	})
}

// BulkUpload validates and stores a batch of uploaded questions, creating
// any access codes they reference. The whole batch is rejected on the first
// invalid record so operators never end up with a partial upload.
func (s *QuizService) BulkUpload(ctx context.Context, uploads []models.QuestionUpload) (int, error) {
	if len(uploads) == 0 {
		return 0, fmt.Errorf("%w: request body must be a non-empty array of questions", ErrValidation)
	}

	questions := make([]models.Question, 0, len(uploads))
	codes := make(map[string]bool, len(uploads))
	for i, upload := range uploads {
		q, err := upload.ToQuestion()
		if err != nil {
			return 0, fmt.Errorf("%w: question %d: %s", ErrValidation, i, err)
		}
		questions = append(questions, *q)
		codes[q.Code] = true
	}

	for code := range codes {
		if err := s.Codes.EnsureExists(ctx, code, true); err != nil {
			return 0, fmt.Errorf("failed to ensure code %s: %w", code, err)
		}
	}

	if err := s.Questions.InsertMany(ctx, questions); err != nil {
		return 0, fmt.Errorf("failed to insert questions: %w", err)
	}
	return len(questions), nil
}
