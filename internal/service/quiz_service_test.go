package service

import (
	"math/rand"
	"sort"
	"testing"

	"quizbank-service/internal/models"
)

func newShuffleService(seed int64) *QuizService {
	return &QuizService{rand: rand.New(rand.NewSource(seed))}
}

func TestShuffleOptionsPreservesCorrectness(t *testing.T) {
	s := newShuffleService(1)

	question := models.Question{
		Type: models.QuestionTypeSingle,
		Options: []models.Option{
			{ID: "opt-a", Text: "a"},
			{ID: "opt-b", Text: "b"},
			{ID: "opt-c", Text: "c"},
		},
		CorrectOptionIDs: []string{"opt-a"},
	}

	for i := 0; i < 50; i++ {
		s.shuffleOptions(&question)

		if len(question.Options) != 3 {
			t.Fatalf("Shuffle changed option count to %d", len(question.Options))
		}
		texts := map[string]string{}
		for _, opt := range question.Options {
			texts[opt.ID] = opt.Text
		}
		if texts["opt-a"] != "a" || texts["opt-b"] != "b" || texts["opt-c"] != "c" {
			t.Fatalf("Shuffle broke the id/text pairing: %v", texts)
		}
		// The correct set still identifies "a" whatever position it landed in.
		if len(question.CorrectOptionIDs) != 1 || question.CorrectOptionIDs[0] != "opt-a" {
			t.Fatalf("Shuffle mutated correctness: %v", question.CorrectOptionIDs)
		}
	}
}

func TestShuffleOptionsChangesOrder(t *testing.T) {
	s := newShuffleService(42)

	original := []string{"a", "b", "c", "d", "e", "f"}
	question := models.Question{Options: make([]models.Option, len(original))}
	for i, text := range original {
		question.Options[i] = models.Option{ID: "opt-" + text, Text: text}
	}

	reordered := false
	for i := 0; i < 20 && !reordered; i++ {
		s.shuffleOptions(&question)
		for j, opt := range question.Options {
			if opt.Text != original[j] {
				reordered = true
				break
			}
		}
	}
	if !reordered {
		t.Error("Shuffle never produced a different presentation order")
	}

	// All option values still present exactly once.
	texts := make([]string, len(question.Options))
	for i, opt := range question.Options {
		texts[i] = opt.Text
	}
	sort.Strings(texts)
	for i, text := range texts {
		if text != original[i] {
			t.Fatalf("Option multiset changed: %v", texts)
		}
	}
}
