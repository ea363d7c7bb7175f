package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	QuestionTypeSingle   = "single"
	QuestionTypeMultiple = "multiple"
)

type Option struct {
	ID   string `bson:"id" json:"id"`
	Text string `bson:"text" json:"text"`
}

// Question keeps correctness by option identity, not by position, so the
// option order handed to a client can be shuffled freely.
type Question struct {
	ID               string   `bson:"_id,omitempty" json:"id"`
	Code             string   `bson:"code" json:"code"`
	Content          string   `bson:"content" json:"content"`
	Type             string   `bson:"type" json:"type"`
	Options          []Option `bson:"options" json:"options"`
	CorrectOptionIDs []string `bson:"correct_option_ids" json:"correct_option_ids"`
}

// QuestionUpload is the bulk-upload wire shape: plain option strings with
// positional correct-answer indices.
type QuestionUpload struct {
	Code           string   `json:"code"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correctAnswers"`
	Type           string   `json:"type"`
}

// ToQuestion validates an upload record and converts its positional
// correctness into identity-based options.
func (u *QuestionUpload) ToQuestion() (*Question, error) {
	if u.Code == "" {
		return nil, errors.New("question code is required")
	}
	if u.Question == "" {
		return nil, errors.New("question text is required")
	}
	if len(u.Options) < 2 {
		return nil, errors.New("question needs at least two options")
	}
	if u.Type != QuestionTypeSingle && u.Type != QuestionTypeMultiple {
		return nil, fmt.Errorf("unknown question type %q", u.Type)
	}
	if len(u.CorrectAnswers) == 0 {
		return nil, errors.New("question needs at least one correct answer")
	}
	if u.Type == QuestionTypeSingle && len(u.CorrectAnswers) != 1 {
		return nil, errors.New("single-answer question must have exactly one correct answer")
	}

	options := make([]Option, len(u.Options))
	for i, text := range u.Options {
		options[i] = Option{ID: uuid.NewString(), Text: text}
	}

	seen := make(map[int]bool, len(u.CorrectAnswers))
	correctIDs := make([]string, 0, len(u.CorrectAnswers))
	for _, idx := range u.CorrectAnswers {
		if idx < 0 || idx >= len(options) {
			return nil, fmt.Errorf("correct answer index %d out of range", idx)
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		correctIDs = append(correctIDs, options[idx].ID)
	}

	return &Question{
		ID:               uuid.NewString(),
		Code:             u.Code,
		Content:          u.Question,
		Type:             u.Type,
		Options:          options,
		CorrectOptionIDs: correctIDs,
	}, nil
}
