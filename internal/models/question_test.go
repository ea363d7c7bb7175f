package models

import (
	"testing"
)

func TestQuestionUploadConversion(t *testing.T) {
	upload := QuestionUpload{
		Code:           "M4T8H2",
		Question:       "What is 2 + 2?",
		Options:        []string{"3", "4", "5"},
		CorrectAnswers: []int{1},
		Type:           QuestionTypeSingle,
	}

	q, err := upload.ToQuestion()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if q.Code != "M4T8H2" || q.Content != "What is 2 + 2?" || q.Type == "" {
		t.Errorf("Converted question lost fields: %+v", q)
	}
	if len(q.Options) != 3 {
		t.Fatalf("Expected 3 options, got %d", len(q.Options))
	}
	for i, opt := range q.Options {
		if opt.ID == "" {
			t.Errorf("Option %d has no id", i)
		}
		if opt.Text != upload.Options[i] {
			t.Errorf("Option %d text mismatch: expected %q, got %q", i, upload.Options[i], opt.Text)
		}
	}

	if len(q.CorrectOptionIDs) != 1 {
		t.Fatalf("Expected 1 correct option id, got %d", len(q.CorrectOptionIDs))
	}
	if q.CorrectOptionIDs[0] != q.Options[1].ID {
		t.Errorf("Correct id should identify option %q, got id %q", "4", q.CorrectOptionIDs[0])
	}
}

func TestQuestionUploadMultipleCorrect(t *testing.T) {
	upload := QuestionUpload{
		Code:           "SC13NC3",
		Question:       "Which are noble gases?",
		Options:        []string{"Helium", "Oxygen", "Neon", "Nitrogen"},
		CorrectAnswers: []int{0, 2, 0}, // duplicate index collapses
		Type:           QuestionTypeMultiple,
	}

	q, err := upload.ToQuestion()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(q.CorrectOptionIDs) != 2 {
		t.Fatalf("Expected 2 correct option ids, got %d", len(q.CorrectOptionIDs))
	}
	if q.CorrectOptionIDs[0] != q.Options[0].ID || q.CorrectOptionIDs[1] != q.Options[2].ID {
		t.Errorf("Correct ids do not match Helium and Neon")
	}
}

func TestQuestionUploadValidation(t *testing.T) {
	testCases := []struct {
		name   string
		upload QuestionUpload
	}{
		{"missing code", QuestionUpload{Question: "q", Options: []string{"a", "b"}, CorrectAnswers: []int{0}, Type: "single"}},
		{"missing text", QuestionUpload{Code: "c", Options: []string{"a", "b"}, CorrectAnswers: []int{0}, Type: "single"}},
		{"one option", QuestionUpload{Code: "c", Question: "q", Options: []string{"a"}, CorrectAnswers: []int{0}, Type: "single"}},
		{"bad type", QuestionUpload{Code: "c", Question: "q", Options: []string{"a", "b"}, CorrectAnswers: []int{0}, Type: "truefalse"}},
		{"no correct answers", QuestionUpload{Code: "c", Question: "q", Options: []string{"a", "b"}, Type: "single"}},
		{"index out of range", QuestionUpload{Code: "c", Question: "q", Options: []string{"a", "b"}, CorrectAnswers: []int{2}, Type: "single"}},
		{"negative index", QuestionUpload{Code: "c", Question: "q", Options: []string{"a", "b"}, CorrectAnswers: []int{-1}, Type: "single"}},
		{"single with two answers", QuestionUpload{Code: "c", Question: "q", Options: []string{"a", "b"}, CorrectAnswers: []int{0, 1}, Type: "single"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.upload.ToQuestion(); err == nil {
				t.Errorf("Expected validation error, got none")
			}
		})
	}
}
