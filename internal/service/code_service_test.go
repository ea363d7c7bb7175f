package service

import (
	"testing"

	"quizbank-service/internal/models"
)

func TestDropHidden(t *testing.T) {
	listings := []models.CodeListing{
		{Code: "M4T8H2", Active: true},
		{Code: "D7R1V9", Active: true},
		{Code: "SC13NC3", Active: false},
	}

	testCases := []struct {
		name     string
		hidden   []string
		expected []string
	}{
		{"no overrides", nil, []string{"M4T8H2", "D7R1V9", "SC13NC3"}},
		{"one hidden", []string{"M4T8H2"}, []string{"D7R1V9", "SC13NC3"}},
		{"all hidden", []string{"M4T8H2", "D7R1V9", "SC13NC3"}, []string{}},
		{"hidden code not listed", []string{"G30GR4PH"}, []string{"M4T8H2", "D7R1V9", "SC13NC3"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := dropHidden(listings, tc.hidden)
			if len(got) != len(tc.expected) {
				t.Fatalf("Expected %d listings, got %d", len(tc.expected), len(got))
			}
			for i, l := range got {
				if l.Code != tc.expected[i] {
					t.Errorf("Listing %d: expected %s, got %s", i, tc.expected[i], l.Code)
				}
			}
		})
	}
}
