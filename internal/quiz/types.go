package quiz

import (
	"strings"
	"time"

	"github.com/abhisek/orbitrest/internal/apperr"
	"github.com/abhisek/orbitrest/internal/store"
)

// Difficulty grades a question.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// ParseDifficulty parses s case-insensitively. An empty string means
// Beginner.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return Beginner, nil
	case Beginner, Intermediate, Advanced:
		return d, nil
	}
	return "", apperr.Invalid("unknown difficulty %q", s)
}

// Question is the public view of a quiz question. It has no answer key
// field, so no encoding of it can reveal the correct option.
type Question struct {
	ID          int        `json:"id"`
	ConceptID   int        `json:"conceptId"`
	Question    string     `json:"question"`
	Options     []string   `json:"options"`
	Explanation string     `json:"explanation"`
	Difficulty  Difficulty `json:"difficulty"`
}

// AdminQuestion is a question together with its answer key, returned only
// to administrative callers.
type AdminQuestion struct {
	Question
	CorrectAnswer int `json:"correctAnswer"`
}

// NewQuestion is the input of CreateQuestion.
type NewQuestion struct {
	ConceptID     int      `json:"conceptId"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

// Attempt is one graded submission.
type Attempt struct {
	ID             int       `json:"id"`
	UserID         int       `json:"userId"`
	QuestionID     int       `json:"questionId"`
	SelectedAnswer int       `json:"selectedAnswer"`
	IsCorrect      bool      `json:"isCorrect"`
	AttemptedAt    time.Time `json:"attemptedAt"`
}

// SubmitResult is the stored attempt plus the revealed answer key.
type SubmitResult struct {
	Attempt
	CorrectAnswer int    `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

// Summary holds raw attempt counts for one user on one concept.
type Summary struct {
	TotalAttempts   int `json:"totalAttempts"`
	CorrectAttempts int `json:"correctAttempts"`
}

// Percent returns the share of correct attempts in [0, 100]; zero attempts
// count as 0%.
func (s Summary) Percent() int {
	if s.TotalAttempts == 0 {
		return 0
	}
	return s.CorrectAttempts * 100 / s.TotalAttempts
}

func publicQuestion(r store.Question) Question {
	return Question{
		ID:          r.ID,
		ConceptID:   r.ConceptID,
		Question:    r.Text,
		Options:     r.Options,
		Explanation: r.Explanation,
		Difficulty:  Difficulty(r.Difficulty),
	}
}

func attemptFromRecord(r store.Attempt) Attempt {
	return Attempt{
		ID:             r.ID,
		UserID:         r.UserID,
		QuestionID:     r.QuestionID,
		SelectedAnswer: r.SelectedAnswer,
		IsCorrect:      r.IsCorrect,
		AttemptedAt:    r.AttemptedAt,
	}
}
