package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/orbitrest/internal/apperr"
	"github.com/abhisek/orbitrest/internal/store"
)

// scenarioDB holds concept 7 with one question whose answer is option 1.
func scenarioDB() (*memDB, int) {
	db := newMemDB()
	db.concepts[7] = store.Concept{ID: 7, Title: "PATCH", Method: "PATCH"}
	db.questions[11] = store.Question{
		ID:            11,
		ConceptID:     7,
		Text:          "Which letter?",
		Options:       []string{"A", "B", "C"},
		CorrectAnswer: 1,
		Explanation:   "B is second",
		Difficulty:    "beginner",
	}
	return db, 11
}

func TestSubmitAnswerScenario(t *testing.T) {
	db, qid := scenarioDB()
	e := db.engine()
	ctx := context.Background()

	first, err := e.SubmitAnswer(ctx, 5, qid, 1)
	require.NoError(t, err)
	assert.True(t, first.IsCorrect)
	assert.Equal(t, 1, first.CorrectAnswer)
	assert.Equal(t, "B is second", first.Explanation)

	second, err := e.SubmitAnswer(ctx, 5, qid, 0)
	require.NoError(t, err)
	assert.False(t, second.IsCorrect)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, db.attempts, 2)

	sum, err := e.GetProgressSummary(ctx, 5, 7)
	require.NoError(t, err)
	assert.Equal(t, Summary{TotalAttempts: 2, CorrectAttempts: 1}, sum)
}

func TestSubmitAnswerGradesAgainstStoredKey(t *testing.T) {
	db, qid := scenarioDB()
	e := db.engine()

	for sel := -3; sel <= 5; sel++ {
		res, err := e.SubmitAnswer(context.Background(), 5, qid, sel)
		require.NoError(t, err)
		assert.Equal(t, sel == 1, res.IsCorrect, "selected %d", sel)
		assert.Equal(t, sel, res.SelectedAnswer)
	}
	assert.Len(t, db.attempts, 9, "out-of-range answers are graded, not rejected")
}

func TestSubmitAnswerRepeatedAppends(t *testing.T) {
	db, qid := scenarioDB()
	e := db.engine()
	ctx := context.Background()

	a, err := e.SubmitAnswer(ctx, 5, qid, 1)
	require.NoError(t, err)
	b, err := e.SubmitAnswer(ctx, 5, qid, 1)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	require.Len(t, db.attempts, 2)
	assert.Equal(t, db.attempts[0].QuestionID, db.attempts[1].QuestionID)
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	db, _ := scenarioDB()
	e := db.engine()

	_, err := e.SubmitAnswer(context.Background(), 5, 999, 0)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, db.attempts, "no attempt is written for a missing question")
}

func TestSubmitAnswerStampsTime(t *testing.T) {
	db, qid := scenarioDB()
	e := db.engine()
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	e.now = func() time.Time { return fixed }

	res, err := e.SubmitAnswer(context.Background(), 5, qid, 1)
	require.NoError(t, err)
	assert.True(t, res.AttemptedAt.Equal(fixed))
	assert.Equal(t, time.UTC, res.AttemptedAt.Location())
}

func TestStorageFailuresAreWrapped(t *testing.T) {
	boom := errors.New("disk on fire")
	ctx := context.Background()

	t.Run("attempt insert", func(t *testing.T) {
		db, qid := scenarioDB()
		db.attemptErr = boom
		_, err := db.engine().SubmitAnswer(ctx, 5, qid, 1)
		require.Error(t, err)
		assert.True(t, apperr.IsStorage(err))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("question lookup", func(t *testing.T) {
		db, qid := scenarioDB()
		db.questionErr = boom
		_, err := db.engine().SubmitAnswer(ctx, 5, qid, 1)
		assert.True(t, apperr.IsStorage(err))
		assert.Empty(t, db.attempts)
	})

	t.Run("summary", func(t *testing.T) {
		db, _ := scenarioDB()
		db.attemptErr = boom
		_, err := db.engine().GetProgressSummary(ctx, 5, 7)
		assert.True(t, apperr.IsStorage(err))
	})

	t.Run("list questions", func(t *testing.T) {
		db, _ := scenarioDB()
		db.questionErr = boom
		_, err := db.engine().ListQuestions(ctx, 7)
		assert.True(t, apperr.IsStorage(err))
	})
}

func TestListQuestionsHidesAnswerKey(t *testing.T) {
	db, _ := scenarioDB()
	e := db.engine()

	qs, err := e.ListQuestions(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, qs, 1)

	raw, err := json.Marshal(qs)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, item := range decoded {
		assert.NotContains(t, item, "correctAnswer")
		assert.ElementsMatch(t,
			[]string{"id", "conceptId", "question", "options", "explanation", "difficulty"},
			keys(item))
	}
}

func TestListQuestionsEmpty(t *testing.T) {
	db := newMemDB()
	qs, err := db.engine().ListQuestions(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, qs)
	assert.Empty(t, qs)
}

func TestGetProgressSummaryCounts(t *testing.T) {
	db, qid := scenarioDB()
	db.questions[12] = store.Question{ID: 12, ConceptID: 7, Options: []string{"x", "y"}, CorrectAnswer: 0}
	db.questions[13] = store.Question{ID: 13, ConceptID: 8, Options: []string{"x", "y"}, CorrectAnswer: 0}
	e := db.engine()
	ctx := context.Background()

	for _, s := range []struct{ q, sel, user int }{
		{qid, 1, 5}, // correct
		{12, 0, 5},  // correct
		{12, 1, 5},  // wrong
		{13, 0, 5},  // other concept
		{qid, 1, 6}, // other user
	} {
		_, err := e.SubmitAnswer(ctx, s.user, s.q, s.sel)
		require.NoError(t, err)
	}

	sum, err := e.GetProgressSummary(ctx, 5, 7)
	require.NoError(t, err)
	assert.Equal(t, Summary{TotalAttempts: 3, CorrectAttempts: 2}, sum)
	assert.Equal(t, 66, sum.Percent())

	empty, err := e.GetProgressSummary(ctx, 42, 7)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, empty)
	assert.Equal(t, 0, empty.Percent())
}

func TestListAttemptsNewestFirst(t *testing.T) {
	db, qid := scenarioDB()
	e := db.engine()
	ctx := context.Background()

	for _, sel := range []int{0, 2, 1} {
		_, err := e.SubmitAnswer(ctx, 5, qid, sel)
		require.NoError(t, err)
	}
	list, err := e.ListAttempts(ctx, 5, 7)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 1, list[0].SelectedAnswer)
	assert.True(t, list[0].IsCorrect)
	assert.Equal(t, 0, list[2].SelectedAnswer)
}

func TestCreateQuestionValidation(t *testing.T) {
	valid := NewQuestion{
		ConceptID:     7,
		Question:      "What does PATCH do?",
		Options:       []string{"Partial update", "Delete"},
		CorrectAnswer: 0,
		Explanation:   "It modifies part of a resource.",
	}

	tests := []struct {
		name    string
		mutate  func(nq *NewQuestion)
		wantErr error
	}{
		{"valid", func(nq *NewQuestion) {}, nil},
		{"explicit difficulty", func(nq *NewQuestion) { nq.Difficulty = "Advanced" }, nil},
		{"unknown concept", func(nq *NewQuestion) { nq.ConceptID = 99 }, apperr.ErrNotFound},
		{"empty text", func(nq *NewQuestion) { nq.Question = " " }, apperr.ErrInvalidInput},
		{"one option", func(nq *NewQuestion) { nq.Options = []string{"only"} }, apperr.ErrInvalidInput},
		{"empty option", func(nq *NewQuestion) { nq.Options = []string{"a", ""} }, apperr.ErrInvalidInput},
		{"negative answer", func(nq *NewQuestion) { nq.CorrectAnswer = -1 }, apperr.ErrInvalidInput},
		{"answer past end", func(nq *NewQuestion) { nq.CorrectAnswer = 2 }, apperr.ErrInvalidInput},
		{"bad difficulty", func(nq *NewQuestion) { nq.Difficulty = "expert" }, apperr.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _ := scenarioDB()
			nq := valid
			nq.Options = append([]string(nil), valid.Options...)
			tt.mutate(&nq)

			got, err := db.engine().CreateQuestion(context.Background(), nq)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, db.questions, 1, "nothing stored")
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, got.ID)
			assert.Equal(t, nq.CorrectAnswer, got.CorrectAnswer)
			assert.Len(t, db.questions, 2)
		})
	}
}

func TestParseSelectedAnswer(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{" 0 ", 0, false},
		{"-4", -4, false},
		{"99", 99, false},
		{"1.5", 0, true},
		{"1e2", 0, true},
		{`"1"`, 0, true},
		{"true", 0, true},
		{"null", 0, true},
		{"", 0, true},
		{"[1]", 0, true},
		{"1 2", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSelectedAnswer(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, Beginner, d)

	d, err = ParseDifficulty("INTERMEDIATE")
	require.NoError(t, err)
	assert.Equal(t, Intermediate, d)

	_, err = ParseDifficulty("hard")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

// TestEngineWithSQLite runs the submit/summary flow against a real store.
func TestEngineWithSQLite(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "quiz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	c := &store.Concept{Title: "GET", Description: "read", Method: "GET", Example: "GET /api/planets"}
	require.NoError(t, st.ConceptRepo().Create(ctx, c))
	u := &store.User{Username: "ada", Email: "ada@example.com", PasswordHash: "x", CreatedAt: time.Now()}
	require.NoError(t, st.UserRepo().Create(ctx, u))

	e := NewEngine(st.ConceptRepo(), st.QuestionRepo(), st.AttemptRepo())
	q, err := e.CreateQuestion(ctx, NewQuestion{
		ConceptID:     c.ID,
		Question:      "Which method reads?",
		Options:       []string{"GET", "POST", "DELETE"},
		CorrectAnswer: 0,
		Explanation:   "GET retrieves.",
	})
	require.NoError(t, err)
	assert.Equal(t, Beginner, q.Difficulty)

	for _, sel := range []int{0, 2, 0} {
		_, err := e.SubmitAnswer(ctx, u.ID, q.ID, sel)
		require.NoError(t, err)
	}

	sum, err := e.GetProgressSummary(ctx, u.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, Summary{TotalAttempts: 3, CorrectAttempts: 2}, sum)

	_, err = e.SubmitAnswer(ctx, u.ID, q.ID+100, 0)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	attempts, err := e.ListAttempts(ctx, u.ID, c.ID)
	require.NoError(t, err)
	assert.Len(t, attempts, 3)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
