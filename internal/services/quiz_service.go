package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"finbud/internal/cache"
	"finbud/internal/core"
)

// DefaultQuestionCount is how many questions Present returns when the
// caller does not ask for a specific count.
const DefaultQuestionCount = 10

// QuizService runs the attempt state machine: Present hands out a random
// question set with the answer key stripped, Score evaluates a submission
// against current question state. Nothing is persisted between the two
// calls; an abandoned set costs nothing server-side.
type QuizService struct {
	store QuestionStore
	cache cache.Cache[[]core.QuizQuestion]

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewQuizService creates the engine. The cache is optional; pass nil to hit
// the store on every Present call.
func NewQuizService(store QuestionStore, c cache.Cache[[]core.QuizQuestion]) *QuizService {
	return &QuizService{
		store: store,
		cache: c,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// PresentedQuestion is a question as shown to the client. The correct
// answer index is never included.
type PresentedQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
}

// Presentation is the response to a Present call.
type Presentation struct {
	TotalQuestions int                 `json:"totalQuestions"`
	Questions      []PresentedQuestion `json:"questions"`
}

// AnswerResult is one scored entry. Either Error is set (unknown question)
// or the full evaluation is.
type AnswerResult struct {
	QuestionID    string   `json:"questionId"`
	Question      string   `json:"question,omitempty"`
	Options       []string `json:"options,omitempty"`
	Category      string   `json:"category,omitempty"`
	SelectedIndex int      `json:"selectedIndex"`
	CorrectAnswer int      `json:"correctAnswerIndex"`
	IsCorrect     bool     `json:"isCorrect"`
	Error         string   `json:"error,omitempty"`
}

// Result is the outcome of a scored submission.
type Result struct {
	Score           int            `json:"score"`
	TotalQuestions  int            `json:"totalQuestions"`
	ScorePercentage int            `json:"scorePercentage"`
	Results         []AnswerResult `json:"results"`
}

// Present selects up to count questions, optionally filtered by category,
// shuffled fresh on every call with no repeat-avoidance across calls.
func (s *QuizService) Present(ctx context.Context, category string, count int) (Presentation, error) {
	if count <= 0 {
		count = DefaultQuestionCount
	}

	questions, err := s.questions(ctx, category)
	if err != nil {
		return Presentation{}, fmt.Errorf("load questions: %w", err)
	}

	picked := make([]core.QuizQuestion, len(questions))
	copy(picked, questions)

	s.mu.Lock()
	s.rnd.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	s.mu.Unlock()

	if len(picked) > count {
		picked = picked[:count]
	}

	out := make([]PresentedQuestion, len(picked))
	for i, q := range picked {
		out[i] = PresentedQuestion{
			ID:       q.ID,
			Question: q.Question,
			Options:  q.Options,
			Category: q.Category,
		}
	}

	return Presentation{TotalQuestions: len(out), Questions: out}, nil
}

// Score evaluates a submission against current question state. Unknown
// question ids degrade to per-entry error markers and still count in the
// denominator; the percentage rounds half up.
func (s *QuizService) Score(ctx context.Context, answers []core.QuizAnswer) (Result, error) {
	if len(answers) == 0 {
		return Result{}, core.ErrEmptySubmission
	}

	results := make([]AnswerResult, 0, len(answers))
	score := 0

	for _, ans := range answers {
		q, err := s.store.GetQuestion(ctx, ans.QuestionID)
		var nf *core.NotFoundError
		if errors.As(err, &nf) {
			results = append(results, AnswerResult{
				QuestionID: ans.QuestionID,
				Error:      "Question not found",
			})
			continue
		}
		if err != nil {
			return Result{}, fmt.Errorf("get question %s: %w", ans.QuestionID, err)
		}

		correct := ans.SelectedIndex == q.CorrectAnswer
		if correct {
			score++
		}
		results = append(results, AnswerResult{
			QuestionID:    q.ID,
			Question:      q.Question,
			Options:       q.Options,
			Category:      q.Category,
			SelectedIndex: ans.SelectedIndex,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
		})
	}

	pct := int(math.Round(float64(score) / float64(len(answers)) * 100))

	return Result{
		Score:           score,
		TotalQuestions:  len(answers),
		ScorePercentage: pct,
		Results:         results,
	}, nil
}

func (s *QuizService) questions(ctx context.Context, category string) ([]core.QuizQuestion, error) {
	key := "questions:" + category
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}
	}

	questions, err := s.store.ListQuestions(ctx, category)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, questions)
	}
	return questions, nil
}
