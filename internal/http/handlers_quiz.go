package http

import (
	"net/http"

	"finbud/internal/core"
	"finbud/internal/services"
)

type quizAnswerRequest struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex int    `json:"selectedIndex"`
}

type quizScoreRequest struct {
	Answers []quizAnswerRequest `json:"answers"`
}

func (s *Server) handleQuizQuestions(w http.ResponseWriter, r *http.Request) {
	count, err := queryInt(r, "count", services.DefaultQuestionCount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	presentation, err := s.quiz.Present(r.Context(), r.URL.Query().Get("category"), count)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, presentation)
}

func (s *Server) handleQuizScore(w http.ResponseWriter, r *http.Request) {
	var req quizScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	answers := make([]core.QuizAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, core.QuizAnswer{
			QuestionID:    a.QuestionID,
			SelectedIndex: a.SelectedIndex,
		})
	}

	result, err := s.quiz.Score(r.Context(), answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
