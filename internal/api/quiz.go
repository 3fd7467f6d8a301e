package api

import (
	"net/http" // HTTP status codes

	"budgetmate/internal/service" // Business services

	"github.com/gin-gonic/gin" // Gin web framework
)

// SubmitAnswerRequest is the body of a quiz answer
type SubmitAnswerRequest struct {
	QuestionID uint `json:"question_id" binding:"required"` // Answered question
	AnswerID   uint `json:"answer_id" binding:"required"`   // Chosen answer
}

// QuestionRequest is the body for creating or updating a question
type QuestionRequest struct {
	Type    string `json:"type"`                        // Free form question kind
	Text    string `json:"question" binding:"required"` // Question text
	Answers []struct {
		ID        uint   `json:"id"`                        // Existing answer to keep, update only
		Text      string `json:"answer" binding:"required"` // Answer text
		IsCorrect bool   `json:"is_correct"`                // Correctness flag
	} `json:"answers" binding:"required,min=2,dive"` // Candidate answers
}

// input converts the request into service input
func (r QuestionRequest) input() service.QuestionInput {
	in := service.QuestionInput{Type: r.Type, Text: r.Text}
	for _, a := range r.Answers {
		in.Answers = append(in.Answers, service.AnswerInput{ID: a.ID, Text: a.Text, IsCorrect: a.IsCorrect})
	}
	return in
}

// DailyQuizHandler returns today's open questions for the user
func DailyQuizHandler(quiz QuizManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		questions, err := quiz.Daily(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, questions)
	}
}

// QuizStatusHandler reports the user's quiz progress today
func QuizStatusHandler(quiz QuizManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		status, err := quiz.Status(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

// SubmitAnswerHandler scores one answer
func SubmitAnswerHandler(quiz QuizManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req SubmitAnswerRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		result, err := quiz.Submit(c.Request.Context(), userID, req.QuestionID, req.AnswerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// ListQuestionsHandler returns every question with its answers
func ListQuestionsHandler(quiz QuizManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		questions, err := quiz.ListQuestions(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, questions)
	}
}

// CreateQuestionHandler adds a question with its answers
func CreateQuestionHandler(quiz QuizManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QuestionRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		q, err := quiz.CreateQuestion(c.Request.Context(), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, q)
	}
}

// UpdateQuestionHandler replaces a question's text and answer set
func UpdateQuestionHandler(quiz QuizManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req QuestionRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		q, err := quiz.UpdateQuestion(c.Request.Context(), id, req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, q)
	}
}

// DeleteQuestionHandler removes a question with its answers and logs
func DeleteQuestionHandler(quiz QuizManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := quiz.DeleteQuestion(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
	}
}
