package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Sentinel error matching

	"budgetmate/internal/domain"     // Domain models
	"budgetmate/internal/repository" // Data access

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
)

// QuestionInput is a question with its candidate answers
type QuestionInput struct {
	Type    string
	Text    string
	Answers []AnswerInput
}

// AnswerInput is one candidate answer
type AnswerInput struct {
	ID        uint // Existing answer to keep, zero for a new one
	Text      string
	IsCorrect bool
}

// QuestionWithAnswers pairs a question with every answer, correctness included
type QuestionWithAnswers struct {
	domain.Question
	Answers []domain.Answer `json:"answers"`
}

// DailyAnswer is an answer as shown to players, without its correctness
type DailyAnswer struct {
	ID   uint   `json:"id"`
	Text string `json:"answer"`
}

// DailyQuestion is a question offered in today's quiz
type DailyQuestion struct {
	ID      uint          `json:"id"`
	Type    string        `json:"type"`
	Text    string        `json:"question"`
	Answers []DailyAnswer `json:"answers"`
}

// QuizStatus summarizes the user's quiz activity today
type QuizStatus struct {
	AnsweredToday int `json:"answered_today"`
	CorrectToday  int `json:"correct_today"`
	Remaining     int `json:"remaining"`
}

// SubmitResult reports the outcome of one answer
type SubmitResult struct {
	Correct       bool `json:"correct"`
	CreditsEarned int  `json:"credits_earned"`
	Credits       int  `json:"credits"` // Credit balance after the submission
	Remaining     int  `json:"remaining"`
}

// QuizService serves the daily quiz and scores answers
type QuizService struct {
	store     *repository.Store
	dailySize int
	reward    int
	cache     cache
	clock     Clock
}

// NewQuizService creates a QuizService offering dailySize questions a day; rdb may be nil
func NewQuizService(store *repository.Store, rdb *redis.Client, dailySize, reward int, clock Clock) *QuizService {
	return &QuizService{store: store, dailySize: dailySize, reward: reward, cache: newCache(rdb, 0), clock: clock}
}

// CreateQuestion stores a question and its answers
func (s *QuizService) CreateQuestion(ctx context.Context, in QuestionInput) (*QuestionWithAnswers, error) {
	q := domain.Question{Type: in.Type, Text: in.Text}
	answers := make([]domain.Answer, 0, len(in.Answers))
	for _, a := range in.Answers {
		answers = append(answers, domain.Answer{Text: a.Text, IsCorrect: a.IsCorrect})
	}
	if err := s.store.CreateQuestion(ctx, &q, answers); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"question_id": q.ID, "answers": len(answers)}).Info("Question created")
	return &QuestionWithAnswers{Question: q, Answers: answers}, nil
}

// UpdateQuestion replaces a question's text, type and answer set
func (s *QuizService) UpdateQuestion(ctx context.Context, id uint, in QuestionInput) (*QuestionWithAnswers, error) {
	q := domain.Question{ID: id, Type: in.Type, Text: in.Text}
	answers := make([]domain.Answer, 0, len(in.Answers))
	for _, a := range in.Answers {
		answers = append(answers, domain.Answer{ID: a.ID, Text: a.Text, IsCorrect: a.IsCorrect})
	}
	if err := s.store.ReplaceQuestion(ctx, &q, answers); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"question_id": q.ID, "answers": len(answers)}).Info("Question updated")
	return &QuestionWithAnswers{Question: q, Answers: answers}, nil
}

// DeleteQuestion removes a question with its answers and logs
func (s *QuizService) DeleteQuestion(ctx context.Context, id uint) error {
	if err := s.store.DeleteQuestionCascade(ctx, id); err != nil {
		return err
	}
	logrus.WithField("question_id", id).Info("Question deleted")
	return nil
}

// ListQuestions returns every question with its answers
func (s *QuizService) ListQuestions(ctx context.Context) ([]QuestionWithAnswers, error) {
	questions, err := repository.All[domain.Question](ctx, s.store)
	if err != nil {
		return nil, err
	}
	answers, err := s.store.ListAnswersByQuestions(ctx, domain.IDs(questions, func(q domain.Question) uint { return q.ID }))
	if err != nil {
		return nil, err
	}
	byQuestion := domain.IndexBy(answers, func(a domain.Answer) uint { return a.QuestionID })
	out := make([]QuestionWithAnswers, 0, len(questions))
	for _, q := range questions {
		out = append(out, QuestionWithAnswers{Question: q, Answers: byQuestion[q.ID]})
	}
	return out, nil
}

// status counts today's submissions for the user
func (s *QuizService) status(ctx context.Context, store *repository.Store, userID uint) (QuizStatus, error) {
	logs, err := store.ListQuizLogsSince(ctx, userID, domain.TruncateDay(s.clock.now()))
	if err != nil {
		return QuizStatus{}, err
	}
	st := QuizStatus{AnsweredToday: len(logs)}
	for _, l := range logs {
		if l.Answer != nil && l.Answer.IsCorrect {
			st.CorrectToday++
		}
	}
	st.Remaining = max(s.dailySize-st.AnsweredToday, 0) // Never negative after a limit change
	return st, nil
}

// Status reports how many questions the user answered today and how many are left
func (s *QuizService) Status(ctx context.Context, userID uint) (*QuizStatus, error) {
	st, err := s.status(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Daily returns the questions still open for the user today
func (s *QuizService) Daily(ctx context.Context, userID uint) ([]DailyQuestion, error) {
	st, err := s.status(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	out := []DailyQuestion{}
	if st.Remaining == 0 {
		return out, nil // Done for today
	}
	questions, err := s.store.ListUnansweredQuestions(ctx, userID, st.Remaining)
	if err != nil {
		return nil, err
	}
	answers, err := s.store.ListAnswersByQuestions(ctx, domain.IDs(questions, func(q domain.Question) uint { return q.ID }))
	if err != nil {
		return nil, err
	}
	byQuestion := domain.IndexBy(answers, func(a domain.Answer) uint { return a.QuestionID })
	for _, q := range questions {
		dq := DailyQuestion{ID: q.ID, Type: q.Type, Text: q.Text, Answers: []DailyAnswer{}}
		for _, a := range byQuestion[q.ID] {
			dq.Answers = append(dq.Answers, DailyAnswer{ID: a.ID, Text: a.Text})
		}
		out = append(out, dq)
	}
	return out, nil
}

// Submit records the user's answer to a question and rewards a correct one
func (s *QuizService) Submit(ctx context.Context, userID, questionID, answerID uint) (*SubmitResult, error) {
	now := s.clock.now()
	var result SubmitResult
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		answer, err := repository.FindByID[domain.Answer](ctx, tx, answerID)
		if err != nil {
			return err
		}
		if answer.QuestionID != questionID { // Answer must belong to the question
			return domain.ErrAnswerMismatch
		}
		answered, err := tx.HasAnswered(ctx, userID, questionID)
		if err != nil {
			return err
		}
		if answered {
			return domain.ErrAlreadyAnswered
		}
		st, err := s.status(ctx, tx, userID)
		if err != nil {
			return err
		}
		if st.Remaining == 0 {
			return domain.ErrDailyLimitReached
		}
		entry := domain.QuizLog{SubmittedAt: now, QuestionID: questionID, UserID: userID, AnswerID: answerID}
		if err := repository.Create(ctx, tx, &entry); err != nil {
			return err
		}
		result = SubmitResult{Correct: answer.IsCorrect, Remaining: st.Remaining - 1}
		if answer.IsCorrect && s.reward > 0 { // Reward correct answers only
			result.CreditsEarned = s.reward
			result.Credits, err = tx.AddCredits(ctx, userID, s.reward)
			return err
		}
		user, err := repository.FindByID[domain.User](ctx, tx, userID)
		if err != nil {
			return err
		}
		result.Credits = user.Credits // Unchanged balance
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrAlreadyAnswered) && !errors.Is(err, domain.ErrDailyLimitReached) {
			logrus.WithFields(logrus.Fields{"user_id": userID, "question_id": questionID, "error": err.Error()}).Error("Quiz submission failed")
		}
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":     userID,
		"question_id": questionID,
		"correct":     result.Correct,
	}).Info("Quiz answer recorded")
	if result.CreditsEarned > 0 {
		s.cache.delPrefix(ctx, adminUsersPrefix) // Credits changed
	}
	return &result, nil
}
