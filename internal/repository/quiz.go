package repository

import (
	"context"
	"fmt"
	"time"

	"budgetmate/internal/domain"
)

// CreateQuestion inserts a question and its answers atomically
func (s *Store) CreateQuestion(ctx context.Context, q *domain.Question, answers []domain.Answer) error {
	if err := domain.ValidateAnswerSet(answers); err != nil {
		return err
	}
	return s.Transaction(ctx, func(tx *Store) error {
		if err := Create(ctx, tx, q); err != nil {
			return err
		}
		for i := range answers {
			answers[i].QuestionID = q.ID
			if err := Create(ctx, tx, &answers[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteQuestionCascade removes a question with its answers and the quiz logs pointing at it
func (s *Store) DeleteQuestionCascade(ctx context.Context, questionID uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		ok, err := Exists[domain.Question](ctx, tx, questionID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		db := tx.conn(ctx)
		if err := db.Where("question_id = ?", questionID).Delete(&domain.QuizLog{}).Error; err != nil {
			return fmt.Errorf("failed to delete quiz logs: %w", err)
		}
		if err := db.Where("question_id = ?", questionID).Delete(&domain.Answer{}).Error; err != nil {
			return fmt.Errorf("failed to delete answers: %w", err)
		}
		return db.Delete(&domain.Question{}, questionID).Error
	})
}

// ReplaceQuestion rewrites a question and its answer set; answers with an id are kept and
// updated, answers without one are added and the rest are dropped
func (s *Store) ReplaceQuestion(ctx context.Context, q *domain.Question, answers []domain.Answer) error {
	if err := domain.ValidateAnswerSet(answers); err != nil {
		return err
	}
	return s.Transaction(ctx, func(tx *Store) error {
		current, err := FindByID[domain.Question](ctx, tx, q.ID)
		if err != nil {
			return err
		}
		current.Type, current.Text = q.Type, q.Text
		if err := Update(ctx, tx, current, current.ID); err != nil {
			return err
		}

		existing, err := tx.ListAnswersByQuestions(ctx, []uint{q.ID})
		if err != nil {
			return err
		}
		kept := make(map[uint]bool, len(answers))
		for _, a := range answers {
			if a.ID != 0 {
				kept[a.ID] = true
			}
		}
		owned := make(map[uint]bool, len(existing))
		var dropped []uint
		for _, a := range existing {
			owned[a.ID] = true
			if !kept[a.ID] {
				dropped = append(dropped, a.ID)
			}
		}

		if len(dropped) > 0 {
			var used int64
			if err := tx.conn(ctx).Model(&domain.QuizLog{}).Where("answer_id IN ?", dropped).Count(&used).Error; err != nil {
				return err
			}
			if used > 0 { // Keep submitted history intact
				return fmt.Errorf("%w: %d quiz logs reference answers being removed", domain.ErrInUse, used)
			}
			if err := tx.conn(ctx).Where("id IN ?", dropped).Delete(&domain.Answer{}).Error; err != nil {
				return fmt.Errorf("failed to delete answers: %w", err)
			}
		}

		for i := range answers {
			answers[i].QuestionID = q.ID
			if answers[i].ID == 0 { // New answer
				if err := Create(ctx, tx, &answers[i]); err != nil {
					return err
				}
				continue
			}
			if !owned[answers[i].ID] {
				return fmt.Errorf("%w: answer %d", domain.ErrAnswerMismatch, answers[i].ID)
			}
			if err := Update(ctx, tx, &answers[i], answers[i].ID); err != nil {
				return err
			}
		}
		*q = *current
		return nil
	})
}

// ListAnswersByQuestions returns the answers of several questions ordered by id
func (s *Store) ListAnswersByQuestions(ctx context.Context, questionIDs []uint) ([]domain.Answer, error) {
	var answers []domain.Answer
	if len(questionIDs) == 0 {
		return answers, nil
	}
	err := s.conn(ctx).Where("question_id IN ?", questionIDs).Order("id").Find(&answers).Error
	return answers, err
}

// ListUnansweredQuestions returns up to limit questions the user never answered, lowest id first
func (s *Store) ListUnansweredQuestions(ctx context.Context, userID uint, limit int) ([]domain.Question, error) {
	var questions []domain.Question
	answered := s.conn(ctx).Model(&domain.QuizLog{}).Select("question_id").Where("user_id = ?", userID)
	err := s.conn(ctx).Where("id NOT IN (?)", answered).Order("id").Limit(limit).Find(&questions).Error
	return questions, err
}

// ListQuizLogsSince returns the user's quiz logs submitted at or after since
func (s *Store) ListQuizLogsSince(ctx context.Context, userID uint, since time.Time) ([]domain.QuizLog, error) {
	var logs []domain.QuizLog
	err := s.conn(ctx).Preload("Answer").
		Where("user_id = ? AND submitted_at >= ?", userID, since).
		Order("id").Find(&logs).Error
	return logs, err
}

// HasAnswered reports whether the user already submitted an answer to the question
func (s *Store) HasAnswered(ctx context.Context, userID, questionID uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&domain.QuizLog{}).Where("user_id = ? AND question_id = ?", userID, questionID).Count(&count).Error
	return count > 0, err
}
