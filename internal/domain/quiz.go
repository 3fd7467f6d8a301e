package domain

import (
	"fmt"
	"time"
)

// Question Model
type Question struct {
	ID   uint   `gorm:"primaryKey" json:"id"`                                                 // Primary key
	Type string `gorm:"size:64" json:"type" validate:"max=64"`                                // Free form question kind
	Text string `gorm:"column:question;type:text;not null" json:"question" validate:"required"` // Question text
}

// Validate checks the question fields
func (q *Question) Validate() error {
	return validateStruct(q)
}

// Answer Model
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`                                                  // Primary key
	Text       string    `gorm:"column:answer;type:text;not null" json:"answer" validate:"required"`    // Answer text
	IsCorrect  bool      `gorm:"column:is_correct;not null;default:false" json:"is_correct"`            // Correctness flag
	QuestionID uint      `gorm:"not null;index" json:"question_id"`                                     // Foreign key to Question
	Question   *Question `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-" validate:"-"`
}

// QuizLog Model, one row per submitted answer
type QuizLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                                  // Primary key
	SubmittedAt time.Time `gorm:"column:submitted_at;not null;index" json:"submitted_at"` // Submission time
	QuestionID  uint      `gorm:"not null;index" json:"question_id"`                     // Foreign key to Question
	Question    *Question `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	UserID      uint      `gorm:"not null;index" json:"user_id"` // Foreign key to User
	User        *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	AnswerID    uint      `gorm:"not null;index" json:"answer_id"` // Foreign key to Answer
	Answer      *Answer   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

// TableName keeps the singular table name of the original schema
func (QuizLog) TableName() string {
	return "quiz_log"
}

// ValidateAnswerSet checks that a question can be scored
func ValidateAnswerSet(answers []Answer) error {
	if len(answers) < 2 {
		return fmt.Errorf("%w: at least two answers required", ErrValidation)
	}
	correct := 0
	for i := range answers {
		if err := validateStruct(&answers[i]); err != nil {
			return err
		}
		if answers[i].IsCorrect {
			correct++
		}
	}
	if correct == 0 {
		return fmt.Errorf("%w: at least one correct answer required", ErrValidation)
	}
	return nil
}
