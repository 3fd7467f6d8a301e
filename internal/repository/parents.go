package repository

import (
	"context"
	"fmt"

	"budgetmate/internal/domain"
)

func requireParent[T any](ctx context.Context, s *Store, id uint, name string) error {
	ok, err := Exists[T](ctx, s, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %d", domain.ErrParentNotFound, name, id)
	}
	return nil
}

// CheckParents verifies that every foreign key of entity references an existing row
func (s *Store) CheckParents(ctx context.Context, entity any) error {
	switch e := entity.(type) {
	case *domain.User:
		if err := requireParent[domain.Role](ctx, s, e.RoleID, "role"); err != nil {
			return err
		}
		if e.PetID != nil {
			return requireParent[domain.Pet](ctx, s, *e.PetID, "pet")
		}
	case *domain.Wallet:
		return requireParent[domain.User](ctx, s, e.UserID, "user")
	case *domain.Transaction:
		if err := requireParent[domain.Wallet](ctx, s, e.WalletID, "wallet"); err != nil {
			return err
		}
		return requireParent[domain.Category](ctx, s, e.CategoryID, "category")
	case *domain.Subscription:
		if err := requireParent[domain.MembershipPlan](ctx, s, e.MembershipPlanID, "membership plan"); err != nil {
			return err
		}
		return requireParent[domain.User](ctx, s, e.UserID, "user")
	case *domain.Answer:
		return requireParent[domain.Question](ctx, s, e.QuestionID, "question")
	case *domain.QuizLog:
		if err := requireParent[domain.Question](ctx, s, e.QuestionID, "question"); err != nil {
			return err
		}
		if err := requireParent[domain.User](ctx, s, e.UserID, "user"); err != nil {
			return err
		}
		return requireParent[domain.Answer](ctx, s, e.AnswerID, "answer")
	}
	return nil
}
