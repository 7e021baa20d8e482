// Package service implements the board, column and task operations on top of
// the store, including all order-index management and authorization.
package service

import (
	"errors"
	"fmt"

	"github.com/gfdmit/kanban/internal/repository"
)

var (
	// ErrNotFound covers both a missing entity and an owner-gated denial,
	// so callers cannot probe for existence of other users' boards.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is an assignee-gated denial. Assignees already know the
	// task exists, so an explicit signal is fine here.
	ErrForbidden = errors.New("forbidden")

	ErrValidation = errors.New("validation failed")
)

type Service struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// storeErr maps store-level misses onto the service taxonomy and leaves
// infrastructure failures untouched.
func storeErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// guardOwner gates structural mutations (boards, columns, task placement).
// A failed check is indistinguishable from a missing entity.
func guardOwner(ownerID, callerID string) error {
	if ownerID != callerID {
		return ErrNotFound
	}
	return nil
}

// guardOwnerOrAssignee gates task-level edits, comments and time entries.
func guardOwnerOrAssignee(ownerID string, assigneeID *string, callerID string) error {
	if ownerID == callerID {
		return nil
	}
	if assigneeID != nil && *assigneeID == callerID {
		return nil
	}
	return ErrForbidden
}
