package articles

import (
	"context"
	"errors"
	"strings"

	"github.com/osmansemir/mindvale-cli/internal/models"
)

// Workflow calls are never optimistic: local state changes only after the
// server confirms, and a failed call leaves the cache untouched.

const (
	rejectReasonMin = 10
	rejectReasonMax = 500
)

var (
	ErrReasonRequired = errors.New("rejection reason is required")
	ErrReasonTooShort = errors.New("reason must be at least 10 characters")
	ErrReasonTooLong  = errors.New("reason must not exceed 500 characters")
)

// ValidateRejectReason enforces the 10–500 character bound the server also
// applies. Whitespace-only input gets the distinct "required" message.
func ValidateRejectReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	switch n := len([]rune(reason)); {
	case n < rejectReasonMin:
		return ErrReasonTooShort
	case n > rejectReasonMax:
		return ErrReasonTooLong
	}
	return nil
}

// Submit moves a draft or rejected article into review. The server stamps
// the submission time and flips the status to pending.
func (s *Store) Submit(ctx context.Context, id string) (*models.Article, error) {
	return s.api.SubmitForReview(ctx, id)
}

// Pending lists the review queue (admin only, server-enforced).
func (s *Store) Pending(ctx context.Context) ([]models.Article, error) {
	return s.api.PendingArticles(ctx)
}

// Approve marks a pending article approved. Admin only, server-enforced.
func (s *Store) Approve(ctx context.Context, id string) (*models.Article, error) {
	return s.api.ApproveArticle(ctx, id)
}

// Reject sends a pending article back to its author with feedback. The
// reason is validated locally before the call; the server validates again.
func (s *Store) Reject(ctx context.Context, id, reason string) (*models.Article, error) {
	if err := ValidateRejectReason(reason); err != nil {
		return nil, err
	}
	return s.api.RejectArticle(ctx, id, reason)
}

// Mine lists the caller's own articles, optionally filtered by status.
func (s *Store) Mine(ctx context.Context, status models.Status) ([]models.Article, error) {
	return s.api.MyArticles(ctx, status)
}
