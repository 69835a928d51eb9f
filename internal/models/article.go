// Package models defines the Mindvale domain types as the API serves them.
package models

import "time"

// Status is an article's position in the review workflow.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the four workflow states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanSubmit reports whether an article in this state may be submitted for
// review. Only drafts and rejected articles qualify; the submit control must
// stay hidden everywhere else.
func (s Status) CanSubmit() bool {
	return s == StatusDraft || s == StatusRejected
}

// CanEdit reports whether an article in this state may be edited or deleted
// by its author. Pending and approved articles are locked.
func (s Status) CanEdit() bool {
	return s == StatusDraft || s == StatusRejected
}

// CanTransition reports whether the workflow permits moving from s to next.
// Approved is terminal.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusDraft:
		return next == StatusPending
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusRejected:
		return next == StatusPending
	}
	return false
}

// Article is a content unit with a markdown body, metadata, and a review
// status. Field names follow the API's JSON wire format.
type Article struct {
	ID              string    `json:"_id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	Markdown        string    `json:"markdown"`
	Tags            []string  `json:"tags"`
	Status          Status    `json:"status"`
	Author          *UserRef  `json:"author,omitempty"`
	Featured        bool      `json:"featured"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	SubmittedAt     time.Time `json:"submittedAt,omitzero"`
	ReviewedAt      time.Time `json:"reviewedAt,omitzero"`
	ReviewedBy      *UserRef  `json:"reviewedBy,omitempty"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
}

// HasTag reports whether the article carries the given tag.
func (a *Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SharedTags counts how many of the article's tags appear in the given set.
func (a *Article) SharedTags(tags map[string]struct{}) int {
	n := 0
	for _, t := range a.Tags {
		if _, ok := tags[t]; ok {
			n++
		}
	}
	return n
}

// Pagination is the page metadata the API returns alongside article lists.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}
