// Command mockapi runs the in-memory Mindvale API double on a local port,
// seeded with a few accounts and articles, for developing the CLI without
// the production backend. All state is lost on exit.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/osmansemir/mindvale-cli/internal/apitest"
	"github.com/osmansemir/mindvale-cli/internal/logging"
	"github.com/osmansemir/mindvale-cli/internal/models"
)

func main() {
	addr := flag.String("addr", "localhost:5000", "listen address")
	flag.Parse()

	log := logging.NewDevLogger(os.Stderr, slog.LevelDebug)
	ctx := context.Background()

	server := apitest.NewServer()
	seed(server)

	log.Info(ctx, "mock Mindvale API listening",
		"addr", *addr,
		"admin", "admin@mindvale.test/password123",
		"author", "author@mindvale.test/password123",
		"reader", "reader@mindvale.test/password123",
	)
	if err := http.ListenAndServe(*addr, server.Handler()); err != nil {
		log.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}

func seed(server *apitest.Server) {
	admin := server.SeedUser("Avery Admin", "admin@mindvale.test", "password123", models.RoleAdmin)
	author := server.SeedUser("Jordan Writer", "author@mindvale.test", "password123", models.RoleAuthor)
	server.SeedUser("Riley Reader", "reader@mindvale.test", "password123", models.RoleUser)

	now := time.Now()
	server.SeedArticle(models.Article{
		Title:       "Getting Started with Mindvale",
		Slug:        "getting-started-with-mindvale",
		Description: "A quick tour of the platform and its review workflow.",
		Markdown:    "Welcome! This walkthrough covers drafting, submitting, and publishing.",
		Tags:        []string{"guide", "platform"},
		Status:      models.StatusApproved,
		Featured:    true,
		Author:      &models.UserRef{ID: author.ID, Name: author.Name},
		CreatedAt:   now.Add(-72 * time.Hour),
		ReviewedAt:  now.Add(-48 * time.Hour),
		ReviewedBy:  &models.UserRef{ID: admin.ID, Name: admin.Name},
	})
	server.SeedArticle(models.Article{
		Title:       "Writing Good Rejection Feedback",
		Slug:        "writing-good-rejection-feedback",
		Description: "What reviewers should put in the feedback box and why it matters.",
		Markdown:    "Feedback should be specific, actionable, and kind to the author.",
		Tags:        []string{"guide", "review"},
		Status:      models.StatusPending,
		Author:      &models.UserRef{ID: author.ID, Name: author.Name},
		CreatedAt:   now.Add(-24 * time.Hour),
		SubmittedAt: now.Add(-2 * time.Hour),
	})
	server.SeedArticle(models.Article{
		Title:       "Draft: Tagging Strategies",
		Slug:        "draft-tagging-strategies",
		Description: "Half-formed thoughts on how tags shape discovery.",
		Markdown:    "Tags drive both the filter panel and related-article ranking.",
		Tags:        []string{"platform", "tags"},
		Status:      models.StatusDraft,
		Author:      &models.UserRef{ID: author.ID, Name: author.Name},
		CreatedAt:   now.Add(-6 * time.Hour),
	})
}
