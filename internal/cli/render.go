package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/osmansemir/mindvale-cli/internal/models"
)

func badge(status models.Status) string {
	return "[" + string(status) + "]"
}

func shortDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// renderArticleTable prints one line per article with its status badge.
func renderArticleTable(w io.Writer, list []models.Article) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tTAGS\tAUTHOR\tCREATED")
	for _, a := range list {
		author := "-"
		if a.Author != nil {
			author = a.Author.Name
		}
		title := a.Title
		if a.Featured {
			title = "* " + title
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, badge(a.Status), title, strings.Join(a.Tags, ","), author, shortDate(a.CreatedAt))
	}
	tw.Flush()
}

// renderPageFooter prints the pagination line under a list.
func renderPageFooter(w io.Writer, p models.Pagination) {
	fmt.Fprintf(w, "Page %d/%d — %d articles", p.CurrentPage, p.TotalPages, p.TotalItems)
	var hints []string
	if p.HasPrevPage {
		hints = append(hints, "'prev'")
	}
	if p.HasNextPage {
		hints = append(hints, "'next'")
	}
	if len(hints) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(hints, ", "))
	}
	fmt.Fprintln(w)
}

// renderArticle prints one article in full, including review metadata and,
// for the author's own rejected articles, the reviewer's feedback.
func renderArticle(w io.Writer, a *models.Article) {
	fmt.Fprintf(w, "%s %s\n", badge(a.Status), a.Title)
	fmt.Fprintf(w, "slug: %s  tags: %s\n", a.Slug, strings.Join(a.Tags, ","))
	if a.Author != nil {
		fmt.Fprintf(w, "by %s, created %s\n", a.Author.Name, shortDate(a.CreatedAt))
	}
	if !a.SubmittedAt.IsZero() {
		fmt.Fprintf(w, "submitted %s\n", shortDate(a.SubmittedAt))
	}
	if !a.ReviewedAt.IsZero() {
		reviewer := ""
		if a.ReviewedBy != nil {
			reviewer = " by " + a.ReviewedBy.Name
		}
		fmt.Fprintf(w, "reviewed %s%s\n", shortDate(a.ReviewedAt), reviewer)
	}
	if a.Status == models.StatusRejected && a.RejectionReason != "" {
		fmt.Fprintf(w, "Feedback from reviewer: %s\n", a.RejectionReason)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, a.Description)
	if a.Markdown != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, a.Markdown)
	}
}
