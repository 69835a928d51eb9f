package articles

import (
	"sort"

	"github.com/osmansemir/mindvale-cli/internal/models"
)

// Related ranks candidates by how many tags they share with current. The
// current article itself and candidates sharing no tags are excluded. Ties
// break by creation date, newest first. The result is truncated to limit
// (limit <= 0 means no truncation).
func Related(current *models.Article, pool []models.Article, limit int) []models.Article {
	currentTags := make(map[string]struct{}, len(current.Tags))
	for _, t := range current.Tags {
		currentTags[t] = struct{}{}
	}

	type scored struct {
		article models.Article
		score   int
	}

	ranked := make([]scored, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == current.ID {
			continue
		}
		if n := candidate.SharedTags(currentTags); n > 0 {
			ranked = append(ranked, scored{article: candidate, score: n})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].article.CreatedAt.After(ranked[j].article.CreatedAt)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := make([]models.Article, len(ranked))
	for i, r := range ranked {
		result[i] = r.article
	}
	return result
}
