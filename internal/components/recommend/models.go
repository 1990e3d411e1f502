package recommend

import "github.com/readnext/readnext/internal/shared/vector"

type (
	RecommendOut struct {
		Results []vector.Book `json:"results"`
	}

	SuggestOut struct {
		Suggestions []string `json:"suggestions"`
	}

	ExplainIn struct {
		Title       string `json:"title"`
		Authors     string `json:"authors"`
		Description string `json:"description"`
	}

	ExplainOut struct {
		Reason string `json:"reason"`
	}
)
