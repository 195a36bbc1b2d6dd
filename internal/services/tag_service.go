package services

import (
	"context"
	"sort"
	"strings"

	"github.com/techstock/inventory/internal/repository"
)

const (
	popularTagLimit    = 20
	tagSuggestionLimit = 10
)

// TagsOverview is the tag vocabulary: every key with its observed values,
// plus the most used key/value pairs.
type TagsOverview struct {
	Tags        map[string][]string   `json:"tags"`
	PopularTags []repository.TagUsage `json:"popular_tags"`
}

// TagSuggestion is one autocomplete candidate.
type TagSuggestion struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Display string `json:"display"`
}

type TagService interface {
	Overview(ctx context.Context) (*TagsOverview, error)
	Suggestions(ctx context.Context, term string) ([]TagSuggestion, error)
}

type tagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

var _ TagService = (*tagService)(nil)

func (s *tagService) Overview(ctx context.Context) (*TagsOverview, error) {
	usage, err := s.repo.Usage(ctx)
	if err != nil {
		return nil, err
	}

	tags := map[string][]string{}
	for _, u := range usage {
		tags[u.Key] = append(tags[u.Key], u.Value)
	}
	for _, values := range tags {
		sort.Strings(values)
	}

	popular := usage
	if len(popular) > popularTagLimit {
		popular = popular[:popularTagLimit]
	}
	return &TagsOverview{Tags: tags, PopularTags: popular}, nil
}

// Suggestions returns up to ten pairs matching term, exact key/value matches
// first, then alphabetically by display text.
func (s *tagService) Suggestions(ctx context.Context, term string) ([]TagSuggestion, error) {
	// Fetch a wider slice than we return so exact matches buried below the
	// usage cutoff still surface.
	usage, err := s.repo.Search(ctx, term, tagSuggestionLimit*5)
	if err != nil {
		return nil, err
	}

	out := make([]TagSuggestion, 0, len(usage))
	for _, u := range usage {
		out = append(out, TagSuggestion{Key: u.Key, Value: u.Value, Display: u.Key + ":" + u.Value})
	}

	exact := func(s TagSuggestion) bool {
		return strings.EqualFold(s.Key, term) || strings.EqualFold(s.Value, term)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ei, ej := exact(out[i]), exact(out[j])
		if ei != ej {
			return ei
		}
		return out[i].Display < out[j].Display
	})

	if len(out) > tagSuggestionLimit {
		out = out[:tagSuggestionLimit]
	}
	return out, nil
}
