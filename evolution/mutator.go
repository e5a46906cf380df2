package evolution

import (
	"fmt"
	"strings"
	"time"

	"github.com/longregen/genepool/domain"
	"github.com/longregen/genepool/id"
)

// Mutator derives child genes from weak parents. The transform applied to
// the content is keyed off the gene's evolution directive, so a given
// parent always mutates the same way and the lineage stays auditable.
type Mutator struct{}

func NewMutator() *Mutator {
	return &Mutator{}
}

// directiveTransforms maps directive keywords to content rewrites. Matching
// is by substring so directives can be free-form phrases ("shorten and
// simplify the wording").
var directiveTransforms = []struct {
	keyword string
	apply   func(content string) string
}{
	{"shorten", func(c string) string {
		sentences := splitSentences(c)
		if len(sentences) <= 1 {
			return c
		}
		keep := (len(sentences) + 1) / 2
		return strings.Join(sentences[:keep], " ")
	}},
	{"simplify", func(c string) string {
		return c + " Use plain words and short sentences."
	}},
	{"expand", func(c string) string {
		return c + " Elaborate with one concrete example when it helps."
	}},
	{"soften", func(c string) string {
		return c + " Keep the tone gentle and never pressure the user."
	}},
	{"formalize", func(c string) string {
		return c + " Use a formal register and avoid colloquialisms."
	}},
	{"energize", func(c string) string {
		return c + " Be upbeat and forward-looking."
	}},
	{"clarify", func(c string) string {
		return c + " State the single most important point first."
	}},
	{"localize", func(c string) string {
		return c + " Mirror the user's preferred language and local conventions."
	}},
}

func splitSentences(s string) []string {
	parts := strings.SplitAfter(s, ". ")
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, strings.TrimSpace(p))
		}
	}
	return out
}

// Mutate derives a child gene from source. The child starts at neutral
// fitness with fresh counters, bumps the version, and records source as its
// parent. Feedback context, when present, is folded in as a guidance clause.
// Returns ErrMutationSkipped when the directive is empty or matches no
// known transform.
func (m *Mutator) Mutate(source *domain.Gene, feedbackContext string) (*domain.Gene, error) {
	directive := strings.ToLower(strings.TrimSpace(source.EvolutionDirective))
	if directive == "" {
		return nil, fmt.Errorf("gene %s has no evolution directive: %w", source.ID, domain.ErrMutationSkipped)
	}

	var content string
	matched := false
	for _, t := range directiveTransforms {
		if strings.Contains(directive, t.keyword) {
			content = t.apply(source.Content)
			matched = true
			break
		}
	}
	if !matched {
		return nil, fmt.Errorf("gene %s directive %q matches no transform: %w", source.ID, source.EvolutionDirective, domain.ErrMutationSkipped)
	}

	if fc := strings.TrimSpace(feedbackContext); fc != "" {
		content += " Recent feedback to address: " + fc + "."
	}

	parentID := source.ID
	child := &domain.Gene{
		ID:                 id.NewGene(),
		Type:               source.Type,
		Category:           source.Category,
		Content:            content,
		Version:            source.Version + 1,
		FitnessScore:       0.5,
		ParentGeneID:       &parentID,
		EvolutionDirective: source.EvolutionDirective,
		CreatedAt:          time.Now().UTC(),
	}
	return child, nil
}
