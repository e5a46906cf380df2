package domain

import "time"

// GeneType classifies the prompt slot a gene can fill.
type GeneType string

const (
	GeneTypePersona            GeneType = "persona"
	GeneTypeResponseFormat     GeneType = "response-format"
	GeneTypeDomainInstruction  GeneType = "domain-instruction"
	GeneTypeContextTemplate    GeneType = "context-template"
	GeneTypeEvolutionDirective GeneType = "evolution-directive"
	GeneTypeInsightPattern     GeneType = "insight-pattern"
	GeneTypeEmotionalTone      GeneType = "emotional-tone"
	GeneTypeLanguageMixing     GeneType = "language-mixing"
	GeneTypeErrorRecovery      GeneType = "error-recovery"
	GeneTypeSafetyGuardrail    GeneType = "safety-guardrail"
)

// AllGeneTypes lists every gene type. Order matters: the store and the
// snapshot codec iterate types in this order so dumps stay stable.
var AllGeneTypes = []GeneType{
	GeneTypePersona,
	GeneTypeResponseFormat,
	GeneTypeDomainInstruction,
	GeneTypeContextTemplate,
	GeneTypeEvolutionDirective,
	GeneTypeInsightPattern,
	GeneTypeEmotionalTone,
	GeneTypeLanguageMixing,
	GeneTypeErrorRecovery,
	GeneTypeSafetyGuardrail,
}

func (t GeneType) Valid() bool {
	switch t {
	case GeneTypePersona, GeneTypeResponseFormat, GeneTypeDomainInstruction,
		GeneTypeContextTemplate, GeneTypeEvolutionDirective, GeneTypeInsightPattern,
		GeneTypeEmotionalTone, GeneTypeLanguageMixing, GeneTypeErrorRecovery,
		GeneTypeSafetyGuardrail:
		return true
	}
	return false
}

// Gene is a reusable instruction fragment with a learned fitness score and
// mutation lineage. Content may contain {{named}} placeholders that the
// synthesizer fills from a context snapshot.
type Gene struct {
	ID                 string    `json:"id" msgpack:"id"`
	Type               GeneType  `json:"type" msgpack:"type"`
	Category           string    `json:"category,omitempty" msgpack:"category"` // narrows domain-instruction genes by intent category
	Content            string    `json:"content" msgpack:"content"`
	Version            int       `json:"version" msgpack:"version"`
	FitnessScore       float64   `json:"fitness_score" msgpack:"fitness_score"`
	ParentGeneID       *string   `json:"parent_gene_id,omitempty" msgpack:"parent_gene_id"`
	PositiveReactions  int       `json:"positive_reactions" msgpack:"positive_reactions"`
	NegativeReactions  int       `json:"negative_reactions" msgpack:"negative_reactions"`
	UsageCount         int       `json:"usage_count" msgpack:"usage_count"`
	EvolutionDirective string    `json:"evolution_directive,omitempty" msgpack:"evolution_directive"`
	CreatedAt          time.Time `json:"created_at" msgpack:"created_at"`
}

// AcceptanceRatio is the share of positive reactions, 0.5 when unrated.
func (g *Gene) AcceptanceRatio() float64 {
	total := g.PositiveReactions + g.NegativeReactions
	if total == 0 {
		return 0.5
	}
	return float64(g.PositiveReactions) / float64(total)
}

// FitnessBand maps the fitness score to the band the evolution engine acts
// on: healthy (>=0.5), weak (0.3-0.5), critical (<0.3).
func (g *Gene) FitnessBand() string {
	switch {
	case g.FitnessScore >= 0.5:
		return "healthy"
	case g.FitnessScore >= 0.3:
		return "weak"
	default:
		return "critical"
	}
}

// Clone returns a deep copy so store snapshots never alias internal state.
func (g *Gene) Clone() *Gene {
	c := *g
	if g.ParentGeneID != nil {
		parent := *g.ParentGeneID
		c.ParentGeneID = &parent
	}
	return &c
}

// ClampFitness restricts a fitness score to [0, 1].
func ClampFitness(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Intent is the classified purpose of a user request.
type Intent struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ContextSnapshot carries the runtime facts (calendar counts, next meeting,
// preferred languages) used to fill template placeholders.
type ContextSnapshot struct {
	Values    map[string]string `json:"values"`
	Languages []string          `json:"languages,omitempty"`
	TakenAt   time.Time         `json:"taken_at"`
}

// SynthesizedPrompt is one assembled instruction set: the genes used in slot
// order plus the provenance needed for later feedback attribution. It is
// created per request and never persisted.
type SynthesizedPrompt struct {
	ID        string          `json:"id"`
	Intent    Intent          `json:"intent"`
	Genes     []*Gene         `json:"genes"`
	Context   ContextSnapshot `json:"context"`
	Text      string          `json:"text"`
	CreatedAt time.Time       `json:"created_at"`
}

// GeneIDs returns the contributing gene IDs in slot order.
func (p *SynthesizedPrompt) GeneIDs() []string {
	ids := make([]string, len(p.Genes))
	for i, g := range p.Genes {
		ids[i] = g.ID
	}
	return ids
}

const (
	RatingDown int16 = -1
	RatingUp   int16 = 1
)

// UserFeedback is a single thumbs up/down reaction with an optional free-text
// note explaining it. Consumed immediately by the evolution engine.
type UserFeedback struct {
	Positive bool   `json:"positive"`
	Context  string `json:"context,omitempty"`
}
