package evolution

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/longregen/genepool/domain"
	"github.com/longregen/genepool/id"
	"github.com/longregen/genepool/tracing"
)

// slot is one position in the assembly plan.
type slot struct {
	Type     domain.GeneType
	Category string
	Required bool
}

// Synthesizer assembles prompts from the pool, one gene per slot.
type Synthesizer struct {
	selector *Selector
}

func NewSynthesizer(sel *Selector) *Synthesizer {
	return &Synthesizer{selector: sel}
}

// slotPlan returns the ordered assembly plan for an intent. The persona,
// response format, and safety guardrail slots must be filled or synthesis
// fails; every other slot is skipped silently when its type has no genes.
func slotPlan(intent domain.Intent, snapshot domain.ContextSnapshot) []slot {
	plan := []slot{
		{Type: domain.GeneTypePersona, Required: true},
		{Type: domain.GeneTypeResponseFormat, Required: true},
		{Type: domain.GeneTypeDomainInstruction, Category: intent.Category},
	}

	// Intent-conditional slots ride directly behind the domain instructions
	// they refine.
	if intent.Category == "insight" {
		plan = append(plan, slot{Type: domain.GeneTypeInsightPattern})
	}
	if intent.Category == "evolution" {
		plan = append(plan, slot{Type: domain.GeneTypeEvolutionDirective})
	}

	plan = append(plan,
		slot{Type: domain.GeneTypeContextTemplate},
		slot{Type: domain.GeneTypeEmotionalTone},
	)
	if len(snapshot.Languages) > 1 {
		plan = append(plan, slot{Type: domain.GeneTypeLanguageMixing})
	}

	plan = append(plan,
		slot{Type: domain.GeneTypeErrorRecovery},
		slot{Type: domain.GeneTypeSafetyGuardrail, Required: true},
	)
	return plan
}

// Synthesize builds a prompt for the intent. Context template genes have
// their {{placeholder}} names resolved against the snapshot values;
// unresolved placeholders are left literal and logged.
func (s *Synthesizer) Synthesize(ctx context.Context, intent domain.Intent, snapshot domain.ContextSnapshot) (*domain.SynthesizedPrompt, error) {
	_, span := tracing.Tracer("evolution").Start(ctx, "synthesizer.Synthesize")
	defer span.End()
	span.SetAttributes(
		tracing.IntentName(intent.Name),
		tracing.IntentCategory(intent.Category),
	)

	var (
		sections []string
		genes    []*domain.Gene
	)
	for _, sl := range slotPlan(intent, snapshot) {
		g := s.selector.SelectBestGene(sl.Type, sl.Category)
		if g == nil {
			if sl.Required {
				SynthesesTotal.WithLabelValues("incomplete").Inc()
				err := &domain.IncompleteSynthesisError{Slot: sl.Type}
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}
			slog.Debug("optional slot skipped, no eligible gene", "slot", sl.Type)
			continue
		}

		content := g.Content
		if g.Type == domain.GeneTypeContextTemplate {
			var missing []string
			content, missing = domain.FillTemplate(content, snapshot.Values)
			if len(missing) > 0 {
				slog.Warn("context template placeholders unresolved",
					"gene_id", g.ID, "placeholders", strings.Join(missing, ","))
			}
		}
		sections = append(sections, content)
		genes = append(genes, g)
	}

	prompt := &domain.SynthesizedPrompt{
		ID:        id.NewPrompt(),
		Intent:    intent,
		Genes:     genes,
		Context:   snapshot,
		Text:      strings.Join(sections, "\n\n"),
		CreatedAt: time.Now().UTC(),
	}

	span.SetAttributes(tracing.PromptID(prompt.ID), tracing.GeneCount(len(genes)))
	SynthesesTotal.WithLabelValues("ok").Inc()
	return prompt, nil
}
