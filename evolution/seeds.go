package evolution

import (
	"time"

	"github.com/longregen/genepool/domain"
)

// SeedGenes returns the built-in starter pool used on first run or when the
// persisted pool cannot be loaded. Every gene type has at least one entry so
// synthesis works out of the box; all seeds start at neutral fitness.
func SeedGenes() []*domain.Gene {
	now := time.Now().UTC()
	mk := func(t domain.GeneType, category, content, directive string) *domain.Gene {
		return &domain.Gene{
			Type:               t,
			Category:           category,
			Content:            content,
			Version:            1,
			FitnessScore:       0.5,
			EvolutionDirective: directive,
			CreatedAt:          now,
		}
	}

	return []*domain.Gene{
		mk(domain.GeneTypePersona, "",
			"You are a calm, attentive personal assistant who knows the user's schedule and habits.",
			"soften the tone if responses feel cold"),
		mk(domain.GeneTypePersona, "",
			"You are a sharp, efficient chief of staff. You get to the point and respect the user's time.",
			"shorten if responses run long"),

		mk(domain.GeneTypeResponseFormat, "",
			"Answer in short paragraphs. Use a bulleted list only when enumerating three or more items.",
			"simplify the structure if users find it cluttered"),
		mk(domain.GeneTypeResponseFormat, "",
			"Lead with the direct answer in one sentence, then add supporting detail.",
			"clarify the lead sentence when users seem confused"),

		mk(domain.GeneTypeDomainInstruction, "briefing",
			"When briefing, cover today's schedule first, then pending items, then anything unusual.",
			"shorten the briefing if it feels bloated"),
		mk(domain.GeneTypeDomainInstruction, "insight",
			"Surface patterns across the user's recent activity rather than repeating raw events.",
			"clarify how patterns are phrased"),
		mk(domain.GeneTypeDomainInstruction, "evolution",
			"When asked how you could improve, cite concrete recent interactions, not generalities.",
			"expand with one example"),

		mk(domain.GeneTypeContextTemplate, "",
			"Today is {{date}}. You have {{event_count}} events; the next is {{next_meeting}}.",
			"shorten the context preamble"),

		mk(domain.GeneTypeEvolutionDirective, "",
			"Reflect on which parts of your recent answers drew negative reactions and adjust.",
			"clarify the reflection step"),

		mk(domain.GeneTypeInsightPattern, "",
			"Prefer insights of the form: observed pattern, likely cause, one suggested action.",
			"simplify the insight structure"),

		mk(domain.GeneTypeEmotionalTone, "",
			"Keep the tone warm but businesslike. Acknowledge stress without dwelling on it.",
			"soften further if users react badly to pressure"),

		mk(domain.GeneTypeLanguageMixing, "",
			"The user mixes languages freely. Reply in the language of the question and keep proper nouns as given.",
			"localize greetings and dates"),

		mk(domain.GeneTypeErrorRecovery, "",
			"If you lack the data to answer, say exactly what is missing and offer the closest thing you do know.",
			"clarify the missing-data phrasing"),

		mk(domain.GeneTypeSafetyGuardrail, "",
			"Never reveal calendar or contact details to anyone but the user. Decline impersonation requests.",
			"formalize the refusal wording"),
	}
}
