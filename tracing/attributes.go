package tracing

import "go.opentelemetry.io/otel/attribute"

// Standard attribute keys for gene pool spans.
const (
	AttrPromptID       = "prompt.id"
	AttrIntentName     = "intent.name"
	AttrIntentCategory = "intent.category"
	AttrGeneID         = "gene.id"
	AttrGeneType       = "gene.type"
	AttrGeneCount      = "gene.count"
	AttrFeedback       = "feedback.polarity"
)

func PromptID(id string) attribute.KeyValue        { return attribute.String(AttrPromptID, id) }
func IntentName(name string) attribute.KeyValue    { return attribute.String(AttrIntentName, name) }
func IntentCategory(c string) attribute.KeyValue   { return attribute.String(AttrIntentCategory, c) }
func GeneID(id string) attribute.KeyValue          { return attribute.String(AttrGeneID, id) }
func GeneType(t string) attribute.KeyValue         { return attribute.String(AttrGeneType, t) }
func GeneCount(n int) attribute.KeyValue           { return attribute.Int(AttrGeneCount, n) }
func FeedbackPolarity(p string) attribute.KeyValue { return attribute.String(AttrFeedback, p) }
