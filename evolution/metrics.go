package evolution

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SelectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genepool_selections_total",
		Help: "Total gene selections by gene type",
	}, []string{"gene_type"})

	SynthesesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genepool_syntheses_total",
		Help: "Total prompt synthesis attempts by outcome",
	}, []string{"status"})

	FeedbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genepool_feedback_total",
		Help: "Total feedback events by polarity",
	}, []string{"polarity"})

	MutationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "genepool_mutations_total",
		Help: "Total genes spawned by mutation",
	})

	MutationSkipsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "genepool_mutation_skips_total",
		Help: "Total mutations skipped for unusable evolution directives",
	})

	GenePoolSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "genepool_genes",
		Help: "Current number of genes in the pool",
	})

	FeedbackDropsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "genepool_feedback_drops_total",
		Help: "Feedback events dropped because the queue was full",
	})
)
