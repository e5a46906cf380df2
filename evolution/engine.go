package evolution

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"

	"go.opentelemetry.io/otel/codes"

	"github.com/longregen/genepool/domain"
	"github.com/longregen/genepool/store"
	"github.com/longregen/genepool/tracing"
)

const (
	// Fitness deltas are asymmetric: a negative reaction costs more than a
	// positive one earns, so genes must sustain approval to stay fit.
	PositiveFitnessDelta = 0.05
	NegativeFitnessDelta = -0.08

	// A gene is mutated only after negative feedback, when its fitness has
	// fallen below the ceiling and it has been used enough times that the
	// score is trustworthy.
	MutationFitnessCeiling = 0.3
	MutationUsageFloor     = 10

	defaultQueueSize = 64
)

type feedbackEvent struct {
	prompt   *domain.SynthesizedPrompt
	feedback domain.UserFeedback
}

// Engine applies user feedback to gene fitness and spawns mutations for
// genes that keep failing. Feedback is processed asynchronously on a single
// worker so reaction bursts never block the request path.
type Engine struct {
	store   *store.Store
	mutator *Mutator

	queue chan feedbackEvent
	wg    sync.WaitGroup
	once  sync.Once

	mu     sync.Mutex
	closed bool
}

func NewEngine(s *store.Store, queueSize int) *Engine {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	e := &Engine{
		store:   s,
		mutator: NewMutator(),
		queue:   make(chan feedbackEvent, queueSize),
	}
	e.wg.Add(1)
	go e.worker()
	return e
}

// Submit enqueues feedback for asynchronous processing. It never blocks:
// when the queue is full, or the engine is closed, the event is dropped and
// counted.
func (e *Engine) Submit(prompt *domain.SynthesizedPrompt, fb domain.UserFeedback) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		FeedbackDropsTotal.Inc()
		slog.Warn("feedback after engine close, dropping event", "prompt_id", prompt.ID)
		return
	}
	select {
	case e.queue <- feedbackEvent{prompt: prompt, feedback: fb}:
	default:
		FeedbackDropsTotal.Inc()
		slog.Warn("feedback queue full, dropping event", "prompt_id", prompt.ID)
	}
}

// Close stops accepting feedback and waits for queued events to finish.
// Submissions arriving afterwards are dropped, not panicked on.
func (e *Engine) Close() {
	e.once.Do(func() {
		e.mu.Lock()
		e.closed = true
		close(e.queue)
		e.mu.Unlock()
	})
	e.wg.Wait()
}

func (e *Engine) worker() {
	defer e.wg.Done()
	for ev := range e.queue {
		e.process(ev)
	}
}

func (e *Engine) process(ev feedbackEvent) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in feedback worker",
				"prompt_id", ev.prompt.ID, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	if err := e.Apply(context.Background(), ev.prompt, ev.feedback); err != nil {
		slog.Error("apply feedback", "prompt_id", ev.prompt.ID, "error", err)
	}
}

// Apply propagates one reaction to every gene that contributed to the
// prompt, then checks negative reactions for mutation eligibility.
func (e *Engine) Apply(ctx context.Context, prompt *domain.SynthesizedPrompt, fb domain.UserFeedback) error {
	ctx, span := tracing.Tracer("evolution").Start(ctx, "engine.Apply")
	defer span.End()

	polarity := "negative"
	delta := NegativeFitnessDelta
	if fb.Positive {
		polarity = "positive"
		delta = PositiveFitnessDelta
	}
	span.SetAttributes(
		tracing.PromptID(prompt.ID),
		tracing.FeedbackPolarity(polarity),
		tracing.GeneCount(len(prompt.Genes)),
	)
	FeedbackTotal.WithLabelValues(polarity).Inc()

	var errs []error
	for _, g := range prompt.Genes {
		if err := e.store.ApplyReaction(g.ID, delta, fb.Positive); err != nil {
			errs = append(errs, err)
			continue
		}
		if !fb.Positive {
			if err := e.maybeMutate(ctx, g.ID, fb.Context); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		span.RecordError(err)
		span.SetStatus(codes.Error, "feedback partially applied")
		return err
	}
	return nil
}

// maybeMutate re-reads the gene after the reaction landed and spawns a
// child when it is both critical and well-exercised.
func (e *Engine) maybeMutate(ctx context.Context, geneID, feedbackContext string) error {
	g, err := e.store.Get(geneID)
	if err != nil {
		return err
	}
	if g.FitnessScore >= MutationFitnessCeiling || g.UsageCount <= MutationUsageFloor {
		return nil
	}

	child, err := e.mutator.Mutate(g, feedbackContext)
	if err != nil {
		if errors.Is(err, domain.ErrMutationSkipped) {
			MutationSkipsTotal.Inc()
			slog.Debug("mutation skipped", "gene_id", g.ID, "reason", err)
			return nil
		}
		return err
	}

	stored := e.store.AddGene(child)
	GenePoolSize.Set(float64(e.store.Len()))
	MutationsTotal.Inc()

	_, span := tracing.Tracer("evolution").Start(ctx, "engine.mutate")
	span.SetAttributes(
		tracing.GeneID(stored.ID),
		tracing.GeneType(string(stored.Type)),
	)
	span.End()

	slog.Info("spawned mutated gene",
		"parent_id", g.ID, "child_id", stored.ID,
		"type", stored.Type, "version", stored.Version)
	return nil
}
