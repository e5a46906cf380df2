package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/longregen/genepool/domain"
	"github.com/longregen/genepool/evolution"
	"github.com/longregen/genepool/store"
)

type synthesizeRequest struct {
	Intent  domain.Intent          `json:"intent"`
	Context domain.ContextSnapshot `json:"context"`
}

type feedbackRequest struct {
	Rating int16  `json:"rating"`
	Note   string `json:"note,omitempty"`
}

type PromptHandler struct {
	synthesizer *evolution.Synthesizer
	engine      *evolution.Engine
	cache       *promptCache
}

func NewPromptHandler(syn *evolution.Synthesizer, eng *evolution.Engine, cache *promptCache) *PromptHandler {
	return &PromptHandler{synthesizer: syn, engine: eng, cache: cache}
}

// Synthesize handles POST /api/v1/prompts. A pool missing any required slot
// yields 422 with the slot name so the caller can seed the missing type.
func (h *PromptHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Intent.Name == "" {
		respondError(w, "intent.name is required", http.StatusBadRequest)
		return
	}

	prompt, err := h.synthesizer.Synthesize(r.Context(), req.Intent, req.Context)
	if err != nil {
		var incomplete *domain.IncompleteSynthesisError
		if errors.As(err, &incomplete) {
			respondJSON(w, map[string]string{
				"error": "incomplete_synthesis",
				"slot":  string(incomplete.Slot),
			}, http.StatusUnprocessableEntity)
			return
		}
		respondError(w, "synthesis failed", http.StatusInternalServerError)
		return
	}

	h.cache.Put(prompt)
	respondJSON(w, prompt, http.StatusOK)
}

// Feedback handles POST /api/v1/prompts/{id}/feedback. Accepted feedback is
// queued for asynchronous processing, hence 202.
func (h *PromptHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	promptID := chi.URLParam(r, "id")

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Rating != domain.RatingUp && req.Rating != domain.RatingDown {
		respondError(w, "rating must be 1 or -1", http.StatusBadRequest)
		return
	}

	prompt, ok := h.cache.Get(promptID)
	if !ok {
		respondError(w, "prompt not found", http.StatusNotFound)
		return
	}

	h.engine.Submit(prompt, domain.UserFeedback{
		Positive: req.Rating == domain.RatingUp,
		Context:  req.Note,
	})
	respondJSON(w, map[string]string{"status": "accepted"}, http.StatusAccepted)
}

type GeneHandler struct {
	store *store.Store
}

func NewGeneHandler(s *store.Store) *GeneHandler {
	return &GeneHandler{store: s}
}

// List handles GET /api/v1/genes, optionally filtered by ?type= and ?category=.
func (h *GeneHandler) List(w http.ResponseWriter, r *http.Request) {
	var genes []*domain.Gene
	if t := r.URL.Query().Get("type"); t != "" {
		gt := domain.GeneType(t)
		if !gt.Valid() {
			respondError(w, "unknown gene type", http.StatusBadRequest)
			return
		}
		genes = h.store.GenesForType(gt)
	} else {
		genes = h.store.AllGenes()
	}

	if category := r.URL.Query().Get("category"); category != "" {
		filtered := genes[:0]
		for _, g := range genes {
			if g.Category == category {
				filtered = append(filtered, g)
			}
		}
		genes = filtered
	}
	respondJSON(w, map[string]any{"genes": genes, "count": len(genes)}, http.StatusOK)
}

// Get handles GET /api/v1/genes/{id}.
func (h *GeneHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "gene not found", http.StatusNotFound)
		return
	}
	respondJSON(w, g, http.StatusOK)
}

// Lineage handles GET /api/v1/genes/{id}/lineage: the gene and its ancestor
// chain, newest first.
func (h *GeneHandler) Lineage(w http.ResponseWriter, r *http.Request) {
	g, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "gene not found", http.StatusNotFound)
		return
	}

	chain := []*domain.Gene{g}
	// Imported data can carry a corrupted lineage graph; the visited set
	// keeps a cycle from hanging the walk.
	seen := map[string]bool{g.ID: true}
	for g.ParentGeneID != nil {
		parent, err := h.store.Get(*g.ParentGeneID)
		if err != nil || seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		chain = append(chain, parent)
		g = parent
	}
	respondJSON(w, map[string]any{"lineage": chain, "depth": len(chain)}, http.StatusOK)
}
