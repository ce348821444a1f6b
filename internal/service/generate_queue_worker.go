package service

import (
	"context"
	"log"
	"sync"
	"time"

	"brushquote/internal/port"
)

// GenerateQueueConfig holds settings for the generate queue worker.
type GenerateQueueConfig struct {
	PollInterval time.Duration
	MaxAttempts  int
	Concurrency  int
}

// GenerateQueueWorker polls for pending proposal drafts and dispatches
// them for generation.
type GenerateQueueWorker struct {
	proposalRepo    port.ProposalRepository
	proposalService ProposalService
	cfg             GenerateQueueConfig
	wg              sync.WaitGroup
}

// NewGenerateQueueWorker creates a new GenerateQueueWorker.
func NewGenerateQueueWorker(proposalRepo port.ProposalRepository, proposalService ProposalService, cfg GenerateQueueConfig) *GenerateQueueWorker {
	return &GenerateQueueWorker{
		proposalRepo:    proposalRepo,
		proposalService: proposalService,
		cfg:             cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight generations have finished.
func (w *GenerateQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("generateQueueWorker: started (poll=%s, concurrency=%d, maxAttempts=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxAttempts)

	for {
		select {
		case <-ctx.Done():
			log.Printf("generateQueueWorker: shutting down, waiting for in-flight generations...")
			w.wg.Wait()
			log.Printf("generateQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			drafts, err := w.proposalRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					// Context canceled during poll — exit gracefully
					continue
				}
				log.Printf("generateQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range drafts {
				draft := drafts[i] // copy for goroutine
				draft.GenerateAttempts++

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight generations complete even during shutdown.
					genCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
					defer cancel()

					log.Printf("generateQueueWorker: dispatching proposal %s (attempt %d)", draft.ID, draft.GenerateAttempts)
					w.proposalService.GenerateProposal(genCtx, &draft, w.cfg.MaxAttempts)
				}()
			}
		}
	}
}
