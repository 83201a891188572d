package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"invoscan/internal/domain"
)

// recordingExtractionService captures ExtractFile dispatches.
type recordingExtractionService struct {
	ExtractionService
	mu         sync.Mutex
	dispatched []uuid.UUID
	attempts   []int
}

func (r *recordingExtractionService) ExtractFile(_ context.Context, meta *domain.FileMeta, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispatched = append(r.dispatched, meta.ID)
	r.attempts = append(r.attempts, meta.ExtractAttempts)
}

func (r *recordingExtractionService) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.dispatched)
}

func workerConfig() ExtractQueueConfig {
	return ExtractQueueConfig{
		PollInterval: 10 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  2,
	}
}

func TestExtractQueueWorker_DispatchesClaimedFiles(t *testing.T) {
	fileRepo := newFakeFileRepo()
	fileID := uuid.New()
	fileRepo.queue = []domain.FileMeta{{ID: fileID, Status: domain.FileStatusQueued}}

	rec := &recordingExtractionService{}
	w := NewExtractQueueWorker(fileRepo, rec, workerConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	w.Start(ctx)

	assert.Equal(t, 1, rec.count())
	assert.Equal(t, fileID, rec.dispatched[0])
	assert.Equal(t, []int{1}, rec.attempts, "attempt counter increments before dispatch")
}

func TestExtractQueueWorker_ClaimLimitRespectsConcurrency(t *testing.T) {
	fileRepo := newFakeFileRepo()
	for i := 0; i < 5; i++ {
		fileRepo.queue = append(fileRepo.queue, domain.FileMeta{ID: uuid.New()})
	}

	rec := &recordingExtractionService{}
	w := NewExtractQueueWorker(fileRepo, rec, workerConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	w.Start(ctx)

	// Fast extractions release the semaphore between polls, so all five
	// files drain even with concurrency two.
	assert.Equal(t, 5, rec.count())
}

func TestExtractQueueWorker_SurvivesClaimError(t *testing.T) {
	fileRepo := newFakeFileRepo()
	fileRepo.claimErr = errors.New("db down")

	rec := &recordingExtractionService{}
	w := NewExtractQueueWorker(fileRepo, rec, workerConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	w.Start(ctx)

	assert.Zero(t, rec.count())
}

func TestExtractQueueWorker_StopsOnCancel(t *testing.T) {
	fileRepo := newFakeFileRepo()
	w := NewExtractQueueWorker(fileRepo, &recordingExtractionService{}, workerConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
