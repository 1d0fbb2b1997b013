package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hireflow/interviewd/internal/interview"
)

func TestMemoryGetMissingSession(t *testing.T) {
	m := NewMemory()

	_, err := m.Get(context.Background(), "missing")
	if !errors.Is(err, interview.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryPutAndGet(t *testing.T) {
	m := NewMemory()

	session := interview.Session{
		JobSummary:       map[string]any{"job_role": "dev"},
		CandidateSummary: map[string]any{"match_score": 80},
		Questions:        []string{"q1", "q2"},
		CurrentIndex:     1,
		Answers:          []interview.AnswerEvaluation{{Question: "q1", ContentScore: 8}},
	}

	if err := m.Put(context.Background(), "id-1", session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := m.Get(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.CurrentIndex != 1 || len(got.Answers) != 1 || got.Questions[1] != "q2" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestMemoryPutReplaces(t *testing.T) {
	m := NewMemory()

	if err := m.Put(context.Background(), "id-1", interview.Session{CurrentIndex: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Put(context.Background(), "id-1", interview.Session{CurrentIndex: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := m.Get(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.CurrentIndex != 2 {
		t.Fatalf("expected replaced session, got cursor %d", got.CurrentIndex)
	}

	if m.Len() != 1 {
		t.Fatalf("expected 1 stored session, got %d", m.Len())
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			id := fmt.Sprintf("session-%d", n)
			if err := m.Put(context.Background(), id, interview.Session{CurrentIndex: n}); err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if _, err := m.Get(context.Background(), id); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if m.Len() != 20 {
		t.Fatalf("expected 20 sessions, got %d", m.Len())
	}
}
