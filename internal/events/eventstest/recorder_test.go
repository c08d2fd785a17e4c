package eventstest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tbourn/calibrated/internal/events"
)

var _ events.Publisher = (*Recorder)(nil)

func TestRecorder_Publish(t *testing.T) {
	r := &Recorder{}
	_ = r.Publish(context.Background(), events.Event{Type: events.TypeGuessCreated, QuestionID: "q1"})
	if got := r.Events(); len(got) != 1 || got[0].QuestionID != "q1" {
		t.Fatalf("unexpected events: %+v", got)
	}

	r.SetErr(errors.New("down"))
	if err := r.Publish(context.Background(), events.Event{}); err == nil {
		t.Fatalf("expected configured error")
	}
	if len(r.Events()) != 1 {
		t.Fatalf("failed publish must not record")
	}
}

func TestRecorder_ConcurrentPublish(t *testing.T) {
	r := &Recorder{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Publish(context.Background(), events.Event{Type: events.TypeGuessCreated})
			_ = r.Events()
		}()
	}
	wg.Wait()
	if n := len(r.Events()); n != 50 {
		t.Fatalf("recorded %d events, want 50", n)
	}
}

func TestRecorder_EventsIsACopy(t *testing.T) {
	r := &Recorder{}
	_ = r.Publish(context.Background(), events.Event{QuestionID: "q1"})
	got := r.Events()
	got[0].QuestionID = "changed"
	if r.Events()[0].QuestionID != "q1" {
		t.Fatal("Events must not expose internal storage")
	}
}
