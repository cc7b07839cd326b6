package system

import (
	"context"
	"errors"
	"testing"
)

type recordingService struct {
	NoopService
	events *[]string
	fail   bool
}

func (s *recordingService) Start(context.Context) error {
	if s.fail {
		return errors.New("boom")
	}
	*s.events = append(*s.events, "start "+s.Name())
	return nil
}

func (s *recordingService) Stop(context.Context) error {
	*s.events = append(*s.events, "stop "+s.Name())
	return nil
}

func TestManagerStartStopOrder(t *testing.T) {
	var events []string
	m := NewManager()
	for _, name := range []string{"a", "b"} {
		svc := &recordingService{NoopService: NoopService{ServiceName: name}, events: &events}
		if err := m.Register(svc); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}

	ctx := context.Background()
	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	want := []string{"start a", "start b", "stop b", "stop a"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestManagerRejectsDuplicateName(t *testing.T) {
	m := NewManager()
	if err := m.Register(&NoopService{ServiceName: "games"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := m.Register(&NoopService{ServiceName: "games"}); err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestManagerStartFailureRollsBack(t *testing.T) {
	var events []string
	m := NewManager()
	ok := &recordingService{NoopService: NoopService{ServiceName: "ok"}, events: &events}
	bad := &recordingService{NoopService: NoopService{ServiceName: "bad"}, events: &events, fail: true}
	if err := m.Register(ok); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := m.Register(bad); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := m.Start(context.Background()); err == nil {
		t.Fatal("expected start error")
	}

	want := []string{"start ok", "stop ok"}
	if len(events) != len(want) || events[0] != want[0] || events[1] != want[1] {
		t.Fatalf("events = %v, want %v", events, want)
	}
}
