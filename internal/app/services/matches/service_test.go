package matches

import (
	"context"
	"testing"

	"github.com/ecoplay/game-service/internal/app/domain/match"
	"github.com/ecoplay/game-service/internal/app/storage/memory"
	"github.com/ecoplay/game-service/internal/errors"
)

type fixedRand struct{ n int }

func (r fixedRand) Intn(int) int     { return r.n }
func (r fixedRand) Float64() float64 { return 0 }

func TestMatchRecordsPersonality(t *testing.T) {
	svc := New(memory.New(), fixedRand{n: 2}, nil)

	m, err := svc.Match(context.Background(), "1042", match.GameTypeTrust)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if m.Personality != "Generous Receiver" {
		t.Fatalf("personality = %q", m.Personality)
	}
	if m.ReturnRateRange != [2]float64{0.7, 0.9} {
		t.Fatalf("return rate range = %v", m.ReturnRateRange)
	}
	if m.ID == "" || m.Timestamp.IsZero() {
		t.Fatalf("match missing id or timestamp: %+v", m)
	}

	history, err := svc.History(context.Background(), "1042")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ID != m.ID {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestMatchRejectsUnknownGameType(t *testing.T) {
	svc := New(memory.New(), fixedRand{}, nil)

	_, err := svc.Match(context.Background(), "1042", "public-goods")
	if err == nil {
		t.Fatal("expected error")
	}
	if se := errors.GetServiceError(err); se == nil || se.Code != errors.CodeUnsupportedGameType {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPersonalitiesTable(t *testing.T) {
	svc := New(memory.New(), fixedRand{}, nil)

	table := svc.Personalities()
	if len(table) != 4 {
		t.Fatalf("personalities = %d, want 4", len(table))
	}
	for _, p := range table {
		if p.ReturnRateRange[0] >= p.ReturnRateRange[1] {
			t.Fatalf("bad range for %s: %v", p.Name, p.ReturnRateRange)
		}
	}
}
