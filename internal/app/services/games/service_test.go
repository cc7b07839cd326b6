package games

import (
	"context"
	"testing"

	"github.com/ecoplay/game-service/internal/app/domain/game"
	"github.com/ecoplay/game-service/internal/app/storage/memory"
	"github.com/ecoplay/game-service/internal/errors"
)

// scriptedRand pops pre-arranged values so settlement is deterministic.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func TestPlayPublicGoods(t *testing.T) {
	rng := &scriptedRand{ints: []int{10, 10, 10, 10}}
	svc := New(memory.New(), rng, nil)

	out, err := svc.PlayPublicGoods(context.Background(), "1042", "1042@eco.play", game.PublicGoodsInput{
		Round:          1,
		Donation:       10,
		CurrentBalance: 100,
	})
	if err != nil {
		t.Fatalf("play public goods: %v", err)
	}

	if out.TotalDonated != 50 {
		t.Fatalf("total donated = %d, want 50", out.TotalDonated)
	}
	if out.CommonPot != 75 {
		t.Fatalf("common pot = %v, want 75", out.CommonPot)
	}
	if out.SharePerPlayer != 15 {
		t.Fatalf("share per player = %v, want 15", out.SharePerPlayer)
	}
	if out.Payoff != 5 {
		t.Fatalf("payoff = %v, want 5", out.Payoff)
	}
	if out.NewBalance != 105 {
		t.Fatalf("new balance = %v, want 105", out.NewBalance)
	}
}

func TestPlayPublicGoodsPersistsRecord(t *testing.T) {
	store := memory.New()
	svc := New(store, &scriptedRand{ints: []int{0, 0, 0, 0}}, nil)

	if _, err := svc.PlayPublicGoods(context.Background(), "1042", "1042@eco.play", game.PublicGoodsInput{
		Round:          2,
		Donation:       25,
		CurrentBalance: 100,
	}); err != nil {
		t.Fatalf("play public goods: %v", err)
	}

	records, err := svc.PublicGoodsHistory(context.Background(), "1042")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.GameType != game.GameTypePublicGoods {
		t.Fatalf("game type = %q", rec.GameType)
	}
	if rec.Donation != 25 || rec.Round != 2 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.ID == "" || rec.Timestamp.IsZero() {
		t.Fatalf("record missing id or timestamp: %+v", rec)
	}
}

func TestPlayPublicGoodsRejectsOverdraw(t *testing.T) {
	svc := New(memory.New(), &scriptedRand{}, nil)

	_, err := svc.PlayPublicGoods(context.Background(), "1042", "1042@eco.play", game.PublicGoodsInput{
		Round:          1,
		Donation:       150,
		CurrentBalance: 100,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if se := errors.GetServiceError(err); se == nil || se.Code != errors.CodeInvalidInput {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPlayTrustTrustor(t *testing.T) {
	// Personality index 1 is the fair archetype (0.4-0.6); a 0.5 draw lands
	// on a 0.5 return rate.
	rng := &scriptedRand{ints: []int{1}, floats: []float64{0.5}}
	svc := New(memory.New(), rng, nil)

	out, err := svc.PlayTrust(context.Background(), "1042", "1042@eco.play", TrustInput{
		Round:          1,
		Role:           game.RoleTrustor,
		CurrentBalance: 100,
		Investment:     10,
	})
	if err != nil {
		t.Fatalf("play trust: %v", err)
	}

	if out.MultipliedAmount != 30 {
		t.Fatalf("multiplied = %d, want 30", out.MultipliedAmount)
	}
	if out.Personality != "Fair Receiver" {
		t.Fatalf("personality = %q", out.Personality)
	}
	if out.ReturnedAmount != 15 {
		t.Fatalf("returned = %d, want 15", out.ReturnedAmount)
	}
	if out.Payoff != 5 {
		t.Fatalf("payoff = %v, want 5", out.Payoff)
	}
	if out.NewBalance != 105 {
		t.Fatalf("new balance = %v, want 105", out.NewBalance)
	}
}

func TestPlayTrustTrustee(t *testing.T) {
	svc := New(memory.New(), &scriptedRand{}, nil)

	out, err := svc.PlayTrust(context.Background(), "1042", "1042@eco.play", TrustInput{
		Round:          3,
		Role:           game.RoleTrustee,
		CurrentBalance: 100,
		ReceivedAmount: 30,
		ReturnAmount:   10,
	})
	if err != nil {
		t.Fatalf("play trust: %v", err)
	}

	if out.PointsKept != 20 {
		t.Fatalf("points kept = %d, want 20", out.PointsKept)
	}
	if out.Payoff != 20 {
		t.Fatalf("payoff = %v, want 20", out.Payoff)
	}
	if out.NewBalance != 120 {
		t.Fatalf("new balance = %v, want 120", out.NewBalance)
	}
}

func TestPlayTrustTrusteeRejectsOverReturn(t *testing.T) {
	svc := New(memory.New(), &scriptedRand{}, nil)

	_, err := svc.PlayTrust(context.Background(), "1042", "1042@eco.play", TrustInput{
		Round:          1,
		Role:           game.RoleTrustee,
		CurrentBalance: 100,
		ReceivedAmount: 10,
		ReturnAmount:   20,
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPlayTrustUnsupportedRole(t *testing.T) {
	svc := New(memory.New(), &scriptedRand{}, nil)

	_, err := svc.PlayTrust(context.Background(), "1042", "1042@eco.play", TrustInput{
		Round:          1,
		Role:           game.Role("receiver"),
		CurrentBalance: 100,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if se := errors.GetServiceError(err); se == nil || se.Code != errors.CodeUnsupportedRole {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTrustHistoryFiltersByRole(t *testing.T) {
	svc := New(memory.New(), &scriptedRand{ints: []int{0}, floats: []float64{0.2}}, nil)
	ctx := context.Background()

	if _, err := svc.PlayTrust(ctx, "1042", "1042@eco.play", TrustInput{
		Round: 1, Role: game.RoleTrustor, CurrentBalance: 100, Investment: 10,
	}); err != nil {
		t.Fatalf("trustor round: %v", err)
	}
	if _, err := svc.PlayTrust(ctx, "1042", "1042@eco.play", TrustInput{
		Round: 2, Role: game.RoleTrustee, CurrentBalance: 100, ReceivedAmount: 30, ReturnAmount: 15,
	}); err != nil {
		t.Fatalf("trustee round: %v", err)
	}

	all, err := svc.TrustHistory(ctx, "1042", "")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all rounds = %d, want 2", len(all))
	}

	trustors, err := svc.TrustHistory(ctx, "1042", game.RoleTrustor)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(trustors) != 1 || trustors[0].Role != game.RoleTrustor {
		t.Fatalf("unexpected trustor rounds: %+v", trustors)
	}
}
