package game

import "testing"

func TestSettleTrustor(t *testing.T) {
	// Index 1 picks the fair archetype; 0.5 lands mid-range at rate 0.5.
	rng := &seqRand{ints: []int{1}, floats: []float64{0.5}}

	out, err := SettleTrustor(1, TrustorDecision{Investment: 10}, 100, rng)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}

	if out.MultipliedAmount != 30 {
		t.Fatalf("multiplied = %d, want 30", out.MultipliedAmount)
	}
	if out.ReturnRate != 0.5 {
		t.Fatalf("return rate = %v, want 0.5", out.ReturnRate)
	}
	if out.ReturnedAmount != 15 {
		t.Fatalf("returned = %d, want 15", out.ReturnedAmount)
	}
	if out.Payoff != 5 || out.NewBalance != 105 {
		t.Fatalf("payoff %v balance %v", out.Payoff, out.NewBalance)
	}
}

func TestSettleTrustorReturnFloored(t *testing.T) {
	// 7 * 3 = 21; 21 * 0.3 = 6.3 floors to 6.
	rng := &seqRand{ints: []int{0}, floats: []float64{1}} // cautious, rate hits 0.3

	out, err := SettleTrustor(1, TrustorDecision{Investment: 7}, 100, rng)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if out.ReturnedAmount != 6 {
		t.Fatalf("returned = %d, want 6", out.ReturnedAmount)
	}
	if out.Payoff != -1 {
		t.Fatalf("payoff = %v, want -1", out.Payoff)
	}
}

func TestSettleTrustorZeroInvestment(t *testing.T) {
	rng := &seqRand{ints: []int{2}, floats: []float64{0.5}}

	out, err := SettleTrustor(1, TrustorDecision{Investment: 0}, 100, rng)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if out.ReturnedAmount != 0 || out.Payoff != 0 || out.NewBalance != 100 {
		t.Fatalf("expected neutral round, got %+v", out)
	}
}

func TestSettleTrustorValidation(t *testing.T) {
	rng := &seqRand{}

	if _, err := SettleTrustor(0, TrustorDecision{Investment: 10}, 100, rng); err == nil {
		t.Fatal("expected error for round 0")
	}
	if _, err := SettleTrustor(1, TrustorDecision{Investment: -5}, 100, rng); err == nil {
		t.Fatal("expected error for negative investment")
	}
	if _, err := SettleTrustor(1, TrustorDecision{Investment: 101}, 100, rng); err == nil {
		t.Fatal("expected error for overdraw")
	}
}

func TestSettleTrustorRateWithinDrawnRange(t *testing.T) {
	rng := NewRand()
	for i := 0; i < 50; i++ {
		out, err := SettleTrustor(1, TrustorDecision{Investment: 20}, 100, rng)
		if err != nil {
			t.Fatalf("settle: %v", err)
		}
		p, ok := PersonalityByName(out.Personality)
		if !ok {
			t.Fatalf("unknown personality %q", out.Personality)
		}
		if out.ReturnRate < p.ReturnRateRange[0] || out.ReturnRate >= p.ReturnRateRange[1]+1e-9 {
			t.Fatalf("rate %v outside %v for %s", out.ReturnRate, p.ReturnRateRange, p.Name)
		}
	}
}

func TestSettleTrustee(t *testing.T) {
	out, err := SettleTrustee(3, TrusteeDecision{ReceivedAmount: 30, ReturnAmount: 10}, 100)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if out.PointsKept != 20 || out.Payoff != 20 || out.NewBalance != 120 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestSettleTrusteeReturnAll(t *testing.T) {
	out, err := SettleTrustee(1, TrusteeDecision{ReceivedAmount: 30, ReturnAmount: 30}, 100)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if out.PointsKept != 0 || out.NewBalance != 100 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestSettleTrusteeValidation(t *testing.T) {
	if _, err := SettleTrustee(1, TrusteeDecision{ReceivedAmount: 10, ReturnAmount: 20}, 100); err == nil {
		t.Fatal("expected error for over-return")
	}
	if _, err := SettleTrustee(1, TrusteeDecision{ReceivedAmount: -1, ReturnAmount: 0}, 100); err == nil {
		t.Fatal("expected error for negative received")
	}
	if _, err := SettleTrustee(1, TrusteeDecision{ReceivedAmount: 10, ReturnAmount: -1}, 100); err == nil {
		t.Fatal("expected error for negative return")
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"trustor", "trustee"} {
		if _, err := ParseRole(valid); err != nil {
			t.Fatalf("parse %q: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "receiver", "investor", "Trustor"} {
		if _, err := ParseRole(invalid); err == nil {
			t.Fatalf("expected error for %q", invalid)
		}
	}
}

func TestPersonalityTable(t *testing.T) {
	table := Personalities()
	if len(table) != 4 {
		t.Fatalf("table size = %d, want 4", len(table))
	}

	names := map[string]bool{}
	for _, p := range table {
		names[p.Name] = true
		if p.ReturnRateRange[0] < 0 || p.ReturnRateRange[1] > 1 {
			t.Fatalf("range out of bounds for %s: %v", p.Name, p.ReturnRateRange)
		}
	}
	for _, want := range []string{"Cautious Receiver", "Fair Receiver", "Generous Receiver", "Unpredictable Receiver"} {
		if !names[want] {
			t.Fatalf("missing personality %q", want)
		}
	}

	// Mutating the returned slice must not affect the table.
	table[0].Name = "mutated"
	if _, ok := PersonalityByName("mutated"); ok {
		t.Fatal("table was mutated through the copy")
	}
}
