package vesting

import (
	"errors"
	"testing"

	"github.com/xraph/vault/types"
)

func schedule() *Schedule {
	return &Schedule{
		Total:    types.Tokens(1000),
		Start:    0,
		Cliff:    100,
		Duration: 900,
	}
}

func TestReleasableBeforeCliff(t *testing.T) {
	s := schedule()

	for _, now := range []uint64{0, 50, 99} {
		got, err := s.ReleasableAt(now)
		if err != nil {
			t.Fatalf("ReleasableAt(%d): %v", now, err)
		}
		if !got.IsZero() {
			t.Errorf("ReleasableAt(%d) = %s, want 0", now, got)
		}
	}
}

func TestReleasableAtCliffEnd(t *testing.T) {
	s := schedule()

	got, err := s.ReleasableAt(100)
	if err != nil {
		t.Fatalf("ReleasableAt(100): %v", err)
	}
	if !got.IsZero() {
		t.Errorf("ReleasableAt(100) = %s, want 0", got)
	}
}

func TestReleasableMidWindow(t *testing.T) {
	s := schedule()

	// Halfway through the window after the cliff: vested = 1000*450/900 = 500,
	// unreleased = 500, releasable = 500*450/900 = 250.
	got, err := s.ReleasableAt(550)
	if err != nil {
		t.Fatalf("ReleasableAt(550): %v", err)
	}
	if want := types.Tokens(250); got != want {
		t.Errorf("ReleasableAt(550) = %s, want %s", got, want)
	}
}

func TestReleasableMonotoneBetweenReleases(t *testing.T) {
	s := schedule()

	// The untouched-schedule curve rises until the window midpoint; check
	// monotonicity over that range.
	var prev types.Amount
	for now := uint64(100); now <= 550; now += 50 {
		got, err := s.ReleasableAt(now)
		if err != nil {
			t.Fatalf("ReleasableAt(%d): %v", now, err)
		}
		if got < prev {
			t.Fatalf("ReleasableAt(%d) = %s decreased from %s", now, got, prev)
		}
		prev = got
	}
}

func TestReleasableResetsAfterRelease(t *testing.T) {
	s := schedule()

	amount, err := s.ReleasableAt(550)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.MarkReleased(amount, 550); err != nil {
		t.Fatal(err)
	}

	// Second query at the same instant prorates over zero elapsed time.
	got, err := s.ReleasableAt(550)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Errorf("ReleasableAt(550) after release = %s, want 0", got)
	}
}

func TestReleasablePastWindowUnderflows(t *testing.T) {
	s := schedule()

	// Past start+cliff+duration the vested amount exceeds Total and the
	// remainder subtraction underflows rather than wrapping.
	if _, err := s.ReleasableAt(1001); !errors.Is(err, types.ErrUnderflow) {
		t.Errorf("ReleasableAt(1001) err = %v, want ErrUnderflow", err)
	}
}

func TestReleasedNeverExceedsTotal(t *testing.T) {
	s := schedule()

	var sum types.Amount
	for _, now := range []uint64{200, 400, 600, 800, 1000} {
		amount, err := s.ReleasableAt(now)
		if err != nil {
			t.Fatalf("ReleasableAt(%d): %v", now, err)
		}
		if amount.IsZero() {
			continue
		}
		if err := s.MarkReleased(amount, now); err != nil {
			t.Fatalf("MarkReleased(%d): %v", now, err)
		}
		sum += amount
	}

	if sum > s.Total {
		t.Errorf("cumulative released %s exceeds total %s", sum, s.Total)
	}
	if s.Released != sum {
		t.Errorf("Released = %s, want %s", s.Released, sum)
	}
}

func TestMarkReleasedKeepsLastReleaseMonotone(t *testing.T) {
	s := schedule()
	s.LastRelease = 600

	if err := s.MarkReleased(types.Tokens(1), 550); err != nil {
		t.Fatal(err)
	}
	if s.LastRelease != 600 {
		t.Errorf("LastRelease = %d, want 600", s.LastRelease)
	}

	if err := s.MarkReleased(types.Tokens(1), 700); err != nil {
		t.Fatal(err)
	}
	if s.LastRelease != 700 {
		t.Errorf("LastRelease = %d, want 700", s.LastRelease)
	}
}

func TestCliffEndOverflow(t *testing.T) {
	s := &Schedule{
		Total:    types.Tokens(1),
		Start:    ^uint64(0),
		Cliff:    1,
		Duration: 10,
	}
	if _, err := s.CliffEnd(); !errors.Is(err, types.ErrOverflow) {
		t.Errorf("CliffEnd err = %v, want ErrOverflow", err)
	}
}
