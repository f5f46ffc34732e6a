package store

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "solutions.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveSolutionTracksPersonalBest(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveSolution(Solution{ChallengeID: 1, Code: "a", CharCount: 20, Passed: true, Timestamp: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSolution(Solution{ChallengeID: 1, Code: "b", CharCount: 10, Passed: true, Timestamp: 2}); err != nil {
		t.Fatal(err)
	}
	// A worse, later solution must not overwrite the personal best.
	if err := s.SaveSolution(Solution{ChallengeID: 1, Code: "c", CharCount: 15, Passed: true, Timestamp: 3}); err != nil {
		t.Fatal(err)
	}

	best, err := s.GetPersonalBest(1)
	if err != nil {
		t.Fatal(err)
	}
	if best == nil || best.Code != "b" || best.CharCount != 10 {
		t.Fatalf("got %+v", best)
	}
}

func TestFailedSolutionDoesNotAffectPersonalBest(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveSolution(Solution{ChallengeID: 2, Code: "bad", CharCount: 5, Passed: false, Timestamp: 1}); err != nil {
		t.Fatal(err)
	}
	best, err := s.GetPersonalBest(2)
	if err != nil {
		t.Fatal(err)
	}
	if best != nil {
		t.Fatalf("want nil personal best, got %+v", best)
	}
}

func TestTotalScoreCountsOnlyBeatPar(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveSolution(Solution{ChallengeID: 1, Code: "a", CharCount: 10, Passed: true, Timestamp: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSolution(Solution{ChallengeID: 2, Code: "b", CharCount: 10, Passed: true, Timestamp: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateBeatPar(1, true); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateBeatPar(2, false); err != nil {
		t.Fatal(err)
	}

	total, err := s.GetTotalScore()
	if err != nil {
		t.Fatal(err)
	}
	if total != 100 {
		t.Fatalf("got %d, want 100", total)
	}
}

func TestGetAllPersonalBestsOrderedByChallengeID(t *testing.T) {
	s := openTestStore(t)
	s.SaveSolution(Solution{ChallengeID: 3, Code: "c", CharCount: 5, Passed: true, Timestamp: 1})
	s.SaveSolution(Solution{ChallengeID: 1, Code: "a", CharCount: 5, Passed: true, Timestamp: 1})

	bests, err := s.GetAllPersonalBests()
	if err != nil {
		t.Fatal(err)
	}
	if len(bests) != 2 || bests[0].ChallengeID != 1 || bests[1].ChallengeID != 3 {
		t.Fatalf("got %+v", bests)
	}
}
