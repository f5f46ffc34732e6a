// Package store persists solution history and personal bests to SQLite,
// grounded on the original implementation's storage/mod.rs. It is the
// external "SQLite-backed scoring" collaborator spec.md §1 mentions without
// specifying.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Solution is one recorded attempt at a challenge.
type Solution struct {
	ChallengeID int
	Code        string
	CharCount   int
	Passed      bool
	Timestamp   int64
}

// PersonalBest is the lowest char count recorded for a passing solution.
type PersonalBest struct {
	ChallengeID int
	Code        string
	CharCount   int
	BeatPar     bool
}

// Store wraps a SQLite connection holding the solutions and personal_bests
// tables.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and ensures its
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS solutions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		challenge_id INTEGER NOT NULL,
		code TEXT NOT NULL,
		char_count INTEGER NOT NULL,
		passed INTEGER NOT NULL,
		timestamp INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("store: migrate solutions: %w", err)
	}
	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS personal_bests (
		challenge_id INTEGER PRIMARY KEY,
		code TEXT NOT NULL,
		char_count INTEGER NOT NULL,
		beat_par INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("store: migrate personal_bests: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// SaveSolution records one attempt and, if it passed and beats the current
// personal best, updates personal_bests.
func (s *Store) SaveSolution(sol Solution) error {
	_, err := s.db.Exec(
		`INSERT INTO solutions (challenge_id, code, char_count, passed, timestamp) VALUES (?, ?, ?, ?, ?)`,
		sol.ChallengeID, sol.Code, sol.CharCount, boolToInt(sol.Passed), sol.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("store: save solution: %w", err)
	}
	if sol.Passed {
		return s.updatePersonalBest(sol)
	}
	return nil
}

func (s *Store) updatePersonalBest(sol Solution) error {
	best, err := s.GetPersonalBest(sol.ChallengeID)
	if err != nil {
		return err
	}
	if best != nil && sol.CharCount >= best.CharCount {
		return nil
	}
	beatPar := 0
	if best != nil {
		beatPar = boolToInt(best.BeatPar)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO personal_bests (challenge_id, code, char_count, beat_par) VALUES (?, ?, ?, ?)`,
		sol.ChallengeID, sol.Code, sol.CharCount, beatPar,
	)
	if err != nil {
		return fmt.Errorf("store: update personal best: %w", err)
	}
	return nil
}

// GetPersonalBest returns the current personal best for a challenge, or nil
// if none has been recorded.
func (s *Store) GetPersonalBest(challengeID int) (*PersonalBest, error) {
	row := s.db.QueryRow(
		`SELECT challenge_id, code, char_count, beat_par FROM personal_bests WHERE challenge_id = ?`,
		challengeID,
	)
	var pb PersonalBest
	var beatPar int
	if err := row.Scan(&pb.ChallengeID, &pb.Code, &pb.CharCount, &beatPar); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("store: get personal best: %w", err)
	}
	pb.BeatPar = beatPar != 0
	return &pb, nil
}

// UpdateBeatPar marks whether the recorded personal best for a challenge
// beats its par score, once the catalogue's par is known to the caller.
func (s *Store) UpdateBeatPar(challengeID int, beatPar bool) error {
	_, err := s.db.Exec(`UPDATE personal_bests SET beat_par = ? WHERE challenge_id = ?`, boolToInt(beatPar), challengeID)
	if err != nil {
		return fmt.Errorf("store: update beat par: %w", err)
	}
	return nil
}

// GetAllPersonalBests returns every recorded personal best, ordered by
// challenge id.
func (s *Store) GetAllPersonalBests() ([]PersonalBest, error) {
	rows, err := s.db.Query(`SELECT challenge_id, code, char_count, beat_par FROM personal_bests ORDER BY challenge_id`)
	if err != nil {
		return nil, fmt.Errorf("store: get all personal bests: %w", err)
	}
	defer rows.Close()

	var out []PersonalBest
	for rows.Next() {
		var pb PersonalBest
		var beatPar int
		if err := rows.Scan(&pb.ChallengeID, &pb.Code, &pb.CharCount, &beatPar); err != nil {
			return nil, fmt.Errorf("store: scan personal best: %w", err)
		}
		pb.BeatPar = beatPar != 0
		out = append(out, pb)
	}
	return out, rows.Err()
}

// GetTotalScore sums 100 points per challenge whose personal best beats
// par.
func (s *Store) GetTotalScore() (int64, error) {
	bests, err := s.GetAllPersonalBests()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, b := range bests {
		if b.BeatPar {
			total += 100
		}
	}
	return total, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
