// Package catalogue loads the static challenge records described in
// spec §6.1, lifted from the original implementation's challenges/mod.rs.
package catalogue

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/funvibe/golf/internal/harness"
)

// TestCase is one literal input/expected-output pair, in the language's
// own surface syntax (§6.1).
type TestCase struct {
	Input       string `json:"input"`
	Expected    string `json:"expected"`
	Description string `json:"description"`
}

// Challenge is the external record consumed by the harness (§6.1).
type Challenge struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Signature   string     `json:"signature"`
	Difficulty  int        `json:"difficulty"`
	Par         int        `json:"par"`
	Tutorial    bool       `json:"tutorial"`
	Hint        string     `json:"hint,omitempty"`
	TestCases   []TestCase `json:"test_cases"`
}

// ToHarnessCases adapts a Challenge's test cases to harness.TestCase.
func (c Challenge) ToHarnessCases() []harness.TestCase {
	out := make([]harness.TestCase, len(c.TestCases))
	for i, tc := range c.TestCases {
		out[i] = harness.TestCase{Input: tc.Input, Expected: tc.Expected, Description: tc.Description}
	}
	return out
}

// Load parses a JSON catalogue file into an ordered slice of Challenges.
func Load(path string) ([]Challenge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalogue: %w", err)
	}
	var challenges []Challenge
	if err := json.Unmarshal(data, &challenges); err != nil {
		return nil, fmt.Errorf("catalogue: %w", err)
	}
	return challenges, nil
}

// FindByID returns the challenge with the given id, or false if absent.
func FindByID(challenges []Challenge, id int) (Challenge, bool) {
	for _, c := range challenges {
		if c.ID == id {
			return c, true
		}
	}
	return Challenge{}, false
}

// FindByName returns the challenge with the given name, or false if absent.
func FindByName(challenges []Challenge, name string) (Challenge, bool) {
	for _, c := range challenges {
		if c.Name == name {
			return c, true
		}
	}
	return Challenge{}, false
}
