package catalogue

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalogue(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "challenges.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndFind(t *testing.T) {
	path := writeCatalogue(t, `[
		{
			"id": 1,
			"name": "doubler",
			"description": "double the input",
			"signature": "Int -> Int",
			"difficulty": 1,
			"par": 12,
			"tutorial": true,
			"test_cases": [
				{"input": "5", "expected": "10", "description": "double 5"}
			]
		}
	]`)

	challenges, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(challenges) != 1 {
		t.Fatalf("want 1 challenge, got %d", len(challenges))
	}

	byID, ok := FindByID(challenges, 1)
	if !ok || byID.Name != "doubler" {
		t.Fatalf("got %+v, %v", byID, ok)
	}
	byName, ok := FindByName(challenges, "doubler")
	if !ok || byName.ID != 1 {
		t.Fatalf("got %+v, %v", byName, ok)
	}

	harnessCases := byID.ToHarnessCases()
	if len(harnessCases) != 1 || harnessCases[0].Expected != "10" {
		t.Fatalf("got %+v", harnessCases)
	}
}

func TestFindMissing(t *testing.T) {
	path := writeCatalogue(t, `[]`)
	challenges, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := FindByID(challenges, 99); ok {
		t.Fatal("want not found")
	}
}
