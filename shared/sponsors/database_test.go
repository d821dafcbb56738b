package sponsors

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fixtureHeader = "company_id,name,category,niches,description,ideal_creator,audience,pain_point,why_sponsor,pricing_range,website,funding,region"

func writeFixture(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sponsors.csv")
	content := fixtureHeader + "\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func validRow(id, name string) string {
	return id + "," + name + ",DevTools,\"coding, ai\",Cloud IDE,Coding YouTubers,Developers,Slow setups,Reach devs,$2k-$8k,https://example.com,Series A,Global"
}

func TestLoad(t *testing.T) {
	path := writeFixture(t,
		validRow("acme", "Acme"),
		validRow("globex", "Globex"),
	)

	db, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if db.Len() != 2 {
		t.Errorf("Len() = %d, want 2", db.Len())
	}

	c, ok := db.Get("acme")
	if !ok {
		t.Fatal("Get(acme) not found")
	}
	if c.Name != "Acme" {
		t.Errorf("Name = %s, want Acme", c.Name)
	}
	if c.Niches != "coding, ai" {
		t.Errorf("Niches = %q, want %q", c.Niches, "coding, ai")
	}

	// Stored order must follow file order
	companies := db.Companies()
	if companies[0].ID != "acme" || companies[1].ID != "globex" {
		t.Errorf("Companies() order = [%s %s], want [acme globex]", companies[0].ID, companies[1].ID)
	}
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "MissingColumn",
			content: "company_id,name\nacme,Acme\n",
		},
		{
			name:    "EmptyField",
			content: fixtureHeader + "\nacme,Acme,DevTools,coding,Cloud IDE,,Developers,Slow setups,Reach devs,$2k,https://example.com,Series A,Global\n",
		},
		{
			name:    "DuplicateID",
			content: fixtureHeader + "\n" + validRow("acme", "Acme") + "\n" + validRow("acme", "Acme Again") + "\n",
		},
		{
			name:    "ShortRow",
			content: fixtureHeader + "\nacme,Acme,DevTools\n",
		},
		{
			name:    "NoRows",
			content: fixtureHeader + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sponsors.csv")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write fixture: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() expected error, got nil")
			}
		})
	}
}

func TestLoadFileNotFound(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestFormatForPrompt(t *testing.T) {
	path := writeFixture(t,
		validRow("acme", "Acme"),
		validRow("globex", "Globex"),
		validRow("initech", "Initech"),
	)

	db, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	text := db.FormatForPrompt()
	blocks := strings.Split(text, "\n\n")
	if len(blocks) != db.Len() {
		t.Fatalf("FormatForPrompt() yields %d blocks, want %d", len(blocks), db.Len())
	}

	wantFields := []string{
		"Company: ", "Category: ", "Niches: ", "What they do: ",
		"Ideal creators: ", "Audience: ", "Pain point solved: ",
		"Why they sponsor: ", "Typical pricing: ", "Region: ", "Website: ",
	}
	for i, block := range blocks {
		lines := strings.Split(block, "\n")
		if len(lines) != len(wantFields) {
			t.Fatalf("block %d has %d lines, want %d", i, len(lines), len(wantFields))
		}
		for j, prefix := range wantFields {
			if !strings.HasPrefix(lines[j], prefix) {
				t.Errorf("block %d line %d = %q, want prefix %q", i, j, lines[j], prefix)
			}
		}
	}

	// Blocks follow stored order
	if !strings.Contains(blocks[0], "Company: Acme") || !strings.Contains(blocks[2], "Company: Initech") {
		t.Error("FormatForPrompt() blocks not in stored order")
	}

	// Idempotence: formatting twice yields byte-identical output
	if again := db.FormatForPrompt(); again != text {
		t.Error("FormatForPrompt() is not idempotent")
	}
}
