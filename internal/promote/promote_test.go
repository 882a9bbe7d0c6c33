package promote

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shobhit-87labs/opentell/internal/types"
)

func samplePromotable() []types.Learning {
	return []types.Learning{
		{Text: "Always thinks about failure modes first", Classification: types.ThinkingPattern},
		{Text: "Separates concerns across packages", Classification: types.DesignPrinciple},
		{Text: "Writes tests before shipping", Classification: types.QualityStandard},
		{Text: "Uses pnpm", Classification: types.Preference},
		{Text: "Forgets to update the changelog", Classification: types.BehavioralGap},
	}
}

func TestRenderSectionOrdersByFixedSubheadings(t *testing.T) {
	out := RenderSection(samplePromotable())

	order := []string{"## How We Build", "## Architecture", "## Quality Standards", "## Conventions", "## Common Gaps to Watch"}
	last := -1
	for _, heading := range order {
		idx := strings.Index(out, heading)
		if idx == -1 {
			t.Fatalf("missing heading %q in output:\n%s", heading, out)
		}
		if idx < last {
			t.Fatalf("heading %q out of order", heading)
		}
		last = idx
	}
}

func TestRenderSectionOmitsEmptyGroups(t *testing.T) {
	out := RenderSection([]types.Learning{{Text: "Uses pnpm", Classification: types.Preference}})
	if strings.Contains(out, "## How We Build") {
		t.Error("expected empty classification groups omitted")
	}
	if !strings.Contains(out, "## Conventions") {
		t.Error("expected the populated Conventions section present")
	}
}

func TestWriteToFileCreatesFileWithFence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CLAUDE.md")
	if err := WriteToFile(path, samplePromotable()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, startMarker) || !strings.Contains(content, endMarker) {
		t.Fatal("expected fence markers present")
	}
	if !strings.Contains(content, "Uses pnpm") {
		t.Error("expected learning text present")
	}
}

func TestWriteToFileReplacesExistingFenceInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CLAUDE.md")
	initial := "# Project Notes\n\nSome human-written context here.\n\n" +
		startMarker + "\nstale content\n" + endMarker + "\n\nMore human-written context.\n"
	if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteToFile(path, samplePromotable()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if strings.Contains(content, "stale content") {
		t.Error("expected stale fenced content replaced")
	}
	if !strings.Contains(content, "Some human-written context here.") {
		t.Error("expected content before the fence preserved")
	}
	if !strings.Contains(content, "More human-written context.") {
		t.Error("expected content after the fence preserved")
	}
	if !strings.Contains(content, "Uses pnpm") {
		t.Error("expected fresh learning text present")
	}
}

func TestWriteToFileAppendsFenceWhenNoneExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CLAUDE.md")
	if err := os.WriteFile(path, []byte("# Project Notes\n\nHand-written.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteToFile(path, samplePromotable()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "Hand-written.") {
		t.Error("expected existing content preserved")
	}
	if !strings.Contains(content, startMarker) {
		t.Error("expected fence appended")
	}
}
