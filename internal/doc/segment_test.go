package doc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSections_HeadingHierarchy(t *testing.T) {
	input := `# Kargo Politikaları

Genel bilgiler.

## Standart Teslimat Süresi

Standart gönderiler 2-4 iş günü içinde teslim edilir.

### Büyük Şehirler

İstanbul ve Ankara için teslimat genellikle 2 gündür.

## Normal İade Koşulları

Teslimattan sonra 14 gün içinde iade talebi oluşturabilirsiniz.
`
	sections := ParseSections(input, "policies")

	if len(sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(sections))
	}

	if sections[0].Title != "Kargo Politikaları" {
		t.Errorf("section[0] title: got %q", sections[0].Title)
	}
	if sections[0].Level != 1 {
		t.Errorf("section[0] level: expected 1, got %d", sections[0].Level)
	}
	if sections[0].Content != "Genel bilgiler." {
		t.Errorf("section[0] content: got %q", sections[0].Content)
	}

	sub := sections[2]
	if sub.Title != "Büyük Şehirler" {
		t.Fatalf("section[2] title: got %q", sub.Title)
	}
	wantPath := []string{"Kargo Politikaları", "Standart Teslimat Süresi", "Büyük Şehirler"}
	if len(sub.Path) != len(wantPath) {
		t.Fatalf("section[2] path: expected %v, got %v", wantPath, sub.Path)
	}
	for i := range wantPath {
		if sub.Path[i] != wantPath[i] {
			t.Errorf("section[2] path[%d]: expected %q, got %q", i, wantPath[i], sub.Path[i])
		}
	}

	// The h2 after an h3 pops back to depth 2 under the h1.
	last := sections[3]
	if last.Title != "Normal İade Koşulları" {
		t.Fatalf("section[3] title: got %q", last.Title)
	}
	if got := last.FullTitle(); got != "Kargo Politikaları / Normal İade Koşulları" {
		t.Errorf("section[3] full title: got %q", got)
	}
}

func TestParseSections_LineOffsets(t *testing.T) {
	input := "# Birinci\n\nilk gövde\n\n# İkinci\n\nikinci gövde\n"
	sections := ParseSections(input, "doc")

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].StartLine != 1 || sections[0].EndLine != 4 {
		t.Errorf("section[0] span: expected [1,4], got [%d,%d]", sections[0].StartLine, sections[0].EndLine)
	}
	// Final section is closed by the end-of-file flush at the line count.
	if sections[1].StartLine != 5 || sections[1].EndLine != 7 {
		t.Errorf("section[1] span: expected [5,7], got [%d,%d]", sections[1].StartLine, sections[1].EndLine)
	}
}

func TestParseSections_SkipsEmptySections(t *testing.T) {
	input := `# Boş Bölüm

## Dolu Bölüm

içerik
`
	sections := ParseSections(input, "doc")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != "Dolu Bölüm" {
		t.Errorf("expected the non-empty section, got %q", sections[0].Title)
	}
}

func TestParseSections_BodyBeforeFirstHeadingIsDropped(t *testing.T) {
	input := "serbest metin\n\n# Başlık\n\ngövde\n"
	sections := ParseSections(input, "doc")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if strings.Contains(sections[0].Content, "serbest metin") {
		t.Errorf("preamble text leaked into section content: %q", sections[0].Content)
	}
}

// A line that is only marker characters still opens a heading, with an empty
// title. Documented quirk: the content below it is kept under the empty title
// rather than treated as body of the previous section.
func TestParseSections_MarkerOnlyHeadingQuirk(t *testing.T) {
	input := "# Başlık\n\ngövde\n\n##\n\nbaşlıksız gövde\n"
	sections := ParseSections(input, "doc")

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[1].Title != "" {
		t.Errorf("expected empty title, got %q", sections[1].Title)
	}
	if sections[1].Content != "başlıksız gövde" {
		t.Errorf("expected quirk section content, got %q", sections[1].Content)
	}
}

func TestLoadDocuments_MissingFolder(t *testing.T) {
	_, err := LoadDocuments(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrFolderNotFound) {
		t.Fatalf("expected ErrFolderNotFound, got %v", err)
	}
}

func TestLoadDocuments_OrderAndDocumentIDs(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"Teslimat Politikası.md": "# Teslimat\n\nteslimat gövdesi\n",
		"a_iade.md":              "# İade\n\niade gövdesi\n",
		"notes.txt":              "ignored\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	sections, err := LoadDocuments(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}

	// Lexicographic byte order puts the uppercase filename first; non-md
	// files are ignored. Document ids are lowercased with underscores.
	if sections[0].DocumentID != "teslimat_politikası" {
		t.Errorf("section[0] document: expected %q, got %q", "teslimat_politikası", sections[0].DocumentID)
	}
	if sections[1].DocumentID != "a_iade" {
		t.Errorf("section[1] document: expected %q, got %q", "a_iade", sections[1].DocumentID)
	}
}
