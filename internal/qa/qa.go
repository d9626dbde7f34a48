package qa

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cargohub/cargokb/internal/doc"
)

var (
	// ErrHeadingNotFound is returned when a simple blueprint references a
	// heading absent from the corpus.
	ErrHeadingNotFound = errors.New("heading not found")
	// ErrEmptyAnswer is returned when none of a complex blueprint's headings
	// resolve, leaving nothing to compose an answer from.
	ErrEmptyAnswer = errors.New("composed answer is empty")
)

// Item is one synthetic question-answer record.
type Item struct {
	ID             string
	Question       string
	Answer         string
	Type           string // simple, complex or negative
	SourceSections []string
	SourceChunks   []string
	Split          string // train, dev or test
}

// normalizeHeading case-folds a heading for lookup. The Turkish dotted
// capital İ lowercases to "i" plus a combining dot; the fold collapses that
// to a plain "i" so construction and query agree regardless of locale.
func normalizeHeading(value string) string {
	return strings.ReplaceAll(strings.ToLower(value), "i̇", "i")
}

// collapseWhitespace flattens runs of whitespace into single spaces.
func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func sectionLookup(sections []doc.Section) map[string]doc.Section {
	lookup := make(map[string]doc.Section, len(sections))
	for _, section := range sections {
		lookup[normalizeHeading(section.Title)] = section
	}
	return lookup
}

func chunkLookup(chunks []doc.Chunk) map[string][]string {
	mapping := make(map[string][]string)
	for _, chunk := range chunks {
		heading := normalizeHeading(chunk.Metadata.Heading)
		if heading == "" {
			continue
		}
		mapping[heading] = append(mapping[heading], chunk.ChunkID)
	}
	return mapping
}

// GenerateQuestions parses the corpus under docDir, chunks it with default
// parameters, and expands the blueprint tables into QA items. The chunk list
// is returned alongside the items for downstream indexing. Output is
// deterministic for a fixed corpus.
func GenerateQuestions(docDir string) ([]Item, []doc.Chunk, error) {
	sections, err := doc.LoadDocuments(docDir)
	if err != nil {
		return nil, nil, err
	}
	chunks := doc.MakeChunks(sections, doc.DefaultChunkConfig())

	lookup := sectionLookup(sections)
	chunkMap := chunkLookup(chunks)

	var items []Item

	for _, bp := range simpleBlueprints {
		section, ok := lookup[bp.Heading]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrHeadingNotFound, bp.Heading)
		}
		answer := bp.AnswerOverride
		if answer == "" {
			answer = collapseWhitespace(section.Content)
		}
		items = appendVariants(items, bp.ID, bp.Questions, bp.Split, Item{
			Answer:         answer,
			Type:           "simple",
			SourceSections: append([]string{}, section.Path...),
			SourceChunks:   append([]string{}, chunkMap[bp.Heading]...),
		})
	}

	for _, bp := range complexBlueprints {
		var parts []string
		sourceSections := []string{}
		sourceChunks := []string{}
		for _, heading := range bp.Headings {
			section, ok := lookup[heading]
			if !ok {
				continue
			}
			parts = append(parts, collapseWhitespace(section.Content))
			sourceSections = append(sourceSections, section.Path...)
			sourceChunks = append(sourceChunks, chunkMap[heading]...)
		}
		answer := strings.Join(parts, " ")
		if answer == "" {
			return nil, nil, fmt.Errorf("%w: none of %v resolved", ErrEmptyAnswer, bp.Headings)
		}
		items = appendVariants(items, bp.ID, bp.Questions, bp.Split, Item{
			Answer:         answer,
			Type:           "complex",
			SourceSections: sourceSections,
			SourceChunks:   sourceChunks,
		})
	}

	for _, bp := range negativeBlueprints {
		items = appendVariants(items, bp.ID, bp.Questions, bp.Split, Item{
			Answer:         NegativeAnswer,
			Type:           "negative",
			SourceSections: []string{},
			SourceChunks:   []string{},
		})
	}

	return items, chunks, nil
}

// appendVariants emits one item per question variant. Variant 0 keeps the
// blueprint's split; every later variant is forced into the train split.
func appendVariants(items []Item, id string, questions []string, split string, base Item) []Item {
	for idx, question := range questions {
		item := base
		item.ID = fmt.Sprintf("%s#%d", id, idx)
		item.Question = question
		if idx == 0 {
			item.Split = split
		} else {
			item.Split = "train"
		}
		items = append(items, item)
	}
	return items
}
