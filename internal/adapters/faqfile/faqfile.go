// Package faqfile reads the FAQ from a text file of alternating question and
// answer lines.
package faqfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/phenrril/bfguitars/internal/domain"
)

// Source re-reads the file on every call so edits show up without a restart.
type Source struct {
	path string
}

func New(path string) *Source { return &Source{path: path} }

func (s *Source) Entries(ctx context.Context) ([]domain.FAQEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read faq: %w", err)
	}
	return Pair(string(b)), nil
}

// Pair turns consecutive lines into question/answer entries. Trailing blank
// lines are ignored; a final question without an answer line gets an empty
// answer.
func Pair(contents string) []domain.FAQEntry {
	contents = strings.ReplaceAll(contents, "\r\n", "\n")
	lines := strings.Split(strings.TrimRight(contents, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return []domain.FAQEntry{}
	}
	out := make([]domain.FAQEntry, 0, (len(lines)+1)/2)
	for i := 0; i < len(lines); i += 2 {
		e := domain.FAQEntry{Q: lines[i]}
		if i+1 < len(lines) {
			e.A = lines[i+1]
		}
		out = append(out, e)
	}
	return out
}
