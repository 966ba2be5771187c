package extractor

import (
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/flowconfig"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/schema"
	"go.uber.org/zap"
)

// Extractor populates course-design fields from user utterances by keyword
// matching. Extraction is pure and total: re-running it over the same log
// yields byte-for-byte identical fields, and an utterance matching no
// keyword contributes nothing.
//
// Single-valued fields are last-match-wins in chronological order, so a
// later message can override an earlier inferred value. Multi-valued fields
// accumulate in insertion order with duplicates suppressed.
type Extractor struct {
	rules []flowconfig.ExtractionRule
}

func New(rules []flowconfig.ExtractionRule) *Extractor {
	return &Extractor{rules: rules}
}

// Apply runs every rule against one user utterance, mutating fields in
// place. Malformed rules are skipped, never fatal.
func (e *Extractor) Apply(fields schema.Fields, text string) {
	lower := strings.ToLower(text)

	for _, r := range e.rules {
		if r.Field == "" || r.Keyword == "" || r.Value == "" {
			logger.Error("skipping malformed extraction rule",
				zap.String("field", r.Field), zap.String("keyword", r.Keyword))
			continue
		}

		if !strings.Contains(lower, strings.ToLower(r.Keyword)) {
			continue
		}

		if r.Multi {
			fields.Add(r.Field, r.Value)
		} else {
			fields.Set(r.Field, r.Value)
		}
	}
}

// Extract replays the full utterance log into a fresh field record. Only
// user utterances participate. Because Apply is deterministic and Set is
// last-match-wins, a full replay reproduces exactly the fields accumulated
// turn by turn.
func (e *Extractor) Extract(utterances []schema.Utterance) schema.Fields {
	fields := schema.Fields{}
	for _, u := range utterances {
		if u.Speaker != schema.SpeakerUser {
			continue
		}
		e.Apply(fields, u.Text)
	}
	return fields
}
