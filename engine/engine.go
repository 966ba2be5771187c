package engine

import (
	"context"
	"time"

	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/classifier"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/composer"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/extractor"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/flow"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/flowconfig"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/schema"
)

// Engine is the conversation progression core. It is stateless across
// calls: all mutable conversation state lives on the record the caller
// hands in, so sessions can be processed in parallel under an external
// per-session lock.
type Engine struct {
	cfg        *flowconfig.Config
	sequence   *flow.Sequence
	classifier *classifier.Classifier
	extractor  *extractor.Extractor
	composer   *composer.Composer
}

// Welcome appends and returns the configured opening message for a fresh
// record.
func (e *Engine) Welcome(record *schema.ConversationRecord, now time.Time) string {
	record.AddAssistantUtterance(e.cfg.Welcome, now.UnixMilli())
	return e.cfg.Welcome
}

// Sequence exposes the compiled topic agenda, e.g. for progress display.
func (e *Engine) Sequence() *flow.Sequence {
	return e.sequence
}

// ProcessMessage runs one conversation turn: sanitize, classify, extract,
// advance the topic state machine, and compose the reply. It never fails
// for well-formed input — every path produces some outbound message.
// Empty or whitespace-only messages are the caller's problem; they are
// rejected before reaching the core.
func (e *Engine) ProcessMessage(ctx context.Context, record *schema.ConversationRecord, message string, now time.Time) (*schema.ConversationRecord, string) {
	ts := now.UnixMilli()

	sanitized := classifier.Sanitize(message)
	record.AddUserUtterance(sanitized, ts)
	record.UserTurns++

	// A terminal record accepts messages but no further progression.
	if record.Terminal {
		outbound := e.cfg.Closing
		record.AddAssistantUtterance(outbound, ts)
		return record, outbound
	}

	verdict := e.classifier.Classify(sanitized)

	// Safety strictly dominates flow control: violations short-circuit
	// extraction and progression entirely.
	if verdict.IsViolation() {
		outbound := e.composer.ComposeRedirect(verdict.Violation)
		record.AddAssistantUtterance(outbound, ts)
		return record, outbound
	}

	e.extractor.Apply(record.Fields, sanitized)

	transition := e.sequence.Advance(record, verdict)
	analysis := classifier.Analyze(sanitized, record.Utterances)

	outbound := e.composer.Compose(ctx, transition, analysis, record)
	record.AddAssistantUtterance(outbound, ts)
	return record, outbound
}

// Replay re-extracts fields from the full utterance log. Used for
// consistency checks and session recovery; the result must equal the
// fields accumulated turn by turn.
func (e *Engine) Replay(record *schema.ConversationRecord) schema.Fields {
	return e.extractor.Extract(record.Utterances)
}
