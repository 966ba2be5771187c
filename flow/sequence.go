package flow

import (
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/flowconfig"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/schema"
	"go.uber.org/zap"
)

// Predicate decides whether a topic is satisfied by the extracted fields.
// Predicates must be pure; a panicking predicate is treated as unsatisfied.
type Predicate func(schema.Fields) bool

// Topic is one unit of the fixed conversation agenda.
type Topic struct {
	Name        string
	Predicate   Predicate
	Prompts     []string
	Celebration string

	// relevantFields are the fields this topic's predicate reads; used
	// for the minimum-breadth early exit.
	relevantFields []string
}

// Sequence is the ordered topic agenda plus the global early-exit limits.
// It holds no per-conversation state: everything mutable lives on the
// record, so a single Sequence serves all sessions.
type Sequence struct {
	topics []Topic
	limits flowconfig.Limits
}

// NewSequence compiles the configured topics into a runnable sequence.
// An empty topic list is a configuration error, reported here and never
// recoverable at runtime.
func NewSequence(cfg *flowconfig.Config) (*Sequence, error) {
	if cfg == nil || len(cfg.Topics) == 0 {
		return nil, fmt.Errorf("flow: topic sequence is empty")
	}

	topics := make([]Topic, 0, len(cfg.Topics))
	for _, tc := range cfg.Topics {
		topics = append(topics, Topic{
			Name:           tc.Name,
			Predicate:      compilePredicate(tc),
			Prompts:        tc.Prompts,
			Celebration:    tc.Celebration,
			relevantFields: append(append([]string{}, tc.RequireAll...), tc.RequireAny...),
		})
	}

	return &Sequence{topics: topics, limits: cfg.Limits}, nil
}

// compilePredicate builds the completion check from the declarative
// requirements: all RequireAll fields set, and at least one RequireAny
// field set when RequireAny is non-empty.
func compilePredicate(tc flowconfig.TopicConfig) Predicate {
	requireAll := append([]string{}, tc.RequireAll...)
	requireAny := append([]string{}, tc.RequireAny...)

	return func(f schema.Fields) bool {
		for _, name := range requireAll {
			if !f.Has(name) {
				return false
			}
		}
		if len(requireAny) == 0 {
			return true
		}
		for _, name := range requireAny {
			if f.Has(name) {
				return true
			}
		}
		return false
	}
}

func (s *Sequence) Len() int {
	return len(s.topics)
}

// Topic looks up a topic definition by name.
func (s *Sequence) Topic(name string) (Topic, bool) {
	for _, t := range s.topics {
		if t.Name == name {
			return t, true
		}
	}
	return Topic{}, false
}

// ActiveIndex returns the index of the first topic not yet completed, or
// Len() when every topic is done. The active topic is always derived from
// the record, never stored.
func (s *Sequence) ActiveIndex(r *schema.ConversationRecord) int {
	for i, t := range s.topics {
		if !r.TopicCompleted(t.Name) {
			return i
		}
	}
	return len(s.topics)
}

// satisfied evaluates a topic predicate, converting panics into "not
// satisfied" so a bad predicate can never crash a turn.
func (s *Sequence) satisfied(t Topic, fields schema.Fields) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("topic predicate panicked, treating as unsatisfied",
				zap.String("topic", t.Name), zap.Any("panic", rec))
			ok = false
		}
	}()

	if t.Predicate == nil {
		return false
	}
	return t.Predicate(fields)
}

// breadth counts topics whose relevant fields hold at least one value.
func (s *Sequence) breadth(fields schema.Fields) int {
	n := 0
	for _, t := range s.topics {
		for _, name := range t.relevantFields {
			if fields.Has(name) {
				n++
				break
			}
		}
	}
	return n
}

// peekPrompt returns the next unused prompt for a topic without moving the
// record's cursor. Once every prompt has been asked the list wraps around.
func peekPrompt(r *schema.ConversationRecord, t Topic) string {
	if len(t.Prompts) == 0 {
		return ""
	}
	return t.Prompts[r.PromptCursor[t.Name]%len(t.Prompts)]
}

// MarkPromptAsked advances a topic's prompt cursor. Called only when the
// fixed prompt was actually sent to the user: a turn answered with an
// encouragement or a generated question leaves the prompt unused, so it is
// still the next one up.
func (s *Sequence) MarkPromptAsked(r *schema.ConversationRecord, topicName string) {
	t, ok := s.Topic(topicName)
	if !ok || len(t.Prompts) == 0 {
		return
	}
	if r.PromptCursor == nil {
		r.PromptCursor = map[string]int{}
	}
	r.PromptCursor[t.Name]++
}
