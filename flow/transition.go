package flow

import (
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/schema"
)

// ExitReason records why a conversation terminated early, if it did.
type ExitReason string

const (
	ExitNone              ExitReason = ""
	ExitCompletionSignal  ExitReason = "completion_signal"
	ExitFrustrationSignal ExitReason = "frustration_signal"
	ExitMaxTurns          ExitReason = "max_turns"
	ExitMinBreadth        ExitReason = "min_breadth"
)

// Transition is the state machine's decision for one turn. The composer
// turns it into an outbound message.
type Transition struct {
	// CompletedTopics lists topics credited this turn, in sequence order.
	// More than one appears when earlier answers already satisfied later
	// topics (lazy crediting cascades without asking their questions).
	CompletedTopics []string

	// ActiveTopic is the topic now awaiting an answer; empty once all
	// topics are done or the conversation terminated.
	ActiveTopic string

	// Prompt is the next unused question for the active topic. The cursor
	// only moves when the composer actually asks it (MarkPromptAsked).
	Prompt string

	Terminal  bool
	Summarize bool
	EarlyExit ExitReason
}

// Completed reports whether any topic was credited this turn.
func (t Transition) Completed() bool {
	return len(t.CompletedTopics) > 0
}

// Advance runs the progression algorithm for one user message,
// post-extraction and pre-response. It mutates only the record it is
// handed: topicsCompleted grows monotonically, the prompt cursor moves,
// and terminal latches once set.
func (s *Sequence) Advance(r *schema.ConversationRecord, verdict schema.Verdict) Transition {
	if r.Terminal {
		return Transition{Terminal: true}
	}

	tr := Transition{}

	// Credit the active topic, then cascade through any later topics whose
	// predicates already hold from volunteered answers. Each re-check is
	// lazy: a later topic is only evaluated once it becomes active, so no
	// topic is ever skipped.
	for i := s.ActiveIndex(r); i < len(s.topics); i++ {
		t := s.topics[i]
		if !s.satisfied(t, r.Fields) {
			break
		}
		r.TopicsCompleted = append(r.TopicsCompleted, t.Name)
		tr.CompletedTopics = append(tr.CompletedTopics, t.Name)
	}

	// Global early exit short-circuits remaining topics: explicit user
	// signal, turn budget, or enough breadth across the agenda.
	switch {
	case verdict.Kind == schema.VerdictCompletionSignal:
		tr.EarlyExit = ExitCompletionSignal
	case verdict.Kind == schema.VerdictFrustrationSignal:
		tr.EarlyExit = ExitFrustrationSignal
	case s.limits.MaxUserTurns > 0 && r.UserTurns >= s.limits.MaxUserTurns:
		tr.EarlyExit = ExitMaxTurns
	case s.limits.MinTopicBreadth > 0 && s.breadth(r.Fields) >= s.limits.MinTopicBreadth:
		tr.EarlyExit = ExitMinBreadth
	}

	active := s.ActiveIndex(r)
	if active >= len(s.topics) || tr.EarlyExit != ExitNone {
		r.Terminal = true
		r.Status = schema.StatusCompleted
		tr.Terminal = true
		tr.Summarize = true
		return tr
	}

	tr.ActiveTopic = s.topics[active].Name
	tr.Prompt = peekPrompt(r, s.topics[active])
	return tr
}
