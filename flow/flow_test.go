package flow

import (
	"testing"

	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/flowconfig"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/schema"
	"github.com/stretchr/testify/assert"
)

func testConfig() *flowconfig.Config {
	return &flowconfig.Config{
		Topics: []flowconfig.TopicConfig{
			{
				Name:       "learner_understanding",
				RequireAny: []string{"learnerType"},
				Prompts:    []string{"who are your learners?", "tell me about your audience"},
			},
			{
				Name:       "ai_tools",
				RequireAny: []string{"aiTools"},
				Prompts:    []string{"which tools?"},
			},
			{
				Name:       "assessment",
				RequireAny: []string{"assessmentMethods"},
				Prompts:    []string{"how will you assess?"},
			},
		},
		Limits: flowconfig.Limits{MaxUserTurns: 0, MinTopicBreadth: 0},
	}
}

func TestNewSequence_EmptyIsConfigurationError(t *testing.T) {
	_, err := NewSequence(&flowconfig.Config{})
	assert.Error(t, err)

	_, err = NewSequence(nil)
	assert.Error(t, err)
}

func TestActiveIndex_Derived(t *testing.T) {
	seq, err := NewSequence(testConfig())
	assert.NoError(t, err)

	r := schema.NewConversationRecord("s1")
	assert.Equal(t, 0, seq.ActiveIndex(r))

	r.TopicsCompleted = []string{"learner_understanding"}
	assert.Equal(t, 1, seq.ActiveIndex(r))

	r.TopicsCompleted = []string{"learner_understanding", "ai_tools", "assessment"}
	assert.Equal(t, 3, seq.ActiveIndex(r))
}

func TestAdvance_UnsatisfiedStaysActive(t *testing.T) {
	seq, _ := NewSequence(testConfig())
	r := schema.NewConversationRecord("s1")
	r.UserTurns = 1

	tr := seq.Advance(r, schema.Clean())

	assert.False(t, tr.Terminal)
	assert.Empty(t, tr.CompletedTopics)
	assert.Equal(t, "learner_understanding", tr.ActiveTopic)
	assert.Equal(t, "who are your learners?", tr.Prompt)
}

func TestAdvance_PromptsRotateWithoutRepeat(t *testing.T) {
	seq, _ := NewSequence(testConfig())
	r := schema.NewConversationRecord("s1")

	first := seq.Advance(r, schema.Clean())
	assert.Equal(t, "who are your learners?", first.Prompt)

	// the cursor only moves once the prompt is actually asked; a turn
	// answered some other way leaves it next in line
	unmoved := seq.Advance(r, schema.Clean())
	assert.Equal(t, "who are your learners?", unmoved.Prompt)

	seq.MarkPromptAsked(r, "learner_understanding")
	second := seq.Advance(r, schema.Clean())
	assert.Equal(t, "tell me about your audience", second.Prompt)

	// all prompts used: wrap around
	seq.MarkPromptAsked(r, "learner_understanding")
	third := seq.Advance(r, schema.Clean())
	assert.Equal(t, "who are your learners?", third.Prompt)
}

func TestAdvance_CompletionCelebratesAndAdvances(t *testing.T) {
	seq, _ := NewSequence(testConfig())
	r := schema.NewConversationRecord("s1")
	r.UserTurns = 1
	r.Fields.Set("learnerType", "professionals")

	tr := seq.Advance(r, schema.Clean())

	assert.Equal(t, []string{"learner_understanding"}, tr.CompletedTopics)
	assert.Equal(t, "ai_tools", tr.ActiveTopic)
	assert.Equal(t, "which tools?", tr.Prompt)
	assert.False(t, tr.Terminal)
	assert.Equal(t, []string{"learner_understanding"}, r.TopicsCompleted)
}

func TestAdvance_NoSkip_LaterTopicCreditedLazily(t *testing.T) {
	seq, _ := NewSequence(testConfig())
	r := schema.NewConversationRecord("s1")
	r.UserTurns = 1

	// first message satisfies the LAST topic but not the first
	r.Fields.Add("assessmentMethods", "portfolio")

	tr := seq.Advance(r, schema.Clean())

	// topic A still asked first; C is not auto-credited out of order
	assert.Empty(t, tr.CompletedTopics)
	assert.Equal(t, "learner_understanding", tr.ActiveTopic)
	assert.Empty(t, r.TopicsCompleted)

	// once A and B complete, C cascades in the same turn with no
	// question asked for it
	r.Fields.Set("learnerType", "professionals")
	r.Fields.Add("aiTools", "ChatGPT")
	r.UserTurns = 2

	tr = seq.Advance(r, schema.Clean())

	assert.Equal(t, []string{"learner_understanding", "ai_tools", "assessment"}, tr.CompletedTopics)
	assert.True(t, tr.Terminal)
	assert.True(t, tr.Summarize)
	assert.True(t, r.Terminal)
}

func TestAdvance_TerminalLatches(t *testing.T) {
	seq, _ := NewSequence(testConfig())
	r := schema.NewConversationRecord("s1")
	r.Terminal = true
	before := append([]string{}, r.TopicsCompleted...)

	tr := seq.Advance(r, schema.Clean())

	assert.True(t, tr.Terminal)
	assert.False(t, tr.Summarize)
	assert.Equal(t, before, r.TopicsCompleted)
}

func TestAdvance_EarlyExit(t *testing.T) {
	t.Run("completion signal", func(t *testing.T) {
		seq, _ := NewSequence(testConfig())
		r := schema.NewConversationRecord("s1")
		r.UserTurns = 1

		tr := seq.Advance(r, schema.Verdict{Kind: schema.VerdictCompletionSignal})

		assert.True(t, tr.Terminal)
		assert.True(t, tr.Summarize)
		assert.Equal(t, ExitCompletionSignal, tr.EarlyExit)
	})

	t.Run("frustration signal", func(t *testing.T) {
		seq, _ := NewSequence(testConfig())
		r := schema.NewConversationRecord("s1")
		r.UserTurns = 1

		tr := seq.Advance(r, schema.Verdict{Kind: schema.VerdictFrustrationSignal})

		assert.True(t, tr.Terminal)
		assert.Equal(t, ExitFrustrationSignal, tr.EarlyExit)
	})

	t.Run("max user turns", func(t *testing.T) {
		cfg := testConfig()
		cfg.Limits.MaxUserTurns = 2
		seq, _ := NewSequence(cfg)
		r := schema.NewConversationRecord("s1")

		r.UserTurns = 1
		tr := seq.Advance(r, schema.Clean())
		assert.False(t, tr.Terminal)

		r.UserTurns = 2
		tr = seq.Advance(r, schema.Clean())
		assert.True(t, tr.Terminal)
		assert.Equal(t, ExitMaxTurns, tr.EarlyExit)
	})

	t.Run("min breadth", func(t *testing.T) {
		cfg := testConfig()
		cfg.Limits.MinTopicBreadth = 2
		seq, _ := NewSequence(cfg)
		r := schema.NewConversationRecord("s1")
		r.UserTurns = 1

		r.Fields.Set("learnerType", "teachers")
		r.Fields.Add("aiTools", "Claude")

		tr := seq.Advance(r, schema.Clean())

		assert.True(t, tr.Terminal)
		assert.Equal(t, ExitMinBreadth, tr.EarlyExit)
	})
}

func TestAdvance_PanickingPredicateIsUnsatisfied(t *testing.T) {
	seq, _ := NewSequence(testConfig())
	seq.topics[0].Predicate = func(schema.Fields) bool {
		panic("bad predicate")
	}

	r := schema.NewConversationRecord("s1")
	r.UserTurns = 1
	r.Fields.Set("learnerType", "professionals")

	var tr Transition
	assert.NotPanics(t, func() {
		tr = seq.Advance(r, schema.Clean())
	})

	assert.Empty(t, tr.CompletedTopics)
	assert.Equal(t, "learner_understanding", tr.ActiveTopic)
}

func TestAdvance_TerminationBound(t *testing.T) {
	// A user who answers every question satisfyingly terminates in at
	// most N+1 turns for N topics.
	cfg := testConfig()
	seq, _ := NewSequence(cfg)
	r := schema.NewConversationRecord("s1")

	fieldsPerTopic := []func(){
		func() { r.Fields.Set("learnerType", "professionals") },
		func() { r.Fields.Add("aiTools", "ChatGPT") },
		func() { r.Fields.Add("assessmentMethods", "portfolio") },
	}

	turns := 0
	for !r.Terminal {
		assert.Less(t, turns, len(cfg.Topics)+1, "conversation must terminate within N+1 turns")
		fieldsPerTopic[seq.ActiveIndex(r)]()
		r.UserTurns++
		turns++
		seq.Advance(r, schema.Clean())
	}

	assert.LessOrEqual(t, turns, len(cfg.Topics)+1)
	assert.Len(t, r.TopicsCompleted, len(cfg.Topics))
}

func TestCompletionPercent(t *testing.T) {
	seq, _ := NewSequence(testConfig())
	r := schema.NewConversationRecord("s1")

	assert.Equal(t, 0.0, r.CompletionPercent(seq.Len()))

	r.TopicsCompleted = []string{"learner_understanding"}
	assert.InDelta(t, 33.3, r.CompletionPercent(seq.Len()), 0.1)
}
