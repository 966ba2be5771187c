package extractor

import (
	"testing"

	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/flowconfig"
	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/schema"
	"github.com/stretchr/testify/assert"
)

func testRules() []flowconfig.ExtractionRule {
	return []flowconfig.ExtractionRule{
		{Field: "learnerType", Keyword: "professionals", Value: "professionals"},
		{Field: "learnerType", Keyword: "students", Value: "students"},
		{Field: "aiTools", Keyword: "chatgpt", Value: "ChatGPT", Multi: true},
		{Field: "aiTools", Keyword: "claude", Value: "Claude", Multi: true},
		{Field: "goals", Keyword: "career", Value: "career readiness", Multi: true},
	}
}

func utter(texts ...string) []schema.Utterance {
	out := []schema.Utterance{}
	for i, t := range texts {
		out = append(out, schema.Utterance{Speaker: schema.SpeakerUser, Text: t, Timestamp: int64(i)})
	}
	return out
}

func TestExtract_SingleField(t *testing.T) {
	e := New(testRules())

	fields := e.Extract(utter("I teach professionals"))
	assert.Equal(t, "professionals", fields.Get("learnerType"))
}

func TestExtract_LastMatchWins(t *testing.T) {
	e := New(testRules())

	t.Run("later utterance overrides", func(t *testing.T) {
		fields := e.Extract(utter("I teach professionals", "actually they are students"))
		assert.Equal(t, "students", fields.Get("learnerType"))
	})

	t.Run("later rule wins within one utterance", func(t *testing.T) {
		fields := e.Extract(utter("a mix of professionals and students"))
		assert.Equal(t, "students", fields.Get("learnerType"))
	})
}

func TestExtract_MultiValueAccumulates(t *testing.T) {
	e := New(testRules())

	fields := e.Extract(utter("we use ChatGPT", "also Claude", "and more ChatGPT"))

	assert.Equal(t, []string{"ChatGPT", "Claude"}, fields.All("aiTools"))
}

func TestExtract_CaseInsensitive(t *testing.T) {
	e := New(testRules())

	fields := e.Extract(utter("We Use CHATGPT every day"))
	assert.Equal(t, []string{"ChatGPT"}, fields.All("aiTools"))
}

func TestExtract_NoMatchContributesNothing(t *testing.T) {
	e := New(testRules())

	fields := e.Extract(utter("nothing relevant here"))
	assert.Empty(t, fields)
}

func TestExtract_IgnoresAssistantUtterances(t *testing.T) {
	e := New(testRules())

	fields := e.Extract([]schema.Utterance{
		{Speaker: schema.SpeakerAssistant, Text: "do you use ChatGPT?"},
		{Speaker: schema.SpeakerUser, Text: "yes, claude too"},
	})

	assert.Equal(t, []string{"Claude"}, fields.All("aiTools"))
}

func TestExtract_Deterministic(t *testing.T) {
	e := New(testRules())
	log := utter("I teach professionals with career goals", "we use chatgpt and claude")

	first := e.Extract(log)
	second := e.Extract(log)

	assert.Equal(t, first, second)
}

func TestExtract_ReplayMatchesIncremental(t *testing.T) {
	e := New(testRules())
	texts := []string{"I teach professionals", "career focused", "we use chatgpt", "students actually", "claude as well"}

	incremental := schema.Fields{}
	for _, text := range texts {
		e.Apply(incremental, text)
	}

	replayed := e.Extract(utter(texts...))

	assert.Equal(t, incremental, replayed)
}

func TestExtract_MalformedRuleSkipped(t *testing.T) {
	e := New([]flowconfig.ExtractionRule{
		{Field: "", Keyword: "oops", Value: "x"},
		{Field: "learnerType", Keyword: "students", Value: "students"},
	})

	fields := e.Extract(utter("oops, my students"))
	assert.Equal(t, "students", fields.Get("learnerType"))
	assert.Len(t, fields, 1)
}
