package classifier

import (
	"strings"

	"github.com/TKHatton/SHE-Course-Designer-Assistant-BACKEND/schema"
)

// Intent is a coarse reading of what the user is doing with a message.
type Intent string

const (
	IntentHelpRequest      Intent = "help_request"
	IntentConfirmation     Intent = "confirmation"
	IntentBriefResponse    Intent = "brief_response"
	IntentDetailedResponse Intent = "detailed_response"
	IntentClarification    Intent = "clarification_needed"
	IntentGeneral          Intent = "general_response"
)

// Health summarizes engagement over the recent conversation window.
type Health string

const (
	HealthStarting        Health = "starting"
	HealthNeedsEngagement Health = "needs_engagement"
	HealthHealthy         Health = "healthy"
	HealthHighlyEngaged   Health = "highly_engaged"
)

// Analysis carries per-message signals the composer uses to pick phrasing.
// It never affects topic progression.
type Analysis struct {
	Intent     Intent
	Confidence float64
	WordCount  int
	Vague      bool
	Health     Health
}

var vagueWords = []string{"good", "fine", "okay", "yes", "no", "maybe", "not sure", "idk", "dunno"}

// Analyze derives intent, confidence, and engagement signals for a message
// given the conversation so far. Pure function; no keyword table needed.
func Analyze(message string, history []schema.Utterance) Analysis {
	lower := strings.ToLower(message)
	words := len(strings.Fields(message))

	a := Analysis{
		Intent:    detectIntent(lower, words),
		WordCount: words,
		Vague:     isVague(lower, words),
		Health:    assessHealth(history),
	}
	a.Confidence = confidence(words, a.Intent)
	return a
}

func detectIntent(lower string, words int) Intent {
	switch {
	case containsAny(lower, "help", "explain", "what is", "how do", "can you tell me"):
		return IntentHelpRequest
	case containsAny(lower, "confused", "unclear", "don't understand"):
		return IntentClarification
	case containsAny(lower, "example", "specifically", "for instance"):
		return IntentDetailedResponse
	case containsAny(lower, "yes", "no", "maybe", "not sure"):
		return IntentConfirmation
	case words < 3:
		return IntentBriefResponse
	default:
		return IntentGeneral
	}
}

func isVague(lower string, words int) bool {
	return words <= 3 && containsAny(lower, vagueWords...)
}

func assessHealth(history []schema.Utterance) Health {
	if len(history) < 2 {
		return HealthStarting
	}

	recent := history
	if len(recent) > 4 {
		recent = recent[len(recent)-4:]
	}

	total, users := 0, 0
	for _, u := range recent {
		if u.Speaker == schema.SpeakerUser {
			users++
			total += len(strings.Fields(u.Text))
		}
	}
	if users == 0 {
		return HealthHealthy
	}

	avg := float64(total) / float64(users)
	switch {
	case avg < 5:
		return HealthNeedsEngagement
	case avg > 20:
		return HealthHighlyEngaged
	default:
		return HealthHealthy
	}
}

func confidence(words int, intent Intent) float64 {
	var base float64
	switch {
	case words < 3:
		base = 0.3
	case words < 10:
		base = 0.6
	case words < 20:
		base = 0.8
	default:
		base = 0.9
	}

	switch intent {
	case IntentHelpRequest, IntentDetailedResponse:
		base += 0.1
	case IntentClarification:
		base -= 0.2
	case IntentBriefResponse:
		base -= 0.3
	}

	return min(1.0, max(0.1, base))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
