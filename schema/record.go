package schema

import (
	"github.com/google/uuid"
)

// Speaker identifies who produced an utterance.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Utterance is a single entry in a conversation's message log.
type Utterance struct {
	Speaker   Speaker `bson:"speaker" json:"speaker"`
	Text      string  `bson:"text" json:"text"`
	Timestamp int64   `bson:"timestamp" json:"timestamp"` // unix millis
}

// Record lifecycle status, persisted alongside the conversation.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// ConversationRecord holds the full state of one course-design conversation.
// It is owned by exactly one session and mutated once per inbound user
// message. The active topic is derived from TopicsCompleted, never stored.
type ConversationRecord struct {
	SessionID       string         `bson:"_id" json:"session_id"`
	Status          string         `bson:"status" json:"status"`
	Utterances      []Utterance    `bson:"utterances" json:"utterances"`
	Fields          Fields         `bson:"fields" json:"fields"`
	TopicsCompleted []string       `bson:"topicsCompleted" json:"topics_completed"`
	PromptCursor    map[string]int `bson:"promptCursor" json:"prompt_cursor"`
	UserTurns       int            `bson:"userTurns" json:"user_turns"`
	Terminal        bool           `bson:"terminal" json:"terminal"`
	CreatedOn       int64          `bson:"createdOn" json:"created_on"`
	UpdatedOn       int64          `bson:"updatedOn" json:"updated_on"`
}

// NewConversationRecord creates an empty record. A fresh session id is
// minted when the caller does not supply one.
func NewConversationRecord(sessionID string) *ConversationRecord {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	return &ConversationRecord{
		SessionID:       sessionID,
		Status:          StatusActive,
		Utterances:      []Utterance{},
		Fields:          Fields{},
		TopicsCompleted: []string{},
		PromptCursor:    map[string]int{},
	}
}

func (r ConversationRecord) Id() string {
	if len(r.SessionID) == 0 {
		return uuid.New().String()
	}
	return r.SessionID
}

func (r ConversationRecord) CollectionName() string {
	return "conversations"
}

func (r *ConversationRecord) AddUserUtterance(text string, timestamp int64) {
	r.Utterances = append(r.Utterances, Utterance{Speaker: SpeakerUser, Text: text, Timestamp: timestamp})
	r.UpdatedOn = timestamp
}

func (r *ConversationRecord) AddAssistantUtterance(text string, timestamp int64) {
	r.Utterances = append(r.Utterances, Utterance{Speaker: SpeakerAssistant, Text: text, Timestamp: timestamp})
	r.UpdatedOn = timestamp
}

// UserUtterances returns the user side of the log in chronological order.
func (r *ConversationRecord) UserUtterances() []Utterance {
	out := []Utterance{}
	for _, u := range r.Utterances {
		if u.Speaker == SpeakerUser {
			out = append(out, u)
		}
	}
	return out
}

// RecentWindow returns the last n utterances of the log.
func (r *ConversationRecord) RecentWindow(n int) []Utterance {
	if n <= 0 || len(r.Utterances) == 0 {
		return []Utterance{}
	}
	if len(r.Utterances) <= n {
		return r.Utterances
	}
	return r.Utterances[len(r.Utterances)-n:]
}

// TopicCompleted reports whether the named topic has already been credited.
func (r *ConversationRecord) TopicCompleted(name string) bool {
	for _, t := range r.TopicsCompleted {
		if t == name {
			return true
		}
	}
	return false
}

// CompletionPercent is derived progress over a sequence of totalTopics.
func (r *ConversationRecord) CompletionPercent(totalTopics int) float64 {
	if totalTopics <= 0 {
		return 0
	}
	return float64(len(r.TopicsCompleted)) / float64(totalTopics) * 100
}

// Normalize backfills nil collections on a record decoded from storage,
// where absent bson keys come back as nil maps. A nil Fields map would
// panic on the first extraction write.
func (r *ConversationRecord) Normalize() {
	if r.Status == "" {
		r.Status = StatusActive
	}
	if r.Utterances == nil {
		r.Utterances = []Utterance{}
	}
	if r.Fields == nil {
		r.Fields = Fields{}
	}
	if r.TopicsCompleted == nil {
		r.TopicsCompleted = []string{}
	}
	if r.PromptCursor == nil {
		r.PromptCursor = map[string]int{}
	}
}

// Clone returns a deep copy so stores can hand out value semantics.
func (r *ConversationRecord) Clone() *ConversationRecord {
	if r == nil {
		return nil
	}

	cp := *r
	cp.Utterances = make([]Utterance, len(r.Utterances))
	copy(cp.Utterances, r.Utterances)
	cp.TopicsCompleted = make([]string, len(r.TopicsCompleted))
	copy(cp.TopicsCompleted, r.TopicsCompleted)
	cp.Fields = r.Fields.Clone()
	cp.PromptCursor = make(map[string]int, len(r.PromptCursor))
	for k, v := range r.PromptCursor {
		cp.PromptCursor[k] = v
	}
	return &cp
}
