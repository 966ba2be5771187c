package schema

// VerdictKind is the outcome of running the safety classifier on a message.
type VerdictKind string

const (
	VerdictClean             VerdictKind = "clean"
	VerdictPolicyViolation   VerdictKind = "policy_violation"
	VerdictCompletionSignal  VerdictKind = "completion_signal"
	VerdictFrustrationSignal VerdictKind = "frustration_signal"
)

// ViolationKind narrows a policy violation to its category. Categories are
// configuration-driven; these constants name the ones shipped by default.
type ViolationKind string

const (
	ViolationOffTopic             ViolationKind = "off_topic"
	ViolationExclusionaryLanguage ViolationKind = "exclusionary_language"
	ViolationBiasIndicator        ViolationKind = "bias_indicator"
	ViolationPersonalData         ViolationKind = "personal_data"
	ViolationUnsafeContent        ViolationKind = "unsafe_content"
)

// Verdict is the classifier's tagged result for one inbound message.
// Violations always dominate completion and frustration signals.
type Verdict struct {
	Kind      VerdictKind
	Violation ViolationKind // set only when Kind == VerdictPolicyViolation
	Matched   string        // the keyword that triggered the verdict
}

func Clean() Verdict {
	return Verdict{Kind: VerdictClean}
}

func (v Verdict) IsViolation() bool {
	return v.Kind == VerdictPolicyViolation
}

// IsExitSignal reports whether the user asked to end or showed frustration.
func (v Verdict) IsExitSignal() bool {
	return v.Kind == VerdictCompletionSignal || v.Kind == VerdictFrustrationSignal
}
