package ir

// Activation is one (step, device) pairing as delivered by the data-access
// layer. A step that has no device bound to it still shows up here as a row
// with an empty Tag so the emitters can render its heading.
type Activation struct {
	StepIndex   int    `json:"step_index"`   // join key within a step set, not globally unique
	StepName    string `json:"step_name"`    // display text for banners and comments
	DeviceClass int    `json:"device_class"` // selects the output device family
	Qualifier   int    `json:"qualifier"`    // refines the family; 0 when absent
	Tag         string `json:"tag,omitempty"`
}

// HasTag reports whether this row carries an output tag.
// Placeholder rows (steps without activations) return false.
func (a Activation) HasTag() bool {
	return a.Tag != ""
}

// StepGroup is one step and its tag-bearing activations in input order.
// Built once per generation run and never mutated afterwards.
type StepGroup struct {
	Index       int          `json:"index"`
	Name        string       `json:"name"`
	Activations []Activation `json:"activations"`
}

// SuffixRule is the resolver verdict for one (device class, qualifier) pair:
// either the activation is skipped entirely, or it receives Suffix (possibly
// empty). Never both.
type SuffixRule struct {
	Skip   bool
	Suffix string
}

// SkipActivation returns the rule that drops the activation from all output.
func SkipActivation() SuffixRule {
	return SuffixRule{Skip: true}
}

// WithSuffix returns the rule that emits the activation with the given
// tag suffix appended.
func WithSuffix(suffix string) SuffixRule {
	return SuffixRule{Suffix: suffix}
}

// Literal binds a label used in a condition expression to a concrete tag.
type Literal struct {
	Label   string `json:"label" yaml:"label"`
	Tag     string `json:"tag" yaml:"tag"`
	Negated bool   `json:"negated,omitempty" yaml:"negated,omitempty"`
}

// ConditionSpec is an optional precondition for one resolved activation tag:
// a textual formula over labels X1, X2, ... plus the ordered literal
// definitions those labels refer to.
type ConditionSpec struct {
	Expression string    `json:"expression" yaml:"expression"`
	Literals   []Literal `json:"literals" yaml:"literals"`
}

// ConditionMap indexes condition specs by step index and fully suffixed tag.
type ConditionMap map[int]map[string]ConditionSpec

// Lookup returns the condition spec for the given step and resolved tag,
// or nil when no custom condition exists.
func (m ConditionMap) Lookup(stepIndex int, tag string) *ConditionSpec {
	byTag, ok := m[stepIndex]
	if !ok {
		return nil
	}
	spec, ok := byTag[tag]
	if !ok {
		return nil
	}
	return &spec
}
