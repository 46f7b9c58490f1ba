package types

import "strings"

// Well-known thought types. ThoughtType is an open string, providers may
// emit their own step kinds.
const (
	ThoughtTypeThought     = "thought"
	ThoughtTypeAction      = "action"
	ThoughtTypeObservation = "observation"
)

// Thought is one reasoning or action step.
type Thought struct {
	ThoughtType string `json:"thought_type"`
	Content     string `json:"content"`
}

// NewThought creates a Thought.
func NewThought(thoughtType, content string) Thought {
	return Thought{ThoughtType: thoughtType, Content: content}
}

// AgentRequest is one unit of work submitted to a provider.
// A nil Model or Temperature means "no override".
type AgentRequest struct {
	Task        string   `json:"task"`
	Model       *string  `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// NewAgentRequest creates a request without per-call overrides.
func NewAgentRequest(task string) *AgentRequest {
	return &AgentRequest{Task: task}
}

// WithModel returns a copy of r with the model override set.
func (r AgentRequest) WithModel(model string) *AgentRequest {
	r.Model = &model
	return &r
}

// WithTemperature returns a copy of r with the temperature override set.
func (r AgentRequest) WithTemperature(temperature float64) *AgentRequest {
	r.Temperature = &temperature
	return &r
}

// Validate reports a ParseError when the task is blank.
func (r *AgentRequest) Validate() error {
	if r == nil || strings.TrimSpace(r.Task) == "" {
		return NewParseError("task is required")
	}
	return nil
}

// AgentResponse is the result of one provider invocation.
type AgentResponse struct {
	Result     string    `json:"result"`
	Thoughts   []Thought `json:"thoughts"`
	DurationMS uint64    `json:"duration_ms"`
}

// NewAgentResponse creates a response. A nil thoughts slice is stored as
// an empty one so the wire form is always an array.
func NewAgentResponse(result string, thoughts []Thought, durationMS uint64) *AgentResponse {
	if thoughts == nil {
		thoughts = []Thought{}
	}
	return &AgentResponse{Result: result, Thoughts: thoughts, DurationMS: durationMS}
}
