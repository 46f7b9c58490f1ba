package handlers

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/BaSui01/agentcore/types"
)

// =============================================================================
// Agent Handler
// =============================================================================

// Temperature bounds accepted at the boundary.
const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// Executor runs one agent task. *agent.ReActAgent satisfies it.
type Executor interface {
	Execute(ctx context.Context, task string) (*types.AgentResponse, error)
}

// AgentHandler serves POST /api/agent.
type AgentHandler struct {
	executor Executor
	logger   *zap.Logger
}

// NewAgentHandler creates an Agent handler
func NewAgentHandler(executor Executor, logger *zap.Logger) *AgentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgentHandler{
		executor: executor,
		logger:   logger.With(zap.String("component", "agent_handler")),
	}
}

// HandleExecute decodes an AgentRequest and runs its task.
// Model and temperature are validated but not forwarded.
func (h *AgentHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	var req types.AgentRequest
	if err := DecodeJSONBody(w, r, &req, logger); err != nil {
		return
	}
	if err := validateAgentRequest(&req); err != nil {
		WriteErrorMessage(w, http.StatusBadRequest, err.Error(), logger)
		return
	}

	resp, err := h.executor.Execute(r.Context(), req.Task)
	if err != nil {
		WriteError(w, err, logger)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

func validateAgentRequest(req *types.AgentRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("task is required")
	}
	if t := req.Temperature; t != nil && (*t < MinTemperature || *t > MaxTemperature) {
		return fmt.Errorf("temperature must be between %.0f and %.0f, got %g", MinTemperature, MaxTemperature, *t)
	}
	return nil
}
