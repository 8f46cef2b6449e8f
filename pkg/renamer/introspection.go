package renamer

import "github.com/aretw0/introspection"

// OrchestratorState exposes internal counters for observability.
type OrchestratorState struct {
	Pending int `json:"pending"`
	Renamed int `json:"renamed"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// State implements introspection.Introspectable.
func (o *Orchestrator) State() any {
	o.mu.Lock()
	defer o.mu.Unlock()
	return OrchestratorState{
		Pending: o.pending,
		Renamed: o.renamed,
		Skipped: o.skipped,
		Failed:  o.failed,
	}
}

// ComponentType implements introspection.Component.
func (o *Orchestrator) ComponentType() string {
	return "renamer"
}

var _ introspection.Introspectable = (*Orchestrator)(nil)
var _ introspection.Component = (*Orchestrator)(nil)
