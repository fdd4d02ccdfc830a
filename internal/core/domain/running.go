package domain

// RunningService is a service instance as reported by the runtime.
type RunningService struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	Status string `json:"status"`
	// State is the runtime's short state, e.g. "running" or "exited".
	State string `json:"state"`
}

// Running reports whether the runtime considers the service running.
func (r RunningService) Running() bool {
	return r.State == "running"
}

// State is the logical lifecycle state of an environment.
type State uint8

const (
	// StateUndeclared means the name is unknown and no resources exist.
	StateUndeclared State = iota
	// StateDeclaredNotLaunched means definitions exist but no resources do.
	StateDeclaredNotLaunched
	// StateLaunched means at least one service is running.
	StateLaunched
	// StateStopped means resources exist but none is running.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateDeclaredNotLaunched:
		return "declared"
	case StateLaunched:
		return "launched"
	case StateStopped:
		return "stopped"
	default:
		return "undeclared"
	}
}

// StateOf derives the environment state from the runtime's service list.
func StateOf(declared bool, services []RunningService) State {
	if len(services) == 0 {
		if declared {
			return StateDeclaredNotLaunched
		}
		return StateUndeclared
	}
	for _, svc := range services {
		if svc.Running() {
			return StateLaunched
		}
	}
	return StateStopped
}
