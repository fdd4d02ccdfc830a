package docker

import (
	cerrdefs "github.com/containerd/errdefs"
	"go.trai.ch/navy/internal/core/domain"
)

// mapError translates a Docker API error into the navy error taxonomy.
func mapError(err error, op, service string) error {
	if err == nil {
		return nil
	}
	var derr *domain.Error
	switch {
	case cerrdefs.IsNotFound(err):
		derr = domain.ErrServiceNotRunning
	case op == opRemove && cerrdefs.IsConflict(err):
		derr = domain.ErrResourceBusy
	default:
		derr = domain.ErrRuntime
	}
	derr = derr.With("operation", op)
	if service != "" {
		derr = derr.With("service", service)
	}
	return derr.Wrap(err)
}

const (
	opCreate  = "create"
	opStart   = "start"
	opStop    = "stop"
	opRestart = "restart"
	opKill    = "kill"
	opRemove  = "remove"
	opPull    = "pull"
	opList    = "list"
	opInspect = "inspect"
	opNetwork = "network"
)
