package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Kind classifies the errors navy raises so that callers can switch on them
// instead of inspecting concrete types.
type Kind uint8

const (
	// KindUnknown marks errors that did not originate in navy.
	KindUnknown Kind = iota
	// KindConfiguration covers unknown or unresolvable environments and bad configuration.
	KindConfiguration
	// KindPipeline covers failures raised while transforming service definitions.
	KindPipeline
	// KindPortCollision is a pipeline failure where two services force the same external port.
	KindPortCollision
	// KindUnknownService is returned when a named service is not declared.
	KindUnknownService
	// KindServiceNotRunning is returned when a service has no live runtime resources.
	KindServiceNotRunning
	// KindResourceBusy is returned when the runtime refuses to remove a running resource.
	KindResourceBusy
	// KindRuntime wraps opaque failures surfaced by the container runtime.
	KindRuntime
	// KindAggregate groups per-service failures of a fan-out operation.
	KindAggregate
)

var kindNames = [...]string{
	KindUnknown:           "unknown",
	KindConfiguration:     "configuration",
	KindPipeline:          "pipeline",
	KindPortCollision:     "port_collision",
	KindUnknownService:    "unknown_service",
	KindServiceNotRunning: "service_not_running",
	KindResourceBusy:      "resource_busy",
	KindRuntime:           "runtime",
	KindAggregate:         "aggregate",
}

// String returns the stable tag of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

func (k Kind) parent() Kind {
	if k == KindPortCollision {
		return KindPipeline
	}
	return KindUnknown
}

// Is reports whether k equals target or specialises it.
func (k Kind) Is(target Kind) bool {
	for ; k != KindUnknown; k = k.parent() {
		if k == target {
			return true
		}
	}
	return false
}

type messager interface {
	Message() string
}

type metadataer interface {
	Metadata() map[string]any
}

// Error is a kind-tagged error. The message, metadata and cause are carried
// by an underlying zerr error.
//
// Every error derived with With or Wrap remembers the sentinel it came from.
// errors.Is matches a kind sentinel (ErrConfiguration, ErrPipeline, ...) by
// kind and any other sentinel by origin.
type Error struct {
	kind   Kind
	err    error
	origin *Error
	byKind bool
}

func newSentinel(kind Kind, msg string) *Error {
	e := &Error{kind: kind, err: zerr.New(msg)}
	e.origin = e
	return e
}

func newKindSentinel(kind Kind, msg string) *Error {
	e := newSentinel(kind, msg)
	e.byKind = true
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.err.Error()
}

// Kind returns the kind tag of the error.
func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the error message without its cause chain.
func (e *Error) Message() string {
	if m, ok := e.err.(messager); ok {
		return m.Message()
	}
	return e.err.Error()
}

// Metadata returns the key/value pairs attached with With.
func (e *Error) Metadata() map[string]any {
	if m, ok := e.err.(metadataer); ok {
		return m.Metadata()
	}
	return nil
}

// Unwrap returns the cause attached with Wrap, if any.
func (e *Error) Unwrap() error {
	return errors.Unwrap(e.err)
}

// Is matches errors derived from target. When target is a kind sentinel it
// matches any error of that kind or of a kind that specialises it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.byKind {
		return e.kind.Is(t.kind)
	}
	return t.origin != nil && e.origin == t.origin
}

// Format delegates to the underlying zerr error so that %+v prints its diagnostics.
func (e *Error) Format(s fmt.State, verb rune) {
	if f, ok := e.err.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	fmt.Fprint(s, e.err.Error())
}

// With returns a copy of the error carrying an extra metadata entry.
func (e *Error) With(key string, value any) *Error {
	return &Error{kind: e.kind, err: zerr.With(e.err, key, value), origin: e.origin, byKind: e.byKind}
}

// Wrap returns a copy of the error with cause attached, keeping existing metadata.
func (e *Error) Wrap(cause error) *Error {
	if cause == nil {
		return e
	}
	wrapped := zerr.Wrap(cause, e.Message())
	meta := e.Metadata()
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		wrapped = zerr.With(wrapped, k, meta[k])
	}
	return &Error{kind: e.kind, err: wrapped, origin: e.origin, byKind: e.byKind}
}

var (
	// ErrConfiguration is the generic configuration failure.
	ErrConfiguration = newKindSentinel(KindConfiguration, "invalid configuration")

	// ErrEnvironmentNameRequired is returned when no environment name can be resolved.
	ErrEnvironmentNameRequired = newSentinel(KindConfiguration, "no environment name given and no default configured")

	// ErrInvalidEnvironmentName is returned when an environment name contains invalid characters.
	ErrInvalidEnvironmentName = newSentinel(
		KindConfiguration,
		"environment name must start with a letter or digit and contain only letters, digits, '.', '_' or '-'",
	)

	// ErrDuplicateService is returned when two service definitions share a name.
	ErrDuplicateService = newSentinel(KindConfiguration, "duplicate service name")

	// ErrDefinitionsReadFailed is returned when service definitions cannot be read.
	ErrDefinitionsReadFailed = newSentinel(KindConfiguration, "failed to read service definitions")

	// ErrDefinitionsParseFailed is returned when service definitions cannot be parsed.
	ErrDefinitionsParseFailed = newSentinel(KindConfiguration, "failed to parse service definitions")

	// ErrInvalidImageReference is returned when a service image cannot be parsed.
	ErrInvalidImageReference = newSentinel(KindConfiguration, "invalid image reference")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = newSentinel(KindConfiguration, "failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = newSentinel(KindConfiguration, "failed to parse config file")

	// ErrConfigWriteFailed is returned when the config file cannot be written.
	ErrConfigWriteFailed = newSentinel(KindConfiguration, "failed to write config file")

	// ErrConfirmationRequired is returned when a destructive command cannot prompt.
	ErrConfirmationRequired = newSentinel(KindConfiguration, "confirmation required: pass -f when stdin is not a terminal")

	// ErrInvalidPort is returned when a configured port is not a valid port number.
	ErrInvalidPort = newSentinel(KindConfiguration, "invalid port")

	// ErrPipeline is the generic pipeline failure.
	ErrPipeline = newKindSentinel(KindPipeline, "pipeline failed")

	// ErrDevelopSourceMissing is returned when a service in develop mode has no source location.
	ErrDevelopSourceMissing = newSentinel(KindPipeline, "no source location for service in develop mode")

	// ErrPortCollision is returned when two services force the same external port.
	ErrPortCollision = newKindSentinel(KindPortCollision, "external port claimed by more than one service")

	// ErrUnknownService is returned when a named service is not declared in the environment.
	ErrUnknownService = newKindSentinel(KindUnknownService, "service is not declared in this environment")

	// ErrServiceNotRunning is returned when a service has no active runtime resources.
	ErrServiceNotRunning = newKindSentinel(KindServiceNotRunning, "service is not running")

	// ErrResourceBusy is returned when the runtime refuses to remove a resource that is still running.
	ErrResourceBusy = newKindSentinel(KindResourceBusy, "resource is still running, stop it first")

	// ErrRuntime wraps failures surfaced by the container runtime.
	ErrRuntime = newKindSentinel(KindRuntime, "container runtime call failed")

	// ErrAggregate matches every AggregateError.
	ErrAggregate = newKindSentinel(KindAggregate, "one or more services failed")
)

// ServiceFailure is a single failed service of a fan-out operation.
type ServiceFailure struct {
	Service string
	Err     error
}

// AggregateError collects the per-service failures of a fan-out operation.
type AggregateError struct {
	Failures []ServiceFailure
}

// NewAggregateError builds an AggregateError with failures ordered by service name.
func NewAggregateError(failures []ServiceFailure) *AggregateError {
	sorted := slices.Clone(failures)
	slices.SortFunc(sorted, func(a, b ServiceFailure) int {
		return strings.Compare(a.Service, b.Service)
	})
	return &AggregateError{Failures: sorted}
}

// Error implements the error interface.
func (e *AggregateError) Error() string {
	return e.Message() + ": " + e.detail()
}

// Message returns a one-line summary naming the failing services.
func (e *AggregateError) Message() string {
	return ErrAggregate.Message() + " (" + strings.Join(e.Services(), ", ") + ")"
}

func (e *AggregateError) detail() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Service+": "+f.Err.Error())
	}
	return strings.Join(parts, "; ")
}

// Kind returns KindAggregate.
func (e *AggregateError) Kind() Kind {
	return KindAggregate
}

// Services returns the names of the failing services.
func (e *AggregateError) Services() []string {
	names := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		names = append(names, f.Service)
	}
	return names
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Is matches ErrAggregate.
func (e *AggregateError) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.kind == KindAggregate
}

// KindOf returns the kind of the outermost kind-tagged error in err's chain,
// or KindUnknown if there is none.
func KindOf(err error) Kind {
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}
