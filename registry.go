package wiphy

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/wiphy/nlattr"
)

// errInvalidCommand is returned when a message carries a generic netlink
// command other than the one expected for the objects being collected.
var errInvalidCommand = errors.New("invalid generic netlink response command")

// A Registry collects PHYs from one or more nl80211 wiphy dumps, keeping
// exactly one Object per PHY index.
//
// When a message describes a PHY which is already known, the existing
// Object is updated in place with the contents of the message, so pointers
// obtained from a Registry remain valid across dumps. Each update replaces
// the PHY's entire state: attributes absent from the newest message are
// discarded.
//
// A Registry is not safe for concurrent use. Results observed while a dump
// is still in progress are partial.
type Registry struct {
	k   *kind
	log *slog.Logger

	objs  map[uint64]*Object
	order []*Object
	errs  []error
}

// NewRegistry creates an empty Registry of PHYs. Messages which cannot be
// decoded are skipped and reported to logger at warning level. If logger
// is nil, no logging is performed.
func NewRegistry(logger *slog.Logger) *Registry {
	return newRegistry(phyKind, logger)
}

func newRegistry(k *kind, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Registry{
		k:    k,
		log:  logger.With(slog.String("kind", k.name)),
		objs: make(map[uint64]*Object),
	}
}

// HandleMessage processes a single generic netlink message from a dump.
// Messages which carry an unexpected command are rejected.
//
// Any error is also recorded and logged; the Registry remains usable and
// later messages are processed normally.
func (r *Registry) HandleMessage(m genetlink.Message) error {
	if m.Header.Command != r.k.cmd {
		return r.report(fmt.Errorf("%s: command %d: %w", r.k.name, m.Header.Command, errInvalidCommand))
	}

	return r.Handle(m.Data)
}

// Handle processes the attributes of a single message from a dump, creating
// a new Object or updating an existing Object with the same identity.
//
// Any error is also recorded and logged; the Registry remains usable and
// later messages are processed normally.
func (r *Registry) Handle(b []byte) error {
	return r.report(r.handle(b))
}

func (r *Registry) handle(b []byte) error {
	attrs, err := nlattr.Decode(b, r.k.policy)
	if err != nil {
		return fmt.Errorf("%s: %w", r.k.name, err)
	}

	id, ok := attrs.Uint(r.k.id)
	if !ok {
		return fmt.Errorf("%s: attribute %d: %w", r.k.name, r.k.id, nlattr.ErrMissingRequiredAttribute)
	}

	if o, ok := r.objs[id]; ok {
		r.log.Debug("updating object", slog.Uint64("id", id), slog.Int("attributes", len(attrs)))
		return o.storeAttrs(attrs)
	}

	o, err := newObject(r.k, 0, attrs, 0)
	if err != nil {
		return err
	}

	r.log.Debug("new object", slog.Uint64("id", id), slog.Int("attributes", len(attrs)))
	r.objs[id] = o
	r.order = append(r.order, o)
	return nil
}

// report records and logs a non-nil per-message error, then returns it.
func (r *Registry) report(err error) error {
	if err == nil {
		return nil
	}

	r.errs = append(r.errs, err)
	r.log.Warn("skipping malformed message", slog.Any("error", err))
	return err
}

// Len returns the number of objects in the Registry.
func (r *Registry) Len() int { return len(r.order) }

// Objects returns the Registry's objects in the order they were first seen.
func (r *Registry) Objects() []*Object {
	out := make([]*Object, len(r.order))
	copy(out, r.order)
	return out
}

// Errors returns the errors for every message skipped by the Registry.
func (r *Registry) Errors() []error {
	out := make([]error, len(r.errs))
	copy(out, r.errs)
	return out
}

// PHYs returns the Registry's PHYs in the order they were first seen.
func (r *Registry) PHYs() []*PHY {
	phys := make([]*PHY, 0, len(r.order))
	for _, o := range r.order {
		phys = append(phys, &PHY{Object: o})
	}

	return phys
}

// PHY returns the PHY with the specified index, if it is present.
func (r *Registry) PHY(index int) (*PHY, bool) {
	if index < 0 {
		return nil, false
	}

	o, ok := r.objs[uint64(index)]
	if !ok {
		return nil, false
	}

	return &PHY{Object: o}, true
}
