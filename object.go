package wiphy

import (
	"errors"
	"fmt"

	"github.com/mdlayher/wiphy/internal/nl80211"
	"github.com/mdlayher/wiphy/nlattr"
	"golang.org/x/sys/unix"
)

// maxDepth is the deepest level of nested objects that will be expanded.
// nl80211 wiphy messages nest three levels deep.
const maxDepth = 8

// errIdentityMismatch is returned when attributes for one object are merged
// into an object with a different identity.
var errIdentityMismatch = errors.New("attributes do not match object identity")

// A kind describes one class of object decoded from nl80211 attributes.
type kind struct {
	// A human-readable name used in errors and logs.
	name string

	// The policy used to decode this kind's attributes.
	policy nlattr.Table

	// The integer attribute which identifies an object of this kind, or
	// zero if the kind has no identity.
	id uint16

	// The generic netlink command carried by messages describing this kind.
	cmd uint8

	// Nested attributes which expand into child objects of another kind.
	nest map[uint16]*kind
}

// The kinds of objects found in an nl80211 wiphy dump.
var (
	bitrateKind = &kind{
		name:   "bitrate",
		policy: nl80211.BitratePolicy,
	}

	frequencyKind = &kind{
		name:   "frequency",
		policy: nl80211.FrequencyPolicy,
	}

	bandKind = &kind{
		name:   "band",
		policy: nl80211.BandPolicy,
		nest: map[uint16]*kind{
			unix.NL80211_BAND_ATTR_FREQS: frequencyKind,
			unix.NL80211_BAND_ATTR_RATES: bitrateKind,
		},
	}

	phyKind = &kind{
		name:   "phy",
		policy: nl80211.PHYPolicy,
		id:     unix.NL80211_ATTR_WIPHY,
		cmd:    unix.NL80211_CMD_NEW_WIPHY,
		nest: map[uint16]*kind{
			unix.NL80211_ATTR_WIPHY_BANDS: bandKind,
		},
	}
)

// An Object is the decoded state of a single nl80211 entity, such as a
// PHY or one of its bands.
//
// An Object is not safe for concurrent use while it is being updated by a
// Registry or Client.
type Object struct {
	k *kind

	// Set once at creation; never changed by later updates.
	id uint64

	// The attribute type under which this object was nested in its parent.
	member uint16

	attrs    nlattr.Attrs
	children map[uint16][]*Object
}

// newObject creates an Object of kind k from decoded attributes, expanding
// any nested child objects.
func newObject(k *kind, member uint16, attrs nlattr.Attrs, depth int) (*Object, error) {
	o := &Object{
		k:      k,
		member: member,
	}

	if k.id != 0 {
		id, ok := attrs.Uint(k.id)
		if !ok {
			return nil, fmt.Errorf("%s: attribute %d: %w", k.name, k.id, nlattr.ErrMissingRequiredAttribute)
		}

		o.id = id
	}

	if err := o.store(attrs, depth); err != nil {
		return nil, err
	}

	return o, nil
}

// Attrs returns the Object's most recently decoded attributes, including
// any attributes which are not otherwise interpreted by this package.
// The returned Attrs must not be modified.
func (o *Object) Attrs() nlattr.Attrs { return o.attrs }

// Children returns the child objects expanded from nested attribute typ,
// in the order they were received.
func (o *Object) Children(typ uint16) []*Object { return o.children[typ] }

// storeAttrs replaces all of an Object's state with attrs. Attributes and
// children which are not present in attrs are discarded. The identity of
// the Object cannot be changed.
func (o *Object) storeAttrs(attrs nlattr.Attrs) error {
	if o.k.id != 0 {
		id, ok := attrs.Uint(o.k.id)
		if !ok {
			return fmt.Errorf("%s: attribute %d: %w", o.k.name, o.k.id, nlattr.ErrMissingRequiredAttribute)
		}
		if id != o.id {
			return fmt.Errorf("%s %d: got %d: %w", o.k.name, o.id, id, errIdentityMismatch)
		}
	}

	return o.store(attrs, 0)
}

// store expands attrs and swaps them in only when expansion succeeds.
func (o *Object) store(attrs nlattr.Attrs, depth int) error {
	children, err := expand(o.k, attrs, depth)
	if err != nil {
		return err
	}

	o.attrs = attrs
	o.children = children
	return nil
}

// expand decodes each nested attribute in attrs which k declares as a
// container of child objects.
func expand(k *kind, attrs nlattr.Attrs, depth int) (map[uint16][]*Object, error) {
	if len(k.nest) == 0 {
		return nil, nil
	}

	children := make(map[uint16][]*Object, len(k.nest))
	for typ, ck := range k.nest {
		b, ok := attrs.Bytes(typ)
		if !ok {
			continue
		}
		if depth >= maxDepth {
			return nil, fmt.Errorf("%s: depth %d: %w", k.name, depth, nlattr.ErrSchemaTooDeep)
		}

		members, err := nlattr.Split(b)
		if err != nil {
			return nil, fmt.Errorf("%s: attribute %d: %w", k.name, typ, err)
		}

		objs := make([]*Object, 0, len(members))
		for _, m := range members {
			cattrs, err := nlattr.Decode(m.Data, ck.policy)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", ck.name, err)
			}

			c, err := newObject(ck, m.Type, cattrs, depth+1)
			if err != nil {
				return nil, err
			}

			objs = append(objs, c)
		}

		children[typ] = objs
	}

	return children, nil
}
