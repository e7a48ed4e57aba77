package game

import (
	"encoding/json"
	"fmt"

	"github.com/samber/mo"
)

// SideEffect is a closed sum of the service-catalog mutations an inject can
// fire when it completes. It is implemented as a sealed interface rather
// than an open type hierarchy: kind() is unexported, so only the three
// variants defined in this file can implement it.
type SideEffect interface {
	kind() string
	// Apply mutates cfg in place, under the caller's write hold.
	Apply(cfg *Config) error
}

// DeleteService removes a service from the catalog. Team score maps are
// left with the stale key; invariant 1 is restored lazily by read paths
// that filter through the services list.
type DeleteService struct {
	Name string `json:"name"`
}

func (DeleteService) kind() string { return "delete_service" }

// Apply implements SideEffect.
func (d DeleteService) Apply(cfg *Config) error {
	return cfg.RemoveService(d.Name)
}

// AddService inserts a brand new service into the catalog.
type AddService struct {
	Service Service `json:"service"`
}

func (AddService) kind() string { return "add_service" }

// Apply implements SideEffect.
func (a AddService) Apply(cfg *Config) error {
	return cfg.AddService(a.Service)
}

// EditService renames and/or rewrites an existing service in place.
type EditService struct {
	Service Service `json:"service"`
	OldName string  `json:"old_name"`
}

func (EditService) kind() string { return "edit_service" }

// Apply implements SideEffect.
func (e EditService) Apply(cfg *Config) error {
	return cfg.EditService(e.OldName, e.Service)
}

// sideEffectWire is the JSON wire representation of a SideEffect: a
// discriminated union keyed by "type".
type sideEffectWire struct {
	Type    string  `json:"type"`
	Name    string  `json:"name,omitempty"`
	OldName string  `json:"old_name,omitempty"`
	Service Service `json:"service,omitempty"`
}

// MarshalSideEffect encodes a SideEffect to its tagged JSON form.
func MarshalSideEffect(se SideEffect) ([]byte, error) {
	switch v := se.(type) {
	case DeleteService:
		return json.Marshal(sideEffectWire{Type: v.kind(), Name: v.Name})
	case AddService:
		return json.Marshal(sideEffectWire{Type: v.kind(), Service: v.Service})
	case EditService:
		return json.Marshal(sideEffectWire{Type: v.kind(), OldName: v.OldName, Service: v.Service})
	default:
		return nil, fmt.Errorf("game: unknown side effect type %T", se)
	}
}

// UnmarshalSideEffect decodes a SideEffect from its tagged JSON form.
func UnmarshalSideEffect(data []byte) (SideEffect, error) {
	var wire sideEffectWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	switch wire.Type {
	case "delete_service":
		return DeleteService{Name: wire.Name}, nil
	case "add_service":
		return AddService{Service: wire.Service}, nil
	case "edit_service":
		return EditService{OldName: wire.OldName, Service: wire.Service}, nil
	default:
		return nil, fmt.Errorf("game: unknown side effect type %q", wire.Type)
	}
}

// sideEffectList wraps []SideEffect so it can be stored as a typed JSON
// array of tagged unions inside Inject.
type sideEffectList []SideEffect

// MarshalJSON implements json.Marshaler.
func (l sideEffectList) MarshalJSON() ([]byte, error) {
	raw := make([]json.RawMessage, len(l))
	for i, se := range l {
		b, err := MarshalSideEffect(se)
		if err != nil {
			return nil, err
		}
		raw[i] = b
	}
	return json.Marshal(raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *sideEffectList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(sideEffectList, 0, len(raw))
	for _, r := range raw {
		se, err := UnmarshalSideEffect(r)
		if err != nil {
			return err
		}
		out = append(out, se)
	}
	*l = out
	return nil
}

// FileTypePolicy governs which file extensions an inject response may use.
// mo.None accepts any extension, mo.Some of an empty list accepts no
// submission at all, and mo.Some of a non-empty list is a whitelist.
type FileTypePolicy = mo.Option[[]string]
