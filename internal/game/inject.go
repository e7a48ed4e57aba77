package game

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Inject is a time-boxed narrative task. Its activation window is
// [Start, Start+Duration) in minutes of game run time. Sticky injects never
// auto-complete when their window ends.
type Inject struct {
	UUID        uuid.UUID
	Name        string
	Markdown    string
	FileType    FileTypePolicy
	SideEffects sideEffectList
	Start       uint32
	Duration    uint32
	Completed   bool
	Sticky      bool
}

// injectWire is the JSON wire representation of an Inject. FileType is
// carried as a *[]string so its None/Some(empty)/Some(whitelist) tri-state
// survives a round trip as null/[]/[...] instead of being dropped.
type injectWire struct {
	UUID        uuid.UUID      `json:"uuid"`
	Name        string         `json:"name"`
	Markdown    string         `json:"markdown"`
	FileType    *[]string      `json:"file_type"`
	SideEffects sideEffectList `json:"side_effects"`
	Start       uint32         `json:"start"`
	Duration    uint32         `json:"duration"`
	Completed   bool           `json:"completed"`
	Sticky      bool           `json:"sticky"`
}

// MarshalJSON implements json.Marshaler.
func (i Inject) MarshalJSON() ([]byte, error) {
	wire := injectWire{
		UUID:        i.UUID,
		Name:        i.Name,
		Markdown:    i.Markdown,
		SideEffects: i.SideEffects,
		Start:       i.Start,
		Duration:    i.Duration,
		Completed:   i.Completed,
		Sticky:      i.Sticky,
	}
	if types, ok := i.FileType.Get(); ok {
		wire.FileType = &types
	}
	return json.Marshal(wire)
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Inject) UnmarshalJSON(data []byte) error {
	var wire injectWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	i.UUID = wire.UUID
	i.Name = wire.Name
	i.Markdown = wire.Markdown
	i.SideEffects = wire.SideEffects
	i.Start = wire.Start
	i.Duration = wire.Duration
	i.Completed = wire.Completed
	i.Sticky = wire.Sticky
	if wire.FileType != nil {
		i.FileType = mo.Some(*wire.FileType)
	} else {
		i.FileType = mo.None[[]string]()
	}
	return nil
}

// Phase is the derived dormant/active/ended state of an inject at a given
// point in game time. It is independent of the Completed flag.
type Phase int

const (
	// PhaseDormant means now < Start.
	PhaseDormant Phase = iota
	// PhaseActive means Start <= now < Start+Duration.
	PhaseActive
	// PhaseEnded means now >= Start+Duration.
	PhaseEnded
)

// PhaseAt returns the inject's phase at the given minute of run time.
func (i Inject) PhaseAt(nowMinutes uint32) Phase {
	switch {
	case nowMinutes < i.Start:
		return PhaseDormant
	case nowMinutes < i.Start+i.Duration:
		return PhaseActive
	default:
		return PhaseEnded
	}
}

// responseRequired reports whether a submission is expected for this
// inject at all: file_type of None (any extension) or a non-empty
// whitelist both count, an explicit empty whitelist ("no_submit") does not.
func (i Inject) responseRequired() bool {
	types, ok := i.FileType.Get()
	if !ok {
		return true
	}
	return len(types) > 0
}

// AllowedExtension reports whether the given filename's extension is
// accepted for submission.
func (i Inject) AllowedExtension(filename string) bool {
	types, ok := i.FileType.Get()
	if !ok {
		return true
	}
	ext := extensionOf(filename)
	return lo.Contains(types, ext)
}

func extensionOf(filename string) string {
	ext := path.Ext(filename)
	return strings.TrimPrefix(ext, ".")
}

// formattedName returns the inject's name with spaces replaced by
// underscores, used to build response filenames on disk.
func (i Inject) formattedName() string {
	return strings.ReplaceAll(i.Name, " ", "_")
}

// ResponseFilename returns the on-disk filename a submission to this
// inject should be stored as, given the extension of the uploaded file
// and whether the inject had already completed at upload time.
func (i Inject) ResponseFilename(ext string, late bool) string {
	suffix := "response"
	if late {
		suffix = "late_response"
	}
	if ext == "" {
		return fmt.Sprintf("%s_%s", i.formattedName(), suffix)
	}
	return fmt.Sprintf("%s_%s.%s", i.formattedName(), suffix, ext)
}
