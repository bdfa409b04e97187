package domain

import (
	"regexp"
	"strings"
	"time"
)

// DefaultStateColor is used when a state is added without a color.
const DefaultStateColor = "#000000"

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// WorkflowState is a named, colored label assigned to customer entries.
type WorkflowState struct {
	Name  string
	Color string
}

// DefaultStates is the palette a fresh configuration starts with.
func DefaultStates() []WorkflowState {
	return []WorkflowState{
		{Name: "Pending", Color: "#FFD700"},
		{Name: "Processing", Color: "#1E90FF"},
		{Name: ReadyState, Color: "#32CD32"},
		{Name: "Delivered", Color: "#808080"},
	}
}

// BusinessConfig holds the business identity printed on exports and the
// workflow state palette. It is loaded once per command and passed
// explicitly to whatever needs it.
type BusinessConfig struct {
	eventRecorder
	name       string
	footerNote string
	logo       *Image
	states     []WorkflowState
}

// DefaultBusinessConfig returns the configuration used before anything is saved.
func DefaultBusinessConfig() *BusinessConfig {
	return &BusinessConfig{states: DefaultStates()}
}

// ReconstructBusinessConfig rebuilds a configuration from storage.
func ReconstructBusinessConfig(name, footerNote string, logo *Image, states []WorkflowState) *BusinessConfig {
	if states == nil {
		states = make([]WorkflowState, 0)
	}
	return &BusinessConfig{name: name, footerNote: footerNote, logo: logo, states: states}
}

// Getters
func (c *BusinessConfig) Name() string       { return c.name }
func (c *BusinessConfig) FooterNote() string { return c.footerNote }
func (c *BusinessConfig) Logo() *Image       { return c.logo }

// States returns the configured states in display order.
func (c *BusinessConfig) States() []WorkflowState {
	out := make([]WorkflowState, len(c.states))
	copy(out, c.states)
	return out
}

// HasState reports whether name is a configured state.
func (c *BusinessConfig) HasState(name string) bool {
	return c.stateIndex(name) >= 0
}

// StateColor returns the display color of name, black when unknown.
func (c *BusinessConfig) StateColor(name string) string {
	if i := c.stateIndex(name); i >= 0 {
		return c.states[i].Color
	}
	return DefaultStateColor
}

// DefaultState is the state new entries start in: the first configured one.
func (c *BusinessConfig) DefaultState() (string, error) {
	if len(c.states) == 0 {
		return "", ErrNoStatesConfigured
	}
	return c.states[0].Name, nil
}

// UpdateInfo sets the business name and footer note, trimmed.
func (c *BusinessConfig) UpdateInfo(name, footerNote string, now time.Time) {
	c.name = strings.TrimSpace(name)
	c.footerNote = strings.TrimSpace(footerNote)
	c.recordEvent(&BusinessEvent{Type: EventBusinessInfoUpdated, OccurredAt: now})
}

// SetLogo replaces the logo; nil removes it.
func (c *BusinessConfig) SetLogo(logo *Image, now time.Time) {
	c.logo = logo
	c.recordEvent(&BusinessEvent{Type: EventBusinessLogoChanged, OccurredAt: now})
}

// AddState appends a state. Names are trimmed, non-empty and unique
// (case-sensitive, as entries store the exact name).
func (c *BusinessConfig) AddState(name, color string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyStateName
	}
	if c.HasState(name) {
		return ErrDuplicateState
	}
	color, err := normalizeColor(color)
	if err != nil {
		return err
	}

	c.states = append(c.states, WorkflowState{Name: name, Color: color})
	c.recordEvent(&BusinessEvent{Type: EventStateAdded, State: name, Color: color, OccurredAt: now})
	return nil
}

// UpdateStateColor recolors a state. Unknown names are ignored.
func (c *BusinessConfig) UpdateStateColor(name, color string, now time.Time) (bool, error) {
	color, err := normalizeColor(color)
	if err != nil {
		return false, err
	}
	i := c.stateIndex(name)
	if i < 0 {
		return false, nil
	}

	c.states[i].Color = color
	c.recordEvent(&BusinessEvent{Type: EventStateColorChanged, State: name, Color: color, OccurredAt: now})
	return true, nil
}

// RemoveState drops a state. Entries already in that state keep the name.
func (c *BusinessConfig) RemoveState(name string, now time.Time) bool {
	i := c.stateIndex(name)
	if i < 0 {
		return false
	}

	c.states = append(c.states[:i:i], c.states[i+1:]...)
	c.recordEvent(&BusinessEvent{Type: EventStateRemoved, State: name, OccurredAt: now})
	return true
}

func (c *BusinessConfig) stateIndex(name string) int {
	for i, s := range c.states {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func normalizeColor(color string) (string, error) {
	color = strings.TrimSpace(color)
	if color == "" {
		return DefaultStateColor, nil
	}
	if !colorPattern.MatchString(color) {
		return "", ErrInvalidColor
	}
	return strings.ToUpper(color), nil
}
