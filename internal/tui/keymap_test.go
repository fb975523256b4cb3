package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := map[string]key.Binding{
		"Quit":     km.Quit,
		"Pause":    km.Pause,
		"Reset":    km.Reset,
		"Overlay":  km.Overlay,
		"Up":       km.Up,
		"Down":     km.Down,
		"PageUp":   km.PageUp,
		"PageDown": km.PageDown,
	}

	for name, b := range bindings {
		t.Run(name, func(t *testing.T) {
			if !b.Enabled() {
				t.Errorf("%s binding should be enabled", name)
			}
			if len(b.Keys()) == 0 {
				t.Errorf("%s binding has no keys", name)
			}
			if b.Help().Desc == "" {
				t.Errorf("%s binding has no help text for the footer", name)
			}
		})
	}
}

func TestDefaultKeyMap_Matches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"q quits", keyMsg('q'), km.Quit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
		{"p pauses", keyMsg('p'), km.Pause},
		{"space pauses", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, km.Pause},
		{"r reruns", keyMsg('r'), km.Reset},
		{"o toggles results", keyMsg('o'), km.Overlay},
		{"tab toggles results", tea.KeyMsg{Type: tea.KeyTab}, km.Overlay},
		{"k scrolls up", keyMsg('k'), km.Up},
		{"j scrolls down", keyMsg('j'), km.Down},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("key %q should match the binding for %v", tt.msg.String(), tt.binding.Keys())
			}
		})
	}
}

func TestDefaultKeyMap_NoOverlap(t *testing.T) {
	km := DefaultKeyMap()

	seen := map[string]string{}
	bindings := map[string]key.Binding{
		"Quit":     km.Quit,
		"Pause":    km.Pause,
		"Reset":    km.Reset,
		"Overlay":  km.Overlay,
		"Up":       km.Up,
		"Down":     km.Down,
		"PageUp":   km.PageUp,
		"PageDown": km.PageDown,
	}
	for name, b := range bindings {
		for _, k := range b.Keys() {
			if prev, dup := seen[k]; dup {
				t.Errorf("key %q bound to both %s and %s", k, prev, name)
			}
			seen[k] = name
		}
	}
}
