package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

const pillsHeight = 2

// contactPills lays out recipient pills in a scrolling viewport. Adding a
// pill scrolls to the bottom so the new pill is in view.
type contactPills struct {
	viewport viewport.Model
	contacts []string
	selected int
}

func newContactPills(width int) contactPills {
	if width <= 0 {
		width = 40
	}
	return contactPills{
		viewport: viewport.New(width, pillsHeight),
		selected: -1,
	}
}

// SetContacts replaces the pills, scrolling to the bottom when there are more
// than before
func (p contactPills) SetContacts(contacts []string) contactPills {
	previousCount := len(p.contacts)
	p.contacts = append([]string(nil), contacts...)

	switch {
	case len(p.contacts) == 0:
		p.selected = -1
	case len(p.contacts) > previousCount:
		p.selected = len(p.contacts) - 1
	case p.selected >= len(p.contacts):
		p.selected = len(p.contacts) - 1
	}

	p.viewport.SetContent(p.render())
	if len(p.contacts) > previousCount {
		p.viewport.GotoBottom()
	}
	return p
}

// Add appends a pill
func (p contactPills) Add(contact string) contactPills {
	return p.SetContacts(append(append([]string(nil), p.contacts...), contact))
}

// RemoveSelected drops the selected pill
func (p contactPills) RemoveSelected() contactPills {
	if p.selected < 0 || p.selected >= len(p.contacts) {
		return p
	}
	contacts := append([]string(nil), p.contacts[:p.selected]...)
	contacts = append(contacts, p.contacts[p.selected+1:]...)
	return p.SetContacts(contacts)
}

// Selected returns the selected contact
func (p contactPills) Selected() (string, bool) {
	if p.selected < 0 || p.selected >= len(p.contacts) {
		return "", false
	}
	return p.contacts[p.selected], true
}

// Contacts returns the pills in order
func (p contactPills) Contacts() []string {
	return append([]string(nil), p.contacts...)
}

// Move shifts the selection by delta, wrapping around
func (p contactPills) Move(delta int) contactPills {
	if len(p.contacts) == 0 {
		return p
	}
	p.selected = ((p.selected+delta)%len(p.contacts) + len(p.contacts)) % len(p.contacts)
	p.viewport.SetContent(p.render())
	return p
}

// SetWidth re-wraps the pills to width
func (p contactPills) SetWidth(width int) contactPills {
	if width <= 0 {
		return p
	}
	p.viewport.Width = width
	p.viewport.SetContent(p.render())
	return p
}

// AtBottom reports whether the last line of pills is visible
func (p contactPills) AtBottom() bool {
	return p.viewport.AtBottom()
}

func (p contactPills) render() string {
	var lines []string
	var line strings.Builder
	lineWidth := 0

	for i, contact := range p.contacts {
		style := pillStyle
		if i == p.selected {
			style = selectedPillStyle
		}
		pill := style.Render(contact)
		w := lipgloss.Width(pill)

		if lineWidth > 0 && lineWidth+1+w > p.viewport.Width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteString(" ")
			lineWidth++
		}
		line.WriteString(pill)
		lineWidth += w
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}

// View renders the visible pill lines
func (p contactPills) View() string {
	if len(p.contacts) == 0 {
		return helpStyle.Render("No recipients. Press + to add one.")
	}
	return p.viewport.View()
}
