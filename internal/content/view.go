package content

import "fmt"

// Script selects one of a passage's two renderings.
type Script string

const (
	Primary   Script = "primary"
	Secondary Script = "secondary"
)

// ParseScript maps a query value to a Script. The empty string is Primary.
func ParseScript(s string) (Script, error) {
	switch Script(s) {
	case "", Primary:
		return Primary, nil
	case Secondary:
		return Secondary, nil
	default:
		return "", fmt.Errorf("unknown script %q", s)
	}
}

// Other returns the opposite script.
func (s Script) Other() Script {
	if s == Secondary {
		return Primary
	}
	return Secondary
}

// View is the display state of one passage. A fresh View always shows the
// primary script; it is not carried over to another passage.
type View struct {
	Passage Passage
	Script  Script
}

// NewView creates a view of p showing the primary script.
func NewView(p Passage) *View {
	return &View{Passage: p, Script: Primary}
}

// Toggle switches to the other script.
func (v *View) Toggle() {
	v.Script = v.Script.Other()
}

// Text returns the rendering currently shown, which may be empty.
func (v *View) Text() string {
	if v.Script == Secondary {
		return v.Passage.Secondary
	}
	return v.Passage.Primary
}
