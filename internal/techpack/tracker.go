package techpack

import "strings"

// sectionTracker holds the single piece of item-mode state: which garment
// section the current line belongs to. Any keyword occurrence anywhere in a
// line moves the tracker; it persists until overridden by new evidence.
type sectionTracker struct {
	current string
}

func newSectionTracker() *sectionTracker {
	return &sectionTracker{current: "assembly"}
}

// Observe updates the current section from keyword evidence. "front" is
// suppressed when "back" also appears on the line, and yoke content is
// attributed to assembly.
func (t *sectionTracker) Observe(line string) string {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "collar"):
		t.current = "collar"
	case strings.Contains(lower, "cuff"):
		t.current = "cuff"
	case strings.Contains(lower, "sleeve"):
		t.current = "sleeve"
	case strings.Contains(lower, "pocket"):
		t.current = "pocket"
	case strings.Contains(lower, "yoke"):
		t.current = "assembly"
	case strings.Contains(lower, "front") && !strings.Contains(lower, "back"):
		t.current = "front"
	case strings.Contains(lower, "back"):
		t.current = "back"
	}
	return t.current
}

// componentTracker is the stricter table-mode tracker: only isolated
// heading lines move it, so body text mentioning another part in passing
// cannot misattribute rows.
type componentTracker struct {
	rules   *Rules
	current string
}

func newComponentTracker(rules *Rules) *componentTracker {
	return &componentTracker{rules: rules, current: "Assembly"}
}

// Observe consumes the line if it is a heading, returning true and the
// (possibly changed) component. Non-heading lines leave the component
// untouched and return false.
func (t *componentTracker) Observe(line string) (string, bool) {
	if !t.rules.IsHeading(line) {
		return t.current, false
	}
	if comp, ok := t.rules.HeadingComponent(line); ok {
		t.current = comp
	}
	return t.current, true
}
