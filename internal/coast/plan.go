package coast

import "github.com/specialistvlad/kisscoast/internal/gcode"

// edit is every change recorded against one input line.
type edit struct {
	replace    string
	hasReplace bool
	strip      bool
	notes      []string
	insert     []string
}

// plan collects edits by original line index.
type plan struct {
	edits map[int]*edit
	added int
}

func newPlan() *plan {
	return &plan{edits: make(map[int]*edit)}
}

func (p *plan) at(i int) *edit {
	e, ok := p.edits[i]
	if !ok {
		e = &edit{}
		p.edits[i] = e
	}
	return e
}

func (p *plan) replace(i int, line string) {
	e := p.at(i)
	e.replace, e.hasReplace = line, true
}

func (p *plan) insertAfter(i int, line string) {
	p.at(i).insert = append(p.at(i).insert, line)
	p.added++
}

func (p *plan) strip(from, to int) {
	for i := from; i < to; i++ {
		p.at(i).strip = true
	}
}

func (p *plan) note(i int, comment string) {
	p.at(i).notes = append(p.at(i).notes, comment)
}

// apply builds the output. Input lines are not modified.
func (p *plan) apply(lines []string) []string {
	out := make([]string, 0, len(lines)+p.added)
	for i, line := range lines {
		e, ok := p.edits[i]
		if !ok {
			out = append(out, line)
			continue
		}
		if e.hasReplace {
			line = e.replace
		}
		if e.strip {
			line = gcode.StripExtrusion(line)
		}
		for _, n := range e.notes {
			line = gcode.Annotate(line, n)
		}
		out = append(out, line)
		out = append(out, e.insert...)
	}
	return out
}
