package malformed

// line is one monologue entry shown during the warm-up walk.
type line struct {
	text     string
	duration float64
}

var monologue = []line{
	{"that cursed komboter again... F$@!", 4},
	{"i can't believe it can't even handle booting up", 3},
	{"i gotta hurry and get those parts asap", 3},
	{"i don't want another blue screen ...", 4},
}

// dialog plays the monologue once, line by line.
type dialog struct {
	index   int
	elapsed float64
}

func newDialog() dialog {
	return dialog{}
}

func (d *dialog) advance(dt float64) {
	if d.done() {
		return
	}
	d.elapsed += dt
	for !d.done() && d.elapsed >= monologue[d.index].duration {
		d.elapsed -= monologue[d.index].duration
		d.index++
	}
}

func (d dialog) done() bool {
	return d.index >= len(monologue)
}

// current returns the line on screen, or "" once the monologue is over.
func (d dialog) current() string {
	if d.done() {
		return ""
	}
	return monologue[d.index].text
}
