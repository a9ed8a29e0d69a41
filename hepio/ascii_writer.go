package hepio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/hepgo/attribute"
	"github.com/hupe1980/hepgo/event"
)

const (
	asciiVersionLine = "HepMC::Version 3.02.06"
	asciiStartLine   = "HepMC::Asciiv3-START_EVENT_LISTING"
	asciiEndLine     = "HepMC::Asciiv3-END_EVENT_LISTING"
	toolSeparator    = `\|`
)

// asciiEncoder writes the Asciiv3 listing.
type asciiEncoder struct {
	w       *bufio.Writer
	header  bool
	runInfo *event.RunInfo
	buf     []byte
}

func newASCIIEncoder(w io.Writer) *asciiEncoder {
	return &asciiEncoder{w: bufio.NewWriterSize(w, 64*1024)}
}

func (a *asciiEncoder) setRunInfo(ri *event.RunInfo) { a.runInfo = ri }

func (a *asciiEncoder) writeHeader() error {
	if a.header {
		return nil
	}
	a.header = true

	a.line(asciiVersionLine)
	a.line(asciiStartLine)

	if ri := a.runInfo; ri != nil {
		if names := ri.WeightNames(); len(names) > 0 {
			a.line("W " + strings.Join(names, " "))
		}
		for _, t := range ri.Tools() {
			a.line("T " + t.Name + toolSeparator + t.Version + toolSeparator + t.Description)
		}
		for _, name := range ri.AttributeNames() {
			v, _ := ri.Attribute(name)
			a.line("A " + name + " " + attribute.Format(v))
		}
	}
	return nil
}

func (a *asciiEncoder) encode(ev *event.Event) error {
	if !a.header && a.runInfo == nil {
		a.runInfo = ev.RunInfo()
	}
	if err := a.writeHeader(); err != nil {
		return err
	}

	particles := ev.Particles()
	vertices := ev.Vertices()

	b := a.buf[:0]
	b = append(b, "E "...)
	b = strconv.AppendInt(b, int64(ev.EventNumber()), 10)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(len(vertices)), 10)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(len(particles)), 10)
	a.buf = b
	a.flushLine()

	mu, lu := ev.Units()
	a.line("U " + mu.String() + " " + lu.String())

	if w := ev.Weights(); len(w) > 0 {
		b = append(a.buf[:0], 'W')
		for _, x := range w {
			b = append(b, ' ')
			b = appendFloat(b, x)
		}
		a.buf = b
		a.flushLine()
	}

	a.writeAttributes(ev, particles, vertices)

	written := make(map[*event.Particle]bool, len(particles))
	writeParticle := func(p *event.Particle) {
		if written[p] {
			return
		}
		written[p] = true
		a.writeParticle(ev, p)
	}

	for _, v := range vertices {
		for _, p := range v.ParticlesIn() {
			writeParticle(p)
		}
		a.writeVertex(v)
		for _, p := range v.ParticlesOut() {
			writeParticle(p)
		}
	}
	for _, p := range particles {
		writeParticle(p)
	}

	return a.err()
}

func (a *asciiEncoder) writeAttributes(ev *event.Event, particles []*event.Particle, vertices []*event.Vertex) {
	for _, name := range ev.AttributeNames() {
		for _, idx := range ev.AttributeIndices(name) {
			v, _ := ev.Attribute(name, idx)
			a.attributeLine(idx, name, v)
		}
	}
	for _, v := range vertices {
		for _, name := range v.AttributeNames() {
			val, _ := v.Attribute(name)
			a.attributeLine(v.ID(), name, val)
		}
	}
	for _, p := range particles {
		for _, name := range p.AttributeNames() {
			val, _ := p.Attribute(name)
			a.attributeLine(p.ID(), name, val)
		}
	}
}

func (a *asciiEncoder) attributeLine(idx int, name string, v attribute.Value) {
	b := append(a.buf[:0], "A "...)
	b = strconv.AppendInt(b, int64(idx), 10)
	b = append(b, ' ')
	b = append(b, name...)
	b = append(b, ' ')
	b = append(b, attribute.Format(v)...)
	a.buf = b
	a.flushLine()
}

// writeParticle emits a P line. A production vertex outside the event is
// written as 0.
func (a *asciiEncoder) writeParticle(ev *event.Event, p *event.Particle) {
	prod := 0
	if pv := p.ProductionVertex(); pv != nil && pv.Event() == ev {
		prod = pv.ID()
	}
	m := p.Momentum()

	b := append(a.buf[:0], "P "...)
	b = strconv.AppendInt(b, int64(p.ID()), 10)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(prod), 10)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(p.PDGID()), 10)
	for _, x := range [...]float64{m.X, m.Y, m.Z, m.T, p.GeneratedMass()} {
		b = append(b, ' ')
		b = appendFloat(b, x)
	}
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(p.Status()), 10)
	a.buf = b
	a.flushLine()
}

func (a *asciiEncoder) writeVertex(v *event.Vertex) {
	b := append(a.buf[:0], "V "...)
	b = strconv.AppendInt(b, int64(v.ID()), 10)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(v.Status()), 10)
	b = append(b, " ["...)
	for i, p := range v.ParticlesIn() {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(p.ID()), 10)
	}
	b = append(b, ']')
	if pos := v.Position(); !pos.IsZero() {
		b = append(b, " @"...)
		for _, x := range [...]float64{pos.X, pos.Y, pos.Z, pos.T} {
			b = append(b, ' ')
			b = appendFloat(b, x)
		}
	}
	a.buf = b
	a.flushLine()
}

func (a *asciiEncoder) finish() error {
	if err := a.writeHeader(); err != nil {
		return err
	}
	a.line(asciiEndLine)
	if err := a.err(); err != nil {
		return err
	}
	return a.w.Flush()
}

func (a *asciiEncoder) line(s string) {
	_, _ = a.w.WriteString(s)
	_ = a.w.WriteByte('\n')
}

func (a *asciiEncoder) flushLine() {
	a.buf = append(a.buf, '\n')
	_, _ = a.w.Write(a.buf)
}

// err reports the first write error; bufio.Writer keeps it sticky.
func (a *asciiEncoder) err() error {
	_, err := a.w.Write(nil)
	return err
}

// appendFloat formats f with 17 significant digits so every value parses
// back to the same bits.
func appendFloat(b []byte, f float64) []byte {
	return strconv.AppendFloat(b, f, 'e', 16, 64)
}
