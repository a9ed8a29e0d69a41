package hepio

import (
	"bufio"
	"cmp"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/hepgo/attribute"
	"github.com/hupe1980/hepgo/event"
)

const maxLineSize = 64 << 20

var (
	errNotASCII      = errors.New("not an Asciiv3 listing")
	errFieldCount    = errors.New("wrong number of fields")
	errUnknownLine   = errors.New("unknown line type")
	errUnknownRef    = errors.New("reference to unknown entity")
	errParticleCount = errors.New("particle count does not match event header")
)

// asciiDecoder parses the Asciiv3 listing one event at a time.
type asciiDecoder struct {
	sc      *bufio.Scanner
	lineNo  int
	pending string
	peeked  bool

	header  bool
	done    bool
	runInfo *event.RunInfo
}

func newASCIIDecoder(r io.Reader) *asciiDecoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<20), maxLineSize)
	return &asciiDecoder{sc: sc, runInfo: event.NewRunInfo()}
}

func (d *asciiDecoder) next() (string, bool, error) {
	if d.peeked {
		d.peeked = false
		return d.pending, true, nil
	}
	for d.sc.Scan() {
		d.lineNo++
		line := strings.TrimRight(d.sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		return line, true, nil
	}
	return "", false, d.sc.Err()
}

func (d *asciiDecoder) unread(line string) {
	d.pending = line
	d.peeked = true
}

func (d *asciiDecoder) fail(line string, err error) error {
	return &ParseError{Line: d.lineNo, Text: line, Err: err}
}

// readHeader consumes everything up to the first event and fills the run info.
func (d *asciiDecoder) readHeader() error {
	d.header = true
	sawStart := false
	for {
		line, ok, err := d.next()
		if err != nil {
			return err
		}
		if !ok {
			d.done = true
			return nil
		}
		switch {
		case strings.HasPrefix(line, "HepMC::Version"):
		case line == asciiStartLine:
			sawStart = true
		case line == asciiEndLine:
			d.done = true
			return nil
		case strings.HasPrefix(line, "HepMC::"):
			return d.fail(line, errNotASCII)
		case !sawStart:
			return d.fail(line, errNotASCII)
		case line[0] == 'E':
			d.unread(line)
			return nil
		case line[0] == 'W':
			d.runInfo.SetWeightNames(strings.Fields(line[1:]))
		case line[0] == 'T':
			parts := strings.SplitN(strings.TrimSpace(line[1:]), toolSeparator, 3)
			for len(parts) < 3 {
				parts = append(parts, "")
			}
			d.runInfo.AddTool(event.Tool{Name: parts[0], Version: parts[1], Description: parts[2]})
		case line[0] == 'A':
			name, text, _ := strings.Cut(strings.TrimPrefix(line[1:], " "), " ")
			v, err := attribute.Parse(name, text)
			if err != nil {
				return d.fail(line, err)
			}
			if err := d.runInfo.SetAttribute(name, v); err != nil {
				return d.fail(line, err)
			}
		default:
			return d.fail(line, errUnknownLine)
		}
	}
}

type particleLine struct {
	id, prod, pdg, status int
	mom                   event.FourVector
	mass                  float64
}

type vertexLine struct {
	id, status int
	in         []int
	pos        event.FourVector
}

type attributeLine struct {
	index int
	name  string
	value attribute.Value
}

// decode reads the next event into ev. On any error ev is left cleared.
func (d *asciiDecoder) decode(ev *event.Event) error {
	ev.Clear()
	if err := d.decodeInto(ev); err != nil {
		ev.Clear()
		return err
	}
	return nil
}

func (d *asciiDecoder) decodeInto(ev *event.Event) error {
	if !d.header {
		if err := d.readHeader(); err != nil {
			d.done = true
			return err
		}
	}
	if d.done {
		return io.EOF
	}

	line, ok, err := d.next()
	if err != nil {
		return err
	}
	if !ok || line == asciiEndLine {
		d.done = true
		return io.EOF
	}
	if line[0] != 'E' {
		return d.fail(line, errUnknownLine)
	}

	f := strings.Fields(line)
	if len(f) < 4 {
		return d.fail(line, errFieldCount)
	}
	number, err1 := strconv.Atoi(f[1])
	_, err2 := strconv.Atoi(f[2])
	nParticles, err3 := strconv.Atoi(f[3])
	if err := errors.Join(err1, err2, err3); err != nil {
		return d.fail(line, err)
	}

	var (
		mu        = event.GeV
		lu        = event.MM
		weights   []float64
		particles = make([]particleLine, 0, nParticles)
		vertices  []vertexLine
		attrs     []attributeLine
	)

	for {
		line, ok, err := d.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if line[0] == 'E' || strings.HasPrefix(line, "HepMC::") {
			d.unread(line)
			break
		}

		switch line[0] {
		case 'U':
			f := strings.Fields(line)
			if len(f) != 3 {
				return d.fail(line, errFieldCount)
			}
			if mu, err = event.ParseMomentumUnit(f[1]); err != nil {
				return d.fail(line, err)
			}
			if lu, err = event.ParseLengthUnit(f[2]); err != nil {
				return d.fail(line, err)
			}
		case 'W':
			f := strings.Fields(line)[1:]
			weights = make([]float64, len(f))
			for i, s := range f {
				if weights[i], err = strconv.ParseFloat(s, 64); err != nil {
					return d.fail(line, err)
				}
			}
		case 'A':
			a, err := parseAttributeLine(line)
			if err != nil {
				return d.fail(line, err)
			}
			attrs = append(attrs, a)
		case 'P':
			p, err := parseParticleLine(line)
			if err != nil {
				return d.fail(line, err)
			}
			particles = append(particles, p)
		case 'V':
			v, err := parseVertexLine(line)
			if err != nil {
				return d.fail(line, err)
			}
			vertices = append(vertices, v)
		case 'T':
			// Tool lines inside an event carry no event data.
		default:
			return d.fail(line, errUnknownLine)
		}
	}

	if len(particles) != nParticles {
		return d.fail(line, errParticleCount)
	}

	ev.SetEventNumber(number)
	ev.SetUnits(mu, lu)
	ev.SetWeights(weights)
	ev.SetRunInfo(d.runInfo)

	if err := assemble(ev, particles, vertices, attrs); err != nil {
		return d.fail(line, err)
	}
	return nil
}

// assemble builds the graph from parsed lines. Particles are added first so
// their ids follow the listing order, then vertices are linked in.
func assemble(ev *event.Event, particles []particleLine, vertices []vertexLine, attrs []attributeLine) error {
	slices.SortStableFunc(particles, func(a, b particleLine) int { return cmp.Compare(a.id, b.id) })
	slices.SortStableFunc(vertices, func(a, b vertexLine) int { return cmp.Compare(b.id, a.id) })

	pByID := make(map[int]*event.Particle, len(particles))
	for _, pl := range particles {
		p := event.NewParticle(pl.mom, pl.pdg, pl.status)
		p.SetGeneratedMass(pl.mass)
		if err := ev.AddParticle(p); err != nil {
			return err
		}
		pByID[pl.id] = p
	}

	vByID := make(map[int]*event.Vertex, len(vertices))
	for _, vl := range vertices {
		v := event.NewVertex(vl.pos)
		v.SetStatus(vl.status)
		if err := ev.AddVertex(v); err != nil {
			return err
		}
		vByID[vl.id] = v
		for _, id := range vl.in {
			p, ok := pByID[id]
			if !ok {
				return errUnknownRef
			}
			if err := v.AddParticleIn(p); err != nil {
				return err
			}
		}
	}

	for _, pl := range particles {
		if pl.prod == 0 {
			continue
		}
		p := pByID[pl.id]

		var v *event.Vertex
		if pl.prod < 0 {
			v = vByID[pl.prod]
			if v == nil {
				return errUnknownRef
			}
		} else {
			// A positive production id names the single parent particle of
			// a vertex that was not listed.
			parent, ok := pByID[pl.prod]
			if !ok {
				return errUnknownRef
			}
			if v = parent.EndVertex(); v == nil {
				v = event.NewVertex(event.FourVector{})
				if err := ev.AddVertex(v); err != nil {
					return err
				}
				if err := v.AddParticleIn(parent); err != nil {
					return err
				}
			}
		}
		if err := v.AddParticleOut(p); err != nil {
			return err
		}
	}

	for _, a := range attrs {
		var err error
		switch p, v := pByID[a.index], vByID[a.index]; {
		case a.index > 0 && p != nil:
			err = p.SetAttribute(a.name, a.value)
		case a.index < 0 && v != nil:
			err = v.SetAttribute(a.name, a.value)
		default:
			err = ev.SetAttribute(a.name, a.index, a.value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func parseAttributeLine(line string) (attributeLine, error) {
	rest := strings.TrimPrefix(line[1:], " ")
	idxText, rest, ok := strings.Cut(rest, " ")
	if !ok {
		return attributeLine{}, errFieldCount
	}
	idx, err := strconv.Atoi(idxText)
	if err != nil {
		return attributeLine{}, err
	}
	name, text, _ := strings.Cut(rest, " ")
	if name == "" {
		return attributeLine{}, errFieldCount
	}
	v, err := attribute.Parse(name, text)
	if err != nil {
		return attributeLine{}, err
	}
	return attributeLine{index: idx, name: name, value: v}, nil
}

func parseParticleLine(line string) (particleLine, error) {
	f := strings.Fields(line)
	if len(f) != 10 {
		return particleLine{}, errFieldCount
	}

	var (
		p    particleLine
		errs [10]error
		x    [5]float64
	)
	p.id, errs[0] = strconv.Atoi(f[1])
	p.prod, errs[1] = strconv.Atoi(f[2])
	p.pdg, errs[2] = strconv.Atoi(f[3])
	for i := range x {
		x[i], errs[3+i] = strconv.ParseFloat(f[4+i], 64)
	}
	p.status, errs[8] = strconv.Atoi(f[9])
	if err := errors.Join(errs[:]...); err != nil {
		return particleLine{}, err
	}
	p.mom = event.NewFourVector(x[0], x[1], x[2], x[3])
	p.mass = x[4]
	return p, nil
}

func parseVertexLine(line string) (vertexLine, error) {
	f := strings.Fields(line)
	if len(f) < 3 {
		return vertexLine{}, errFieldCount
	}

	var (
		v          vertexLine
		err1, err2 error
	)
	v.id, err1 = strconv.Atoi(f[1])
	v.status, err2 = strconv.Atoi(f[2])
	if err := errors.Join(err1, err2); err != nil {
		return vertexLine{}, err
	}

	rest := strings.Join(f[3:], " ")
	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return vertexLine{}, errFieldCount
		}
		for _, s := range strings.Split(rest[1:end], ",") {
			if s = strings.TrimSpace(s); s == "" {
				continue
			}
			id, err := strconv.Atoi(s)
			if err != nil {
				return vertexLine{}, err
			}
			v.in = append(v.in, id)
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	if rest == "" {
		return v, nil
	}
	pf := strings.Fields(rest)
	if pf[0] != "@" || len(pf) != 5 {
		return vertexLine{}, errFieldCount
	}
	var x [4]float64
	for i := range x {
		var err error
		if x[i], err = strconv.ParseFloat(pf[1+i], 64); err != nil {
			return vertexLine{}, err
		}
	}
	v.pos = event.NewFourVector(x[0], x[1], x[2], x[3])
	return v, nil
}
