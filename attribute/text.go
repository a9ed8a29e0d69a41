package attribute

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned when an attribute's text form cannot be parsed.
var ErrMalformed = errors.New("attribute: malformed value")

// heavyIonVersion prefixes the heavy-ion field list.
const heavyIonVersion = "v0"

// Format renders v in the single-line listing form.
func Format(v Value) string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindDouble:
		return formatDouble(v.F64)
	case KindString:
		return escape(v.S)
	case KindPdfInfo:
		if v.Pdf == nil {
			return ""
		}
		p := v.Pdf
		return joinFields(
			strconv.Itoa(p.Parton1), strconv.Itoa(p.Parton2),
			formatFloat(p.X1), formatFloat(p.X2), formatFloat(p.Q),
			formatFloat(p.XF1), formatFloat(p.XF2),
			strconv.Itoa(p.PdfSet1), strconv.Itoa(p.PdfSet2),
		)
	case KindCrossSection:
		if v.XS == nil {
			return ""
		}
		xs := v.XS
		return joinFields(
			formatFloat(xs.Value), formatFloat(xs.Error),
			strconv.FormatInt(xs.AcceptedEvents, 10), strconv.FormatInt(xs.AttemptedEvents, 10),
		)
	case KindHeavyIon:
		if v.HI == nil {
			return ""
		}
		hi := v.HI
		return joinFields(
			heavyIonVersion,
			strconv.Itoa(hi.NcollHard), strconv.Itoa(hi.NpartProj), strconv.Itoa(hi.NpartTarg),
			strconv.Itoa(hi.Ncoll), strconv.Itoa(hi.NspecNeutrons), strconv.Itoa(hi.NspecProtons),
			strconv.Itoa(hi.NNwoundedCollisions), strconv.Itoa(hi.NwoundedNCollisions),
			strconv.Itoa(hi.NwoundedNwoundedCollisions),
			formatFloat(hi.ImpactParameter), formatFloat(hi.EventPlaneAngle),
			formatFloat(hi.Eccentricity), formatFloat(hi.SigmaInelNN),
		)
	default:
		return ""
	}
}

// Parse decodes the text form of the attribute stored under name.
//
// Reserved names decode to their composite kind. Any other text decodes to
// the narrowest scalar that accepts it: int, then double, then string.
func Parse(name, text string) (Value, error) {
	if kind, ok := ReservedKind(name); ok {
		return parseComposite(kind, text)
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(i), nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && looksNumeric(text) {
		return Double(f), nil
	}
	return String(unescape(text)), nil
}

func parseComposite(kind Kind, text string) (Value, error) {
	f := fields{toks: strings.Fields(text)}

	switch kind {
	case KindPdfInfo:
		p := PdfInfo{
			Parton1: f.int(), Parton2: f.int(),
			X1: f.float(), X2: f.float(), Q: f.float(),
			XF1: f.float(), XF2: f.float(),
			PdfSet1: f.int(), PdfSet2: f.int(),
		}
		if f.err != nil {
			return Value{}, fmt.Errorf("%w: %s: %w", ErrMalformed, NamePdfInfo, f.err)
		}
		return Pdf(p), nil
	case KindCrossSection:
		xs := CrossSection{Value: f.float(), Error: f.float()}
		// Older listings stop after the error.
		if f.remaining() >= 2 {
			xs.AcceptedEvents = int64(f.int())
			xs.AttemptedEvents = int64(f.int())
		}
		if f.err != nil {
			return Value{}, fmt.Errorf("%w: %s: %w", ErrMalformed, NameCrossSection, f.err)
		}
		return XSection(xs), nil
	case KindHeavyIon:
		if f.remaining() > 0 && f.toks[0] == heavyIonVersion {
			f.pos++
		}
		var hi HeavyIon
		hi.NcollHard = f.int()
		hi.NpartProj = f.int()
		hi.NpartTarg = f.int()
		hi.Ncoll = f.int()
		hi.NspecNeutrons = f.int()
		hi.NspecProtons = f.int()
		hi.NNwoundedCollisions = f.int()
		hi.NwoundedNCollisions = f.int()
		hi.NwoundedNwoundedCollisions = f.int()
		hi.ImpactParameter = f.float()
		hi.EventPlaneAngle = f.float()
		hi.Eccentricity = f.float()
		hi.SigmaInelNN = f.float()
		if f.err != nil {
			return Value{}, fmt.Errorf("%w: %s: %w", ErrMalformed, NameHeavyIon, f.err)
		}
		return Ion(hi), nil
	default:
		return Value{}, fmt.Errorf("%w: kind %s is not composite", ErrMalformed, kind)
	}
}

type fields struct {
	toks []string
	pos  int
	err  error
}

func (f *fields) remaining() int { return len(f.toks) - f.pos }

func (f *fields) next() (string, bool) {
	if f.err != nil {
		return "", false
	}
	if f.pos >= len(f.toks) {
		f.err = errors.New("missing field")
		return "", false
	}
	t := f.toks[f.pos]
	f.pos++
	return t, true
}

func (f *fields) int() int {
	t, ok := f.next()
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(t)
	if err != nil {
		f.err = err
	}
	return v
}

func (f *fields) float() float64 {
	t, ok := f.next()
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		f.err = err
	}
	return v
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// formatDouble keeps a decimal point on integral values so the text parses
// back as a double rather than an int.
func formatDouble(f float64) string {
	s := formatFloat(f)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

func joinFields(parts ...string) string {
	return strings.Join(parts, " ")
}

// looksNumeric rejects words such as "inf" or "infinity" that ParseFloat
// accepts, keeping only the spellings Format produces.
func looksNumeric(s string) bool {
	switch s {
	case "+Inf", "-Inf", "NaN":
		return true
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+', r == 'e', r == 'E':
		default:
			return false
		}
	}
	return s != ""
}

var (
	escaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	unescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n")
)

func escape(s string) string   { return escaper.Replace(s) }
func unescape(s string) string { return unescaper.Replace(s) }
