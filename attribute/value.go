package attribute

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an unset value.
	KindInvalid Kind = iota
	// KindInt represents an integer value.
	KindInt
	// KindDouble represents a double-precision value.
	KindDouble
	// KindString represents a string value.
	KindString
	// KindPdfInfo represents parton distribution information.
	KindPdfInfo
	// KindCrossSection represents a cross section with error.
	KindCrossSection
	// KindHeavyIon represents heavy-ion collision geometry.
	KindHeavyIon
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindPdfInfo:
		return "pdf_info"
	case KindCrossSection:
		return "cross_section"
	case KindHeavyIon:
		return "heavy_ion"
	default:
		return "invalid"
	}
}

// IsComposite reports whether k is one of the record kinds.
func (k Kind) IsComposite() bool {
	return k == KindPdfInfo || k == KindCrossSection || k == KindHeavyIon
}

// Reserved event attribute names for the composite kinds.
const (
	NamePdfInfo      = "GenPdfInfo"
	NameCrossSection = "GenCrossSection"
	NameHeavyIon     = "GenHeavyIon"
)

// ReservedKind returns the kind bound to a reserved attribute name.
func ReservedKind(name string) (Kind, bool) {
	switch name {
	case NamePdfInfo:
		return KindPdfInfo, true
	case NameCrossSection:
		return KindCrossSection, true
	case NameHeavyIon:
		return KindHeavyIon, true
	default:
		return KindInvalid, false
	}
}

// PdfInfo describes the incoming partons and the PDF sets used.
type PdfInfo struct {
	Parton1 int
	Parton2 int
	X1      float64
	X2      float64
	Q       float64
	XF1     float64
	XF2     float64
	PdfSet1 int
	PdfSet2 int
}

// CrossSection holds the generator cross section estimate.
type CrossSection struct {
	Value           float64
	Error           float64
	AcceptedEvents  int64
	AttemptedEvents int64
}

// HeavyIon holds heavy-ion collision geometry.
type HeavyIon struct {
	NcollHard                  int
	NpartProj                  int
	NpartTarg                  int
	Ncoll                      int
	NspecNeutrons              int
	NspecProtons               int
	NNwoundedCollisions        int
	NwoundedNCollisions        int
	NwoundedNwoundedCollisions int
	ImpactParameter            float64
	EventPlaneAngle            float64
	Eccentricity               float64
	SigmaInelNN                float64
}

// Value is a typed attribute value.
//
// NOTE: composite payloads are shared by pointer between copies of a Value;
// construct a new Value instead of mutating one in place.
type Value struct {
	Kind Kind
	I64  int64
	F64  float64
	S    string

	Pdf *PdfInfo
	XS  *CrossSection
	HI  *HeavyIon
}

// Int returns an integer Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Double returns a double Value.
func Double(v float64) Value { return Value{Kind: KindDouble, F64: v} }

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, S: v} }

// Pdf returns a PDF info Value holding a copy of p.
func Pdf(p PdfInfo) Value { return Value{Kind: KindPdfInfo, Pdf: &p} }

// XSection returns a cross-section Value holding a copy of xs.
func XSection(xs CrossSection) Value { return Value{Kind: KindCrossSection, XS: &xs} }

// Ion returns a heavy-ion Value holding a copy of hi.
func Ion(hi HeavyIon) Value { return Value{Kind: KindHeavyIon, HI: &hi} }

// IsValid reports whether the value carries a payload.
func (v Value) IsValid() bool {
	switch v.Kind {
	case KindInt, KindDouble, KindString:
		return true
	case KindPdfInfo:
		return v.Pdf != nil
	case KindCrossSection:
		return v.XS != nil
	case KindHeavyIon:
		return v.HI != nil
	default:
		return false
	}
}

// AsInt returns the integer value if Kind is KindInt.
func (v Value) AsInt() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsDouble returns the double value if Kind is KindDouble.
// Integers are widened.
func (v Value) AsDouble() (float64, bool) {
	switch v.Kind {
	case KindDouble:
		return v.F64, true
	case KindInt:
		return float64(v.I64), true
	default:
		return 0, false
	}
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.S, true
}

// AsPdfInfo returns a copy of the PDF info payload.
func (v Value) AsPdfInfo() (PdfInfo, bool) {
	if v.Kind != KindPdfInfo || v.Pdf == nil {
		return PdfInfo{}, false
	}
	return *v.Pdf, true
}

// AsCrossSection returns a copy of the cross-section payload.
func (v Value) AsCrossSection() (CrossSection, bool) {
	if v.Kind != KindCrossSection || v.XS == nil {
		return CrossSection{}, false
	}
	return *v.XS, true
}

// AsHeavyIon returns a copy of the heavy-ion payload.
func (v Value) AsHeavyIon() (HeavyIon, bool) {
	if v.Kind != KindHeavyIon || v.HI == nil {
		return HeavyIon{}, false
	}
	return *v.HI, true
}

// Equal reports whether a and b hold the same kind and payload.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindInt:
		return a.I64 == b.I64
	case KindDouble:
		return a.F64 == b.F64
	case KindString:
		return a.S == b.S
	case KindPdfInfo:
		return a.Pdf != nil && b.Pdf != nil && *a.Pdf == *b.Pdf
	case KindCrossSection:
		return a.XS != nil && b.XS != nil && *a.XS == *b.XS
	case KindHeavyIon:
		return a.HI != nil && b.HI != nil && *a.HI == *b.HI
	default:
		return true
	}
}
