package attribute

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Accessors(t *testing.T) {
	t.Run("Int", func(t *testing.T) {
		v := Int(42)
		i, ok := v.AsInt()
		assert.True(t, ok)
		assert.Equal(t, int64(42), i)

		f, ok := v.AsDouble()
		assert.True(t, ok)
		assert.Equal(t, 42.0, f)

		_, ok = v.AsString()
		assert.False(t, ok)
	})

	t.Run("Double", func(t *testing.T) {
		v := Double(0.25)
		_, ok := v.AsInt()
		assert.False(t, ok)
		f, ok := v.AsDouble()
		assert.True(t, ok)
		assert.Equal(t, 0.25, f)
	})

	t.Run("Composite copies payload", func(t *testing.T) {
		xs := CrossSection{Value: 1.5, Error: 0.1}
		v := XSection(xs)
		xs.Value = 99

		got, ok := v.AsCrossSection()
		require.True(t, ok)
		assert.Equal(t, 1.5, got.Value)

		_, ok = v.AsPdfInfo()
		assert.False(t, ok)
	})

	t.Run("Invalid", func(t *testing.T) {
		assert.False(t, Value{}.IsValid())
		assert.False(t, Value{Kind: KindHeavyIon}.IsValid())
		assert.True(t, Ion(HeavyIon{}).IsValid())
	})
}

func TestReservedKind(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		ok   bool
	}{
		{NamePdfInfo, KindPdfInfo, true},
		{NameCrossSection, KindCrossSection, true},
		{NameHeavyIon, KindHeavyIon, true},
		{"signal_process_id", KindInvalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := ReservedKind(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestFormatParse(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		text  string
	}{
		{"mpi", Int(-3), "-3"},
		{"alphaQCD", Double(0.118), "0.118"},
		{"scale", Double(91), "91.0"},
		{"limit", Double(math.Inf(1)), "+Inf"},
		{"tag", String("two words"), "two words"},
		{"multiline", String("a\nb\\c"), `a\nb\\c`},
		{NameCrossSection, XSection(CrossSection{Value: 1.25e-3, Error: 2e-5, AcceptedEvents: 10, AttemptedEvents: 12}), "0.00125 2e-05 10 12"},
		{NamePdfInfo, Pdf(PdfInfo{Parton1: 21, Parton2: -2, X1: 0.1, X2: 0.02, Q: 91.2, XF1: 0.5, XF2: 0.6, PdfSet1: 10042, PdfSet2: 10042}), "21 -2 0.1 0.02 91.2 0.5 0.6 10042 10042"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.text, Format(tt.value))

			got, err := Parse(tt.name, tt.text)
			require.NoError(t, err)
			assert.True(t, Equal(tt.value, got), "got %+v", got)
		})
	}
}

func TestParse_HeavyIon(t *testing.T) {
	hi := HeavyIon{
		NcollHard: 1, NpartProj: 2, NpartTarg: 3, Ncoll: 4,
		NspecNeutrons: 5, NspecProtons: 6,
		NNwoundedCollisions: 7, NwoundedNCollisions: 8, NwoundedNwoundedCollisions: 9,
		ImpactParameter: 1.5, EventPlaneAngle: 0.25, Eccentricity: 0.5, SigmaInelNN: 70,
	}
	text := Format(Ion(hi))
	assert.Equal(t, "v0 1 2 3 4 5 6 7 8 9 1.5 0.25 0.5 70", text)

	got, err := Parse(NameHeavyIon, text)
	require.NoError(t, err)
	out, ok := got.AsHeavyIon()
	require.True(t, ok)
	assert.Equal(t, hi, out)
}

func TestParse_Inference(t *testing.T) {
	v, err := Parse("x", "inf")
	require.NoError(t, err)
	assert.Equal(t, KindString, v.Kind)

	v, err = Parse("x", "1e3")
	require.NoError(t, err)
	assert.Equal(t, KindDouble, v.Kind)

	v, err = Parse(NameCrossSection, "1.0 0.1")
	require.NoError(t, err)
	xs, _ := v.AsCrossSection()
	assert.Equal(t, int64(0), xs.AcceptedEvents)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(NamePdfInfo, "21 -2 0.1")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Parse(NameCrossSection, "abc 0.1")
	assert.ErrorIs(t, err, ErrMalformed)
}
