package hepgo

import (
	"fmt"

	"github.com/hupe1980/hepgo/attribute"
	"github.com/hupe1980/hepgo/event"
)

func (b *Bridge) CreateIntAttribute(v int64) (Handle, error) {
	return b.mint("create_attribute", attribute.Int(v))
}

func (b *Bridge) CreateDoubleAttribute(v float64) (Handle, error) {
	return b.mint("create_attribute", attribute.Double(v))
}

func (b *Bridge) CreateStringAttribute(v string) (Handle, error) {
	return b.mint("create_attribute", attribute.String(v))
}

func (b *Bridge) CreatePdfInfo(p attribute.PdfInfo) (Handle, error) {
	return b.mint("create_attribute", attribute.Pdf(p))
}

func (b *Bridge) CreateCrossSection(xs attribute.CrossSection) (Handle, error) {
	return b.mint("create_attribute", attribute.XSection(xs))
}

func (b *Bridge) CreateHeavyIon(hi attribute.HeavyIon) (Handle, error) {
	return b.mint("create_attribute", attribute.Ion(hi))
}

// AddParticleAttribute stores the attribute behind ah on the particle under
// name, replacing any previous value.
func (b *Bridge) AddParticleAttribute(ph Handle, name string, ah Handle) error {
	p, err := get[*event.Particle](b, "add_particle_attribute", ph)
	if err != nil {
		return err
	}
	a, err := get[attribute.Value](b, "add_particle_attribute", ah)
	if err != nil {
		return err
	}
	if err := p.SetAttribute(name, a); err != nil {
		return &HandleError{Op: "add_particle_attribute", Handle: ph, cause: err}
	}
	return nil
}

// AddVertexAttribute stores the attribute behind ah on the vertex under name,
// replacing any previous value.
func (b *Bridge) AddVertexAttribute(vh Handle, name string, ah Handle) error {
	v, err := get[*event.Vertex](b, "add_vertex_attribute", vh)
	if err != nil {
		return err
	}
	a, err := get[attribute.Value](b, "add_vertex_attribute", ah)
	if err != nil {
		return err
	}
	if err := v.SetAttribute(name, a); err != nil {
		return &HandleError{Op: "add_vertex_attribute", Handle: vh, cause: err}
	}
	return nil
}

// AddEventAttribute stores the attribute behind ah in the event table under
// (name, index). Index 0 addresses the event itself.
func (b *Bridge) AddEventAttribute(eh Handle, name string, ah Handle, index int) error {
	e, err := get[*event.Event](b, "add_event_attribute", eh)
	if err != nil {
		return err
	}
	a, err := get[attribute.Value](b, "add_event_attribute", ah)
	if err != nil {
		return err
	}
	if err := e.SetAttribute(name, index, a); err != nil {
		return &HandleError{Op: "add_event_attribute", Handle: eh, cause: err}
	}
	return nil
}

// AddPdfInfoAttribute sets the event's PDF info.
func (b *Bridge) AddPdfInfoAttribute(eh, ah Handle) error {
	return b.AddEventAttribute(eh, attribute.NamePdfInfo, ah, 0)
}

// AddCrossSectionAttribute sets the event's cross section.
func (b *Bridge) AddCrossSectionAttribute(eh, ah Handle) error {
	return b.AddEventAttribute(eh, attribute.NameCrossSection, ah, 0)
}

// AddHeavyIonAttribute sets the event's heavy-ion information.
func (b *Bridge) AddHeavyIonAttribute(eh, ah Handle) error {
	return b.AddEventAttribute(eh, attribute.NameHeavyIon, ah, 0)
}

// AddRunInfoAttribute stores the attribute behind ah on the run info.
func (b *Bridge) AddRunInfoAttribute(rh Handle, name string, ah Handle) error {
	ri, err := get[*event.RunInfo](b, "add_run_info_attribute", rh)
	if err != nil {
		return err
	}
	a, err := get[attribute.Value](b, "add_run_info_attribute", ah)
	if err != nil {
		return err
	}
	if err := ri.SetAttribute(name, a); err != nil {
		return &HandleError{Op: "add_run_info_attribute", Handle: rh, cause: err}
	}
	return nil
}

func (b *Bridge) RemoveParticleAttribute(ph Handle, name string) error {
	p, err := get[*event.Particle](b, "remove_particle_attribute", ph)
	if err != nil {
		return err
	}
	p.RemoveAttribute(name)
	return nil
}

func (b *Bridge) RemoveVertexAttribute(vh Handle, name string) error {
	v, err := get[*event.Vertex](b, "remove_vertex_attribute", vh)
	if err != nil {
		return err
	}
	v.RemoveAttribute(name)
	return nil
}

// RemoveEventAttribute removes every index stored under name.
func (b *Bridge) RemoveEventAttribute(eh Handle, name string) error {
	e, err := get[*event.Event](b, "remove_event_attribute", eh)
	if err != nil {
		return err
	}
	e.RemoveAttribute(name)
	return nil
}

// ParticleAttribute returns a new attribute handle for the value stored under
// name, or Null when there is none.
func (b *Bridge) ParticleAttribute(ph Handle, name string) (Handle, error) {
	p, err := get[*event.Particle](b, "particle_attribute", ph)
	if err != nil {
		return Null, err
	}
	a, ok := p.Attribute(name)
	return b.mintAttribute("particle_attribute", a, ok)
}

// VertexAttribute returns a new attribute handle for the value stored under
// name, or Null when there is none.
func (b *Bridge) VertexAttribute(vh Handle, name string) (Handle, error) {
	v, err := get[*event.Vertex](b, "vertex_attribute", vh)
	if err != nil {
		return Null, err
	}
	a, ok := v.Attribute(name)
	return b.mintAttribute("vertex_attribute", a, ok)
}

// EventAttribute returns a new attribute handle for the value stored under
// (name, index), or Null when there is none.
func (b *Bridge) EventAttribute(eh Handle, name string, index int) (Handle, error) {
	e, err := get[*event.Event](b, "event_attribute", eh)
	if err != nil {
		return Null, err
	}
	a, ok := e.Attribute(name, index)
	return b.mintAttribute("event_attribute", a, ok)
}

// RunInfoAttribute returns a new attribute handle for the run-level value
// stored under name, or Null when there is none.
func (b *Bridge) RunInfoAttribute(rh Handle, name string) (Handle, error) {
	ri, err := get[*event.RunInfo](b, "run_info_attribute", rh)
	if err != nil {
		return Null, err
	}
	a, ok := ri.Attribute(name)
	return b.mintAttribute("run_info_attribute", a, ok)
}

func (b *Bridge) ParticleAttributeNames(ph Handle) ([]string, error) {
	p, err := get[*event.Particle](b, "particle_attribute_names", ph)
	if err != nil {
		return nil, err
	}
	return p.AttributeNames(), nil
}

func (b *Bridge) VertexAttributeNames(vh Handle) ([]string, error) {
	v, err := get[*event.Vertex](b, "vertex_attribute_names", vh)
	if err != nil {
		return nil, err
	}
	return v.AttributeNames(), nil
}

func (b *Bridge) EventAttributeNames(eh Handle) ([]string, error) {
	e, err := get[*event.Event](b, "event_attribute_names", eh)
	if err != nil {
		return nil, err
	}
	return e.AttributeNames(), nil
}

func (b *Bridge) mintAttribute(op string, v attribute.Value, ok bool) (Handle, error) {
	if !ok {
		return Null, nil
	}
	return b.mint(op, v)
}

// AttributeKind returns the kind of the attribute behind ah.
func (b *Bridge) AttributeKind(ah Handle) (attribute.Kind, error) {
	a, err := get[attribute.Value](b, "attribute_kind", ah)
	if err != nil {
		return attribute.KindInvalid, err
	}
	return a.Kind, nil
}

// AttributeText renders the attribute in the listing text form.
func (b *Bridge) AttributeText(ah Handle) (string, error) {
	a, err := get[attribute.Value](b, "attribute_text", ah)
	if err != nil {
		return "", err
	}
	return attribute.Format(a), nil
}

func (b *Bridge) AttributeInt(ah Handle) (int64, error) {
	return attributeAs(b, "attribute_int", ah, attribute.Value.AsInt)
}

func (b *Bridge) AttributeDouble(ah Handle) (float64, error) {
	return attributeAs(b, "attribute_double", ah, attribute.Value.AsDouble)
}

func (b *Bridge) AttributeString(ah Handle) (string, error) {
	return attributeAs(b, "attribute_string", ah, attribute.Value.AsString)
}

func (b *Bridge) AttributePdfInfo(ah Handle) (attribute.PdfInfo, error) {
	return attributeAs(b, "attribute_pdf_info", ah, attribute.Value.AsPdfInfo)
}

func (b *Bridge) AttributeCrossSection(ah Handle) (attribute.CrossSection, error) {
	return attributeAs(b, "attribute_cross_section", ah, attribute.Value.AsCrossSection)
}

func (b *Bridge) AttributeHeavyIon(ah Handle) (attribute.HeavyIon, error) {
	return attributeAs(b, "attribute_heavy_ion", ah, attribute.Value.AsHeavyIon)
}

func attributeAs[T any](b *Bridge, op string, ah Handle, as func(attribute.Value) (T, bool)) (T, error) {
	var zero T
	a, err := get[attribute.Value](b, op, ah)
	if err != nil {
		return zero, err
	}
	v, ok := as(a)
	if !ok {
		return zero, &HandleError{Op: op, Handle: ah, cause: fmt.Errorf("%w: attribute holds %s", ErrAttributeKind, a.Kind)}
	}
	return v, nil
}
