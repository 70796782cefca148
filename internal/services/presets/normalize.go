package presets

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
)

// Category tags used by the tagged-array response shape.
const (
	CategoryLighting  = "lighting"
	CategoryCamera    = "camera"
	CategoryDirectors = "directors"
)

// Preset is one entry as delivered by the backend. Object entries expose
// their members through Fields, numbers as json.Number. The grouped response
// shape is copied through element for element, so an entry there may also be
// a bare JSON value; such entries have nil Fields and keep their raw text.
type Preset struct {
	Fields map[string]any
	raw    json.RawMessage
}

// ID returns the preset identifier when it is a string.
func (p Preset) ID() string {
	id, _ := p.Fields["id"].(string)
	return id
}

// Type returns the category tag when present.
func (p Preset) Type() string {
	tag, _ := p.Fields["type"].(string)
	return tag
}

// IsObject reports whether the entry was a JSON object.
func (p Preset) IsObject() bool {
	return p.Fields != nil
}

// Raw returns the compacted JSON text of a non-object entry.
func (p Preset) Raw() json.RawMessage {
	if p.Fields != nil {
		return nil
	}
	if len(p.raw) == 0 {
		return json.RawMessage("null")
	}
	return p.raw
}

func (p Preset) MarshalJSON() ([]byte, error) {
	if p.Fields != nil {
		return json.Marshal(p.Fields)
	}
	return p.Raw(), nil
}

func (p *Preset) UnmarshalJSON(data []byte) error {
	if preset, ok := decodePreset(data); ok {
		*p = preset
		return nil
	}
	*p = passThrough(data)
	return nil
}

// Collection is the canonical grouping of presets. All three sequences are
// always non-nil.
type Collection struct {
	Lighting  []Preset `json:"lighting"`
	Camera    []Preset `json:"camera"`
	Directors []Preset `json:"directors"`
}

// Empty returns a collection with three empty sequences.
func Empty() Collection {
	return Collection{
		Lighting:  []Preset{},
		Camera:    []Preset{},
		Directors: []Preset{},
	}
}

// Category returns the sequence for the named category, or nil for an
// unknown name.
func (c Collection) Category(name string) []Preset {
	switch name {
	case CategoryLighting:
		return c.Lighting
	case CategoryCamera:
		return c.Camera
	case CategoryDirectors:
		return c.Directors
	default:
		return nil
	}
}

// Normalize maps any presets payload onto a Collection. It never fails: empty
// input, JSON null, primitives, and malformed JSON all yield Empty().
//
// Shapes are tried in order:
//  1. an array of presets tagged with "type" is partitioned into lighting and
//     camera; other tags and non-object elements are dropped;
//  2. an object with a truthy "lighting" or "camera" member is copied through,
//     each array kept element for element;
//  3. any other object is a map of director presets keyed by id, kept in
//     document order.
func Normalize(raw []byte) Collection {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return Empty()
	}
	switch trimmed[0] {
	case '[':
		return fromTaggedArray(trimmed)
	case '{':
		if out, ok := fromGrouped(trimmed); ok {
			return out
		}
		return fromDirectorMap(trimmed)
	default:
		return Empty()
	}
}

func fromTaggedArray(data []byte) Collection {
	out := Empty()
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return out
	}
	for _, element := range elements {
		preset, ok := decodePreset(element)
		if !ok {
			continue
		}
		switch preset.Type() {
		case CategoryLighting:
			out.Lighting = append(out.Lighting, preset)
		case CategoryCamera:
			out.Camera = append(out.Camera, preset)
		}
	}
	return out
}

func fromGrouped(data []byte) (Collection, bool) {
	var grouped map[string]json.RawMessage
	if err := json.Unmarshal(data, &grouped); err != nil {
		return Collection{}, false
	}
	lighting, hasLighting := grouped[CategoryLighting]
	camera, hasCamera := grouped[CategoryCamera]
	if !(hasLighting && truthy(lighting)) && !(hasCamera && truthy(camera)) {
		return Collection{}, false
	}
	out := Empty()
	out.Lighting = decodePresetList(lighting)
	out.Camera = decodePresetList(camera)
	return out, true
}

func fromDirectorMap(data []byte) Collection {
	out := Empty()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return out
	}
	// Repeated keys keep their first position and take the last value.
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Empty()
		}
		key, ok := tok.(string)
		if !ok {
			return Empty()
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return Empty()
		}
		preset := Preset{Fields: map[string]any{}}
		if body, ok := decodePreset(value); ok {
			for k, v := range body.Fields {
				preset.Fields[k] = v
			}
		}
		preset.Fields["id"] = key
		if at, seen := index[key]; seen {
			out.Directors[at] = preset
			continue
		}
		index[key] = len(out.Directors)
		out.Directors = append(out.Directors, preset)
	}
	return out
}

func decodePreset(data []byte) (Preset, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Preset{}, false
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return Preset{}, false
	}
	return Preset{Fields: fields}, true
}

// passThrough keeps a non-object element verbatim, compacted.
func passThrough(data []byte) Preset {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil || buf.Len() == 0 {
		return Preset{raw: json.RawMessage("null")}
	}
	return Preset{raw: json.RawMessage(buf.Bytes())}
}

// decodePresetList copies a grouped member through. Anything other than an
// array yields an empty list.
func decodePresetList(data json.RawMessage) []Preset {
	out := []Preset{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return out
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return out
	}
	for _, element := range elements {
		if preset, ok := decodePreset(element); ok {
			out = append(out, preset)
			continue
		}
		out = append(out, passThrough(element))
	}
	return out
}

// truthy applies JavaScript truthiness to a JSON value: null, false, 0 and ""
// are falsy; every array and object, including empty ones, is truthy.
func truthy(data json.RawMessage) bool {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil && err != io.EOF {
		return false
	}
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return true
		}
		return f != 0 && !math.IsNaN(f)
	default:
		return true
	}
}
