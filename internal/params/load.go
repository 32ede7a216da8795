package params

import (
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownTemplate   = errors.New("unknown template")
	ErrUnknownTransform  = errors.New("unknown transform")
	ErrUnknownModulation = errors.New("unknown height modulation")
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidValue      = errors.New("invalid value")
)

// always required, whatever the template
var baseRequired = []string{"templateId", "width", "height", "thickness"}

// Load reads a design from a YAML or JSON file.
func Load(path string) (*ScaffoldParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read params: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a YAML or JSON document. Fields the active template needs
// must be present; everything else falls back to the template defaults.
func Parse(data []byte) (*ScaffoldParams, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse params: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: templateId", ErrMissingField)
	}

	for _, key := range baseRequired {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, key)
		}
	}

	idValue, _ := raw["templateId"].(string)
	t, ok := Lookup(TemplateID(idValue))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, idValue)
	}
	for _, key := range t.Required {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("%w: %s (required by %s)", ErrMissingField, key, t.ID)
		}
	}

	p := Defaults(t.ID)
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse params: %w", err)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Name == "" {
		p.Name = fmt.Sprintf("New %s Design", t.Name)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save writes the design as YAML.
func Save(path string, p *ScaffoldParams) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write params: %w", err)
	}
	return nil
}

// Validate checks enums and the ranges the renderer relies on. Empty
// transform and modulation kinds are normalized to "none".
func (p *ScaffoldParams) Validate() error {
	if _, ok := Lookup(p.TemplateID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, p.TemplateID)
	}

	switch p.TransformID {
	case "":
		p.TransformID = TransformNone
	case TransformNone, TransformTwist, TransformPinch, TransformRipple:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTransform, p.TransformID)
	}

	switch p.HeightModulationType {
	case "":
		p.HeightModulationType = ModulationNone
	case ModulationNone, ModulationGradient, ModulationPerlin, ModulationWave, ModulationFractal:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownModulation, p.HeightModulationType)
	}

	if p.Width <= 0 || p.Height <= 0 || p.Thickness <= 0 {
		return fmt.Errorf("%w: width, height and thickness must be positive", ErrInvalidValue)
	}
	if p.MaterialCount == 0 {
		p.MaterialCount = 1
	}
	if p.MaterialCount < 1 || p.MaterialCount > MaxMaterials {
		return fmt.Errorf("%w: materialCount must be between 1 and %d, got %d", ErrInvalidValue, MaxMaterials, p.MaterialCount)
	}
	if p.TransformStrength < 0 || p.TransformStrength > 1 {
		return fmt.Errorf("%w: transformStrength must be within [0,1], got %g", ErrInvalidValue, p.TransformStrength)
	}
	if p.HeightModulationAmplitude < 0 || p.HeightModulationAmplitude > 1 {
		return fmt.Errorf("%w: heightModulationAmplitude must be within [0,1], got %g", ErrInvalidValue, p.HeightModulationAmplitude)
	}
	if p.Porosity < 0 || p.Porosity > 1 {
		return fmt.Errorf("%w: porosity must be within [0,1], got %g", ErrInvalidValue, p.Porosity)
	}
	if p.PoreSizeVariance < 0 || p.PoreSizeVariance > 1 {
		return fmt.Errorf("%w: poreSizeVariance must be within [0,1], got %g", ErrInvalidValue, p.PoreSizeVariance)
	}
	if err := checkFinite(p); err != nil {
		return err
	}
	if p.HeightModulationOctaves <= 0 {
		p.HeightModulationOctaves = 3
	}
	return nil
}

// checkFinite rejects NaN and infinite numeric fields.
func checkFinite(p *ScaffoldParams) error {
	v := reflect.ValueOf(p).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() != reflect.Float64 {
			continue
		}
		if x := f.Float(); math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidValue, v.Type().Field(i).Tag.Get("yaml"))
		}
	}
	return nil
}
