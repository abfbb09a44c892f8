// Package demo defines the fixed set of scenes shown side by side: the unit
// cube built up one transform at a time, plus the last scene with its steps
// reversed.
package demo

import (
	"fmt"

	"cubeviz/quarkgl"
	"cubeviz/xform"
)

// Definition names a scene, its construction history (outermost step first)
// and its accent color.
type Definition struct {
	Name  string
	Steps xform.Sequence
	Color quarkgl.Color
}

// Scenes returns the six demonstration definitions in display order.
func Scenes() ([]Definition, error) {
	scale, err := xform.Scale(1.5, 0.5, 2)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	rot, err := xform.RotateY(10)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	refl, err := xform.Reflect(xform.AxisX)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	move, err := xform.Translate(-0.5, -0.5, -0.5)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}

	return []Definition{
		{Name: "Original", Steps: xform.Sequence{xform.Identity()}, Color: quarkgl.Hex(0xd0d0d0)},
		{Name: "Scaled", Steps: xform.Sequence{scale}, Color: quarkgl.Hex(0x4ac8f0)},
		{Name: "Rotated", Steps: xform.Sequence{rot, scale}, Color: quarkgl.Hex(0x6adf6a)},
		{Name: "Reflected", Steps: xform.Sequence{refl, rot, scale}, Color: quarkgl.Hex(0xffdd66)},
		{Name: "Translated", Steps: xform.Sequence{move, refl, rot, scale}, Color: quarkgl.Hex(0xff8a4a)},
		{Name: "Reordered", Steps: xform.Sequence{scale, rot, refl, move}, Color: quarkgl.Hex(0xd070ff)},
	}, nil
}
