// Package components derives the h/e/z/f field components shown next to
// each reading from the observation's reference total field.
//
// This is a preview calculation for the editor, not the observatory
// baseline reduction: inclination readings give H and Z directly, and the
// mean H of those readings projects each declination reading onto E.
package components

import (
	"math"

	"geomag-cli/internal/model"
)

// Update is one pending component write.
type Update struct {
	Measurement *model.Measurement
	Patch       model.Patch
}

// Apply writes every update through Measurement.Set.
func Apply(updates []Update) {
	for _, u := range updates {
		u.Measurement.Set(u.Patch)
	}
}

// Compute returns the component writes for o. Readings without a usable
// angle have their components cleared. No updates are produced when the
// observation has no reference total field.
func Compute(o *model.Observation) []Update {
	if o == nil || o.TotalField == nil {
		return nil
	}
	total := *o.TotalField

	var hSum float64
	var hCount int
	incl := map[*model.Measurement][2]float64{}
	for _, m := range o.Measurements {
		if !m.Type().IsInclination() {
			continue
		}
		a, ok := m.Angle().Value()
		if !ok {
			continue
		}
		i := toRadians(inclination(a))
		h := total * math.Abs(math.Cos(i))
		z := total * math.Sin(i)
		incl[m] = [2]float64{h, z}
		hSum += h
		hCount++
	}

	out := make([]Update, 0, len(o.Measurements))
	for _, m := range o.Measurements {
		p := model.Patch{
			H: model.Assign(model.Unset[float64]()),
			E: model.Assign(model.Unset[float64]()),
			Z: model.Assign(model.Unset[float64]()),
			F: model.Assign(model.Unset[float64]()),
		}
		switch t := m.Type(); {
		case t.IsInclination():
			if hz, ok := incl[m]; ok {
				p.H = model.Assign(model.ValueOf(hz[0]))
				p.Z = model.Assign(model.ValueOf(hz[1]))
				p.F = model.Assign(model.ValueOf(total))
			}
		case isDeclination(t):
			a, ok := m.Angle().Value()
			if ok && hCount > 0 {
				h := hSum / float64(hCount)
				p.H = model.Assign(model.ValueOf(h))
				p.E = model.Assign(model.ValueOf(h * math.Sin(toRadians(declination(a)))))
				p.F = model.Assign(model.ValueOf(total))
			}
		}
		out = append(out, Update{Measurement: m, Patch: p})
	}
	return out
}

func isDeclination(t model.ReadingType) bool {
	switch t {
	case model.WestDown, model.EastDown, model.WestUp, model.EastUp:
		return true
	default:
		return false
	}
}

// inclination folds a circle reading into [-90, 90].
func inclination(a float64) float64 {
	i := math.Mod(a, 180)
	if i < 0 {
		i += 180
	}
	if i > 90 {
		i -= 180
	}
	return i
}

// declination folds a circle reading into (-180, 180].
func declination(a float64) float64 {
	d := math.Mod(a, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		d -= 360
	}
	return d
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
