package fedex

import "math"

const lbsPerKg = 2.20462

// boxDimensions holds an estimated package size in centimeters. The
// warehouse measures weight only, so box size is inferred from it.
type boxDimensions struct {
	LengthCm float64
	WidthCm  float64
	HeightCm float64
}

// estimateDimensions picks a box size for the given weight.
func estimateDimensions(weightKg float64) boxDimensions {
	switch {
	case weightKg <= 0.5:
		return boxDimensions{LengthCm: 20, WidthCm: 15, HeightCm: 5}
	case weightKg <= 2:
		return boxDimensions{LengthCm: 30, WidthCm: 25, HeightCm: 10}
	case weightKg <= 5:
		return boxDimensions{LengthCm: 40, WidthCm: 30, HeightCm: 20}
	default:
		return boxDimensions{LengthCm: 50, WidthCm: 40, HeightCm: 30}
	}
}

// kgToLbs converts kilograms to pounds, floored at the carrier's 0.1 lb
// minimum billable weight.
func kgToLbs(kg float64) float64 {
	return math.Max(0.1, kg*lbsPerKg)
}

// cmToInches converts centimeters to whole inches, floored at 1 inch.
func cmToInches(cm float64) int {
	return int(math.Max(1, math.Round(cm/2.54)))
}
