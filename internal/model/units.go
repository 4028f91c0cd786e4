package model

// Conversion constants between points and millimetres.
const (
	PointsPerInch      = 72.0
	MillimetresPerInch = 25.4
)

// MmToPt converts millimetres to PostScript points.
func MmToPt(mm float64) float64 {
	return mm / MillimetresPerInch * PointsPerInch
}

// PtToMm converts PostScript points to millimetres.
func PtToMm(pt float64) float64 {
	return pt * MillimetresPerInch / PointsPerInch
}
