package solar

import "math"

// AOIProjection returns the cosine of the angle of incidence between the sun
// and a plane with the given tilt and azimuth, clipped to [-1, 1]
func AOIProjection(surfaceTilt, surfaceAzimuth, zenith, azimuth float64) float64 {
	tilt := degToRad(surfaceTilt)
	zen := degToRad(zenith)
	p := math.Cos(zen)*math.Cos(tilt) +
		math.Sin(zen)*math.Sin(tilt)*math.Cos(degToRad(azimuth-surfaceAzimuth))
	return math.Max(-1, math.Min(1, p))
}

// AOI returns the angle of incidence in degrees
func AOI(surfaceTilt, surfaceAzimuth, zenith, azimuth float64) float64 {
	return radToDeg(math.Acos(AOIProjection(surfaceTilt, surfaceAzimuth, zenith, azimuth)))
}

// IsotropicSky returns sky diffuse on a tilted plane for a uniform sky dome
func IsotropicSky(surfaceTilt, dhi float64) float64 {
	return dhi * (1 + math.Cos(degToRad(surfaceTilt))) / 2
}

// HayDavies returns sky diffuse on a tilted plane with the Hay-Davies
// circumsolar anisotropy index
func HayDavies(surfaceTilt, surfaceAzimuth, dhi, dni, dniExtra, zenith, azimuth float64) float64 {
	if dhi <= 0 {
		return 0
	}
	cosAOI := math.Max(AOIProjection(surfaceTilt, surfaceAzimuth, zenith, azimuth), 0)
	cosZ := math.Max(math.Cos(degToRad(zenith)), 0.01745)
	rb := cosAOI / cosZ
	ai := dni / dniExtra

	sky := dhi * (ai*rb + (1-ai)*(1+math.Cos(degToRad(surfaceTilt)))/2)
	return math.Max(sky, 0)
}

// Perez (1990) "allsitescomposite1990" coefficient set, indexed by sky clearness bin
var (
	perezEpsilonEdges = [7]float64{1.065, 1.23, 1.5, 1.95, 2.8, 4.5, 6.2}

	perezF11 = [8]float64{-0.0083117, 0.1299457, 0.3296958, 0.5682053, 0.8730280, 1.1326077, 1.0601591, 0.6777470}
	perezF12 = [8]float64{0.5877285, 0.6825954, 0.4868735, 0.1874525, -0.3920403, -1.2367284, -1.5999137, -0.3272588}
	perezF13 = [8]float64{-0.0620636, -0.1513725, -0.2210958, -0.2951290, -0.3616149, -0.4118494, -0.3589221, -0.2504286}
	perezF21 = [8]float64{-0.0596012, -0.0189325, 0.0554140, 0.1088631, 0.2255647, 0.2877813, 0.2642124, 0.1561313}
	perezF22 = [8]float64{0.0721249, 0.0659650, -0.0639588, -0.1519229, -0.4620442, -0.8230357, -1.1272340, -1.3765031}
	perezF23 = [8]float64{-0.0220216, -0.0288748, -0.0260542, -0.0139754, 0.0012448, 0.0558651, 0.1310694, 0.2506212}
)

// Perez returns sky diffuse on a tilted plane using the Perez anisotropic
// sky model. airmass is the relative air mass; a NaN air mass (sun below the
// horizon) yields zero.
func Perez(surfaceTilt, surfaceAzimuth, dhi, dni, dniExtra, zenith, azimuth, airmass float64) float64 {
	if dhi <= 0 || math.IsNaN(airmass) {
		return 0
	}

	const kappa = 1.041
	z := degToRad(zenith)
	z3 := kappa * z * z * z

	epsilon := ((dhi+dni)/dhi + z3) / (1 + z3)
	bin := 0
	for bin < len(perezEpsilonEdges) && epsilon > perezEpsilonEdges[bin] {
		bin++
	}

	delta := dhi * airmass / dniExtra

	f1 := math.Max(perezF11[bin]+perezF12[bin]*delta+z*perezF13[bin], 0)
	f2 := perezF21[bin] + perezF22[bin]*delta + z*perezF23[bin]

	a := math.Max(AOIProjection(surfaceTilt, surfaceAzimuth, zenith, azimuth), 0)
	b := math.Max(math.Cos(z), math.Cos(degToRad(85)))

	tilt := degToRad(surfaceTilt)
	term1 := 0.5 * (1 - f1) * (1 + math.Cos(tilt))
	term2 := f1 * a / b
	term3 := f2 * math.Sin(tilt)

	return math.Max(dhi*(term1+term2+term3), 0)
}

// GroundDiffuse returns the ground-reflected irradiance seen by a tilted plane
func GroundDiffuse(surfaceTilt, ghi, albedo float64) float64 {
	return ghi * albedo * (1 - math.Cos(degToRad(surfaceTilt))) / 2
}

// POA is the plane-of-array irradiance broken into components (W/m²)
type POA struct {
	Global        float64
	Direct        float64
	SkyDiffuse    float64
	GroundDiffuse float64
}

// POAComponents sums beam, sky diffuse and ground diffuse into plane-of-array
// global irradiance. Negative and non-finite totals are reported as zero.
func POAComponents(aoi, dni, skyDiffuse, groundDiffuse float64) POA {
	direct := math.Max(dni*math.Cos(degToRad(aoi)), 0)
	poa := POA{
		Direct:        direct,
		SkyDiffuse:    skyDiffuse,
		GroundDiffuse: groundDiffuse,
		Global:        direct + skyDiffuse + groundDiffuse,
	}
	if math.IsNaN(poa.Global) || math.IsInf(poa.Global, 0) || poa.Global < 0 {
		poa.Global = 0
	}
	return poa
}
