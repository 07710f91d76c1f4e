package optimizer

import "math"

// SensitivityPoint is the yield at one offset from the optimum
type SensitivityPoint struct {
	Angle       float64 `json:"angle"`
	Energy      float64 `json:"energy"`
	LossPercent float64 `json:"loss_percent"`
}

// SensitivityResult holds the tilt and azimuth sweeps around an optimum
type SensitivityResult struct {
	Tilt    []SensitivityPoint `json:"tilt_sensitivity"`
	Azimuth []SensitivityPoint `json:"azimuth_sensitivity"`
}

// Sweep ranges around the optimum
const (
	tiltSpan    = 10.0
	tiltStep    = 2.0
	azimuthSpan = 30.0
	azimuthStep = 5.0
)

// Sensitivity sweeps tilt over ±10° in 2° steps at the optimal azimuth and
// azimuth over ±30° in 5° steps at the optimal tilt, reporting the yield
// loss at each point relative to the optimum
func (o *Optimizer) Sensitivity(lat, lon, ghi, optTilt, optAzimuth float64) SensitivityResult {
	ref := o.energy(lat, lon, optTilt, optAzimuth, ghi)

	loss := func(e float64) float64 {
		if ref == 0 {
			return 0
		}
		return round2((1 - e/ref) * 100)
	}

	var res SensitivityResult
	for _, tilt := range steps(math.Max(MinTilt, optTilt-tiltSpan), math.Min(MaxTilt, optTilt+tiltSpan+1), tiltStep) {
		e := o.energy(lat, lon, tilt, optAzimuth, ghi)
		res.Tilt = append(res.Tilt, SensitivityPoint{Angle: tilt, Energy: e, LossPercent: loss(e)})
	}
	for _, az := range steps(math.Max(MinAzimuth, optAzimuth-azimuthSpan), math.Min(MaxAzimuth, optAzimuth+azimuthSpan+1), azimuthStep) {
		e := o.energy(lat, lon, optTilt, az, ghi)
		res.Azimuth = append(res.Azimuth, SensitivityPoint{Angle: az, Energy: e, LossPercent: loss(e)})
	}
	return res
}

// steps returns start, start+step, ... strictly below stop
func steps(start, stop, step float64) []float64 {
	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
