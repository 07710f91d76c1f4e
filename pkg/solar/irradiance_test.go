package solar

import (
	"math"
	"testing"
	"time"
)

func TestErbs(t *testing.T) {
	dniExtra := ExtraterrestrialDNI(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name   string
		ghi    float64
		zenith float64
	}{
		{"overcast", 80, 40},
		{"partly cloudy", 450, 35},
		{"clear", 900, 20},
		{"low sun", 30, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Erbs(tt.ghi, tt.zenith, dniExtra)
			if c.DHI < 0 || c.DNI < 0 {
				t.Fatalf("negative component: %+v", c)
			}
			closure := c.DHI + c.DNI*math.Cos(degToRad(tt.zenith))
			if math.Abs(closure-tt.ghi) > 1e-6 {
				t.Errorf("DHI + DNI·cosZ = %.4f, want %.4f", closure, tt.ghi)
			}
		})
	}
}

func TestErbsCapsBeamAtExtraterrestrial(t *testing.T) {
	dniExtra := 1412.0
	c := Erbs(250, 86, dniExtra)

	if c.DNI != dniExtra {
		t.Errorf("DNI = %v, want capped at %v", c.DNI, dniExtra)
	}
	if c.DHI < 0 {
		t.Errorf("DHI = %v, want non-negative", c.DHI)
	}
	closure := c.DHI + c.DNI*math.Cos(degToRad(86))
	if math.Abs(closure-250) > 1e-6 {
		t.Errorf("DHI + DNI·cosZ = %.4f, want 250", closure)
	}
}

func TestErbsSunDown(t *testing.T) {
	c := Erbs(50, 95, 1367)
	if c.DNI != 0 {
		t.Errorf("DNI below horizon = %v, want 0", c.DNI)
	}
	if c.DHI != 50 {
		t.Errorf("DHI below horizon = %v, want all of GHI", c.DHI)
	}
}

func TestAOIFacingSun(t *testing.T) {
	if aoi := AOI(30, 180, 30, 180); math.Abs(aoi) > 1e-6 {
		t.Errorf("AOI for plane normal to the sun = %v, want 0", aoi)
	}
	if aoi := AOI(0, 180, 45, 90); math.Abs(aoi-45) > 1e-6 {
		t.Errorf("AOI for horizontal plane = %v, want zenith", aoi)
	}
}

func TestSkyModelsHorizontal(t *testing.T) {
	// On a horizontal plane every sky model must return close to DHI
	dhi, dni, dniExtra, zen, az := 150.0, 600.0, 1367.0, 40.0, 170.0
	am := RelativeAirmass(zen)

	iso := IsotropicSky(0, dhi)
	if math.Abs(iso-dhi) > 1e-9 {
		t.Errorf("isotropic = %v, want %v", iso, dhi)
	}
	hd := HayDavies(0, 180, dhi, dni, dniExtra, zen, az)
	if math.Abs(hd-dhi) > 1 {
		t.Errorf("hay-davies = %v, want about %v", hd, dhi)
	}
	p := Perez(0, 180, dhi, dni, dniExtra, zen, az, am)
	if p < 0.8*dhi || p > 1.2*dhi {
		t.Errorf("perez = %v, want within 20%% of %v", p, dhi)
	}
}

func TestPerezNoDiffuse(t *testing.T) {
	if p := Perez(30, 180, 0, 500, 1367, 30, 180, 1.15); p != 0 {
		t.Errorf("perez with zero DHI = %v, want 0", p)
	}
	if p := Perez(30, 180, 100, 500, 1367, 95, 180, math.NaN()); p != 0 {
		t.Errorf("perez with NaN airmass = %v, want 0", p)
	}
}

func TestGroundDiffuse(t *testing.T) {
	if g := GroundDiffuse(0, 800, 0.2); g != 0 {
		t.Errorf("horizontal plane sees no ground, got %v", g)
	}
	if g := GroundDiffuse(90, 800, 0.2); math.Abs(g-80) > 1e-9 {
		t.Errorf("vertical plane ground diffuse = %v, want 80", g)
	}
}

func TestPOAComponentsClips(t *testing.T) {
	poa := POAComponents(120, 500, 0, 0)
	if poa.Direct != 0 || poa.Global != 0 {
		t.Errorf("beam from behind should be clipped, got %+v", poa)
	}
	poa = POAComponents(0, math.NaN(), 10, 5)
	if poa.Global != 0 {
		t.Errorf("NaN beam should zero the total, got %v", poa.Global)
	}
}
