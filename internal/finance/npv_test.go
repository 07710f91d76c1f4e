package finance

import (
	"math"
	"testing"
)

func TestNPVAtZeroRateIsFinalPosition(t *testing.T) {
	cumulative := []float64{-1000000, -600000, -150000, 320000}
	if got := NPV(cumulative, 0); math.Abs(got-320000) > 1e-6 {
		t.Errorf("NPV(0) = %v, want 320000", got)
	}
}

func TestNPVDiscountsIncrementalFlows(t *testing.T) {
	// -1000 then +1100 a year later
	cumulative := []float64{-1000, 100}
	if got := NPV(cumulative, 0.1); math.Abs(got) > 1e-9 {
		t.Errorf("NPV(10%%) = %v, want 0", got)
	}
}

func TestIRR(t *testing.T) {
	tests := []struct {
		name       string
		cumulative []float64
		want       float64
		wantNil    bool
	}{
		{
			name:       "single period ten percent",
			cumulative: []float64{-1000000, 100000},
			want:       10,
		},
		{
			name:       "never profitable",
			cumulative: []float64{-1000000, -2000000, -3000000},
			wantNil:    true,
		},
		{
			name:       "return above one hundred percent",
			cumulative: []float64{-1000000, 5000000},
			wantNil:    true,
		},
		{
			name:       "too short",
			cumulative: []float64{-1000000},
			wantNil:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IRR(tt.cumulative)
			if tt.wantNil {
				if got != nil {
					t.Errorf("IRR = %v, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatal("IRR = nil")
			}
			if math.Abs(*got-tt.want) > 0.2 {
				t.Errorf("IRR = %v, want ~%v", *got, tt.want)
			}
		})
	}
}
