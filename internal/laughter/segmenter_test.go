package laughter

import (
	"math"
	"reflect"
	"testing"
)

func TestDetectInstances(t *testing.T) {
	tests := []struct {
		name      string
		probs     []float64
		threshold float64
		minLength float64
		want      []Instance
	}{
		{
			name:      "single run in the middle",
			probs:     []float64{0, 0, 0, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0, 0},
			threshold: 0.5,
			minLength: 0.2,
			want:      []Instance{{Start: 0.03, End: 0.08}},
		},
		{
			name:      "run shorter than min length dropped",
			probs:     []float64{0, 0, 0, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0, 0},
			threshold: 0.5,
			minLength: 6,
			want:      nil,
		},
		{
			name:      "run exactly min length dropped",
			probs:     []float64{0.9, 0.9, 0.9, 0.9, 0.9},
			threshold: 0.5,
			minLength: 5,
			want:      nil,
		},
		{
			name:      "all below threshold",
			probs:     []float64{0.1, 0.2, 0.3, 0.4, 0.5},
			threshold: 0.5,
			minLength: 0.2,
			want:      nil,
		},
		{
			name:      "probability equal to threshold excluded",
			probs:     []float64{0.5, 0.5, 0.5},
			threshold: 0.5,
			minLength: 0.2,
			want:      nil,
		},
		{
			name:      "trailing open run closed at end",
			probs:     []float64{0, 0, 0.9, 0.9, 0.9},
			threshold: 0.5,
			minLength: 0.2,
			want:      []Instance{{Start: 0.02, End: 0.04}},
		},
		{
			name:      "single frame run yields zero length instance",
			probs:     []float64{0, 0, 0, 0, 0, 0.9, 0, 0},
			threshold: 0.5,
			minLength: 0.2,
			want:      []Instance{{Start: 0.05, End: 0.05}},
		},
		{
			name:      "multiple disjoint runs",
			probs:     []float64{0.9, 0.9, 0, 0, 0.9, 0.9, 0.9, 0, 0.9, 0.9},
			threshold: 0.5,
			minLength: 0.2,
			want: []Instance{
				{Start: 0.0, End: 0.01},
				{Start: 0.04, End: 0.06},
				{Start: 0.08, End: 0.09},
			},
		},
		{
			name:      "empty probability sequence",
			probs:     nil,
			threshold: 0.5,
			minLength: 0.2,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectInstances(tt.probs, tt.threshold, tt.minLength)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectInstances() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDetectInstancesOrderedAndDisjoint(t *testing.T) {
	probs := make([]float64, 500)
	for i := range probs {
		// pseudo-random but deterministic pattern of runs
		probs[i] = math.Abs(math.Sin(float64(i) * 0.37))
	}

	instances := DetectInstances(probs, 0.5, 0.2)
	for i := 1; i < len(instances); i++ {
		if instances[i].Start <= instances[i-1].End {
			t.Errorf("instances %d and %d overlap or touch: %+v, %+v",
				i-1, i, instances[i-1], instances[i])
		}
	}
	for i, inst := range instances {
		if inst.End < inst.Start {
			t.Errorf("instance %d ends before it starts: %+v", i, inst)
		}
	}
}

func TestInstanceDuration(t *testing.T) {
	inst := Instance{Start: 0.03, End: 0.08}
	if got := inst.Duration(); math.Abs(got-0.05) > 1e-12 {
		t.Errorf("Duration() = %v, want 0.05", got)
	}
}
