package observe

import (
	"image"
	"math"
	"testing"

	"gocv.io/x/gocv"
)

func TestFeatureVectorColumnMajor(t *testing.T) {

	patch := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC1)
	defer patch.Close()

	patch.SetUCharAt(0, 0, 10)
	patch.SetUCharAt(0, 1, 20)
	patch.SetUCharAt(1, 0, 30)
	patch.SetUCharAt(1, 1, 40)

	vec, err := FeatureVector(patch, image.Pt(2, 2))

	if err != nil {
		t.Fatalf("FeatureVector failed: %v", err)
	}

	if len(vec) != 4 {
		t.Fatalf("vector length = %d, want 4", len(vec))
	}

	// sample standard deviation of {10, 20, 30, 40}
	std := math.Sqrt(500.0 / 3.0)

	// columns are stacked, element x*rows+y holds pixel (y, x)
	want := []float64{-15 / std, 5 / std, -5 / std, 15 / std}

	for i, w := range want {
		if math.Abs(vec[i]-w) > eps {
			t.Errorf("vec[%d] = %v, want %v", i, vec[i], w)
		}
	}
}

func TestFeatureVectorUniformPatch(t *testing.T) {

	patch := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(128, 0, 0, 0),
		4, 4, gocv.MatTypeCV8UC1)
	defer patch.Close()

	vec, err := FeatureVector(patch, image.Pt(4, 4))

	if err != nil {
		t.Fatalf("FeatureVector failed: %v", err)
	}

	// zero deviation patches normalise to all zeros, not NaN
	for i, v := range vec {
		if v != 0 {
			t.Errorf("vec[%d] = %v, want 0", i, v)
		}
	}
}

func TestFeatureVectorResizesAndNormalises(t *testing.T) {

	patch := gocv.NewMatWithSize(16, 16, gocv.MatTypeCV8UC3)
	defer patch.Close()

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			for c := 0; c < 3; c++ {
				patch.SetUCharAt(y, x*3+c, uint8(y*16+x))
			}
		}
	}

	size := image.Pt(4, 4)
	vec, err := FeatureVector(patch, size)

	if err != nil {
		t.Fatalf("FeatureVector failed: %v", err)
	}

	if len(vec) != size.X*size.Y {
		t.Fatalf("vector length = %d, want %d", len(vec), size.X*size.Y)
	}

	var sum, sumSq float64

	for _, v := range vec {
		sum += v
		sumSq += v * v
	}

	n := float64(len(vec))
	mean := sum / n
	variance := (sumSq - n*mean*mean) / (n - 1)

	if math.Abs(mean) > 1e-6 {
		t.Errorf("normalised mean = %v, want 0", mean)
	}

	if math.Abs(variance-1) > 1e-6 {
		t.Errorf("normalised variance = %v, want 1", variance)
	}
}
