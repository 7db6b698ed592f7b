package observe

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"

	"github.com/tracklite/go-particletrack/geom"
)

// cropUpright extracts an axis aligned region from frame, clamped to the
// frame bounds.  The returned Mat owns its pixels and must be closed by
// the caller
func cropUpright(frame gocv.Mat, rect geom.Rect) gocv.Mat {

	bounds := image.Rect(0, 0, frame.Cols(), frame.Rows())
	roi := rect.ImageRect().Intersect(bounds)

	if roi.Dx() < 1 || roi.Dy() < 1 {
		// fully out of frame, fall back to a single pixel so downstream
		// resizing still has content
		x := clampInt(roi.Min.X, 0, frame.Cols()-1)
		y := clampInt(roi.Min.Y, 0, frame.Rows()-1)
		roi = image.Rect(x, y, x+1, y+1)
	}

	region := frame.Region(roi)
	defer region.Close()

	return region.Clone()
}

// cropOriented extracts the region under an oriented rectangle as an
// upright patch of the rectangle's size.  The frame is rotated about the
// rectangle center so the rectangle becomes axis aligned, then the upright
// region is cropped.  Rectangles with angle zero skip the warp.  The
// returned Mat owns its pixels and must be closed by the caller
func cropOriented(frame gocv.Mat, rect geom.Rect32f) gocv.Mat {

	box := geom.Box32fFromRect32f(rect)

	upright := geom.Rect{
		X:      int(box.Cx - box.Width/2),
		Y:      int(box.Cy - box.Height/2),
		Width:  int(box.Width),
		Height: int(box.Height),
	}

	if geom.NormAngle(rect.Angle) == 0 {
		return cropUpright(frame, upright)
	}

	center := image.Pt(int(box.Cx), int(box.Cy))

	rot := gocv.GetRotationMatrix2D(center, float64(box.Angle), 1.0)
	defer rot.Close()

	rotated := gocv.NewMat()
	defer rotated.Close()

	gocv.WarpAffine(frame, &rotated, rot, image.Pt(frame.Cols(), frame.Rows()))

	return cropUpright(rotated, upright)
}

// FeatureVector converts an image patch into the flat feature vector the
// appearance models were trained on: single channel grayscale, resized to
// size, normalized to zero mean and unit variance, vectorized in column
// major order
func FeatureVector(patch gocv.Mat, size image.Point) ([]float64, error) {

	if patch.Empty() {
		return nil, errors.New("empty patch")
	}

	gray := patch

	if patch.Channels() != 1 {
		gray = gocv.NewMat()
		defer gray.Close()
		gocv.CvtColor(patch, &gray, gocv.ColorBGRToGray)
	}

	resized := gocv.NewMat()
	defer resized.Close()

	gocv.Resize(gray, &resized, size, 0, 0, gocv.InterpolationArea)

	floats := gocv.NewMat()
	defer floats.Close()

	resized.ConvertTo(&floats, gocv.MatTypeCV64F)

	data, err := floats.DataPtrFloat64()

	if err != nil {
		return nil, err
	}

	mean, std := stat.MeanStdDev(data, nil)

	if std == 0 {
		// flat patch, avoid dividing by zero
		std = 1
	}

	// column major to match the layout the subspace models are trained
	// with
	vec := make([]float64, size.X*size.Y)

	for x := 0; x < size.X; x++ {
		for y := 0; y < size.Y; y++ {
			vec[x*size.Y+y] = (data[y*size.X+x] - mean) / std
		}
	}

	return vec, nil
}

// clampInt restricts v to the range [lo, hi]
func clampInt(v, lo, hi int) int {

	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
