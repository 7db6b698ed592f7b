package main

import (
	"flag"
	"image"
	"log"

	"gocv.io/x/gocv"

	particletrack "github.com/tracklite/go-particletrack"
	"github.com/tracklite/go-particletrack/geom"
	"github.com/tracklite/go-particletrack/observe"
	"github.com/tracklite/go-particletrack/render"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	vidFile := flag.String("i", "../data/object.mp4", "Video file to track on, or a device ID")
	modelType := flag.String("m", "pca", "Observation model to use, pca|template")
	modelDir := flag.String("d", "../data/model", "Directory holding the PCA model files")
	initX := flag.Int("x", 0, "Initial object rectangle left")
	initY := flag.Int("y", 0, "Initial object rectangle top")
	initW := flag.Int("w", 48, "Initial object rectangle width")
	initH := flag.Int("h", 48, "Initial object rectangle height")
	numParticles := flag.Int("n", 300, "Number of particles")
	stdXY := flag.Float64("sxy", 3.0, "Position noise standard deviation")
	stdWH := flag.Float64("swh", 2.0, "Size noise standard deviation")
	stdAngle := flag.Float64("sa", 1.0, "Angle noise standard deviation in degrees")
	seed := flag.Uint64("seed", 42, "Random seed")

	flag.Parse()

	video, err := gocv.OpenVideoCapture(*vidFile)

	if err != nil {
		log.Fatal("Error opening video source: ", err)
	}

	defer video.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	if ok := video.Read(&frame); !ok || frame.Empty() {
		log.Fatal("Error reading first frame from: ", *vidFile)
	}

	imgWidth := frame.Cols()
	imgHeight := frame.Rows()

	// configure the particle ensemble for the rectangle state model
	pf, err := particletrack.NewParticle(particletrack.NumRectStates,
		*numParticles, *seed)

	if err != nil {
		log.Fatal("Error creating particle ensemble: ", err)
	}

	std := particletrack.NewState(*stdXY, *stdXY, *stdWH, *stdWH, *stdAngle)

	if err := particletrack.ConfigureStates(pf, imgWidth, imgHeight, std); err != nil {
		log.Fatal("Error configuring states: ", err)
	}

	// seed all particles on the initial object rectangle, state x and y
	// hold the rotation center
	initBox := geom.Box32fFromRect(geom.NewRect(*initX, *initY, *initW, *initH))

	initState := particletrack.NewState(float64(initBox.Cx), float64(initBox.Cy),
		float64(*initW), float64(*initH), 0)

	if err := pf.Init(initState.Vector()); err != nil {
		log.Fatal("Error initializing particles: ", err)
	}

	model := makeModel(*modelType, *modelDir, frame,
		geom.NewRect(*initX, *initY, *initW, *initH))

	window := gocv.NewWindow("particle track")
	defer window.Close()

	display := gocv.NewMat()
	defer display.Close()

	for {
		if ok := video.Read(&frame); !ok || frame.Empty() {
			break
		}

		pf.Transition()
		particletrack.AdditionalBound(pf, imgWidth, imgHeight)

		if err := model.Likelihood(pf, frame); err != nil {
			log.Fatal("Error scoring particles: ", err)
		}

		frame.CopyTo(&display)

		render.Particles(&display, pf, geom.Shear{}, render.Yellow, 1)
		render.SearchWindow(&display, pf, geom.Shear{}, 8, render.Blue, 1)
		render.Estimate(&display, pf, geom.Shear{}, render.Green, 2,
			render.DefaultFont())

		log.Printf("estimate %s",
			particletrack.StateFromVector(pf.MeanColumn()))

		window.IMShow(display)

		if window.WaitKey(1) == 27 {
			break
		}

		pf.Resample()
	}
}

// makeModel selects the observation model from cli flags
func makeModel(modelType, modelDir string, frame gocv.Mat,
	initRect geom.Rect) observe.Model {

	switch modelType {

	case "pca":
		model, err := observe.NewPCA(modelDir, observe.DefaultFeatureSize())

		if err != nil {
			log.Fatal("Error loading PCA model: ", err)
		}

		return model

	case "template":
		bounds := image.Rect(0, 0, frame.Cols(), frame.Rows())
		roi := initRect.ImageRect().Intersect(bounds)

		if roi.Dx() < 1 || roi.Dy() < 1 {
			log.Fatal("Initial rectangle lies outside the frame")
		}

		region := frame.Region(roi)
		defer region.Close()

		model, err := observe.NewTemplate(region, observe.DefaultFeatureSize())

		if err != nil {
			log.Fatal("Error creating template model: ", err)
		}

		return model
	}

	log.Fatal("Unknown observation model: ", modelType)
	return nil
}
