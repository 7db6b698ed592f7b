package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/tracklite/go-particletrack/observe"
)

// pcatrain builds the persisted PCA appearance model from a directory of
// sample patch images.  Each image is preprocessed exactly as scoring does,
// so the subspace matches the feature vectors the tracker extracts at
// runtime.
func main() {
	log.SetFlags(0)

	patchDir := flag.String("i", "./patches", "Directory of sample patch images")
	outDir := flag.String("o", "./model", "Directory to write the model files to")
	components := flag.Int("k", 16, "Number of principal components to retain")

	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*patchDir, "*"))

	if err != nil {
		log.Fatal("Error listing patches: ", err)
	}

	size := observe.DefaultFeatureSize()
	d := size.X * size.Y

	var rows [][]float64

	for _, file := range files {

		img := gocv.IMRead(file, gocv.IMReadColor)

		if img.Empty() {
			log.Printf("skipping unreadable image %s", file)
			continue
		}

		vec, err := observe.FeatureVector(img, size)
		img.Close()

		if err != nil {
			log.Fatalf("Error extracting features from %s: %v", file, err)
		}

		rows = append(rows, vec)
	}

	n := len(rows)

	if n <= *components {
		log.Fatalf("Need more than %d sample patches, got %d", *components, n)
	}

	samples := mat.NewDense(n, d, nil)

	for i, row := range rows {
		samples.SetRow(i, row)
	}

	// mean of each feature over the samples
	mean := make([]float64, d)

	for j := 0; j < d; j++ {
		mean[j] = stat.Mean(mat.Col(nil, j, samples), nil)
	}

	var pc stat.PC

	if ok := pc.PrincipalComponents(samples, nil); !ok {
		log.Fatal("PCA decomposition failed")
	}

	var vectors mat.Dense
	pc.VectorsTo(&vectors)

	vars := pc.VarsTo(nil)

	// retain the leading k components as rows
	k := *components
	eigenvectors := mat.NewDense(k, d, nil)
	eigenvalues := mat.NewVecDense(k, nil)

	for i := 0; i < k; i++ {

		if vars[i] <= 0 {
			log.Fatalf("Component %d has nonpositive variance %g, reduce -k",
				i, vars[i])
		}

		eigenvalues.SetVec(i, vars[i])

		for j := 0; j < d; j++ {
			eigenvectors.Set(i, j, vectors.At(j, i))
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal("Error creating output directory: ", err)
	}

	writeMat(filepath.Join(*outDir, observe.EigenvaluesFile), eigenvalues)
	writeMat(filepath.Join(*outDir, observe.EigenvectorsFile), eigenvectors)
	writeMat(filepath.Join(*outDir, observe.MeanFile), mat.NewVecDense(d, mean))

	log.Printf("wrote %d component model from %d patches to %s", k, n, *outDir)
}

// writeMat persists a matrix in gonum binary encoding
func writeMat(path string, m interface{ MarshalBinary() ([]byte, error) }) {

	b, err := m.MarshalBinary()

	if err != nil {
		log.Fatalf("Error encoding %s: %v", path, err)
	}

	if err := os.WriteFile(path, b, 0o644); err != nil {
		log.Fatalf("Error writing %s: %v", path, err)
	}
}
