package plot

import (
	"image"
	"image/color"

	"signalpredictor/util"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

var (
	black  = color.RGBA{0, 0, 0, 0}
	blue   = color.RGBA{31, 119, 180, 0}
	orange = color.RGBA{255, 127, 14, 0}
)

const margin = 60

// ImageSink renders both series as line charts into an image file and
// optionally shows it in a window.
type ImageSink struct {
	Path   string
	Title  string
	Width  int
	Height int
	Show   bool
}

// NewImageSink returns a 1000x600 sink writing to path.
func NewImageSink(path string, show bool) *ImageSink {
	return &ImageSink{
		Path:   path,
		Title:  "Transformer-based Crypto Price Prediction (Validation Set)",
		Width:  1000,
		Height: 600,
		Show:   show,
	}
}

func (s *ImageSink) Render(actual, predicted []float64) error {
	if err := checkLengths(actual, predicted); err != nil {
		return err
	}
	if s.Width <= 2*margin || s.Height <= 2*margin {
		return errors.Errorf("plot: canvas %dx%d too small", s.Width, s.Height)
	}

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), s.Height, s.Width, gocv.MatTypeCV8UC3)
	defer img.Close()

	area := image.Rect(margin, margin, s.Width-margin, s.Height-margin)
	gocv.Rectangle(&img, area, black, 1)
	gocv.PutText(&img, s.Title, image.Pt(margin, margin/2), gocv.FontHersheySimplex, 0.6, black, 1)
	gocv.PutText(&img, "Time Step", image.Pt(s.Width/2-40, s.Height-margin/3), gocv.FontHersheySimplex, 0.5, black, 1)
	gocv.PutText(&img, "Price", image.Pt(5, s.Height/2), gocv.FontHersheySimplex, 0.5, black, 1)

	p := newProjection(area, actual, predicted)
	polyline(&img, p, actual, blue)
	polyline(&img, p, predicted, orange)

	legend := image.Pt(area.Max.X-180, area.Min.Y+20)
	gocv.Line(&img, legend, legend.Add(image.Pt(30, 0)), blue, 2)
	gocv.PutText(&img, "Actual Price", legend.Add(image.Pt(40, 5)), gocv.FontHersheySimplex, 0.5, black, 1)
	legend = legend.Add(image.Pt(0, 20))
	gocv.Line(&img, legend, legend.Add(image.Pt(30, 0)), orange, 2)
	gocv.PutText(&img, "Predicted Price", legend.Add(image.Pt(40, 5)), gocv.FontHersheySimplex, 0.5, black, 1)

	logPoints(actual, predicted)

	if !gocv.IMWrite(s.Path, img) {
		return errors.Errorf("plot: write %s", s.Path)
	}
	util.Logger.WithFields(logrus.Fields{"path": s.Path, "points": len(actual)}).Info("validation plot written")

	if s.Show {
		w := gocv.NewWindow(s.Title)
		defer w.Close()
		w.IMShow(img)
		w.WaitKey(0)
	}
	return nil
}

func polyline(img *gocv.Mat, p projection, series []float64, c color.RGBA) {
	for i := 1; i < len(series); i++ {
		gocv.Line(img, p.point(i-1, series[i-1]), p.point(i, series[i]), c, 2)
	}
}

func logPoints(actual, predicted []float64) {
	if util.PlotLogger == nil {
		return
	}
	for i := range actual {
		util.PlotLogger.WithFields(logrus.Fields{
			"step":      i,
			"actual":    actual[i],
			"predicted": predicted[i],
		}).Info("point")
	}
}
