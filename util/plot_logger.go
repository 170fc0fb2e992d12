package util

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// PlotLogger records plotted points as JSON lines. It is nil until
// InitPlotLogger is called.
var PlotLogger *logrus.Entry

// InitPlotLogger opens path and routes PlotLogger to it. The returned
// function closes the file.
func InitPlotLogger(path, tag string) (func() error, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create plot log")
	}
	l := logrus.New()
	l.SetOutput(file)
	l.SetFormatter(&logrus.JSONFormatter{})
	PlotLogger = l.WithField("plot", tag)
	return file.Close, nil
}
