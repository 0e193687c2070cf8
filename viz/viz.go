package viz

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/notargets/gomarch/fields"
	"github.com/notargets/gomarch/logging"
)

// CSV writes one file per dump: a coordinate column followed by one column
// per field.
type CSV struct {
	Dir string
	X   fields.Coordinates
}

func (s *CSV) Dump(basename string, step int, t float64, fs []fields.Named) (err error) {
	var (
		f *os.File
		x = s.X[0]
	)
	if f, err = os.Create(filepath.Join(s.Dir, basename+".csv")); err != nil {
		return
	}
	defer f.Close()
	w := csv.NewWriter(f)
	header := make([]string, 0, len(fs)+1)
	header = append(header, "x")
	for _, field := range fs {
		header = append(header, field.Label)
	}
	if err = w.Write(header); err != nil {
		return
	}
	record := make([]string, len(header))
	for i := 0; i < x.Len(); i++ {
		record[0] = strconv.FormatFloat(x.AtVec(i), 'e', 10, 64)
		for n, field := range fs {
			record[n+1] = strconv.FormatFloat(field.V.AtVec(i), 'e', 10, 64)
		}
		if err = w.Write(record); err != nil {
			return
		}
	}
	w.Flush()
	err = w.Error()
	return
}

// PNG renders every field as a line against the coordinate and saves one
// image per dump.
type PNG struct {
	Dir string
	X   fields.Coordinates
}

func (s *PNG) Dump(basename string, step int, t float64, fs []fields.Named) (err error) {
	var (
		x = s.X[0]
		p = plot.New()
	)
	p.Title.Text = fmt.Sprintf("%s  t=%8.5f", basename, t)
	p.X.Label.Text = "x"
	for n, field := range fs {
		pts := make(plotter.XYs, x.Len())
		for i := range pts {
			pts[i].X = x.AtVec(i)
			pts[i].Y = field.V.AtVec(i)
		}
		var line *plotter.Line
		if line, err = plotter.NewLine(pts); err != nil {
			return
		}
		line.Color = plotutil.Color(n)
		p.Add(line)
		p.Legend.Add(field.Label, line)
	}
	err = p.Save(8*vg.Inch, 6*vg.Inch, filepath.Join(s.Dir, basename+".png"))
	return
}

// LiveChart streams fields into an interactive plot window, refreshed on
// every dump. Use on a single rank only.
type LiveChart struct {
	X          fields.Coordinates
	YMin, YMax float32
	Delay      time.Duration
	plotOnce   sync.Once
	chart      *chart2d.Chart2D
	colorMap   *utils2.ColorMap
}

func (s *LiveChart) Dump(basename string, step int, t float64, fs []fields.Named) (err error) {
	var (
		x = s.X[0]
	)
	s.plotOnce.Do(func() {
		s.chart = chart2d.NewChart2D(1920, 1280, float32(x.Min()), float32(x.Max()), s.YMin, s.YMax)
		s.colorMap = utils2.NewColorMap(-1, 1, 1)
		go s.chart.Plot()
	})
	for n, field := range fs {
		color := float32(-0.7 + 1.4*float64(n)/float64(len(fs)))
		if err = s.chart.AddSeries(field.Label, x.DataP(), field.V.DataP(),
			chart2d.NoGlyph, chart2d.Solid, s.colorMap.GetRGB(color)); err != nil {
			return
		}
	}
	if s.Delay != 0 {
		time.Sleep(s.Delay)
	}
	return
}

// ASCII charts one field into the log. Hand it a rank gated logger so
// charts do not duplicate.
type ASCII struct {
	Log   logging.Logger
	Field string // label to chart; empty charts the first field
}

func (s *ASCII) Dump(basename string, step int, t float64, fs []fields.Named) (err error) {
	var (
		pick = fs[0]
	)
	if s.Field != "" {
		found := false
		for _, field := range fs {
			if strings.EqualFold(field.Label, s.Field) {
				pick = field
				found = true
				break
			}
		}
		if !found {
			err = fmt.Errorf("no field labeled %q to chart", s.Field)
			return
		}
	}
	graph := asciigraph.Plot(pick.V.DataP(),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s  step %d  t=%8.5f", pick.Label, step, t)))
	s.Log.Infof("%s", graph)
	return
}
