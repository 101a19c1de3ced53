package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-sigexplore/explorer"
	"github.com/cwbudde/algo-sigexplore/stats/summary"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
)

var viewNames = []string{"pure", "displayed", "filtered"}

func selectView(v explorer.Views, name string) ([]float64, error) {
	switch name {
	case "pure":
		return v.Pure, nil
	case "displayed":
		return v.Displayed, nil
	case "filtered":
		return v.Filtered, nil
	default:
		return nil, fmt.Errorf("unknown view %q (want pure, displayed or filtered)", name)
	}
}

type renderer struct {
	w        io.Writer
	format   string
	spectrum string
	ctrl     *explorer.Controller
}

func (r *renderer) render(st explorer.State, v explorer.Views) error {
	if r.format == formatCSV {
		if r.spectrum != "" {
			return r.spectrumCSV(v)
		}
		return r.viewsCSV(v)
	}
	return r.table(st, v)
}

func (r *renderer) table(st explorer.State, v explorer.Views) error {
	stats := r.ctrl.NoiseStats()
	if _, err := fmt.Fprintf(r.w, "Signal: amplitude=%g frequency=%g phase=%g\n",
		st.Signal.Amplitude, st.Signal.Frequency, st.Signal.Phase); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.w, "Filter path: %s  Noise cache: hits=%d misses=%d\n\n",
		v.Path, stats.Hits, stats.Misses); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "View\tValid\tMean\tRMS\tMin\tMax\tPeak\tVariance\tZero X\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "----\t-----\t----\t---\t---\t---\t----\t--------\t------\n"); err != nil {
		return err
	}
	for _, name := range viewNames {
		view, _ := selectView(v, name)
		s := summary.Calculate(view)
		if s.Empty() {
			if _, err := fmt.Fprintf(tw, "%s\t0/%d\t-\t-\t-\t-\t-\t-\t-\n", name, s.Length); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d/%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%d\n",
			name, s.Valid, s.Length, s.Mean, s.RMS, s.Min, s.Max, s.Peak, s.Variance, s.ZeroCrossings); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, name := range viewNames[1:] {
		view, _ := selectView(v, name)
		rms, n := summary.RMSError(view, v.Pure)
		if n == 0 {
			continue
		}
		if _, err := fmt.Fprintf(r.w, "Residual vs pure (%s): %.4f RMS\n", name, rms); err != nil {
			return err
		}
	}

	if r.spectrum == "" {
		return nil
	}

	view, err := selectView(v, r.spectrum)
	if err != nil {
		return err
	}
	res, err := r.ctrl.Spectrum(view)
	if err != nil {
		return fmt.Errorf("spectrum of %s view: %w", r.spectrum, err)
	}
	k := res.Peak()
	_, err = fmt.Fprintf(r.w, "Spectrum (%s): peak %.4f at %.4f, %d-point FFT\n",
		r.spectrum, res.Amplitude[k], res.Freqs[k], res.FFTSize)
	return err
}

func (r *renderer) viewsCSV(v explorer.Views) error {
	cw := csv.NewWriter(r.w)
	if err := cw.Write([]string{"t", "pure", "displayed", "filtered"}); err != nil {
		return err
	}

	grid := r.ctrl.Grid()
	for i := 0; i < grid.Len(); i++ {
		row := []string{
			formatValue(grid.At(i)),
			formatValue(v.Pure[i]),
			formatValue(v.Displayed[i]),
			formatValue(v.Filtered[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r *renderer) spectrumCSV(v explorer.Views) error {
	view, err := selectView(v, r.spectrum)
	if err != nil {
		return err
	}
	res, err := r.ctrl.Spectrum(view)
	if err != nil {
		return fmt.Errorf("spectrum of %s view: %w", r.spectrum, err)
	}

	cw := csv.NewWriter(r.w)
	if err := cw.Write([]string{"frequency", "amplitude"}); err != nil {
		return err
	}
	for k := range res.Freqs {
		if err := cw.Write([]string{formatValue(res.Freqs[k]), formatValue(res.Amplitude[k])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatValue writes hidden (NaN) samples as empty cells.
func formatValue(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}
