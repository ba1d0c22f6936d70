package main

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/charmbracelet/log"
	plt "github.com/phil-mansfield/pyplot"
	"github.com/spf13/cobra"

	rpio "github.com/phil-mansfield/radprof/io"
	"github.com/phil-mansfield/radprof/logging"
)

// output is the table of columns produced by a mode.
type output struct {
	names []string
	cols  [][]float64
	// plot lists the columns which are drawn against the first column.
	plot []int
}

func (out *output) add(name string, col []float64, plot bool) {
	if plot {
		out.plot = append(out.plot, len(out.cols))
	}
	out.names = append(out.names, name)
	out.cols = append(out.cols, col)
}

// modeFunc computes the output of a mode at the coordinates xs.
type modeFunc func(logger *log.Logger, xs []float64) (*output, error)

// FileGroup holds the log and profile files of a run.
type FileGroup struct {
	log, prof *os.File
}

func openFileGroup(con *rpio.SharedConfig) (*FileGroup, error) {
	fg := &FileGroup{}
	if con.ValidLogFile() {
		f, err := os.Create(con.LogFile)
		if err != nil {
			return nil, err
		}
		fg.log = f
	}
	if con.ValidProfileFile() {
		f, err := os.Create(con.ProfileFile)
		if err != nil {
			fg.Close()
			return nil, err
		}
		fg.prof = f
		if err := pprof.StartCPUProfile(f); err != nil {
			fg.Close()
			return nil, err
		}
	}
	return fg, nil
}

func (fg *FileGroup) Close() error {
	var err error
	if fg.prof != nil {
		pprof.StopCPUProfile()
		err = fg.prof.Close()
	}
	if fg.log != nil {
		if lerr := fg.log.Close(); err == nil {
			err = lerr
		}
	}
	return err
}

// run does the work shared by every mode: it sets up logging and profiling,
// builds the output coordinates, calls f, and writes and plots the result.
func run(cmd *cobra.Command, con *rpio.SharedConfig, mode string, f modeFunc) (err error) {
	fg, err := openFileGroup(con)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fg.Close(); err == nil {
			err = cerr
		}
	}()

	var w io.Writer = cmd.ErrOrStderr()
	if fg.log != nil {
		w = fg.log
	}
	logger := logging.New(w, logging.Level())
	logger.Debug("starting", "mode", mode, "logging", logging.Mode)

	xs, err := rpio.Radii(con)
	if err != nil {
		return err
	}
	logger.Debug("output grid", "points", len(xs), "min", xs[0], "max", xs[len(xs)-1])

	timer := logging.NewTimer(logger)
	out, err := f(logger, xs)
	if err != nil {
		return fmt.Errorf("[%s]: %w", mode, err)
	}
	timer.Done(mode)

	if err := writeOutput(cmd, con, out); err != nil {
		return err
	}
	if con.ValidPlot() {
		plotOutput(con.Plot, out)
		logger.Info("wrote figure", "file", con.Plot)
	}
	return nil
}

func writeOutput(cmd *cobra.Command, con *rpio.SharedConfig, out *output) error {
	if !con.ValidOutput() {
		return rpio.WriteColumns(cmd.OutOrStdout(), out.names, out.cols...)
	}

	f, err := os.Create(con.Output)
	if err != nil {
		return err
	}
	if err := rpio.WriteColumns(f, out.names, out.cols...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// plotOutput draws the plotted columns of out against its first column. The
// y axis is logarithmic unless a column has non-positive values.
func plotOutput(fname string, out *output) {
	colors := []string{"r", "b", "g", "k", "m"}
	logY := true

	plt.Figure()
	for i, j := range out.plot {
		for _, y := range out.cols[j] {
			if y <= 0 {
				logY = false
			}
		}
		plt.Plot(out.cols[0], out.cols[j], plt.LW(2), plt.C(colors[i%len(colors)]))
	}

	plt.XLabel(out.names[0], plt.FontSize(16))
	if len(out.plot) > 0 {
		plt.YLabel(out.names[out.plot[0]], plt.FontSize(16))
	}
	plt.XScale("log")
	if logY {
		plt.YScale("log")
	}
	plt.Grid(plt.Axis("y"))
	plt.Grid(plt.Axis("x"), plt.Which("both"))
	plt.SaveFig(fname)
	plt.Execute()
}
