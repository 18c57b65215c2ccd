// Command bhtsne embeds whitespace-separated float rows from stdin (or
// a file) into a low-dimensional space and writes tab-separated rows to
// stdout (or a file), one per input sample, in input order.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/embedviz/bhtsne"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "bhtsne: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fl := flag.NewFlagSet("bhtsne", flag.ExitOnError)
	var (
		outputDims  = fl.Int("d", bhtsne.DefaultOutputDims, "output dimensionality")
		perplexity  = fl.Float64("p", bhtsne.DefaultPerplexity, "perplexity")
		initialDims = fl.Int("n", bhtsne.DefaultInitialDims, "initial dimensionality after PCA")
		theta       = fl.Float64("t", bhtsne.DefaultTheta, "theta (0 for exact, slower computation)")
		seed        = fl.Int("r", 0, "random seed (omit for time-based seeding)")
		verbose     = fl.Bool("v", false, "redirect engine diagnostics to stderr")
		inputPath   = fl.String("i", "", "input file (default stdin)")
		outputPath  = fl.String("o", "", "output file (default stdout)")
		enginePath  = fl.String("engine", "", "path to the bh_tsne binary (default: next to this executable)")
	)
	if err := fl.Parse(args); err != nil {
		return err
	}

	opts := []bhtsne.Option{
		bhtsne.WithOutputDims(*outputDims),
		bhtsne.WithPerplexity(*perplexity),
		bhtsne.WithInitialDims(*initialDims),
		bhtsne.WithTheta(*theta),
		bhtsne.WithVerbose(*verbose),
	}
	if *enginePath != "" {
		opts = append(opts, bhtsne.WithEnginePath(*enginePath))
	}
	fl.Visit(func(f *flag.Flag) {
		if f.Name == "r" {
			opts = append(opts, bhtsne.WithRandomSeed(int32(*seed)))
		}
	})
	if *verbose {
		opts = append(opts, bhtsne.WithLogger(bhtsne.NewTextLogger(slog.LevelDebug)))
	}

	t, err := bhtsne.New(opts...)
	if err != nil {
		return err
	}

	in := io.Reader(os.Stdin)
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	samples, err := readMatrix(in)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	for point, err := range t.Embed(context.Background(), samples) {
		if err != nil {
			return err
		}
		if err := writeRow(w, point); err != nil {
			return err
		}
	}
	return w.Flush()
}

// readMatrix parses whitespace/tab-separated float rows, skipping blank
// lines. Rectangularity is validated by the pipeline.
func readMatrix(r io.Reader) ([][]float64, error) {
	var samples [][]float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			row[i] = v
		}
		samples = append(samples, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

func writeRow(w io.Writer, point []float64) error {
	var sb strings.Builder
	for i, v := range point {
		if i > 0 {
			sb.WriteByte('\t')
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}
