// Package main provides the neuralviz CLI.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/born-ml/neuralviz/internal/config"
	"github.com/born-ml/neuralviz/internal/data"
	"github.com/born-ml/neuralviz/internal/train"
	"github.com/pkg/errors"
)

const version = "v0.1.0-dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "neuralviz: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "version":
		fmt.Fprintf(stdout, "neuralviz %s\n", version)
		return nil
	case "data":
		return runData(rest, stdout, stderr)
	case "inspect":
		return runInspect(rest, stdout, stderr)
	case "train":
		return runTrain(rest, stdout, stderr)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return errors.Errorf("unknown command %q", cmd)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "neuralviz - train small feedforward networks on 1-D functions")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  data       Print the prepared datasets as CSV")
	fmt.Fprintln(w, "  inspect    Print the generated network")
	fmt.Fprintln(w, "  train      Train the network and print per-epoch errors")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Every command but version accepts -config <file.yaml> and -seed <n>.")
}

// common holds the flags shared by data, inspect and train.
type common struct {
	configPath string
	seed       int64
	verbose    bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML config file (defaults are used when empty)")
	fs.Int64Var(&c.seed, "seed", 0, "override the config seed (0 keeps it)")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
}

func (c *common) load() (config.Config, error) {
	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.Load(c.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if c.seed != 0 {
		cfg.Seed = c.seed
	}
	return cfg, nil
}

func (c *common) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runData(args []string, stdout, stderr io.Writer) error {
	var c common
	fs := flag.NewFlagSet("data", flag.ContinueOnError)
	fs.SetOutput(stderr)
	c.register(fs)
	raw := fs.Bool("raw", false, "print raw samples instead of scaled ones")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.load()
	if err != nil {
		return err
	}
	_, ds, err := cfg.Build()
	if err != nil {
		return err
	}

	trainSet, testSet := ds.TrainPreparedOriginalOrder, ds.TestPreparedOriginalOrder
	if *raw {
		trainSet, testSet = ds.Train, ds.Test
	}

	w := csv.NewWriter(stdout)
	if err := w.Write([]string{"set", "x", "y"}); err != nil {
		return errors.Wrap(err, "write csv")
	}
	for _, part := range []struct {
		name string
		set  data.Set
	}{{"train", trainSet}, {"test", testSet}} {
		for _, e := range part.set {
			if err := w.Write([]string{part.name, formatFloat(e.X[0]), formatFloat(e.Y[0])}); err != nil {
				return errors.Wrap(err, "write csv")
			}
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "write csv")
}

func runInspect(args []string, stdout, stderr io.Writer) error {
	var c common
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	c.register(fs)
	dump := fs.Bool("dump-config", false, "print the effective config as YAML instead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.load()
	if err != nil {
		return err
	}
	if *dump {
		out, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = stdout.Write(out)
		return errors.Wrap(err, "write config")
	}

	network, _, err := cfg.Build()
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, network.String())
	return errors.Wrap(err, "write network")
}

func runTrain(args []string, stdout, stderr io.Writer) error {
	var c common
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)
	c.register(fs)
	epochs := fs.Int("epochs", 0, "override the configured epoch count (0 keeps it)")
	reset := fs.Bool("reset", false, "restore the initial network after training and report its test error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.load()
	if err != nil {
		return err
	}
	if *epochs > 0 {
		cfg.Training.Epochs = *epochs
	}
	log := c.logger(stderr)

	network, ds, err := cfg.Build()
	if err != nil {
		return err
	}
	trCfg, err := cfg.TrainConfig()
	if err != nil {
		return err
	}
	tr, err := train.New(network, trCfg)
	if err != nil {
		return err
	}
	tr.Logger = log

	initial := network.Clone()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintln(stdout, "epoch,train_error,test_error")
	err = tr.Train(ctx, ds.TrainPrepared, ds.TestPrepared, func(p train.Progress) {
		if p.Yield != train.YieldEpochEnd {
			return
		}
		testErr := ""
		if len(p.TestErrors) > 0 {
			testErr = formatFloat(p.TestErrors[len(p.TestErrors)-1])
		}
		fmt.Fprintf(stdout, "%d,%s,%s\n", p.Epoch, formatFloat(p.EpochErrors[len(p.EpochErrors)-1]), testErr)
	})
	if errors.Is(err, train.ErrStopped) {
		log.Warn("interrupted", "epochs_done", len(tr.EpochErrors))
		err = nil
	}
	if err != nil {
		return err
	}

	if err := logEvaluation(tr, ds.TestPrepared, log, "final test error"); err != nil {
		return err
	}

	if *reset {
		*network = *initial
		if err := logEvaluation(tr, ds.TestPrepared, log, "network reset to initial parameters"); err != nil {
			return err
		}
	}
	return nil
}

// logEvaluation logs the mean loss of tr's network over set, if set is not empty.
func logEvaluation(tr *train.Trainer, set data.Set, log *slog.Logger, msg string) error {
	if len(set) == 0 {
		return nil
	}
	e, err := tr.Evaluate(set)
	if err != nil {
		return err
	}
	log.Info(msg, "test_error", e)
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}
