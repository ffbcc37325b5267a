package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/hsl-camera/internal/capture"
	"github.com/ironsheep/hsl-camera/internal/config"
	"github.com/ironsheep/hsl-camera/internal/detection"
	"github.com/ironsheep/hsl-camera/internal/imaging"
	"github.com/ironsheep/hsl-camera/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("hsl-camera %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		printUsage()
		return
	case "serve":
		err = runServe(os.Args[2:])
	case "process":
		err = runProcess(os.Args[2:])
	case "watch":
		err = runWatch(os.Args[2:])
	case "hsl":
		err = runHSL(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logrus.Fatalf("%s: %v", os.Args[1], err)
	}
}

func printUsage() {
	fmt.Println("hsl-camera - highlight color ranges in webcam snapshots")
	fmt.Println()
	fmt.Println("Usage: hsl-camera <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve      Serve the webcam UI and processing API")
	fmt.Println("  process    Highlight a single image file")
	fmt.Println("  watch      Process a directory of images at the capture cadence")
	fmt.Println("  hsl R G B  Print the HSL value of an RGB color")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug    Override the configured log level\n", config.LogLevelEnv)
	fmt.Println()
	fmt.Println("Run 'hsl-camera <command> -h' for command options.")
}

// setup loads the configuration and the pipeline it describes.
func setup(configPath string) (*config.Config, *detection.Pipeline, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ConfigureLogging(); err != nil {
		return nil, nil, err
	}

	opts, err := cfg.Pipeline.Options()
	if err != nil {
		return nil, nil, err
	}
	pipeline, err := detection.NewPipeline(opts...)
	if err != nil {
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"version":   Version,
		"config":    configPath,
		"kernel":    pipeline.KernelSize(),
		"threshold": pipeline.Threshold(),
		"highlight": pipeline.Highlight().Hex(),
	}).Debug("Configuration loaded")

	return cfg, pipeline, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML configuration file")
	addr := fs.String("addr", "", "listen address (overrides server.addr)")
	insecure := fs.Bool("insecure", false, "serve plain HTTP instead of HTTPS")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, pipeline, err := setup(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *insecure {
		cfg.Server.TLS = false
	}

	ranges := config.NewRangeStore(cfg.Range)
	snapshots := capture.NewSnapshotSource()
	latest := capture.NewLatestSink()

	srv, err := server.New(cfg.Server, server.Deps{
		Loader:    imaging.NewFrameLoader(cfg.Capture.Width),
		Pipeline:  pipeline,
		Ranges:    ranges,
		Snapshots: snapshots,
		Latest:    latest,
	})
	if err != nil {
		return err
	}

	loop := &capture.Loop{
		Source:   snapshots,
		Sink:     latest,
		Pipeline: pipeline,
		Ranges:   ranges,
		Interval: cfg.Capture.Interval(),
	}

	ctx, cancel := signalContext()
	defer cancel()

	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()

	err = srv.Run(ctx)
	cancel()
	if loopErr := <-loopDone; err == nil {
		err = loopErr
	}
	return err
}

func runProcess(args []string) error {
	fs := flag.NewFlagSet("process", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML configuration file")
	in := fs.String("in", "", "input image")
	out := fs.String("out", "", "output PNG")
	filter := fs.String("filter", "", "channel preview filter instead of highlighting (gray, red, green, blue)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		fs.Usage()
		return fmt.Errorf("-in and -out are required")
	}

	cfg, pipeline, err := setup(*configPath)
	if err != nil {
		return err
	}

	frame, err := imaging.NewFrameLoader(cfg.Capture.Width).Load(*in)
	if err != nil {
		return err
	}

	var result *imaging.Frame
	if *filter != "" {
		result, err = imaging.ApplyFilter(frame, *filter)
	} else {
		var res *detection.Result
		res, err = pipeline.RunWithMask(frame, cfg.Range)
		if err == nil {
			result = res.Frame
			logrus.WithFields(logrus.Fields{
				"input":    *in,
				"width":    frame.Width,
				"height":   frame.Height,
				"coverage": res.Mask.Coverage(),
			}).Info("Image processed")
		}
	}
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := imaging.EncodePNG(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML configuration file")
	src := fs.String("src", "", "image file or directory of images")
	out := fs.String("out", "", "output directory")
	repeat := fs.Bool("repeat", false, "loop over the source until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *src == "" || *out == "" {
		fs.Usage()
		return fmt.Errorf("-src and -out are required")
	}

	cfg, pipeline, err := setup(*configPath)
	if err != nil {
		return err
	}

	source, err := capture.NewFileSource(imaging.NewFrameLoader(cfg.Capture.Width), *src, *repeat)
	if err != nil {
		return err
	}
	sink, err := capture.NewDirSink(*out)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	loop := &capture.Loop{
		Source:   source,
		Sink:     sink,
		Pipeline: pipeline,
		Ranges:   config.NewRangeStore(cfg.Range),
		Interval: cfg.Capture.Interval(),
	}
	return loop.Run(ctx)
}

func runHSL(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: hsl-camera hsl R G B")
	}
	var rgb [3]uint8
	for i, a := range args {
		v, err := strconv.ParseUint(a, 10, 8)
		if err != nil {
			return fmt.Errorf("component %d: must be an integer in 0-255", i+1)
		}
		rgb[i] = uint8(v)
	}

	c := imaging.NewColorResult(rgb[0], rgb[1], rgb[2], 255)
	fmt.Printf("%s  hsl(%.2f, %.2f%%, %.2f%%)\n", c.Hex, c.HSL.H, c.HSL.S*100, c.HSL.L*100)
	return nil
}
