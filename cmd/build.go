package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sarchlab/octopi/board"
	"github.com/sarchlab/octopi/config"
	"github.com/sarchlab/octopi/datarecording"
	"github.com/sarchlab/octopi/mem"
	"github.com/sarchlab/octopi/monitoring"
	"github.com/sarchlab/octopi/octopi"
	"github.com/sarchlab/octopi/sim/hooking"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const numBuildSteps = 5

type buildFlags struct {
	record      string
	monitor     bool
	port        int
	openBrowser bool
}

func newBuildCommand(flags *commonFlags) *cobra.Command {
	bf := &buildFlags{}

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build a fabric and print its summary.",
		Long: "`build` wires the fabric of a configuration. It can record " +
			"the fabric into an SQLite file and serve it for inspection.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			bf.apply(cmd, &cfg)

			return runBuild(cmd.OutOrStdout(), cfg)
		},
	}

	buildCmd.Flags().StringVar(&bf.record, "record", "",
		"record the fabric into <path>.sqlite3")
	buildCmd.Flags().BoolVar(&bf.monitor, "monitor", false,
		"serve the fabric over HTTP until interrupted")
	buildCmd.Flags().IntVar(&bf.port, "port", 0,
		"port of the monitoring server, 0 picks a free port")
	buildCmd.Flags().BoolVar(&bf.openBrowser, "open", false,
		"open the monitoring server in a browser")

	return buildCmd
}

func (bf *buildFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("record") {
		cfg.Recording.Enabled = true
		cfg.Recording.Path = bf.record
	}

	if cmd.Flags().Changed("monitor") {
		cfg.Monitoring.Enabled = bf.monitor
	}

	if cmd.Flags().Changed("port") {
		cfg.Monitoring.Port = bf.port
	}

	if cmd.Flags().Changed("open") {
		cfg.Monitoring.OpenBrowser = bf.openBrowser
	}
}

func runBuild(out io.Writer, cfg config.Config) error {
	var (
		monitor *monitoring.Monitor
		url     string
		bar     *monitoring.ProgressBar
	)

	if cfg.Monitoring.Enabled {
		var err error

		monitor = monitoring.NewMonitor().WithPortNumber(cfg.Monitoring.Port)

		url, err = monitor.StartServer()
		if err != nil {
			return err
		}

		bar = monitor.CreateProgressBar("Incorporate cache", numBuildSteps)
	}

	f, b, err := buildFabric(cfg, bar)
	if err != nil {
		return err
	}

	printSummary(out, f)

	if cfg.Recording.Enabled {
		recorder := datarecording.New(cfg.Recording.Path)
		f.Record(recorder)

		if err := recorder.Close(); err != nil {
			return err
		}
	}

	if monitor == nil {
		return nil
	}

	monitor.CompleteProgressBar(bar)
	registerWithMonitor(monitor, f, b)

	if cfg.Monitoring.OpenBrowser {
		if err := monitoring.OpenInBrowser(url); err != nil {
			logrus.WithError(err).Warn("cannot open the browser")
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	return nil
}

// buildFabric builds the board and the fabric of a configuration. The
// progress bar, if any, follows the stages of the build.
func buildFabric(
	cfg config.Config,
	bar *monitoring.ProgressBar,
) (*octopi.Fabric, *board.SimpleBoard, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	b, err := cfg.BoardBuilder().Build("Board")
	if err != nil {
		return nil, nil, err
	}

	h := cfg.HierarchyBuilder().Build("Octopi")

	if bar != nil {
		h.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			if ctx.Pos == octopi.HookPosStageReached {
				bar.Advance(ctx.Item.(octopi.Stage).String())
			}
		}))
	}

	f, err := h.IncorporateCache(b)
	if err != nil {
		return nil, nil, err
	}

	return f, b, nil
}

// registerWithMonitor exposes the fabric, the board, and the board's cores.
func registerWithMonitor(
	monitor *monitoring.Monitor,
	f *octopi.Fabric,
	b *board.SimpleBoard,
) {
	monitor.RegisterFabric(f)
	monitor.RegisterComponent(b)

	for _, c := range b.Cores() {
		monitor.RegisterComponent(c)
	}
}

func printSummary(out io.Writer, f *octopi.Fabric) {
	s := f.Sizing()

	fmt.Fprintf(out, "Fabric %s (%s, %d virtual networks)\n",
		f.Name(), f.Protocol(), f.NumVirtualNetworks())
	fmt.Fprintf(out, "  core complexes:  %d\n", len(f.CoreComplexes()))
	fmt.Fprintf(out, "  directories:     %d\n", len(f.Directories()))
	fmt.Fprintf(out, "  DMA controllers: %d\n", len(f.DMAControllers()))
	fmt.Fprintf(out, "  sequencers:      %d\n", f.NumSequencers())
	fmt.Fprintf(out, "  routers:         %d\n", len(f.Routers()))
	fmt.Fprintf(out, "  external links:  %d\n", len(f.ExtLinks()))
	fmt.Fprintf(out, "  internal links:  %d (%d to directories)\n",
		len(f.IntLinks()), len(f.DirectoryIntLinks()))
	fmt.Fprintf(out, "  buffers:         %d\n", len(f.Topology().Buffers()))
	fmt.Fprintf(out, "  caches:          L1I %s, L1D %s, L2 %s, L3 %s\n",
		mem.FormatByteSize(s.L1I.Size), mem.FormatByteSize(s.L1D.Size),
		mem.FormatByteSize(s.L2.Size), mem.FormatByteSize(s.L3.Size))

	for _, d := range f.Directories() {
		fmt.Fprintf(out, "  %s: %s -> %s\n",
			d.Name(), d.AddrRange(), d.MemPort().Name())
	}
}
