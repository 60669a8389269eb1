package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/octopi/datarecording"
	"github.com/spf13/cobra"
)

type fabricRow struct {
	ID                 string
	Name               string
	Protocol           string
	NumVirtualNetworks int
	NumSequencers      int
	NumCoreComplexes   int
	NumDirectories     int
	NumDMAControllers  int
	CacheLineSize      int
}

type addrRangeRow struct {
	Directory string
	Range     string
	MemPort   string
}

type routerRow struct {
	Name string
	Kind string
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <recording.sqlite3>",
		Short: "Print the fabrics stored in a recording.",
		Long: "`inspect` reads a file written by `build --record` and prints " +
			"a summary of every fabric in it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return err
			}

			reader, err := datarecording.NewReader(args[0])
			if err != nil {
				return err
			}
			defer reader.Close()

			return inspectRecording(cmd.Context(), cmd.OutOrStdout(), reader)
		},
	}
}

func inspectRecording(
	ctx context.Context,
	out io.Writer,
	reader datarecording.DataReader,
) error {
	reader.MapTable("fabric", fabricRow{})
	reader.MapTable("addr_ranges", addrRangeRow{})
	reader.MapTable("routers", routerRow{})

	fabrics, _, err := reader.Query(ctx, "fabric",
		datarecording.QueryParams{OrderBy: "Name"})
	if err != nil {
		return err
	}

	for _, entry := range fabrics {
		f := entry.(*fabricRow)

		_, numRouters, err := reader.Query(ctx, "routers",
			datarecording.QueryParams{
				Where: "Topology = ?",
				Args:  []any{f.Name + ".Network"},
				Limit: 1,
			})
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Fabric %s (%s, %d virtual networks) %s\n",
			f.Name, f.Protocol, f.NumVirtualNetworks, f.ID)
		fmt.Fprintf(out, "  core complexes:  %d\n", f.NumCoreComplexes)
		fmt.Fprintf(out, "  directories:     %d\n", f.NumDirectories)
		fmt.Fprintf(out, "  DMA controllers: %d\n", f.NumDMAControllers)
		fmt.Fprintf(out, "  sequencers:      %d\n", f.NumSequencers)
		fmt.Fprintf(out, "  routers:         %d\n", numRouters)
		fmt.Fprintf(out, "  cache line size: %d\n", f.CacheLineSize)

		ranges, _, err := reader.Query(ctx, "addr_ranges",
			datarecording.QueryParams{
				Where:   "Fabric = ?",
				Args:    []any{f.ID},
				OrderBy: "Directory",
			})
		if err != nil {
			return err
		}

		for _, r := range ranges {
			ar := r.(*addrRangeRow)
			fmt.Fprintf(out, "  %s: %s -> %s\n", ar.Directory, ar.Range,
				ar.MemPort)
		}
	}

	return nil
}
