package main

import (
	"fmt"

	"github.com/danmuck/kicadctl/internal/config"
	"github.com/danmuck/kicadctl/internal/kicad"
	"github.com/danmuck/kicadctl/internal/pcbworld"
	"github.com/spf13/cobra"
)

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of the connected KiCad",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			v := c.Version()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "KiCad %s (%d.%d.%d)\n", v.Full, v.Major, v.Minor, v.Patch)
			fmt.Fprintf(out, "client %s\n", c.ClientName())
			return nil
		},
	}
}

func boardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the open board document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			board, err := c.GetBoard(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Board: %s\n", board.Name)
			if board.ProjectName != nil {
				fmt.Fprintf(out, "Project: %s\n", *board.ProjectName)
			}
			return nil
		},
	}
}

func footprintsCmd(a *app) *cobra.Command {
	var layer string
	cmd := &cobra.Command{
		Use:   "footprints",
		Short: "List the footprints of the open board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			list, err := c.GetFootprints(cmd.Context())
			if err != nil {
				return err
			}
			if list.Skipped > 0 {
				a.logger.Warn().Int("skipped", list.Skipped).Msg("kicadctl.footprints undecodable items")
			}
			fps := list.Footprints
			if layer != "" {
				fps = filterLayer(fps, layer)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d footprints\n", len(fps))
			return writeFootprints(cmd.OutOrStdout(), fps)
		},
	}
	cmd.Flags().StringVar(&layer, "layer", "", "only list footprints on this layer, e.g. F.Cu")
	return cmd
}

func filterLayer(fps []kicad.FootprintData, layer string) []kicad.FootprintData {
	out := make([]kicad.FootprintData, 0, len(fps))
	for _, fp := range fps {
		if fp.Layer == layer {
			out = append(out, fp)
		}
	}
	return out
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize components, layers and mounting holes of the open board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			board, err := c.GetBoard(cmd.Context())
			if err != nil {
				return err
			}
			list, err := c.GetFootprints(cmd.Context())
			if err != nil {
				return err
			}
			world := pcbworld.New(a.logger)
			world.Load(list.Footprints)
			return writeStats(cmd, board.Name, world)
		},
	}
}

func writeStats(cmd *cobra.Command, board string, world *pcbworld.World) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Board: %s\n\n", board)
	if err := writeSummary(out, world.Statistics()); err != nil {
		return err
	}
	if rows := world.Breakdown(); len(rows) > 0 {
		fmt.Fprintln(out)
		if err := writeBreakdown(out, rows); err != nil {
			return err
		}
	}
	if rows := world.Layers(); len(rows) > 0 {
		fmt.Fprintln(out)
		if err := writeLayers(out, rows); err != nil {
			return err
		}
	}
	if holes := world.MountingHoles(); len(holes) > 0 {
		fmt.Fprintln(out)
		return writeMountingHoles(out, holes)
	}
	return nil
}

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Create or check a kicadctl config file",
		Annotations: map[string]string{annotationSkipConfig: "true"},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configArg(a, args)
			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote config template to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	validateCmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Load and validate a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configArg(a, args)
			if _, err := config.Load(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config %s is valid\n", path)
			return nil
		},
	}

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}

const defaultConfigPath = "kicadctl.toml"

func configArg(a *app, args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	if a.opts.configPath != "" {
		return a.opts.configPath
	}
	return defaultConfigPath
}
