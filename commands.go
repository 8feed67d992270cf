package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"go-surface/config"
	"go-surface/debug"
	"go-surface/hostsim"
	"go-surface/midi"
)

// newHostsimCmd serves demo snapshots where development mode expects the host
func newHostsimCmd(cfgFile *string) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "hostsim",
		Short: "Serve demo snapshots on the development port",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd, *cfgFile)
			if err != nil {
				return err
			}
			if cfg.Debug {
				if err := debug.Enable(); err != nil {
					return err
				}
				defer debug.Disable()
			}

			addr := fmt.Sprintf("localhost:%d", cfg.DevPort)
			fmt.Fprintf(cmd.OutOrStdout(), "hostsim on ws://%s (ctrl+c to stop)\n", addr)
			return hostsim.NewServer(interval).ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "time between snapshots")
	return cmd
}

// newPortsCmd lists MIDI outputs and which of them the config knows.
// With --save, Launchpads that are not configured yet are added.
func newPortsCmd(cfgFile *string) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "ports",
		Short: "List MIDI output ports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd, *cfgFile)
			if err != nil {
				return err
			}

			names := midi.PortNames()
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no MIDI output ports (or the scan timed out)")
				return nil
			}

			added := listPorts(cmd.OutOrStdout(), cfg, names, save)
			if added == 0 {
				return nil
			}
			if *cfgFile != "" {
				err = cfg.SaveTo(*cfgFile)
			} else {
				err = cfg.Save()
			}
			if err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d controller(s) to the config\n", added)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "add unconfigured Launchpads to the config")
	return cmd
}

// listPorts prints one line per port: "*" marks a Launchpad, and configured
// ports show their type. With add, unconfigured Launchpads are added to cfg.
// It returns how many were added.
func listPorts(w io.Writer, cfg *config.Config, names []string, add bool) int {
	match := midi.Matcher()
	added := 0
	for i, name := range names {
		mark := " "
		if match(name) {
			mark = "*"
		}

		note := ""
		if c := cfg.FindController(name); c != nil {
			note = fmt.Sprintf("  [%s", c.Type)
			if c.AutoConnect {
				note += ", auto"
			}
			note += "]"
		} else if add && match(name) {
			cfg.AddController(config.ControllerConfig{
				PortName:    name,
				Type:        config.DetectControllerType(name),
				AutoConnect: true,
			})
			note = "  [added]"
			added++
		}

		fmt.Fprintf(w, "%s %d: %s%s\n", mark, i, name, note)
	}
	return added
}
