package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-surface/config"
	"go-surface/debug"
	"go-surface/endpoint"
	"go-surface/midi"
	"go-surface/mirror"
	"go-surface/statesync"
	"go-surface/theme"
	"go-surface/tui"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

var version = "dev" // set by the linker

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// Cobra has already printed the error
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "go-surface",
		Short: "Terminal mirror of a controller surface",
		Long: `go-surface connects to the controller host over a WebSocket and renders
every state snapshot it sends: pads, knobs, tracks, devices and the browser.
Pads are also painted onto a connected Launchpad unless --no-midi is set.

Development mode talks to ws://localhost:8080. Setting --host switches to
production mode and derives the endpoint from that page host.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cfgFile)
		},
	}
	cmd.Version = version

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/go-surface/config.yaml or ./config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "write a debug log to ~/.config/go-surface/debug.log")
	cmd.Flags().Bool("dev", false, "connect to the local development host")
	cmd.Flags().String("host", "", "page host, e.g. studio.local:3000 (implies production mode)")
	cmd.Flags().String("palette", "", "GPL palette used for value colors")
	cmd.Flags().Bool("no-midi", false, "don't paint pads onto a Launchpad")

	cmd.AddCommand(newHostsimCmd(&cfgFile))
	cmd.AddCommand(newPortsCmd(&cfgFile))

	return cmd
}

// run connects once and drives the TUI until the user quits
func run(ctx context.Context, cfg *config.Config, cfgFile string) error {
	if cfg.Debug {
		if err := debug.Enable(); err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		defer debug.Disable()
	}

	th, err := cfg.LoadTheme()
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}

	u, err := endpoint.Resolve(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := statesync.Connect(ctx, statesync.Options{URL: u.String()})
	if err != nil {
		return fmt.Errorf("connect to %s: %w", u, err)
	}
	defer ch.Close()
	go ch.Run()

	mgr := mirror.NewManager(th, cfg.MIDI.FPS)
	mgr.Attach(ch)

	mirrorDone := make(chan struct{})
	go func() {
		defer close(mirrorDone)
		mgr.Run(ctx)
	}()

	var wg sync.WaitGroup

	if cfg.MIDI.Mirror {
		// Create MIDI device manager (handles hot-plug)
		dm := midi.NewDeviceManager(cfg.AutoConnectPorts()...)
		wg.Add(2)
		go func() {
			defer wg.Done()
			dm.Run(ctx)
		}()
		go func() {
			defer wg.Done()
			mgr.WatchDevices(ctx, dm.Events())
		}()
	}

	m := tui.NewModel(mgr, th, ch.URL())
	m.SaveTheme = func(t theme.Theme) error {
		cfg.Theme = t
		if cfgFile != "" {
			return cfg.SaveTo(cfgFile)
		}
		return cfg.Save()
	}

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	// Teardown: closing the socket ends the update stream, the mirror
	// paints the pads dark, then the device manager lets go of the ports
	ch.Close()
	<-mirrorDone
	cancel()
	wg.Wait()

	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
