// Command hostsim plays the controller host for local development.
//
// Without arguments it streams the demo state. With --frames it plays the
// given file, one frame per line, to every client:
//
//	hostsim --frames scenario.txt --close
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"go-surface/debug"
	"go-surface/hostsim"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	var (
		addr       string
		interval   time.Duration
		framesFile string
		closeAfter bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:          "hostsim",
		Short:        "Serve controller snapshots over a WebSocket",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				debug.EnableWriter(cmd.ErrOrStderr())
				defer debug.Disable()
			}

			srv := hostsim.NewServer(interval)
			if framesFile != "" {
				frames, err := readFrames(framesFile)
				if err != nil {
					return err
				}
				srv = hostsim.NewScenario(closeAfter, frames...)
				srv.Interval = interval
			}

			fmt.Fprintf(cmd.OutOrStdout(), "hostsim on ws://%s\n", addr)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "time between frames")
	cmd.Flags().StringVar(&framesFile, "frames", "", "file with one raw frame per line")
	cmd.Flags().BoolVar(&closeAfter, "close", false, "close the socket after the last frame")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	return cmd
}

// readFrames returns the non-blank lines of path
func readFrames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var frames []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		frames = append(frames, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return frames, nil
}
