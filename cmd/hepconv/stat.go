package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hepgo"
	"github.com/hupe1980/hepgo/codec"
)

// FileStat summarizes one stream.
type FileStat struct {
	Path      string `json:"path"`
	Events    int    `json:"events"`
	Particles int    `json:"particles"`
	Vertices  int    `json:"vertices"`
	Bytes     int64  `json:"bytes"`
}

func newStatCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stat <file>...",
		Short: "Count events, particles and vertices per stream",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.stat(cmd, args)
			if err != nil {
				return err
			}
			if asJSON {
				data, err := codec.Default.Marshal(stats)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tEVENTS\tPARTICLES\tVERTICES\tBYTES")
			for _, s := range stats {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", s.Path, s.Events, s.Particles, s.Vertices, s.Bytes)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

// stat reads the files concurrently, bounded by the worker limit. All files
// share one bridge; each file uses its own event graph.
func (a *app) stat(cmd *cobra.Command, paths []string) ([]FileStat, error) {
	opts := []hepgo.Option{
		hepgo.WithLogger(a.logger),
		hepgo.WithResourceController(a.controller),
	}
	if a.store != nil {
		opts = append(opts, hepgo.WithBlobStore(a.store))
	}
	b := hepgo.New(opts...)

	stats := make([]FileStat, len(paths))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, path := range paths {
		g.Go(func() error {
			if err := a.controller.AcquireWorker(ctx); err != nil {
				return err
			}
			defer a.controller.ReleaseWorker()

			s, err := statFile(b, ctx.Err, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			stats[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func statFile(b *hepgo.Bridge, canceled func() error, path string) (FileStat, error) {
	s := FileStat{Path: path}

	r, err := b.CreateReader(path)
	if err != nil {
		return s, err
	}
	defer func() {
		_ = b.CloseReader(r)
		_ = b.Release(r)
	}()

	ev, err := b.CreateEvent()
	if err != nil {
		return s, err
	}
	defer func() { _ = b.Release(ev) }()

	for {
		if err := canceled(); err != nil {
			return s, err
		}
		ok, err := b.ReadEvent(r, ev)
		if err != nil {
			return s, err
		}
		if !ok {
			s.Bytes, err = b.ReaderBytesRead(r)
			return s, err
		}
		np, err := b.ParticlesSize(ev)
		if err != nil {
			return s, err
		}
		nv, err := b.VerticesSize(ev)
		if err != nil {
			return s, err
		}
		s.Events++
		s.Particles += np
		s.Vertices += nv
	}
}
