package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hepgo/event"
	"github.com/hupe1980/hepgo/hepio"
)

type convertOptions struct {
	format      string
	compression string
	level       int
	maxEvents   int
}

func newConvertCmd(a *app) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Re-encode an event stream",
		Long: `Re-encode an event stream. Format and compression of the output follow
its suffix (.hepmc3, .json, .msgpack plus .gz, .zst or .lz4) unless set
explicitly.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "auto", "Output format (auto, asciiv3, json, msgpack)")
	cmd.Flags().StringVar(&opts.compression, "compression", "auto", "Output compression (auto, none, gzip, zstd, lz4)")
	cmd.Flags().IntVar(&opts.level, "level", 0, "Compression level (0 = codec default)")
	cmd.Flags().IntVar(&opts.maxEvents, "max-events", 0, "Stop after this many events (0 = all)")
	return cmd
}

func (a *app) convert(cmd *cobra.Command, in, out string, opts *convertOptions) error {
	ctx := cmd.Context()

	format, err := hepio.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	compression, err := hepio.ParseCompression(opts.compression)
	if err != nil {
		return err
	}

	common := []hepio.Option{hepio.WithResourceController(a.controller)}
	if a.store != nil {
		common = append(common, hepio.WithBlobStore(a.store))
	}

	r, err := hepio.Open(ctx, in, common...)
	a.logger.LogOpen(ctx, "read", in, err)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	w, err := hepio.Create(ctx, out, append(common,
		hepio.WithFormat(format),
		hepio.WithCompression(compression),
		hepio.WithCompressionLevel(opts.level),
	)...)
	a.logger.LogOpen(ctx, "write", out, err)
	if err != nil {
		return err
	}

	ev := event.New()
	for opts.maxEvents <= 0 || w.Events() < opts.maxEvents {
		if err := ctx.Err(); err != nil {
			_ = w.Close()
			return err
		}
		if err := r.Read(ev); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			_ = w.Close()
			return fmt.Errorf("%s: event %d: %w", in, r.Events()+1, err)
		}
		if err := w.Write(ev); err != nil {
			_ = w.Close()
			return fmt.Errorf("%s: %w", out, err)
		}
	}

	err = w.Close()
	a.logger.LogClose(ctx, "write", w.Events(), w.BytesWritten(), err)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %d events (%s, %d bytes)\n",
		in, out, w.Events(), w.Format(), w.BytesWritten())
	return nil
}
