// Copyright 2026 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the marshalconv command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rivaas.dev/marshal/codec"
	"rivaas.dev/marshal/value"
)

// CommandOptions configures the command tree.
type CommandOptions struct {
	Codecs *codec.Registry
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewCommand creates the root "marshalconv" command and its subcommands.
func NewCommand(opts CommandOptions) *cobra.Command {
	if opts.Codecs == nil {
		opts.Codecs = codec.Default()
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	root := &cobra.Command{
		Use:           "marshalconv",
		Short:         "Convert documents between serialization formats",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(opts.Stdin)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	root.AddCommand(newConvertCommand(opts), newFormatsCommand(opts))

	return root
}

func newConvertCommand(opts CommandOptions) *cobra.Command {
	var from, to string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Decode a document in one format and encode it in another",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			return runConvert(opts.Codecs, logger, in, cmd.OutOrStdout(), codec.Type(from), codec.Type(to))
		},
	}
	cmd.Flags().StringVarP(&from, "from", "f", string(codec.TypeJSON), "input format")
	cmd.Flags().StringVarP(&to, "to", "t", string(codec.TypeYAML), "output format")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log conversion steps")

	return cmd
}

func runConvert(codecs *codec.Registry, logger *slog.Logger, in io.Reader, out io.Writer, from, to codec.Type) error {
	dec, err := codecs.Get(from)
	if err != nil {
		return err
	}
	enc, err := codecs.Get(to)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	logger.Debug("input read", "format", from, "bytes", len(data))

	var native any
	if err := dec.Decode(data, &native); err != nil {
		return fmt.Errorf("decode %s: %w", from, err)
	}
	v, err := value.FromNative(native)
	if err != nil {
		return fmt.Errorf("decode %s: %w", from, err)
	}
	logger.Debug("document decoded", "kind", v.Kind().String())

	encoded, err := enc.Encode(value.ToNative(v))
	if err != nil {
		return fmt.Errorf("encode %s: %w", to, err)
	}
	if _, err := out.Write(encoded); err != nil {
		return err
	}
	logger.Debug("output written", "format", to, "bytes", len(encoded))

	return nil
}

func newFormatsCommand(opts CommandOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the available formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := make([]string, 0)
			for _, n := range opts.Codecs.Names() {
				names = append(names, string(n))
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))

			return err
		},
	}
}
