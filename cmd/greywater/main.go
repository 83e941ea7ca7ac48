// Command greywater sanitizes HTML fragments from files or stdin and
// writes the sanitized markup to stdout. Stripped-content notices are
// logged to stderr.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/greywater/greywater"
)

type options struct {
	configPath string
	quiet      bool
	strictExit bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "greywater [files...]",
		Short: "sanitize untrusted HTML fragments",
		Long: `greywater reads HTML fragments from the given files (or stdin when no
files are named), applies the sanitization policy and writes the
sanitized markup to stdout. Notices about stripped content go to stderr.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "",
		"YAML policy file (defaults to the built-in policy)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false,
		"suppress stripped-content notices")
	cmd.Flags().BoolVar(&opts.strictExit, "strict-exit", false,
		"exit non-zero when any content was stripped")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	policy := greywater.Default()
	if opts.configPath != "" {
		p, err := greywater.LoadPolicyFile(opts.configPath)
		if err != nil {
			return err
		}
		policy = p
	}

	counting := &greywater.CountingSink{}
	sink := greywater.Sink(counting)
	if !opts.quiet {
		logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), nil))
		sink = tee{counting, greywater.SlogSink(logger)}
	}
	ctx := greywater.NewContext(greywater.WithSink(sink))

	if len(args) == 0 {
		if err := sanitizeStream(policy, ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	for _, path := range args {
		if err := sanitizeFile(policy, ctx, path, cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	if opts.strictExit && counting.Len() > 0 {
		return fmt.Errorf("stripped %d piece(s) of content", counting.Len())
	}
	return nil
}

func sanitizeFile(p *greywater.Policy, ctx greywater.ParseContext,
	path string, w io.Writer,
) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return sanitizeStream(p, ctx, f, w)
}

func sanitizeStream(p *greywater.Policy, ctx greywater.ParseContext,
	r io.Reader, w io.Writer,
) error {
	return p.SanitizeReaderToWriter(ctx, r, w)
}

// tee fans a notice out to every sink.
type tee []greywater.Sink

func (t tee) Log(msg string) {
	for _, s := range t {
		s.Log(msg)
	}
}
