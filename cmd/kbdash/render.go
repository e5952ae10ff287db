package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	webhandler "github.com/ericfisherdev/kbdash/internal/adapter/driving/web"
	"github.com/ericfisherdev/kbdash/internal/application"
	"github.com/ericfisherdev/kbdash/internal/config"
)

func newRenderCmd(opts *config.LoadOptions) *cobra.Command {
	var out, page string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run one fetch-and-render pass and write the page",
		Long: "Loads the metrics and changelog once and writes the resulting page.\n" +
			"With a host page (--page or page_path) the widgets are injected into it;\n" +
			"otherwise the built-in layout is written.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWithOptions(*opts)
			if err != nil {
				return err
			}
			if page != "" {
				cfg.PagePath = page
			}

			a, err := newApp(cfg, slog.Default())
			if err != nil {
				return err
			}

			view := a.dashboard.Load(cmd.Context())

			var buf bytes.Buffer
			if err := webhandler.RenderPage(cmd.Context(), &buf, view, a.hostPage); err != nil {
				return fmt.Errorf("rendering page: %w", err)
			}

			if out == "" || out == "-" {
				if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
					return fmt.Errorf("writing page: %w", err)
				}
			} else if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing page: %w", err)
			}

			printSummary(cmd.ErrOrStderr(), view)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&page, "page", "", "host HTML page to inject the widgets into")
	return cmd
}

// printSummary reports the outcome of each widget.
func printSummary(w io.Writer, view application.DashboardView) {
	m := view.Metrics
	if m.CountErr != nil {
		fmt.Fprintf(w, "%s count: %v\n", warnLabel("!"), m.CountErr)
	} else {
		fmt.Fprintf(w, "%s count: %s\n", okLabel("✓"), strconv.Itoa(m.RecordCount))
	}

	if m.VersionErr != nil {
		fmt.Fprintf(w, "%s version: %v\n", warnLabel("!"), m.VersionErr)
	} else {
		fmt.Fprintf(w, "%s version: %s\n", okLabel("✓"), m.Version)
	}

	c := view.Changelog
	switch {
	case c.Err != nil:
		fmt.Fprintf(w, "%s changelog: %v\n", warnLabel("!"), c.Err)
	case c.Empty():
		fmt.Fprintf(w, "%s changelog: no sections found\n", warnLabel("!"))
	case c.HTML != "":
		fmt.Fprintf(w, "%s changelog: rendered\n", okLabel("✓"))
	default:
		fmt.Fprintf(w, "%s changelog: plain text\n", okLabel("✓"))
	}
}
