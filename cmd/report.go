package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glbter/portfolio-dashboard/report"
)

func reportCmd() *cobra.Command {
	var (
		raw   bool
		style string
		width int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch quotes once and print the portfolio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(func(ctx context.Context, cfg Config, logger *zap.Logger) error {
				ref, err := newRefresher(cfg, logger)
				if err != nil {
					return err
				}

				snap, err := ref.Refresh(ctx)
				if err != nil {
					return fmt.Errorf("refresh quotes: %w", err)
				}

				out := report.Markdown(snap)
				if !raw {
					if out, err = report.Render(out, style, width); err != nil {
						return err
					}
				}

				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	cmd.Flags().StringVar(&style, "style", "", "glamour style: dark, light, notty... (default: detect)")
	cmd.Flags().IntVarP(&width, "width", "w", 120, "word wrap width")
	return cmd
}
