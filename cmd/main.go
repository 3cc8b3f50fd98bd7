package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yungbote/sotfinder-backend/internal/app"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/export"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sotfinder",
		Short:         "Curriculum generation and caching service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			// .env is optional; real environment variables win.
			_ = godotenv.Load()
			return nil
		},
	}
	root.AddCommand(
		serveCmd(),
		generateCmd(),
		cacheCmd(),
		exportCmd(),
		languagesCmd(),
	)
	return root
}

// withApp builds the service graph for one command and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	a, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.Run(ctx)
			})
		},
	}
}

func generateCmd() *cobra.Command {
	var enrich, refresh bool
	cmd := &cobra.Command{
		Use:   "generate <slug>",
		Short: "Print the curriculum for a subject, generating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				curricula := a.Services.Curricula
				if refresh {
					if _, err := curricula.Refresh(ctx, args[0]); err != nil {
						return err
					}
				}
				get := curricula.Get
				if enrich {
					get = curricula.GetEnriched
				}
				cur, err := get(ctx, args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cur)
			})
		},
	}
	cmd.Flags().BoolVar(&enrich, "enrich", false, "attach learning resources to leaf topics")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass caches and regenerate")
	return cmd
}

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the shared curriculum cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached curricula",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				rows, err := a.Services.Curricula.List(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "SLUG\tCONFIG HASH\tUPDATED")
				for _, r := range rows {
					fmt.Fprintf(w, "%s\t%s\t%s\n", r.LanguageSlug, r.ConfigHash, r.UpdatedAt)
				}
				return w.Flush()
			})
		},
	})
	return cmd
}

func exportCmd() *cobra.Command {
	var label, out string
	cmd := &cobra.Command{
		Use:   "export <slug>",
		Short: "Export a curriculum as Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				cur, err := a.Services.Curricula.Get(ctx, args[0])
				if err != nil {
					return err
				}
				md := export.Markdown(cur, label)
				if out == "" {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), md)
					return err
				}
				return os.WriteFile(out, []byte(md+"\n"), 0o644)
			})
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "subject label for the heading (defaults to the curriculum language)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func languagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List subjects available in the config source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				langs, err := a.Services.Configs.Languages(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "SLUG\tLABEL")
				for _, l := range langs {
					fmt.Fprintf(w, "%s\t%s\n", l.Slug, l.Label)
				}
				return w.Flush()
			})
		},
	}
}
