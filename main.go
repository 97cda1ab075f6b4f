package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/briangreenhill/recogate/cache"
	"github.com/briangreenhill/recogate/internal/classify"
	"github.com/briangreenhill/recogate/internal/config"
	"github.com/briangreenhill/recogate/internal/normalize"
	"github.com/briangreenhill/recogate/internal/query"
	"github.com/briangreenhill/recogate/internal/recommend"
	"github.com/briangreenhill/recogate/tmdb"
)

const version = "v0.1.0"

func main() {
	if err := runCLI(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCLI(args []string, out io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "recogate",
		Short:         "Recommendation query gateway",
		Long:          "recogate classifies free-text queries and serves movie, book, product and blog recommendations.\nRun cmd/api for the HTTP server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newClassifyCmd(), newSearchCmd(), newTrendingCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "recogate %s\n", version)
		},
	}
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [query]",
		Short: "Show how a query is normalized, filtered and classified",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			raw := strings.Join(args, " ")
			normalized := query.Normalize(raw)
			first, _ := classify.FirstMatch{}.Classify(normalized)

			count := "none"
			if c, ok := (classify.MaxCount{}).Classify(normalized); ok {
				count = c.String()
			}
			genre := "none"
			if g, ok := classify.DetectGenre(normalized); ok {
				genre = g
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "normalized:   %s\n", normalized)
			fmt.Fprintf(w, "cleaned:      %s\n", query.Filter(raw))
			fmt.Fprintf(w, "first-match:  %s\n", first)
			fmt.Fprintf(w, "max-count:    %s\n", count)
			fmt.Fprintf(w, "genre:        %s\n", genre)
			fmt.Fprintf(w, "search terms: %s\n", classify.ExtractSearchTerms(raw))
		},
	}
}

func newSearchCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run a recommendation query once, using TMDB when TMDB_API_KEY is set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			client := tmdb.New(cfg.TMDB.APIKey,
				tmdb.WithBaseURL(cfg.TMDB.BaseURL),
				tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
				tmdb.WithTimeout(cfg.TMDB.Timeout),
			)
			svc := recommend.New(client, cache.NewStore())

			res, err := svc.Search(context.Background(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s from %s\n", res.Category, res.Source)
			printItems(cmd.OutOrStdout(), res.Items)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	return cmd
}

func newTrendingCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "List the ten best rated static items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items := recommend.Trending()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			printItems(cmd.OutOrStdout(), items)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	return cmd
}

func printItems(w io.Writer, items []normalize.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no results")
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "%5d  %-8s %-40s %.1f\n", it.ID, it.Type, it.Title, it.Rating)
	}
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
