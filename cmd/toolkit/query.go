// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/olegiv/fiftyfifty-toolkit/internal/library"
	"github.com/olegiv/fiftyfifty-toolkit/internal/logging"
	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
	"github.com/olegiv/fiftyfifty-toolkit/internal/search"
	"github.com/olegiv/fiftyfifty-toolkit/internal/service"
)

// cliApp builds the content stack for a query command. Logs go to stderr
// so they never mix with the command output.
func cliApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if logging.ParseLevel(level) < slog.LevelWarn {
		level = "warn"
	}
	logger := slog.New(logging.NewRequestHandler(slog.NewTextHandler(cmd.ErrOrStderr(),
		&slog.HandlerOptions{Level: logging.ParseLevel(level)})))
	return newApp(cfg, logger)
}

func parseLocaleFlag(s string) (model.Locale, error) {
	locale, ok := model.ParseLocale(strings.ToLower(s))
	if !ok {
		return "", fmt.Errorf("unsupported language %q (want en or ar)", s)
	}
	return locale, nil
}

func newSearchCmd() *cobra.Command {
	var (
		lang   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search phases and modules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locale, err := parseLocaleFlag(lang)
			if err != nil {
				return err
			}
			a, err := cliApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			query := strings.Join(args, " ")
			results, err := a.content.Search(cmd.Context(), locale, query)
			if err != nil {
				return fmt.Errorf("searching: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if results == nil {
					results = []search.Result{}
				}
				return writeJSON(out, results)
			}
			return printSearchResults(out, locale, results)
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", string(model.DefaultLocale), "content language: en|ar")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

func printSearchResults(out io.Writer, locale model.Locale, results []search.Result) error {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(out, "no results")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TYPE\tTITLE\tPATH\tSCORE")
	for _, r := range results {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%.3f\n", r.Item.Kind, r.Item.Title, resultPath(locale, r.Item), r.Score)
	}
	return tw.Flush()
}

func resultPath(locale model.Locale, it search.Item) string {
	if it.Kind == search.KindModule {
		return service.ModulePath(locale, it.PhaseSlug, it.Slug)
	}
	return service.PhasePath(locale, it.Slug)
}

func newResourcesCmd() *cobra.Command {
	var (
		lang     string
		fileType string
		groupBy  string
		query    string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "List downloadable resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			locale, err := parseLocaleFlag(lang)
			if err != nil {
				return err
			}
			a, err := cliApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			params := library.ParamsFromQuery(url.Values{
				"type":  {fileType},
				"group": {groupBy},
				"q":     {query},
			})
			view, err := a.content.Library(cmd.Context(), locale, params)
			if err != nil {
				return fmt.Errorf("loading resources: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, view.Groups)
			}
			return printLibrary(out, a.repo.MediaURL, view)
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", string(model.DefaultLocale), "content language: en|ar")
	cmd.Flags().StringVarP(&fileType, "type", "t", library.TypeAll, "file type: all|PDF|Excel|Word|Other")
	cmd.Flags().StringVarP(&groupBy, "group", "g", string(library.GroupByPhase), "grouping: phase|module|type")
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by title, description, module or phase")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print groups as JSON")
	return cmd
}

func printLibrary(out io.Writer, mediaURL func(string) string, view *library.View) error {
	_, _ = fmt.Fprintf(out, "%d of %d resources\n", view.FilteredCount(), view.TotalCount())

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, g := range view.Groups {
		_, _ = fmt.Fprintf(tw, "\n%s\n", g.Label)
		for _, e := range g.Entries {
			_, _ = fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", e.Title, e.FileType, e.FileSize, mediaURL(e.FileURL))
		}
	}
	return tw.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
