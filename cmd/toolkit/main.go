// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command toolkit serves the FiftyFifty toolkit site and offers content
// queries from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/olegiv/fiftyfifty-toolkit/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "toolkit",
		Short: "FiftyFifty toolkit site",
		Long: `Serves the bilingual FiftyFifty toolkit backed by a Strapi CMS.

Environment Variables:
  CMS_BASE_URL          Strapi base URL (default: http://localhost:1337)
  CMS_API_TOKEN         Strapi API token
  CMS_OFFLINE           Serve bundled sample content (default: false)
  CMS_SAMPLE_DIR        Directory overriding the sample content (optional)
  SITE_URL              Public site URL used in links and the sitemap
  REVALIDATE_SECRET     Secret for POST /api/revalidate
  GA_MEASUREMENT_ID     Google Analytics 4 measurement ID (optional)
  TOOLKIT_ENV           development|production (default: development)
  TOOLKIT_SERVER_PORT   Server port (default: 8080)
  TOOLKIT_REDIS_URL     Redis URL for shared caching (optional)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newResourcesCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "toolkit %s\n", version.Get())
			return nil
		},
	}
}
