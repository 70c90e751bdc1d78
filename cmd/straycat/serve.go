// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"straycat-cli/internal/config"
	"straycat-cli/internal/csvstore"
	"straycat-cli/internal/issue"
	"straycat-cli/internal/server"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	serveHost    string
	servePort    int
	serveDataDir string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the cost management pages without Python",
		Long: `Serve a native version of the cost management pages over HTTP, reading and
writing the same CSV data files as the Streamlit app. No Python environment
is needed; this is the fallback when a machine cannot run the app itself.`,
		RunE: runServe,
	}
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen address (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "CSV data directory (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	host := firstNonEmpty(serveHost, cfg.Serve.Host)
	port := servePort
	if port == 0 {
		port = cfg.Serve.Port
	}
	dataDir := firstNonEmpty(serveDataDir, cfg.DataDir)
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(projectDir, dataDir)
	}
	if info, err := os.Stat(dataDir); err != nil || !info.IsDir() {
		printIssue(issue.DataDirNotFoundId)
		return fmt.Errorf("data directory not found: %s", dataDir)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	srv, err := server.New(csvstore.New(dataDir), logger)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	fmt.Println(TitleStyle.Render("straycat serve") +
		SubtitleStyle.Render(" listening on http://"+addr))
	return srv.ListenAndServe(addr)
}
