package main

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/swissgeo/internal/fetcher"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the configured registers into the data directory",
	Long:  "Downloads data.political.url and data.postal.url (http, https or ftp) into data.dir. Single-file ZIP archives are extracted next to the download.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("fetch"); err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
			return eris.Wrapf(err, "fetch: create %s", cfg.Data.Dir)
		}

		f := newFetcher()
		g, ctx := errgroup.WithContext(cmd.Context())
		for name, rawURL := range map[string]string{
			"political": cfg.Data.Political.URL,
			"postal":    cfg.Data.Postal.URL,
		} {
			name, rawURL := name, rawURL
			g.Go(func() error {
				return fetchSource(ctx, f, name, rawURL, cfg.Data.Dir)
			})
		}
		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

// newFetcher builds the scheme-dispatching fetcher from config.
func newFetcher() *fetcher.Mux {
	timeout := time.Duration(cfg.Fetch.TimeoutSecs) * time.Second
	return fetcher.NewMux(
		fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:  cfg.Fetch.UserAgent,
			Timeout:    timeout,
			MaxRetries: cfg.Fetch.MaxRetries,
			RatePerSec: cfg.Fetch.RatePerSec,
		}),
		fetcher.NewFTPFetcher(fetcher.FTPOptions{Timeout: timeout}),
	)
}

// fetchSource downloads one register into dir, extracting it when it is a
// ZIP archive.
func fetchSource(ctx context.Context, f fetcher.Fetcher, name, rawURL, dir string) error {
	dest, err := downloadPath(rawURL, dir)
	if err != nil {
		return eris.Wrapf(err, "fetch: %s", name)
	}

	start := time.Now()
	n, err := f.DownloadToFile(ctx, rawURL, dest)
	if err != nil {
		return eris.Wrapf(err, "fetch: %s", name)
	}
	zap.L().Info("downloaded register",
		zap.String("source", name),
		zap.String("url", rawURL),
		zap.String("path", dest),
		zap.Int64("bytes", n),
		zap.Duration("elapsed", time.Since(start)),
	)

	if !strings.EqualFold(filepath.Ext(dest), ".zip") {
		return nil
	}
	extracted, err := fetcher.ExtractZIPSingle(dest, dir)
	if err != nil {
		return eris.Wrapf(err, "fetch: extract %s", name)
	}
	zap.L().Info("extracted register", zap.String("source", name), zap.String("path", extracted))
	return nil
}

// downloadPath names the local file for rawURL after the last path segment.
func downloadPath(rawURL, dir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", eris.Wrap(err, "parse url")
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return "", eris.Errorf("url %q has no file name", rawURL)
	}
	return filepath.Join(dir, base), nil
}
