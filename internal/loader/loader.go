// Package loader reads the consolidated IRVE CSV into an in-memory frame,
// from a local file or straight from the data.gouv.fr download URL. All
// columns load as strings; type coercion belongs to the cleaning pipeline.
package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Loader reads a raw IRVE table from a path or URL. A read failure is
// terminal for the session: callers surface it and stop, they never proceed
// with partial data.
type Loader struct {
	client *http.Client
	logger *slog.Logger
}

// New creates a Loader. The timeout bounds remote fetches only.
func New(timeout time.Duration, logger *slog.Logger) *Loader {
	return &Loader{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Load reads the CSV at source, which is treated as a URL when it carries an
// http or https scheme and as a local path otherwise.
func (l *Loader) Load(ctx context.Context, source string) (dataframe.DataFrame, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.loadRemote(ctx, source)
	}
	return l.loadLocal(source)
}

func (l *Loader) loadLocal(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	l.logger.Info("loading dataset", "path", path)
	return readFrame(f)
}

func (l *Loader) loadRemote(ctx context.Context, url string) (dataframe.DataFrame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("build dataset request: %w", err)
	}

	l.logger.Info("fetching dataset", "url", url)
	resp, err := l.client.Do(req)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return dataframe.DataFrame{}, fmt.Errorf("fetch dataset: unexpected status %s", resp.Status)
	}
	return readFrame(resp.Body)
}

func readFrame(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse dataset csv: %w", df.Err)
	}
	return df, nil
}
