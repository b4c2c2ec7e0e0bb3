package stats

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"time"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Download fetches a source document over HTTP.
func Download(url string) (*File, error) {
	f := &File{URL: url, Title: path.Base(url)}
	if err := f.DownloadContent(); err != nil {
		return nil, err
	}
	return f, nil
}

func download(url string) ([]byte, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("could not download '%s': %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("could not download '%s': %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read '%s': %w", url, err)
	}
	return data, nil
}
