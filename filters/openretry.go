package filters

import (
	"github.com/cenkalti/backoff"
	"github.com/spf13/afero"
)

// openWithRetry opens path through fs with exponential backoff, the
// same retry shape the teacher uses around a flaky database connect
// (internal/postgis) applied here to a flaky network mount: atom-probe
// datasets are frequently read off NFS shares that bounce ENOENT/EBUSY
// on first touch right after being mounted.
func openWithRetry(fs afero.Fs, path string) (afero.File, error) {
	var fh afero.File
	err := backoff.Retry(func() error {
		f, err := fs.Open(path)
		if err != nil {
			return err
		}
		fh = f
		return nil
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3))
	return fh, err
}
