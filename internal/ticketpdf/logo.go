package ticketpdf

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

// defaultLogoPath is used when no PDF_LOGO_PATH is configured.
const defaultLogoPath = "assets/logo.png"

// logoCache resolves the logo asset at most once per process. A missing or
// unreadable file resolves to "absent" and the render proceeds without a
// logo region.
type logoCache struct {
	path   string
	logger *zap.Logger

	once sync.Once
	data []byte
}

func newLogoCache(path string, logger *zap.Logger) *logoCache {
	if path == "" {
		path = defaultLogoPath
	}
	return &logoCache{path: path, logger: logger}
}

// bytes returns the logo PNG, or nil when the asset is absent.
func (l *logoCache) bytes() []byte {
	l.once.Do(func() {
		data, err := os.ReadFile(l.path)
		if err != nil {
			l.logger.Warn("logo not available, rendering without it",
				zap.String("path", l.path), zap.Error(err))
			return
		}
		l.data = data
	})
	return l.data
}
