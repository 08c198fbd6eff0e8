package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tmorel/studyextract/constants"
	"github.com/tmorel/studyextract/internal/common"
)

// ScanArticles lists the source articles under dir in sorted order. A
// missing directory is a pre-flight failure for the run.
func ScanArticles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("articles directory %s: %w", dir, common.ErrNotFound)
		}
		return nil, common.WrapError(err, "read articles directory")
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !constants.IsArticle(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
