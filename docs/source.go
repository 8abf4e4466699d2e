package docs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/logger"
)

// Source provides documentation pages by command name
type Source interface {
	// Commands lists the documented command names
	Commands(ctx context.Context) ([]string, error)
	// Page returns the raw HTML for command; found is false when the
	// command has no page
	Page(ctx context.Context, command string) (html string, found bool, err error)
}

// IndexSource reads pages listed on the online index through a Fetcher
type IndexSource struct {
	fetcher   *Fetcher
	urls      URLBuilder
	indexPage string
	log       *zap.SugaredLogger

	mu    sync.Mutex
	index map[string]string
}

// NewIndexSource creates a source backed by the index page of the documentation
func NewIndexSource(fetcher *Fetcher, urls URLBuilder, indexPage string) *IndexSource {
	return &IndexSource{
		fetcher:   fetcher,
		urls:      urls,
		indexPage: indexPage,
		log:       logger.ComponentLogger("docs.index"),
	}
}

func (s *IndexSource) load(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index != nil {
		return s.index, nil
	}

	indexURL := s.urls.PageURL(s.indexPage)
	body, err := s.fetcher.Fetch(ctx, indexURL)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "failed to load documentation index"),
			"check docs.base_url and docs.version, or point docs.dir at local pages")
	}
	entries, err := ParseIndex(strings.NewReader(body), s.urls)
	if err != nil {
		return nil, err
	}

	index := make(map[string]string, len(entries))
	for _, e := range entries {
		index[e.Command] = e.URL
	}
	s.log.Infow("Loaded documentation index", logger.FieldURL, indexURL, logger.FieldCount, len(index))
	s.index = index
	return index, nil
}

// Commands lists the commands linked from the index, sorted
func (s *IndexSource) Commands(ctx context.Context) ([]string, error) {
	index, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Page fetches the page linked for command
func (s *IndexSource) Page(ctx context.Context, command string) (string, bool, error) {
	index, err := s.load(ctx)
	if err != nil {
		return "", false, err
	}
	url, ok := index[command]
	if !ok {
		return "", false, nil
	}

	body, err := s.fetcher.Fetch(ctx, url)
	if errors.IsNotFoundError(err) {
		s.log.Warnw("Indexed page missing", logger.FieldCommand, command, logger.FieldURL, url)
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "command %s", command)
	}
	return body, true, nil
}

// DirSource reads <command>.html files from a local directory
type DirSource struct {
	dir string
}

// NewDirSource creates a source over an offline copy of the documentation
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Commands lists the page file names without extension, sorted.
// The index page itself is not a command.
func (s *DirSource) Commands(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read documentation directory %s", s.dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".html") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if strings.HasPrefix(name, "index") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Page reads <dir>/<command>.html
func (s *DirSource) Page(ctx context.Context, command string) (string, bool, error) {
	if command == "" || strings.ContainsAny(command, `/\`) {
		return "", false, nil
	}
	data, err := os.ReadFile(filepath.Join(s.dir, command+".html"))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read page for %s", command)
	}
	return string(data), true, nil
}
