package linkcheck

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/config"
	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/logging"
)

// urlRe matches http(s) URLs in plain text.
var urlRe = regexp.MustCompile(`http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(\\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)

// BrokenLink is one unreachable URL occurrence.
type BrokenLink struct {
	File string `json:"file"`
	URL  string `json:"url"`
}

// Report is the outcome of a link-check run. Broken keeps walk order so
// repeat runs list links identically.
type Report struct {
	RunID        string       `json:"run_id"`
	Timestamp    time.Time    `json:"timestamp"`
	FilesChecked int          `json:"files_checked"`
	LinksChecked int          `json:"links_checked"`
	Broken       []BrokenLink `json:"broken_links"`
}

// Text renders the report the way the console expects it.
func (r *Report) Text() string {
	if len(r.Broken) == 0 {
		return "No broken links found!"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d broken links:\n", len(r.Broken))
	for _, link := range r.Broken {
		fmt.Fprintf(&b, "- %s: %s\n", link.File, link.URL)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Checker HEAD-checks every URL found in documentation files. Results are
// informational: a broken link never fails the run.
type Checker struct {
	cfg     config.LinkCheck
	client  *http.Client
	limiter *rate.Limiter
}

func New(cfg config.LinkCheck) *Checker {
	c := &Checker{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c
}

// Run walks Markdown then HTML files under root, extracts their URLs, and
// checks each one. URL checks run concurrently; the report keeps the
// deterministic extraction order.
func (c *Checker) Run(ctx context.Context, root string) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		Timestamp: time.Now(),
		Broken:    []BrokenLink{},
	}
	logging.Logger.Infow("starting link check", "run_id", report.RunID, "root", root)

	files := append(c.collectDocs(root, ".md"), c.collectDocs(root, ".html")...)
	report.FilesChecked = len(files)

	type target struct {
		file string
		url  string
	}
	var targets []target
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			logging.Logger.Warnw("read failed", "file", path, "error", err)
			continue
		}
		for _, url := range ExtractURLs(path, data) {
			targets = append(targets, target{file: path, url: url})
		}
	}
	report.LinksChecked = len(targets)

	broken := make([]bool, len(targets))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency())
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			if c.limiter != nil {
				if err := c.limiter.Wait(gCtx); err != nil {
					broken[i] = true
					return nil
				}
			}
			broken[i] = !c.check(gCtx, t.url)
			return nil
		})
	}
	_ = g.Wait()

	for i, t := range targets {
		if broken[i] {
			report.Broken = append(report.Broken, BrokenLink{File: t.file, URL: t.url})
		}
	}

	logging.Logger.Infow("link check complete",
		"run_id", report.RunID,
		"files", report.FilesChecked,
		"links", report.LinksChecked,
		"broken", len(report.Broken))
	return report, nil
}

func (c *Checker) concurrency() int {
	if c.cfg.Concurrency > 0 {
		return c.cfg.Concurrency
	}
	return 1
}

// check reports whether the URL answered a HEAD request below 400.
// Redirects are followed; any transport error counts as broken.
func (c *Checker) check(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 400
}

// collectDocs returns files with the given extension in lexical walk order,
// skipping any path containing an excluded fragment.
func (c *Checker) collectDocs(root, ext string) []string {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Logger.Warnw("walk error", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ext) {
			return nil
		}
		if c.excluded(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		logging.Logger.Warnw("walk aborted", "root", root, "error", err)
	}
	return files
}

func (c *Checker) excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, fragment := range c.cfg.ExcludeDirs {
		if strings.Contains(slashed, filepath.ToSlash(fragment)) {
			return true
		}
	}
	return false
}

// ExtractURLs pulls http(s) URLs out of a document. Markdown files get an
// AST pass covering link, image, and autolink destinations; the plain-text
// regex then catches bare URLs in any file type. Duplicates within a file
// collapse to one check.
func ExtractURLs(path string, data []byte) []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(u string) {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return
		}
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".md") {
		for _, u := range markdownURLs(data) {
			add(u)
		}
	}
	for _, u := range urlRe.FindAllString(string(data), -1) {
		add(u)
	}
	return urls
}

// markdownURLs collects destination URLs from the Markdown AST.
func markdownURLs(data []byte) []string {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(data))

	var urls []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			urls = append(urls, string(node.Destination))
		case *ast.Image:
			urls = append(urls, string(node.Destination))
		case *ast.AutoLink:
			urls = append(urls, string(node.URL(data)))
		}
		return ast.WalkContinue, nil
	})
	return urls
}
