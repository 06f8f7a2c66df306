// Package contentindex builds the registry of content documents that
// sidebar slugs are checked against.
package contentindex

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/bigbrotr/sitenav/internal/names"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"
)

// Document is one entry of the content collection.
type Document struct {
	Slug  string `json:"slug" yaml:"slug"`
	Path  string `json:"path" yaml:"path"`
	Title string `json:"title" yaml:"title"`
	Draft bool   `json:"draft,omitempty" yaml:"draft,omitempty"`
	Hash  string `json:"hash" yaml:"hash"`
}

type ScanOptions struct {
	// Concurrency bounds parallel file reads. Zero uses GOMAXPROCS.
	Concurrency int
	Logger      *slog.Logger
}

var contentExtensions = map[string]struct{}{
	".md":       {},
	".mdx":      {},
	".mdoc":     {},
	".markdown": {},
}

type frontMatter struct {
	Title string `yaml:"title" json:"title" toml:"title"`
	Slug  string `yaml:"slug" json:"slug" toml:"slug"`
	Draft bool   `yaml:"draft" json:"draft" toml:"draft"`
}

var markdown = goldmark.New()

// Scan reads every content document under dir. Files and directories whose
// names start with "_" or "." are skipped.
func Scan(ctx context.Context, dir string, opts ScanOptions) ([]Document, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve content path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat content directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path is not a directory: %s", root)
	}

	files, err := contentFiles(root)
	if err != nil {
		return nil, err
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	docs := make([]Document, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := readDocument(root, rel)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Slug < docs[j].Slug })
	for i := 1; i < len(docs); i++ {
		if docs[i].Slug == docs[i-1].Slug {
			return nil, fmt.Errorf("duplicate content slug %q in %s and %s", docs[i].Slug, docs[i-1].Path, docs[i].Path)
		}
	}

	logger.Debug("content directory scanned", "dir", root, "documents", len(docs))
	return docs, nil
}

func contentFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == root {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := contentExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content directory %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func readDocument(root, rel string) (Document, error) {
	path := filepath.Join(root, filepath.FromSlash(rel))
	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read content file %s: %w", path, err)
	}

	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(content), &fm)
	if err != nil {
		return Document{}, fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}

	slug := names.NormalizeSlug(fm.Slug)
	if slug == "" {
		slug = names.SlugFromPath(rel)
	}
	if err := names.ValidateSlug(slug); err != nil {
		return Document{}, fmt.Errorf("content file %s: %w", path, err)
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = firstHeading(body)
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	}

	sum := blake3.Sum256(content)
	return Document{
		Slug:  slug,
		Path:  rel,
		Title: title,
		Draft: fm.Draft,
		Hash:  hex.EncodeToString(sum[:]),
	}, nil
}

// firstHeading returns the text of the first level-one heading in body.
func firstHeading(body []byte) string {
	doc := markdown.Parser().Parse(text.NewReader(body))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level != 1 {
			return ast.WalkSkipChildren, nil
		}
		title = strings.TrimSpace(inlineText(heading, body))
		return ast.WalkStop, nil
	})
	return title
}

func inlineText(n ast.Node, source []byte) string {
	var buf strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := child.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(source))
			if v.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
