package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bigbrotr/sitenav/internal/contentindex"
	"github.com/bigbrotr/sitenav/internal/db"
	"github.com/bigbrotr/sitenav/pkg/navconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var errNoContentSource = errors.New("a content source is required: pass --content, --index, or select a site with contentDir or index")

// sourceFlags are the flags that locate a site input and the content
// collection its slugs resolve against.
type sourceFlags struct {
	file    string
	content string
	index   string
	drafts  bool
}

func (f *sourceFlags) register(cmd *cobra.Command, withFile bool) {
	f.bind(cmd.Flags(), withFile)
	cmd.MarkFlagsMutuallyExclusive("content", "index")
}

func (f *sourceFlags) bind(fs *pflag.FlagSet, withFile bool) {
	if withFile {
		fs.StringVarP(&f.file, "file", "f", "", "Site input file (.yaml, .yml, .json, .jsonc)")
	}
	fs.StringVar(&f.content, "content", "", "Content directory to scan for documents")
	fs.StringVar(&f.index, "index", "", "Content index database written by `sitenav index sync`")
	fs.BoolVar(&f.drafts, "drafts", false, "Treat draft documents as resolvable")
}

// resolvedSource is a sourceFlags with site defaults applied.
type resolvedSource struct {
	File    string
	Content string
	Index   string
	Drafts  bool
	Icons   []string
	Site    string
}

// resolve fills unset flags from the selected workspace site. Explicit
// flags always win; --content and --index replace each other.
func (f *sourceFlags) resolve(cmd *cobra.Command, rt *commandRuntime) (resolvedSource, error) {
	out := resolvedSource{
		File:    strings.TrimSpace(f.file),
		Content: strings.TrimSpace(f.content),
		Index:   strings.TrimSpace(f.index),
		Drafts:  f.drafts,
	}

	site, ok, err := rt.site()
	if err != nil {
		return resolvedSource{}, err
	}
	if !ok {
		return out, nil
	}
	out.Site = site.Name
	out.Icons = site.Icons
	if out.File == "" {
		out.File = site.Config
	}
	if out.Content == "" && out.Index == "" {
		out.Content = site.ContentDir
		if out.Content == "" {
			out.Index = site.Index
		}
	}
	if !cmd.Flags().Changed("drafts") {
		out.Drafts = site.IncludeDrafts
	}
	return out, nil
}

func (s resolvedSource) hasContent() bool {
	return s.Content != "" || s.Index != ""
}

// loadIndex scans the content directory or reads the stored index,
// whichever the source names.
func loadIndex(ctx context.Context, rt *commandRuntime, src resolvedSource) (*contentindex.Index, error) {
	switch {
	case src.Content != "":
		docs, err := contentindex.Scan(ctx, src.Content, contentindex.ScanOptions{Logger: rt.Logger})
		if err != nil {
			return nil, err
		}
		return contentindex.NewIndex(docs, src.Drafts), nil
	case src.Index != "":
		database, err := db.OpenIndex(ctx, src.Index)
		if err != nil {
			return nil, err
		}
		defer database.Close()
		idx, err := contentindex.NewStore(database, rt.Logger).Load(ctx, src.Drafts)
		if errors.Is(err, db.ErrNoIndexRun) {
			return nil, fmt.Errorf("content index %s is empty: run `sitenav index sync` first", src.Index)
		}
		return idx, err
	default:
		return nil, errNoContentSource
	}
}

func (s resolvedSource) builderOptions(rt *commandRuntime) []navconfig.Option {
	return []navconfig.Option{navconfig.WithIcons(s.Icons...), navconfig.WithLogger(rt.Logger)}
}

func requireFile(cmd *cobra.Command, src resolvedSource) error {
	if src.File != "" {
		return nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	return fmt.Errorf("required flag(s) \"file\" not set (or select a site with --site)")
}
