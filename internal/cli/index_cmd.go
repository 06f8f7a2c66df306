package cli

import (
	"fmt"
	"strings"

	"github.com/bigbrotr/sitenav/internal/contentindex"
	"github.com/bigbrotr/sitenav/internal/db"
	"github.com/bigbrotr/sitenav/internal/output"
	"github.com/spf13/cobra"
)

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the content index slugs are resolved against",
	}
	cmd.AddCommand(newIndexSyncCmd())
	cmd.AddCommand(newIndexListCmd())
	return cmd
}

type syncReport struct {
	Run       string `json:"run" yaml:"run"`
	Content   string `json:"content" yaml:"content"`
	Database  string `json:"database" yaml:"database"`
	Documents int    `json:"documents" yaml:"documents"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

func newIndexSyncCmd() *cobra.Command {
	var content string
	var dbPath string
	var outputMode string

	cmd := &cobra.Command{
		Use:   "sync --content <dir> --db <path>",
		Short: "Scan the content directory and store its documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}
			content, dbPath = strings.TrimSpace(content), strings.TrimSpace(dbPath)
			if content == "" || dbPath == "" {
				site, ok, err := rt.site()
				if err != nil {
					return err
				}
				if ok {
					if content == "" {
						content = site.ContentDir
					}
					if dbPath == "" {
						dbPath = site.Index
					}
				}
			}
			if content == "" || dbPath == "" {
				fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return fmt.Errorf("required flag(s) \"content\" and \"db\" not set")
			}
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return err
			}

			docs, err := contentindex.Scan(cmd.Context(), content, contentindex.ScanOptions{Logger: rt.Logger})
			if err != nil {
				return err
			}
			database, err := db.OpenIndex(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer database.Close()

			run, err := contentindex.NewStore(database, rt.Logger).Sync(cmd.Context(), content, docs)
			if err != nil {
				return err
			}

			report := syncReport{Run: run.ID, Content: content, Database: dbPath, Documents: run.DocumentCount, CreatedAt: run.CreatedAt}
			if format.Structured() {
				return output.WriteStructured(cmd.OutOrStdout(), format, report)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d document(s) from %s into %s (run %s)\n", report.Documents, content, dbPath, run.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Content directory to scan")
	cmd.Flags().StringVar(&dbPath, "db", "", "Index database path")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "table", "Output format (table|json|yaml)")
	return cmd
}

func newIndexListCmd() *cobra.Command {
	var src sourceFlags
	var outputMode string

	cmd := &cobra.Command{
		Use:   "list [--content <dir> | --index <path>]",
		Short: "List resolvable content documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}
			resolved, err := src.resolve(cmd, rt)
			if err != nil {
				return err
			}
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return err
			}
			idx, err := loadIndex(cmd.Context(), rt, resolved)
			if err != nil {
				return err
			}

			docs := idx.Documents()
			if format.Structured() {
				return output.WriteStructured(cmd.OutOrStdout(), format, docs)
			}
			rows := make([][]string, 0, len(docs))
			for _, doc := range docs {
				rows = append(rows, []string{doc.Slug, doc.Title, doc.Path, fmt.Sprint(doc.Draft), shortHash(doc.Hash)})
			}
			return output.WriteTable(cmd.OutOrStdout(), []string{"SLUG", "TITLE", "PATH", "DRAFT", "HASH"}, rows)
		},
	}

	src.register(cmd, false)
	cmd.Flags().StringVarP(&outputMode, "output", "o", "table", "Output format (table|json|yaml)")
	return cmd
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
