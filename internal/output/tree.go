package output

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/bigbrotr/sitenav/pkg/model"
)

// WriteTree renders a site configuration the way the sidebar reads:
// metadata first, then each group with its items indented beneath it.
func WriteTree(w io.Writer, cfg model.SiteConfig) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Title:\t%s\n", cfg.Metadata.Title)
	fmt.Fprintf(tw, "Description:\t%s\n", OrNone(cfg.Metadata.Description))
	if len(cfg.Metadata.Social) == 0 {
		fmt.Fprintf(tw, "Social:\t%s\n", OrNone(""))
	} else {
		fmt.Fprintln(tw, "Social:")
		for _, link := range cfg.Metadata.Social {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", link.Icon, link.Label, link.Href)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Sidebar: %d group(s), %d item(s)\n", len(cfg.Nav), cfg.Nav.ItemCount()); err != nil {
		return err
	}
	for _, group := range cfg.Nav {
		marker := "v"
		if group.Collapsed {
			marker = ">"
		}
		if _, err := fmt.Fprintf(w, "  %s %s\n", marker, group.Label); err != nil {
			return err
		}
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for i, item := range group.Items {
			branch := "|-"
			if i == len(group.Items)-1 {
				branch = "`-"
			}
			fmt.Fprintf(tw, "    %s %s\t%s\n", branch, item.Label, item.Slug)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// SidebarRows flattens a nav tree into GROUP, ITEM, SLUG, COLLAPSED rows.
func SidebarRows(nav model.NavTree) [][]string {
	rows := make([][]string, 0, nav.ItemCount())
	for _, group := range nav {
		for _, item := range group.Items {
			rows = append(rows, []string{group.Label, item.Label, item.Slug, strconv.FormatBool(group.Collapsed)})
		}
	}
	return rows
}
