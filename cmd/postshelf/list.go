package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/eringen/postshelf/catalog"
)

var listJSON bool

var (
	idStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	orderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(5).Align(lipgloss.Right)
	authorStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Scan the posts directory and print the catalog",
	Long: `Scan the posts directory once and print every valid post in display
order. Directories with missing or malformed metadata are reported on stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		s := catalog.NewDirScanner(postsDir)
		s.Logger = writerLogger{w: cmd.ErrOrStderr()}
		posts, err := s.Scan()
		if err != nil {
			return err
		}
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(posts.Metadata())
		}
		for _, r := range posts.Sorted() {
			fmt.Fprintf(out, "%s %s  %s %s\n",
				orderStyle.Render(fmt.Sprint(r.Meta.Ordering)),
				idStyle.Render(r.Meta.ID),
				r.Meta.Title,
				authorStyle.Render("by "+r.Meta.Author),
			)
		}
		fmt.Fprintf(out, "%d posts\n", len(posts))
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print metadata as JSON keyed by id")
}

// writerLogger prints scan warnings as styled lines.
type writerLogger struct {
	w io.Writer
}

func (l writerLogger) Warnf(format string, args ...interface{}) {
	fmt.Fprintln(l.w, warnStyle.Render("warn: "+fmt.Sprintf(format, args...)))
}

func (l writerLogger) Errorf(format string, args ...interface{}) {
	fmt.Fprintln(l.w, warnStyle.Render("error: "+fmt.Sprintf(format, args...)))
}
