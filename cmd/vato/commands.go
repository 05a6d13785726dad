package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"vato-reader/internal/content"
	"vato-reader/internal/coverage"
	"vato-reader/internal/navigation"
	"vato-reader/internal/service"
)

// session is what a command works with. close releases it.
type session struct {
	reader service.Reader
	check  func(ctx context.Context, workers int) (*coverage.Report, error)
	close  func()
}

// opener builds a session.
type opener func(ctx context.Context, noBookmark bool) (*session, error)

// errNoLastRead is returned by resume when nothing has been read yet.
var errNoLastRead = errors.New("no last-read position; open a vat with 'vato read' first")

type cli struct {
	open       opener
	noBookmark bool
	secondary  bool
	workers    int
	asJSON     bool
}

func newRootCmd(open opener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:   "vato",
		Short: "Read the Swamini Vato from the terminal",
		Long: `Browse chapters, read one vat at a time and resume where you stopped.

The catalog and documents are located through the same environment
variables as the API server (DATA_DIR, CATALOG_PATH, DOCUMENT_ROOT, ...).`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&c.noBookmark, "no-bookmark", false, "do not read or write the last-read position")

	chaptersCmd := &cobra.Command{
		Use:   "chapters",
		Short: "List all chapters",
		Args:  cobra.NoArgs,
		RunE:  c.runChapters,
	}

	chapterCmd := &cobra.Command{
		Use:   "chapter <id>",
		Short: "List the vats of a chapter in reading order",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runChapter,
	}

	readCmd := &cobra.Command{
		Use:   "read <chapter> <file>",
		Short: "Print one vat with its neighbours",
		Long: `Print one vat. <file> is the document name, for example vat_1_3.html;
the catalog name vat_1_3.txt is accepted too.`,
		Args: cobra.ExactArgs(2),
		RunE: c.runRead,
	}
	readCmd.Flags().BoolVar(&c.secondary, "secondary", false, "show the Gujarati rendering")

	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Print the last vat you opened",
		Args:  cobra.NoArgs,
		RunE:  c.runResume,
	}
	resumeCmd.Flags().BoolVar(&c.secondary, "secondary", false, "show the Gujarati rendering")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the last-read position",
		Args:  cobra.NoArgs,
		RunE:  c.runReset,
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Compare the catalog with the documents on disk",
		Long: `Report catalog records without a document, documents no record points at,
and documents missing one of the two text regions. Exits non-zero when
anything is reported.`,
		Args: cobra.NoArgs,
		RunE: c.runCheck,
	}
	checkCmd.Flags().IntVar(&c.workers, "workers", coverage.DefaultWorkers, "documents read concurrently")
	checkCmd.Flags().BoolVar(&c.asJSON, "json", false, "print the report as JSON")

	root.AddCommand(chaptersCmd, chapterCmd, readCmd, resumeCmd, resetCmd, checkCmd)
	return root
}

func (c *cli) withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := c.open(ctx, c.noBookmark)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(ctx, s)
}

func (c *cli) withReader(cmd *cobra.Command, fn func(ctx context.Context, r service.Reader) error) error {
	return c.withSession(cmd, func(ctx context.Context, s *session) error {
		return fn(ctx, s.reader)
	})
}

func (c *cli) runChapters(cmd *cobra.Command, _ []string) error {
	return c.withReader(cmd, func(ctx context.Context, r service.Reader) error {
		home, err := r.Home(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(home.Chapters) == 0 {
			fmt.Fprintln(out, "No chapters available.")
			return nil
		}
		for _, g := range home.Chapters {
			marker := ""
			if home.LastRead != nil && home.LastRead.ChapterID == strconv.Itoa(g.ID) {
				marker = "  *"
			}
			fmt.Fprintf(out, "Chapter %d  (%d vats)%s\n", g.ID, len(g.Vats), marker)
		}
		if home.LastRead != nil {
			fmt.Fprintf(out, "\nContinue reading: chapter %s, vat %s (%s)\n",
				home.LastRead.ChapterID, home.LastRead.VatNumber, home.LastRead.FileName)
		}
		return nil
	})
}

func (c *cli) runChapter(cmd *cobra.Command, args []string) error {
	chapterID, err := service.ParseChapterID(args[0])
	if err != nil {
		return err
	}
	return c.withReader(cmd, func(ctx context.Context, r service.Reader) error {
		view, err := r.Chapter(ctx, chapterID)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Chapter %d\n", view.ID)
		if len(view.Vats) == 0 {
			fmt.Fprintln(out, "No vats in this chapter.")
			return nil
		}
		for _, v := range view.Vats {
			fmt.Fprintf(out, "%4d. %s", v.SequenceNo, v.DisplayName)
			if v.DisplayNameNative != "" {
				fmt.Fprintf(out, " / %s", v.DisplayNameNative)
			}
			fmt.Fprintf(out, "  [%s]\n", navigation.DocumentName(v.FileName))
		}
		return nil
	})
}

func (c *cli) runRead(cmd *cobra.Command, args []string) error {
	chapterID, err := service.ParseChapterID(args[0])
	if err != nil {
		return err
	}
	return c.withReader(cmd, func(ctx context.Context, r service.Reader) error {
		return c.printVat(ctx, cmd.OutOrStdout(), r, chapterID, navigation.DocumentName(args[1]))
	})
}

func (c *cli) runResume(cmd *cobra.Command, _ []string) error {
	return c.withReader(cmd, func(ctx context.Context, r service.Reader) error {
		pos, ok := r.LastRead(ctx)
		if !ok {
			return errNoLastRead
		}
		chapterID, err := service.ParseChapterID(pos.ChapterID)
		if err != nil {
			return fmt.Errorf("stored position is invalid: %w", err)
		}
		return c.printVat(ctx, cmd.OutOrStdout(), r, chapterID, pos.FileName)
	})
}

func (c *cli) runReset(cmd *cobra.Command, _ []string) error {
	return c.withReader(cmd, func(ctx context.Context, r service.Reader) error {
		r.ResetLastRead(ctx)
		fmt.Fprintln(cmd.OutOrStdout(), "Last-read position cleared.")
		return nil
	})
}

// errCoverage is returned by check when the report is not clean.
var errCoverage = errors.New("catalog and documents disagree")

func (c *cli) runCheck(cmd *cobra.Command, _ []string) error {
	return c.withSession(cmd, func(ctx context.Context, s *session) error {
		report, err := s.check(ctx, c.workers)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if c.asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			printReport(out, report)
		}
		if !report.OK() {
			return errCoverage
		}
		return nil
	})
}

func printReport(out io.Writer, r *coverage.Report) {
	fmt.Fprintf(out, "%d records, %d documents\n", r.Records, r.Documents)
	for _, v := range r.Missing {
		fmt.Fprintf(out, "missing:    chapter %d vat %d %s\n", v.EffectiveChapterID(), v.SequenceNo, navigation.DocumentName(v.FileName))
	}
	for _, d := range r.Orphans {
		fmt.Fprintf(out, "orphan:     %s\n", d.RelPath)
	}
	for _, d := range r.Incomplete {
		fmt.Fprintf(out, "incomplete: %s\n", d.RelPath)
	}
	if r.OK() {
		fmt.Fprintln(out, "OK")
	}
}

func (c *cli) printVat(ctx context.Context, out io.Writer, r service.Reader, chapterID int, documentName string) error {
	script := content.Primary
	if c.secondary {
		script = content.Secondary
	}
	view, err := r.Vat(ctx, service.VatRequest{
		ChapterID:    chapterID,
		DocumentName: documentName,
		Script:       script,
	})
	if err != nil {
		return err
	}

	if rec := view.Record; rec != nil {
		fmt.Fprintf(out, "Chapter %d, Vat %d: %s\n", chapterID, rec.SequenceNo, rec.DisplayName)
		if rec.DisplayNameNative != "" {
			fmt.Fprintln(out, rec.DisplayNameNative)
		}
	} else {
		fmt.Fprintf(out, "Chapter %d: %s\n", chapterID, view.DocumentName)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, view.View.Text())
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Previous: %s\n", describeLink(view.Previous))
	fmt.Fprintf(out, "Next:     %s\n", describeLink(view.Next))
	return nil
}

func describeLink(l *service.Link) string {
	if l == nil {
		return "-"
	}
	return fmt.Sprintf("vato read %d %s", l.ChapterID, l.DocumentName)
}
