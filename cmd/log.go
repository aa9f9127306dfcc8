package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worklog/internal/render"
)

// pagerThreshold is the number of sessions above which output is paged.
const pagerThreshold = 20

var (
	logNumber int
	logAll    bool
	logFormat string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List the most recent work sessions",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

func init() {
	logCmd.Flags().IntVarP(&logNumber, "number", "n", 10, "Number of sessions to show; the pager is used if n > 20")
	logCmd.Flags().BoolVarP(&logAll, "all", "a", false, "Show all sessions in the pager")
	logCmd.Flags().StringVar(&logFormat, "format", "text", "Output format: text, json, yaml")
}

func runLog(cmd *cobra.Command, args []string) error {
	if logNumber <= 0 {
		return errors.New("--number must be a positive integer")
	}
	format, err := render.ParseFormat(logFormat)
	if err != nil {
		return err
	}

	limit := logNumber
	if logAll {
		limit = 0
	}
	sessions, err := engine.Log(limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format != render.Text {
		return render.Encode(out, format, render.NewSessionViews(sessions, engine.Now()))
	}

	var buf bytes.Buffer
	if err := render.SessionsText(&buf, sessions, engine.Now()); err != nil {
		return err
	}
	if (logAll || logNumber > pagerThreshold) && isTerminal(out) {
		return page(buf.Bytes())
	}
	_, err = io.Copy(out, &buf)
	return err
}

// isTerminal reports whether w is stdout attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f != os.Stdout {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// pagerCommand returns the command line of $PAGER, or less.
func pagerCommand() []string {
	if fields := strings.Fields(os.Getenv("PAGER")); len(fields) > 0 {
		return fields
	}
	return []string{"less", "-FRX"}
}

// page pipes data through the pager, falling back to plain stdout when the
// pager cannot be started.
func page(data []byte) error {
	argv := pagerCommand()
	pager := exec.Command(argv[0], argv[1:]...)
	pager.Stdin = bytes.NewReader(data)
	pager.Stdout = os.Stdout
	pager.Stderr = os.Stderr
	if err := pager.Start(); err != nil {
		logger.Debug("pager unavailable, writing directly", "pager", argv[0], "err", err)
		_, err = os.Stdout.Write(data)
		return err
	}
	return pager.Wait()
}
