// Package headless runs single operations without the TUI, for use
// from scripts. Results go to stdout, diagnostics to stderr.
package headless

import (
	"fmt"
	"io"
	"strings"

	"github.com/jeanpaul/vino/internal/config"
	"github.com/jeanpaul/vino/internal/rating"
)

// Runner executes one operation per invocation against the service.
type Runner struct {
	svc *rating.Service
	cfg *config.Config
	out io.Writer
}

func New(svc *rating.Service, cfg *config.Config, out io.Writer) *Runner {
	return &Runner{svc: svc, cfg: cfg, out: out}
}

// Add records one rating from raw command-line arguments.
func (r *Runner) Add(rawName, rawScore string) error {
	added, err := r.svc.AddRating(rawName, rawScore)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Added: %s — %s/10\n", added.Wine, formatScore(added.Score))
	return nil
}

// List prints every rating, one per line, in stored order.
func (r *Runner) List() error {
	ratings, err := r.svc.ListRatings()
	if err != nil {
		return err
	}
	if len(ratings) == 0 {
		fmt.Fprintln(r.out, "No ratings yet.")
		return nil
	}
	for i, rt := range ratings {
		fmt.Fprintf(r.out, "%d: %s — %s/10 (%s)\n",
			i+1, rt.Wine, formatScore(rt.Score), rt.CreatedAt.Format(r.cfg.TimeFormat))
	}
	return nil
}

// Delete removes the rating at the given 1-based position.
func (r *Runner) Delete(rawIndex string) error {
	sel, err := rating.ParseSelection(rawIndex)
	if err != nil {
		return err
	}
	if sel.Cancelled {
		// No argument means nothing to do in a non-interactive run.
		return r.List()
	}
	removed, err := r.svc.DeleteRating(sel.Index)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Deleted: %s — %s/10\n", removed.Wine, formatScore(removed.Score))
	return nil
}

func formatScore(score float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", score), ".0")
}
