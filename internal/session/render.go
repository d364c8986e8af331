package session

import (
	"fmt"
	"io"
	"strings"

	"github.com/cratedig/cratedig/pkg/board"
)

// renderBoard writes the full cycle state to w: the solving target, the
// live pool, and every assumption and assertion with provenance. Shown
// between recommendations so the user can watch the sources argue.
func renderBoard(w io.Writer, ws *board.Workspace) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "- - - - - THE BLACKBOARD - - - - -")
	fmt.Fprintln(w, "- Find a recommendation based on:")
	if solving := ws.Solving(); solving != nil {
		fmt.Fprintf(w, "- %s\n", formatCandidate(solving.Candidate))
	}
	fmt.Fprintln(w, "-")
	fmt.Fprintln(w, "- Recommendation Pool:")
	for _, c := range ws.Pool() {
		fmt.Fprintf(w, "- %s\n", formatCandidate(c))
	}
	fmt.Fprintln(w, "-")
	fmt.Fprintln(w, "- Assumptions and Assertions:")
	for _, h := range ws.Hypotheses() {
		fmt.Fprintf(w, "- %s\n", formatHypothesis(h))
	}
	fmt.Fprintln(w, "- - - - - ************** - - - - -")
	fmt.Fprintln(w)
}

// formatCandidate renders one candidate line with a three-tag preview.
func formatCandidate(c *board.Candidate) string {
	return fmt.Sprintf("**** %s, listeners: %d, duration: %d, playcount: %d, tags: %s",
		c.ID(), c.Listeners, c.Duration, c.Playcount, formatTags(c.Tags))
}

func formatTags(tags []string) string {
	if tags == nil {
		return "(not fetched)"
	}
	if len(tags) == 0 {
		return "(none)"
	}
	if len(tags) <= 3 {
		return strings.Join(tags, ", ")
	}
	return fmt.Sprintf("%s (%d more)...", strings.Join(tags[:3], ", "), len(tags)-3)
}

// formatHypothesis renders one log entry, labelled by retractability.
func formatHypothesis(h *board.Hypothesis) string {
	label := "Assertion"
	if h.Retractable {
		label = "Assumption"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "**** %s: %s, %s", label, h.Candidate.ID(), h.Reason)
	if h.Score != nil {
		fmt.Fprintf(&sb, " with score of %.2f", *h.Score)
	}
	fmt.Fprintf(&sb, " : made by %s", h.Source.Name())
	return sb.String()
}
