// Package session runs the interactive recommendation dialogue: prompt for
// a seed track, present one recommendation at a time, and feed the user's
// yes/no verdicts back into the board until the search converges or runs
// dry. It is the presentation collaborator at the edge of the core; all
// reasoning happens in the sources and the arbiter.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cratedig/cratedig/internal/arbiter"
	"github.com/cratedig/cratedig/internal/sources"
	"github.com/cratedig/cratedig/pkg/board"
)

// Session wires the board, sources, and arbiter to an interactive terminal.
// Input and output are injectable so the whole dialogue can be scripted in
// tests.
type Session struct {
	ws       *board.Workspace
	seed     *sources.Seed
	gatherer *sources.Gatherer
	arb      *arbiter.Arbiter

	in          *bufio.Reader
	out         io.Writer
	gatherCount int
}

// New creates a session. gatherCount controls the size of the initial
// gather; zero means arbiter.DefaultGatherCount.
func New(ws *board.Workspace, seed *sources.Seed, gatherer *sources.Gatherer, arb *arbiter.Arbiter, in io.Reader, out io.Writer, gatherCount int) *Session {
	if gatherCount <= 0 {
		gatherCount = arbiter.DefaultGatherCount
	}
	return &Session{
		ws:          ws,
		seed:        seed,
		gatherer:    gatherer,
		arb:         arb,
		in:          bufio.NewReader(in),
		out:         out,
		gatherCount: gatherCount,
	}
}

// Run drives the dialogue to completion. artist and track may be empty, in
// which case the user is prompted for them. Returns an error only for
// failed provider lookups or invariant violations; running out of
// recommendations is a normal ending.
func (s *Session) Run(ctx context.Context, artist, track string) error {
	if artist == "" || track == "" {
		var err error
		artist, track, err = s.promptSeed()
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(s.out, "Working...")
	if _, err := s.seed.Load(ctx, artist, track); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "    ~ getting similar artists and songs...")
	if err := s.gatherer.Gather(ctx, artist, track, s.gatherCount); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "    ~ evaluating...")

	for {
		pick, err := s.arb.Recommend(ctx)
		if err != nil {
			return err
		}
		renderBoard(s.out, s.ws)
		if pick == nil {
			s.announceExhausted()
			return nil
		}

		fb, err := s.presentCandidate(pick)
		if err != nil {
			return err
		}

		if fb == board.FeedbackAccepted {
			fmt.Fprintln(s.out, "Great! Would you like me to make another recommendation?")
			again, err := s.confirm("response (yes/No): ")
			if err != nil {
				return err
			}
			if !again {
				s.announceSessionEnd()
				return nil
			}
			if err := s.arb.Accept(ctx, pick); err != nil {
				return err
			}
			fmt.Fprintln(s.out, "    ~ evaluating...")
		} else {
			fmt.Fprintln(s.out, "Okay, I'll find another recommendation.")
			if err := s.arb.Reject(ctx, pick); err != nil {
				return err
			}
			fmt.Fprintln(s.out, "Working...")
		}
	}
}

// promptSeed asks the user for the reference track.
func (s *Session) promptSeed() (artist, track string, err error) {
	fmt.Fprintln(s.out, "Ask me for a recommendation based on a track of your choosing:")
	artist, err = s.readLine("artist: ")
	if err != nil {
		return "", "", err
	}
	track, err = s.readLine("track: ")
	if err != nil {
		return "", "", err
	}
	if artist == "" || track == "" {
		return "", "", fmt.Errorf("both artist and track are required")
	}
	return artist, track, nil
}

// presentCandidate shows the pick and reads the user's verdict.
func (s *Session) presentCandidate(c *board.Candidate) (board.Feedback, error) {
	fmt.Fprintf(s.out, "Do you like %q by %s?\n", c.Track, c.Artist)
	if c.URL != "" {
		fmt.Fprintf(s.out, "Check it out: %s\n", c.URL)
	}
	yes, err := s.confirm("response (yes/No): ")
	if err != nil {
		return "", err
	}
	if yes {
		return board.FeedbackAccepted, nil
	}
	return board.FeedbackRejected, nil
}

func (s *Session) announceExhausted() {
	fmt.Fprintln(s.out, "Sorry, but there are no more recommendations to be had.")
}

func (s *Session) announceSessionEnd() {
	fmt.Fprintln(s.out, "Okay. Goodbye!")
}

// confirm prompts and reads a yes/no answer. Anything other than "yes"
// (case-insensitive), including end of input, counts as no.
func (s *Session) confirm(prompt string) (bool, error) {
	line, err := s.readLine(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(line, "yes"), nil
}

func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read response: %w", err)
	}
	return strings.TrimSpace(line), nil
}
