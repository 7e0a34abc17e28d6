package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/bjaus/gateway"
)

// maxFrameBytes bounds one line of a replay file. GUILD_CREATE frames for
// large guilds run to several megabytes.
const maxFrameBytes = 16 << 20

// Summary counts what a replay did.
type Summary struct {
	Frames     int
	Dispatched int
	Unmatched  int
	ByKind     map[gateway.Kind]int
}

// tally is a catch-all handler that builds a Summary.
type tally struct {
	mu        sync.Mutex
	byKind    map[gateway.Kind]int
	unmatched int
}

func newTally(r *gateway.Router) *tally {
	t := &tally{byKind: make(map[gateway.Kind]int)}
	r.RegisterAnyFunc(func(c *gateway.Context) error {
		t.mu.Lock()
		t.byKind[c.Kind()]++
		t.mu.Unlock()
		return nil
	})
	r.RegisterUnknownFunc(func(c *gateway.Context) error {
		t.mu.Lock()
		t.unmatched++
		t.mu.Unlock()
		c.Logger().Debug().Msg("no handler for event")
		return nil
	})
	return t
}

// replay dispatches newline-delimited frames read from in, in order. Blank
// lines are skipped. The dispatcher's router must have been passed to
// newTally for ByKind and Unmatched to be filled in.
func replay(ctx context.Context, in io.Reader, d *gateway.Dispatcher, t *tally) (Summary, error) {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxFrameBytes)

	var s Summary
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		s.Frames++
		if d.DispatchRaw(ctx, line) {
			s.Dispatched++
		}
	}
	if err := sc.Err(); err != nil {
		return s, fmt.Errorf("read frames: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	s.Unmatched = t.unmatched
	s.ByKind = make(map[gateway.Kind]int, len(t.byKind))
	for k, n := range t.byKind {
		s.ByKind[k] = n
	}
	return s, nil
}

func printSummary(w io.Writer, s Summary) {
	kinds := make([]gateway.Kind, 0, len(s.ByKind))
	for k := range s.ByKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	fmt.Fprintf(w, "frames: %d dispatched: %d unmatched: %d\n", s.Frames, s.Dispatched, s.Unmatched)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-40s %d\n", k, s.ByKind[k])
	}
}
