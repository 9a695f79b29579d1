package crunch

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/crunchworks/create2crunch/internal/ctxlog"
	"github.com/crunchworks/create2crunch/internal/reward"
)

// checkMask controls how often workers flush their attempt counter and poll
// for cancellation: every checkMask+1 nonces.
const checkMask = 0xfff

// statusInterval is how often the aggregate search rate is reported.
const statusInterval = time.Second

// Result describes one accepted address: the full salt to hand the factory,
// the address it produces, and the value assigned to it.
type Result struct {
	Salt          string
	Address       string
	Value         string
	LeadingZeroes int
	TotalZeroes   int
}

// String renders the line format of the results file.
func (r Result) String() string {
	return fmt.Sprintf("%s => %s => %s", r.Salt, r.Address, r.Value)
}

// Recorder persists accepted results. Implementations must be safe for
// concurrent use by multiple workers.
type Recorder interface {
	Record(ctx context.Context, res Result) error
}

// Searcher sweeps the 2^48 nonce space with concurrent workers, deriving a
// CREATE2 address per nonce and recording the ones the acceptance criterion
// keeps. Each worker owns a random 6-byte run segment, so workers never
// probe the same salt; the segment is redrawn whenever a worker exhausts its
// nonce range.
type Searcher struct {
	cfg      *Config
	recorder Recorder
	workers  int

	attempts atomic.Uint64
	found    atomic.Uint64
}

// NewSearcher builds a Searcher. workers <= 0 selects one worker per CPU.
func NewSearcher(cfg *Config, rec Recorder, workers int) *Searcher {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Searcher{cfg: cfg, recorder: rec, workers: workers}
}

// Attempts returns the number of addresses derived so far.
func (s *Searcher) Attempts() uint64 { return s.attempts.Load() }

// Found returns the number of results recorded so far.
func (s *Searcher) Found() uint64 { return s.found.Load() }

// Run searches until the context is cancelled or a worker fails. The only
// non-error return path is cancellation, which is reported as ctx.Err().
func (s *Searcher) Run(ctx context.Context) error {
	accept := s.acceptFunc()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.reportStatus(ctx)
		return nil
	})
	for i := 0; i < s.workers; i++ {
		g.Go(func() error {
			return s.worker(ctx, accept)
		})
	}
	return g.Wait()
}

// acceptFunc selects the acceptance criterion for the run. Without a device
// the reward table decides; with one, the leading/total thresholds do, and
// the table only prices the find.
func (s *Searcher) acceptFunc() func(leading, total int) (string, bool) {
	if !s.cfg.ThresholdMode() {
		return reward.Lookup
	}
	minLeading := int(s.cfg.LeadingZeroes)
	minTotal := int(s.cfg.TotalZeroes)
	return func(leading, total int) (string, bool) {
		if leading < minLeading && total < minTotal {
			return "", false
		}
		value, ok := reward.Lookup(leading, total)
		if !ok {
			value = "0"
		}
		return value, true
	}
}

// worker is the core processing loop for a single concurrent worker.
func (s *Searcher) worker(ctx context.Context, accept func(leading, total int) (string, bool)) error {
	logger := ctxlog.FromContext(ctx)

	for {
		var segment [6]byte
		if _, err := rand.Read(segment[:]); err != nil {
			return fmt.Errorf("failed to draw run segment: %w", err)
		}
		d := newDeriver(s.cfg, segment)

		for nonce := uint64(0); nonce <= maxNonce; nonce++ {
			if nonce&checkMask == 0 {
				s.attempts.Add(checkMask + 1)
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
			}

			addr := d.address(nonce)
			leading, total := Score(addr)
			value, ok := accept(leading, total)
			if !ok {
				continue
			}

			salt := d.salt()
			res := Result{
				Salt:          "0x" + hex.EncodeToString(salt[:]),
				Address:       "0x" + hex.EncodeToString(addr[:]),
				Value:         value,
				LeadingZeroes: leading,
				TotalZeroes:   total,
			}
			if err := s.recorder.Record(ctx, res); err != nil {
				return fmt.Errorf("failed to record result: %w", err)
			}
			s.found.Add(1)
			logger.Info("Found efficient address.",
				"salt", res.Salt,
				"address", res.Address,
				"value", res.Value,
				"leading", leading,
				"total", total,
				"key", reward.Key(leading, total),
			)
		}
		logger.Debug("Nonce range exhausted, drawing a new run segment.",
			"segment", hex.EncodeToString(segment[:]))
	}
}

// reportStatus logs the aggregate rate once per interval until cancellation.
func (s *Searcher) reportStatus(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	var last uint64
	lastTime := start
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			attempts := s.attempts.Load()
			rate := float64(attempts-last) / now.Sub(lastTime).Seconds() / 1e6
			last, lastTime = attempts, now

			logger.Info("Searching...",
				"runtime", time.Since(start).Round(time.Second).String(),
				"attempts", humanize.Comma(int64(attempts)),
				"rate_mhs", fmt.Sprintf("%.2f", rate),
				"found", s.found.Load(),
			)
		}
	}
}
