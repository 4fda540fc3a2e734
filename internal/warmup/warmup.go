package warmup

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/baditaflorin/go_issue_similarity/internal/ports"
)

// WarmupConfig defines configuration for warming up the engine
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  200,
		Duration:    2 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles warmup of normalizers and pair scorers
type Manager struct {
	logger      ports.Logger
	scorers     []ports.PairScorer
	normalizers []ports.Normalizer
	config      WarmupConfig

	// iterations counts completed warmup iterations across all routines.
	iterations int64
	mu         sync.Mutex
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterScorer adds a pair scorer to be warmed up
func (wm *Manager) RegisterScorer(s ports.PairScorer) {
	wm.scorers = append(wm.scorers, s)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// Iterations returns how many warmup iterations ran to completion.
func (wm *Manager) Iterations() int64 {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	return wm.iterations
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting warmup",
		"components", len(wm.scorers)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	wm.run(warmupCtx, func(j int) {
		title := sampleTitles[j%len(sampleTitles)]
		for _, n := range wm.normalizers {
			_ = n.Normalize(title)
		}
		for _, s := range wm.scorers {
			// Alternate between identical, related and unrelated pairs
			other := sampleTitles[(j*7+3)%len(sampleTitles)]
			_ = s.Score(title, title)
			_ = s.Score(title, other)
		}
	})

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("Warmup completed",
		"duration", time.Since(startTime),
		"iterations", wm.Iterations(),
	)
}

func (wm *Manager) run(ctx context.Context, step func(j int)) {
	if len(wm.scorers) == 0 && len(wm.normalizers) == 0 {
		return
	}

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func(routineID int) {
			defer wg.Done()

			done := int64(0)
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					wm.addIterations(done)
					return
				default:
				}
				step(routineID + j)
				done++
			}
			wm.addIterations(done)
		}(i)
	}

	wg.Wait()
}

func (wm *Manager) addIterations(n int64) {
	wm.mu.Lock()
	wm.iterations += n
	wm.mu.Unlock()
}

// sampleTitles resemble the civic issue titles the engine sees in production.
var sampleTitles = []string{
	"Fix potholes on Main Street",
	"Pothole on Main St near the school",
	"Ban single-use plastic bags",
	"Ban plastic bags in stores",
	"Improve bike lanes downtown",
	"Streetlight out at 5th & Oak",
	"More trash cans in Riverside Park",
	"Crosswalk needed at Elm and 3rd",
	"Graffiti on the library wall",
	"Noise complaints: late-night construction",
	"Extend library hours on weekends",
}
