package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pawmarket/api/internal/metrics"
	"github.com/pawmarket/api/internal/service"
)

// PayoutProcessor runs the scheduled payout cycle:
//   - Rolls uncovered booking credits into pending payouts per caregiver
//   - Marks processing payouts paid
//   - Moves pending payouts past the hold period into processing
type PayoutProcessor struct {
	financeService *service.FinanceService
	interval       time.Duration
	stopCh         chan struct{}
	wg             sync.WaitGroup
	running        bool
	mu             sync.Mutex
}

// NewPayoutProcessor creates a new payout processor job
func NewPayoutProcessor(financeService *service.FinanceService, interval time.Duration) *PayoutProcessor {
	if interval == 0 {
		interval = 1 * time.Hour // Default hourly cycle
	}
	return &PayoutProcessor{
		financeService: financeService,
		interval:       interval,
		stopCh:         make(chan struct{}),
	}
}

// Start begins the payout processor job
func (p *PayoutProcessor) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run()
	slog.Info("payout processor started", "interval", p.interval)
}

// Stop gracefully stops the payout processor job
func (p *PayoutProcessor) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopCh)
	p.wg.Wait()
	slog.Info("payout processor stopped")
}

// run is the main loop
func (p *PayoutProcessor) run() {
	defer p.wg.Done()

	// Run immediately on start (but with a short delay to let services initialize)
	time.Sleep(5 * time.Second)
	p.processCycle()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.processCycle()
		case <-p.stopCh:
			return
		}
	}
}

// processCycle runs one rollup-and-advance payout cycle
func (p *PayoutProcessor) processCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	created, advanced, err := p.financeService.ProcessPayouts(ctx)
	if err != nil {
		slog.Error("payout cycle failed", "error", err)
		return
	}
	if created > 0 || advanced > 0 {
		slog.Info("payout cycle finished", "created", created, "advanced", advanced)
	}
	metrics.AddPayoutsProcessed(advanced)
}

// RunOnce runs the payout cycle once (for testing or manual trigger)
func (p *PayoutProcessor) RunOnce(ctx context.Context) error {
	_, _, err := p.financeService.ProcessPayouts(ctx)
	return err
}

// IsRunning returns whether the processor is running
func (p *PayoutProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
