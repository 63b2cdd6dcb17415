// Package pipeline wires the consume-evaluate-explain-write loop of the
// service: snapshots in, verdicts and guarded answers out.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/explain"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/hypothesis"
	inputredis "github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/input/redis"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/logger"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/metrics"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/risk"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/slots"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// RedisSnapshotPipeline consumes app snapshots from Redis, evaluates them,
// and writes verdicts and answers.
type RedisSnapshotPipeline struct {
	consumer        *inputredis.Consumer
	explainer       *explain.Explainer
	verdictWriter   VerdictWriter
	answerWriter    AnswerWriter
	metrics         *metrics.Metrics
	profileOverride risk.Profile
	dedupe          *lru.Cache[string, struct{}]
	workers         int
	batchSize       int
	flushInterval   time.Duration
}

// Config configures the snapshot pipeline.
type Config struct {
	Consumer        *inputredis.Consumer
	Explainer       *explain.Explainer
	VerdictWriter   VerdictWriter
	AnswerWriter    AnswerWriter
	Metrics         *metrics.Metrics
	ProfileOverride risk.Profile
	DedupeSize      int
	Workers         int
	BatchSize       int
	FlushInterval   time.Duration
}

type workItem struct {
	verdict *models.Verdict
	answers []*models.Answer
}

// NewRedisSnapshotPipeline creates the pipeline. The dedupe cache suppresses
// re-queued snapshots the collector delivers more than once.
func NewRedisSnapshotPipeline(cfg Config) (*RedisSnapshotPipeline, error) {
	if cfg.Metrics == nil {
		return nil, fmt.Errorf("metrics are required")
	}
	if cfg.Explainer == nil {
		return nil, fmt.Errorf("explainer is required")
	}
	dedupeSize := cfg.DedupeSize
	if dedupeSize <= 0 {
		dedupeSize = 4096
	}
	dedupe, err := lru.New[string, struct{}](dedupeSize)
	if err != nil {
		return nil, err
	}

	return &RedisSnapshotPipeline{
		consumer:        cfg.Consumer,
		explainer:       cfg.Explainer,
		verdictWriter:   cfg.VerdictWriter,
		answerWriter:    cfg.AnswerWriter,
		metrics:         cfg.Metrics,
		profileOverride: cfg.ProfileOverride,
		dedupe:          dedupe,
		workers:         cfg.Workers,
		batchSize:       cfg.BatchSize,
		flushInterval:   cfg.FlushInterval,
	}, nil
}

// Run starts the pipeline loop.
func (p *RedisSnapshotPipeline) Run(ctx context.Context) error {
	logger.Infof("Snapshot pipeline started")

	if p.workers <= 0 {
		p.workers = 4
	}
	if p.batchSize <= 0 {
		p.batchSize = 100
	}
	if p.flushInterval <= 0 {
		p.flushInterval = 2 * time.Second
	}

	msgCh := make(chan []byte, p.workers*4)
	workCh := make(chan workItem, p.workers*4)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		p.readLoop(ctx, msgCh)
		close(msgCh)
	}()

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.workerLoop(ctx, msgCh, workCh)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		p.writeLoop(ctx, workCh)
	}()

	<-ctx.Done()
	close(workCh)
	wg.Wait()
	return ctx.Err()
}

// Close releases pipeline resources.
func (p *RedisSnapshotPipeline) Close() error {
	if p.answerWriter != nil {
		if err := p.answerWriter.Close(); err != nil {
			logger.Errorf("Failed to close answer writer: %v", err)
		}
	}
	if p.verdictWriter != nil {
		if err := p.verdictWriter.Close(); err != nil {
			logger.Errorf("Failed to close verdict writer: %v", err)
		}
	}
	if p.consumer != nil {
		return p.consumer.Close()
	}
	return nil
}

func (p *RedisSnapshotPipeline) readLoop(ctx context.Context, out chan<- []byte) {
	for {
		payload, err := p.consumer.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Errorf("Failed to pop snapshot: %v", err)
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if payload == nil {
			continue
		}
		out <- payload
	}
}

func (p *RedisSnapshotPipeline) workerLoop(ctx context.Context, in <-chan []byte, out chan<- workItem) {
	for payload := range in {
		p.metrics.SnapshotsTotal.Inc()

		snap, err := DecodeSnapshot(payload)
		if err != nil {
			p.metrics.SnapshotsInvalid.Inc()
			logger.Warnf("Failed to decode snapshot: %v", err)
			continue
		}

		if _, dup, _ := p.dedupe.PeekOrAdd(snap.DedupeKey(), struct{}{}); dup {
			p.metrics.SnapshotsDuplicate.Inc()
			logger.Debugf("Dropping duplicate snapshot for %s", snap.Package)
			continue
		}

		out <- p.process(ctx, snap)
	}
}

// process runs one snapshot through evaluation, incident resolution, and
// explanation.
func (p *RedisSnapshotPipeline) process(ctx context.Context, snap models.AppSnapshot) workItem {
	verdict := risk.Evaluate(riskInput(snap, p.profileOverride))
	p.metrics.VerdictsTotal.WithLabelValues(string(verdict.Risk)).Inc()

	var answers []*models.Answer
	for _, incident := range hypothesis.ResolveAll(snap.Events) {
		p.metrics.IncidentsTotal.Inc()

		answer, report := p.explainer.Explain(ctx, incident)
		if report.Path == explain.PathTemplate && report.FallbackReason != "" {
			p.metrics.ExplainFallbacks.Inc()
			logger.Debugf("Explanation fell back to template for incident %s: %s", incident.ID, report.FallbackReason)
		}
		if report.SlotOutcome == slots.Rejected {
			p.metrics.SlotRejections.Inc()
		}
		if report.PolicyCorrections > 0 {
			p.metrics.PolicyCorrections.Add(float64(report.PolicyCorrections))
		}
		a := answer
		answers = append(answers, &a)
	}

	return workItem{verdict: &verdict, answers: answers}
}

func (p *RedisSnapshotPipeline) writeLoop(ctx context.Context, in <-chan workItem) {
	ticker := time.NewTicker(p.flushInterval)
	defer ticker.Stop()

	var batchVerdicts []*models.Verdict
	var batchAnswers []*models.Answer

	flush := func() {
		if len(batchVerdicts) > 0 {
			for {
				if err := p.verdictWriter.WriteVerdicts(batchVerdicts); err != nil {
					p.metrics.OutputWriteErrors.Inc()
					logger.Errorf("Failed to write verdicts: %v", err)
					select {
					case <-ctx.Done():
						return
					case <-time.After(1 * time.Second):
					}
					continue
				}
				batchVerdicts = nil
				break
			}
		}
		if p.answerWriter != nil && len(batchAnswers) > 0 {
			for {
				if err := p.answerWriter.WriteAnswers(batchAnswers); err != nil {
					p.metrics.OutputWriteErrors.Inc()
					logger.Errorf("Failed to write answers: %v", err)
					select {
					case <-ctx.Done():
						return
					case <-time.After(1 * time.Second):
					}
					continue
				}
				batchAnswers = nil
				break
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case <-ticker.C:
			flush()
		case item, ok := <-in:
			if !ok {
				flush()
				return
			}
			if item.verdict != nil {
				batchVerdicts = append(batchVerdicts, item.verdict)
			}
			batchAnswers = append(batchAnswers, item.answers...)
			if len(batchVerdicts) >= p.batchSize {
				flush()
			}
		}
	}
}
