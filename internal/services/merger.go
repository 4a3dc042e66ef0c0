package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/foxxcyber/menu-board/internal/models"
)

// DefaultMergeConcurrency caps in-flight group merges during a bulk run
const DefaultMergeConcurrency = 6

var (
	ErrEmptyGroup   = errors.New("merge group has no duplicates")
	ErrInvalidGroup = errors.New("merge group variants do not match its members")
)

// MenuWriter is the persistence the merge and assignment runs need
type MenuWriter interface {
	ApplyVariants(ctx context.Context, itemID string, price float64, variants []models.Variant) error
	ArchiveItem(ctx context.Context, itemID string) error
	AssignCategory(ctx context.Context, itemID, categoryID string) error
}

// Merger applies engine output to the store with bounded concurrency.
// Runs are best-effort: completed writes are never rolled back.
type Merger struct {
	store       MenuWriter
	concurrency int
	logger      *zap.Logger
}

// NewMerger creates a merger; concurrency < 1 falls back to the default
func NewMerger(store MenuWriter, concurrency int, logger *zap.Logger) *Merger {
	if concurrency < 1 {
		concurrency = DefaultMergeConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Merger{
		store:       store,
		concurrency: concurrency,
		logger:      logger,
	}
}

// MergeOutcome is what a single group merge wrote before it stopped
type MergeOutcome struct {
	BaseUpdated bool
	Archived    int
}

// Merge turns the group's base item into a variant-carrying item and archives
// the other members. The outcome reports the writes that succeeded even when
// an error is returned.
func (m *Merger) Merge(ctx context.Context, group *models.MergeGroup) (MergeOutcome, error) {
	var out MergeOutcome
	if group == nil || group.Base == nil || len(group.Duplicates) == 0 {
		return out, ErrEmptyGroup
	}
	if len(group.ProposedVariants) != variantCount(group.Members()) {
		return out, ErrInvalidGroup
	}

	price, _ := models.MinVariantPrice(group.ProposedVariants)
	if err := m.store.ApplyVariants(ctx, group.Base.ID, price, group.ProposedVariants); err != nil {
		return out, fmt.Errorf("update base item %s: %w", group.Base.ID, err)
	}
	out.BaseUpdated = true

	var errs []error
	for _, dup := range group.Duplicates {
		if err := m.store.ArchiveItem(ctx, dup.ID); err != nil {
			errs = append(errs, fmt.Errorf("archive item %s: %w", dup.ID, err))
			continue
		}
		out.Archived++
	}

	return out, errors.Join(errs...)
}

// MergeAll merges every group with at most m.concurrency in flight. One
// group's failure is recorded and does not stop the others.
func (m *Merger) MergeAll(ctx context.Context, groups []models.MergeGroup) models.MergeReport {
	report := models.MergeReport{
		Groups:   len(groups),
		Failures: []models.MergeFailure{},
	}

	var mu sync.Mutex
	fail := func(key string, err error) {
		mu.Lock()
		defer mu.Unlock()
		report.Failed++
		report.Failures = append(report.Failures, models.MergeFailure{Key: key, Error: err.Error()})
	}

	var g errgroup.Group
	g.SetLimit(m.concurrency)

	for i := range groups {
		group := &groups[i]
		if err := ctx.Err(); err != nil {
			fail(group.Key, err)
			continue
		}

		g.Go(func() error {
			out, err := m.Merge(ctx, group)

			mu.Lock()
			report.Archived += out.Archived
			if out.BaseUpdated {
				report.Updated++
			}
			mu.Unlock()

			if err != nil {
				m.logger.Warn("merge group failed", zap.String("key", group.Key), zap.Error(err))
				fail(group.Key, err)
				return nil
			}

			mu.Lock()
			report.Merged++
			mu.Unlock()
			m.logger.Debug("merged group",
				zap.String("key", group.Key),
				zap.String("base_item", group.Base.ID),
				zap.Int("archived", out.Archived),
			)
			return nil
		})
	}

	_ = g.Wait()

	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].Key < report.Failures[j].Key
	})

	m.logger.Info("bulk merge finished",
		zap.Int("groups", report.Groups),
		zap.Int("merged", report.Merged),
		zap.Int("updated", report.Updated),
		zap.Int("failed", report.Failed),
		zap.Int("archived", report.Archived),
	)

	return report
}

// AssignAll stores the suggested category of every result above the threshold
func (m *Merger) AssignAll(ctx context.Context, results []models.CategorizationResult) models.AssignReport {
	report := models.AssignReport{
		Considered: len(results),
		FailedIDs:  []string{},
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(m.concurrency)

	for i := range results {
		res := results[i]
		if res.Item == nil || res.SuggestedCategory == nil || res.Confidence <= SuggestionThreshold {
			mu.Lock()
			report.Skipped++
			mu.Unlock()
			continue
		}
		if ctx.Err() != nil {
			mu.Lock()
			report.Failed++
			report.FailedIDs = append(report.FailedIDs, res.Item.ID)
			mu.Unlock()
			continue
		}

		g.Go(func() error {
			err := m.store.AssignCategory(ctx, res.Item.ID, res.SuggestedCategory.ID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				m.logger.Warn("assign category failed",
					zap.String("item_id", res.Item.ID),
					zap.String("category_id", res.SuggestedCategory.ID),
					zap.Error(err),
				)
				report.Failed++
				report.FailedIDs = append(report.FailedIDs, res.Item.ID)
				return nil
			}
			report.Assigned++
			return nil
		})
	}

	_ = g.Wait()
	sort.Strings(report.FailedIDs)

	m.logger.Info("bulk assign finished",
		zap.Int("considered", report.Considered),
		zap.Int("assigned", report.Assigned),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)

	return report
}
