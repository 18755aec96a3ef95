package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/workmirror/internal/core/domain"
	"github.com/custodia-labs/workmirror/internal/core/ports/driven"
	"github.com/custodia-labs/workmirror/internal/core/ports/driving"
	"github.com/custodia-labs/workmirror/internal/logger"
)

// DefaultWorkers bounds the detail-phase pool.
const DefaultWorkers = 20

// Ensure Crawler implements the interface.
var _ driving.Crawler = (*Crawler)(nil)

// Crawler sequences a crawl pass through its three phases. Phases run
// strictly in order with a barrier between them: singletons establish the
// scope seeds, the collection phase refreshes the container records, and
// the detail phase fans one expansion walk per container across a bounded
// worker pool.
type Crawler struct {
	api         driven.ResourceAPI
	store       driven.RecordStore
	expander    *Expander
	upserter    *Upserter
	workspaceID string
	workers     int
}

// NewCrawler creates a Crawler rooted at workspaceID. workers <= 0 falls
// back to DefaultWorkers.
func NewCrawler(
	api driven.ResourceAPI,
	store driven.RecordStore,
	expander *Expander,
	upserter *Upserter,
	workspaceID string,
	workers int,
) *Crawler {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Crawler{
		api:         api,
		store:       store,
		expander:    expander,
		upserter:    upserter,
		workspaceID: workspaceID,
		workers:     workers,
	}
}

// RunCrawl executes one complete pass and returns the per-kind counts.
func (c *Crawler) RunCrawl(ctx context.Context) (domain.Summary, error) {
	runID := uuid.NewString()
	logger.Info("crawl %s: starting pass for workspace %s", runID, c.workspaceID)

	summary := make(domain.Summary)

	singletons, err := c.singletonPhase(ctx)
	if err != nil {
		return nil, fmt.Errorf("singleton phase: %w", err)
	}
	summary.Merge(singletons)

	if err := c.collectionPhase(ctx); err != nil {
		return nil, fmt.Errorf("collection phase: %w", err)
	}

	details, err := c.detailPhase(ctx)
	if err != nil {
		return nil, fmt.Errorf("detail phase: %w", err)
	}
	summary.Merge(details)

	logger.Info("crawl %s: pass complete, %d records across %d kinds",
		runID, summary.Total(), len(summary))
	return summary, nil
}

// singletonPhase expands the organisation root and its direct descendants:
// teams, users, and team membership links. Few records, sequential walk.
func (c *Crawler) singletonPhase(ctx context.Context) (domain.Summary, error) {
	ws := NewWorkspace()
	root := domain.Reference{ID: c.workspaceID, Kind: domain.KindWorkspace}

	if err := c.expander.Expand(ctx, ws, root, nil, true); err != nil {
		return nil, err
	}

	for _, kind := range []domain.Kind{domain.KindTeam, domain.KindUser} {
		refs, err := c.api.ListChildren(ctx, root, kind)
		if err != nil {
			return nil, fmt.Errorf("listing %ss: %w", kind, err)
		}
		for _, ref := range refs {
			if err := c.expander.Expand(ctx, ws, ref, nil, false); err != nil {
				return nil, err
			}
			if kind == domain.KindTeam {
				if err := c.expandMemberships(ctx, ws, ref); err != nil {
					return nil, err
				}
			}
		}
	}

	logger.Info("crawl: singleton phase materialised %d records", ws.Counts().Total())
	return ws.Counts(), nil
}

func (c *Crawler) expandMemberships(ctx context.Context, ws *Workspace, team domain.Reference) error {
	memberships, err := c.api.ListChildren(ctx, team, domain.KindTeamMembership)
	if err != nil {
		logger.Error("crawl: listing memberships of team %s: %v", team.ID, err)
		return nil
	}
	for _, ref := range memberships {
		if err := c.expander.Expand(ctx, ws, ref, nil, false); err != nil {
			return err
		}
	}
	return nil
}

// collectionPhase force-refreshes the shallow record of every project
// whose name resolves to a client code, so ownership fields are current
// before the detail walks start. Descendants are not touched here.
func (c *Crawler) collectionPhase(ctx context.Context) error {
	root := domain.Reference{ID: c.workspaceID, Kind: domain.KindWorkspace}
	refs, err := c.api.ListChildren(ctx, root, domain.KindProject)
	if err != nil {
		return fmt.Errorf("listing projects: %w", err)
	}

	ws := NewWorkspace()
	refreshed := 0
	for _, ref := range refs {
		if len(ClientCode(ref.Name)) == 0 {
			continue
		}
		if err := c.expander.ExpandShallow(ctx, ws, ref, nil); err != nil {
			return err
		}
		refreshed++
	}

	logger.Info("crawl: collection phase refreshed %d of %d projects", refreshed, len(refs))
	return nil
}

// detailPhase runs one full expansion walk per client project, bounded by
// the worker pool. The store query is the work list so that projects
// refreshed by earlier passes are covered even when the collection phase
// skipped them this time.
func (c *Crawler) detailPhase(ctx context.Context) (domain.Summary, error) {
	projects, err := c.store.ListClientProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing client projects: %w", err)
	}

	summary := make(domain.Summary)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for _, project := range projects {
		seed := project.Ref()
		g.Go(func() error {
			ws := NewWorkspace()
			if err := c.expander.Expand(gctx, ws, seed, nil, true); err != nil {
				return err
			}
			mu.Lock()
			summary.Merge(ws.Counts())
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("crawl: detail phase walked %d projects", len(projects))
	return summary, nil
}

// Refresh re-expands one reference with the dedup check bypassed. Scope
// labels are carried over from the stored copy when one exists; they are
// fixed at first expansion and a refresh must not strip them.
func (c *Crawler) Refresh(ctx context.Context, ref domain.Reference) error {
	var labels []string
	if prev, err := c.store.Get(ctx, ref); err == nil {
		labels = prev.ScopeLabels
	}
	return c.expander.Expand(ctx, NewWorkspace(), ref, labels, true)
}

// Remove deletes a record and its embedding.
func (c *Crawler) Remove(ctx context.Context, ref domain.Reference) error {
	return c.upserter.Delete(ctx, ref)
}
