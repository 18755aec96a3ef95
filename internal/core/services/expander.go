package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/workmirror/internal/core/domain"
	"github.com/custodia-labs/workmirror/internal/core/ports/driven"
	"github.com/custodia-labs/workmirror/internal/logger"
)

// DefaultMaxDepth caps recursion over declared reference edges. The remote
// graph is cyclic by reference; the cap is a guard against walks that the
// dedup checks fail to terminate.
const DefaultMaxDepth = 10

// Expander is the recursive graph walker. One call tree owns one Workspace
// and runs on one goroutine; many call trees run concurrently against the
// shared stores. Every failure inside a walk is contained to its subtree:
// the only error Expand can return is context cancellation.
type Expander struct {
	api      driven.ResourceAPI
	upserter *Upserter
	webhook  driven.WebhookService
	anno     *Annotator
	maxDepth int
}

// NewExpander creates an Expander. webhook is optional; when nil, project
// subscription bookkeeping is skipped.
func NewExpander(api driven.ResourceAPI, upserter *Upserter, webhook driven.WebhookService) *Expander {
	return &Expander{
		api:      api,
		upserter: upserter,
		webhook:  webhook,
		anno:     NewAnnotator(),
		maxDepth: DefaultMaxDepth,
	}
}

// Expand materialises the subtree rooted at ref into ws and the stores.
// forceRefresh bypasses the store dedup check for the seed only; children
// always honour it.
func (e *Expander) Expand(ctx context.Context, ws *Workspace, ref domain.Reference, parentScopeLabels []string, forceRefresh bool) error {
	return e.expand(ctx, ws, ref, parentScopeLabels, forceRefresh, 1)
}

// ExpandShallow materialises ref itself without descending into its
// references. The collection phase uses it to refresh container records
// ahead of the full detail walk.
func (e *Expander) ExpandShallow(ctx context.Context, ws *Workspace, ref domain.Reference, parentScopeLabels []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ref.Kind.Spec().Ignored || ws.Has(ref) {
		return nil
	}

	rec, err := e.api.Fetch(ctx, ref)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Error("expand: %v", err)
		return nil
	}

	rec = e.anno.Annotate(rec, parentScopeLabels)
	if ref.Kind == domain.KindProject {
		e.attachWebhook(ctx, rec)
	}
	e.upserter.Upsert(ctx, rec)
	ws.Put(rec)
	return nil
}

func (e *Expander) expand(ctx context.Context, ws *Workspace, ref domain.Reference, parentScopeLabels []string, forceRefresh bool, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth > e.maxDepth {
		logger.Warn("expand: depth cap %d exceeded at %s %s, not descending", e.maxDepth, ref.Kind, ref.ID)
		return nil
	}

	spec := ref.Kind.Spec()
	if spec.Ignored {
		return nil
	}
	if ws.Has(ref) {
		return nil
	}
	if !forceRefresh {
		exists, err := e.upserter.AlreadyMaterialized(ctx, ref)
		if err != nil {
			logger.Warn("expand: dedup check for %s %s failed: %v", ref.Kind, ref.ID, err)
		} else if exists {
			return nil
		}
	}

	rec, err := e.api.Fetch(ctx, ref)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Error("expand: %v", err)
		return nil
	}

	rec = e.anno.Annotate(rec, parentScopeLabels)

	if ref.Kind == domain.KindProject {
		e.attachWebhook(ctx, rec)
	}

	e.upserter.Upsert(ctx, rec)
	ws.Put(rec)

	for _, field := range spec.RefFields {
		if child, ok := domain.ReferenceIn(rec.Fields[field]); ok {
			if err := e.expand(ctx, ws, child, rec.ScopeLabels, false, depth+1); err != nil {
				return err
			}
		}
	}
	for _, field := range spec.RefListFields {
		list, _ := rec.Fields[field].([]any)
		for _, item := range list {
			if child, ok := domain.ReferenceIn(item); ok {
				if err := e.expand(ctx, ws, child, rec.ScopeLabels, false, depth+1); err != nil {
					return err
				}
			}
		}
	}

	return e.expandChildEdges(ctx, ws, ref, rec, spec, depth)
}

// expandChildEdges follows the edges field nesting cannot reach: the
// list-children collections of containers and the narrative stream.
func (e *Expander) expandChildEdges(ctx context.Context, ws *Workspace, ref domain.Reference, rec *domain.Record, spec domain.KindSpec, depth int) error {
	for _, childKind := range spec.ChildKinds {
		// A task only lists subtasks when the record says it has some.
		if ref.Kind == domain.KindTask && childKind == domain.KindTask {
			if n, ok := rec.Fields["num_subtasks"].(float64); !ok || n <= 0 {
				continue
			}
		}
		children, err := e.api.ListChildren(ctx, ref, childKind)
		if err != nil {
			logger.Error("expand: listing %ss of %s %s: %v", childKind, ref.Kind, ref.ID, err)
			continue
		}
		for _, child := range children {
			if err := e.expand(ctx, ws, child, rec.ScopeLabels, false, depth+1); err != nil {
				return err
			}
		}
	}

	if spec.Narrative {
		stories, err := e.api.ListNarrative(ctx, ref)
		if err != nil {
			logger.Error("expand: listing narrative of %s %s: %v", ref.Kind, ref.ID, err)
		}
		for _, story := range stories {
			if err := e.expand(ctx, ws, story, rec.ScopeLabels, false, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// attachWebhook records the project's event subscription handle, or the
// upstream resync token when the stream has fallen behind. A handle
// already held by the stored copy is carried over instead of registering
// again. Bookkeeping only: failure never blocks the rest of expansion.
func (e *Expander) attachWebhook(ctx context.Context, rec *domain.Record) {
	if e.webhook == nil {
		return
	}

	prev, err := e.upserter.Stored(ctx, rec.Ref())
	if err != nil {
		logger.Warn("expand: webhook lookup for project %s: %v", rec.ID, err)
	}
	if prev != nil {
		if info := prev.Fields["webhook_info"]; info != nil {
			rec.Fields["webhook_info"] = info
			return
		}
	}

	info, err := e.webhook.Establish(ctx, rec.ID)
	if err != nil {
		var syncErr *domain.SyncRequiredError
		if errors.As(err, &syncErr) {
			logger.Warn("expand: project %s needs full resync", rec.ID)
			rec.Fields["sync"] = syncErr.Token
			return
		}
		logger.Error("expand: establishing webhook for project %s: %v", rec.ID, err)
		return
	}
	rec.Fields["webhook_info"] = info
}
