// Package pipeline runs the transform, persist, notify sequence shared by the
// webhook path and the startup batch.
package pipeline

import (
	"context"
	"time"

	"adf-relay/internal/common/logger"
	"adf-relay/internal/common/metrics"
	"adf-relay/internal/common/observability"
	"adf-relay/internal/lead"
)

// Transformer renders leads into one ADF document.
type Transformer interface {
	Transform(leads []lead.Lead) ([]byte, error)
	Dialect() string
}

// Store persists the rendered document.
type Store interface {
	Write(document []byte) error
	Path() string
}

// Notifier emails the document downstream.
type Notifier interface {
	Notify(ctx context.Context, document []byte, leadCount int) error
}

type Pipeline struct {
	transformer Transformer
	store       Store
	notifier    Notifier
	obs         *observability.Observability
	log         logger.Logger
}

func New(transformer Transformer, store Store, notifier Notifier, obs *observability.Observability, log logger.Logger) *Pipeline {
	return &Pipeline{
		transformer: transformer,
		store:       store,
		notifier:    notifier,
		obs:         obs,
		log:         log,
	}
}

// Process turns the batch into a document, persists it, and emails it.
// Transform and persist failures are returned; delivery failure is logged and
// swallowed because notification is best effort.
func (p *Pipeline) Process(ctx context.Context, leads []lead.Lead, source string) error {
	start := time.Now()
	metrics.LeadsReceived.WithLabelValues(source).Add(float64(len(leads)))

	document, err := p.transformer.Transform(leads)
	if err != nil {
		p.obs.RecordPipelineDuration(ctx, time.Since(start), "transform_failed")
		return err
	}
	metrics.DocumentsGenerated.WithLabelValues(p.transformer.Dialect()).Inc()

	if err := p.store.Write(document); err != nil {
		p.obs.RecordPipelineDuration(ctx, time.Since(start), "persist_failed")
		return err
	}
	p.log.Info("ADF document persisted", map[string]interface{}{
		"path":      p.store.Path(),
		"leadCount": len(leads),
		"bytes":     len(document),
	})

	if err := p.notifier.Notify(ctx, document, len(leads)); err != nil {
		p.log.Error("Import email delivery failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	for range leads {
		p.obs.RecordLeadProcessed(ctx, "processed")
	}
	p.obs.RecordPipelineDuration(ctx, time.Since(start), "ok")
	return nil
}
