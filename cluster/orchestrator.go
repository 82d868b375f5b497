package cluster

import (
	"context"
	"fmt"
	"io"
)

// Orchestrator provisions and scales a cluster described by a ClusterSpec. Implementations
// wrap a real cluster-orchestration API; this package only ships WriterOrchestrator.
type Orchestrator interface {
	Submit(ctx context.Context, spec *ClusterSpec) error
}

// WriterOrchestrator validates a ClusterSpec and writes it as YAML, rather than provisioning
// anything. It is useful for dry runs and for handing specs to external tooling.
type WriterOrchestrator struct {
	W io.Writer
}

// Submit validates spec and writes it to the underlying Writer
func (o *WriterOrchestrator) Submit(ctx context.Context, spec *ClusterSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	out, err := spec.YAML()
	if err != nil {
		return err
	}
	if _, err := o.W.Write(out); err != nil {
		return fmt.Errorf("unable to write cluster spec: %w", err)
	}
	return nil
}
