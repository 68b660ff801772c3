// Package pinecone adapts a Pinecone serverless index to the metadata and
// provisioning ports.
package pinecone

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-topics/internal/logger"
)

// Ensure Index implements the interfaces.
var (
	_ driven.MetadataIndex    = (*Index)(nil)
	_ driven.IndexProvisioner = (*Index)(nil)
)

// Readiness polling after index creation.
const (
	defaultReadyTimeout  = 2 * time.Minute
	defaultReadyInterval = 2 * time.Second
)

// controlPlane is the subset of *pinecone.Client used for provisioning.
type controlPlane interface {
	ListIndexes(ctx context.Context) ([]*pinecone.Index, error)
	CreateServerlessIndex(ctx context.Context, in *pinecone.CreateServerlessIndexRequest) (*pinecone.Index, error)
	DescribeIndex(ctx context.Context, name string) (*pinecone.Index, error)
}

// dataPlane is the subset of *pinecone.IndexConnection used for updates.
type dataPlane interface {
	UpdateVector(ctx context.Context, in *pinecone.UpdateVectorRequest) error
	Close() error
}

// dialFunc opens a data-plane connection to host.
type dialFunc func(host, namespace string) (dataPlane, error)

// Config configures the adapter.
type Config struct {
	APIKey    string
	Name      string
	Host      string
	Namespace string
	Cloud     string
	Region    string
}

// Index talks to one named Pinecone index.
// The data-plane connection is opened on first use and released by Close.
type Index struct {
	control   controlPlane
	dial      dialFunc
	name      string
	namespace string
	cloud     pinecone.Cloud
	region    string

	readyTimeout  time.Duration
	readyInterval time.Duration

	mu     sync.Mutex
	host   string
	conn   dataPlane
	closed bool
}

// New creates a Pinecone client for cfg. No network call is made until
// the index is first used.
func New(cfg Config) (*Index, error) {
	if cfg.APIKey == "" || cfg.Name == "" {
		return nil, fmt.Errorf("%w: index name and api key are required", domain.ErrIndexUnavailable)
	}

	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("%w: create client: %w", domain.ErrIndexUnavailable, err)
	}

	dial := func(host, namespace string) (dataPlane, error) {
		return client.Index(pinecone.NewIndexConnParams{Host: host, Namespace: namespace})
	}
	return newIndex(client, dial, cfg), nil
}

func newIndex(control controlPlane, dial dialFunc, cfg Config) *Index {
	return &Index{
		control:       control,
		dial:          dial,
		name:          cfg.Name,
		namespace:     cfg.Namespace,
		cloud:         pinecone.Cloud(cfg.Cloud),
		region:        cfg.Region,
		host:          cfg.Host,
		readyTimeout:  defaultReadyTimeout,
		readyInterval: defaultReadyInterval,
	}
}

// EnsureIndex creates a serverless index when no index named spec.Name
// exists. Existing indexes are left untouched, whatever their settings.
func (x *Index) EnsureIndex(ctx context.Context, spec driven.IndexSpec) (bool, error) {
	existing, err := x.control.ListIndexes(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: list indexes: %w", domain.ErrIndexUnavailable, err)
	}
	for _, idx := range existing {
		if idx != nil && idx.Name == spec.Name {
			logger.Debug("Index %s already exists", spec.Name)
			return false, nil
		}
	}

	dimension := int32(spec.Dimension)
	metric := toMetric(spec.Metric)
	created, err := x.control.CreateServerlessIndex(ctx, &pinecone.CreateServerlessIndexRequest{
		Name:      spec.Name,
		Dimension: &dimension,
		Metric:    &metric,
		Cloud:     x.cloud,
		Region:    x.region,
	})
	if err != nil {
		return false, fmt.Errorf("%w: create index %s: %w", domain.ErrIndexUnavailable, spec.Name, err)
	}
	if created != nil && isReady(created) {
		return true, nil
	}
	if err := x.waitReady(ctx, spec.Name); err != nil {
		return true, err
	}
	return true, nil
}

// UpdateMetadata sets metadata fields on the record with id.
func (x *Index) UpdateMetadata(ctx context.Context, id string, metadata map[string]any) error {
	fields, err := structpb.NewStruct(metadata)
	if err != nil {
		return fmt.Errorf("%w: %s: encode metadata: %w", domain.ErrIndex, id, err)
	}

	conn, err := x.connection(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrIndex, id, err)
	}

	if err := conn.UpdateVector(ctx, &pinecone.UpdateVectorRequest{Id: id, Metadata: fields}); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrIndex, id, err)
	}
	return nil
}

// Close releases the data-plane connection, if one was opened.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.closed = true
	if x.conn == nil {
		return nil
	}
	err := x.conn.Close()
	x.conn = nil
	return err
}

// connection returns the data-plane connection, resolving the host first
// when it was not configured.
func (x *Index) connection(ctx context.Context) (dataPlane, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.closed {
		return nil, errors.New("index closed")
	}
	if x.conn != nil {
		return x.conn, nil
	}

	if x.host == "" {
		desc, err := x.control.DescribeIndex(ctx, x.name)
		if err != nil {
			return nil, fmt.Errorf("describe index %s: %w", x.name, err)
		}
		x.host = desc.Host
	}

	conn, err := x.dial(x.host, x.namespace)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", x.host, err)
	}
	x.conn = conn
	return conn, nil
}

// waitReady polls until the named index reports ready.
func (x *Index) waitReady(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, x.readyTimeout)
	defer cancel()

	ticker := time.NewTicker(x.readyInterval)
	defer ticker.Stop()

	for {
		desc, err := x.control.DescribeIndex(ctx, name)
		if err == nil && isReady(desc) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: index %s not ready: %w", domain.ErrIndexUnavailable, name, ctx.Err())
		case <-ticker.C:
		}
	}
}

func isReady(idx *pinecone.Index) bool {
	return idx != nil && idx.Status != nil && idx.Status.Ready
}

func toMetric(m domain.IndexMetric) pinecone.IndexMetric {
	switch m {
	case domain.MetricEuclidean:
		return pinecone.Euclidean
	case domain.MetricDotProduct:
		return pinecone.Dotproduct
	default:
		return pinecone.Cosine
	}
}
