package pinecone

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
)

type fakeControl struct {
	indexes   []*pinecone.Index
	listErr   error
	createErr error
	created   []*pinecone.CreateServerlessIndexRequest
	describes int
	readyAt   int
}

func (f *fakeControl) ListIndexes(_ context.Context) ([]*pinecone.Index, error) {
	return f.indexes, f.listErr
}

func (f *fakeControl) CreateServerlessIndex(
	_ context.Context, in *pinecone.CreateServerlessIndexRequest,
) (*pinecone.Index, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	return &pinecone.Index{Name: in.Name, Host: in.Name + ".svc.test", Status: &pinecone.IndexStatus{}}, nil
}

func (f *fakeControl) DescribeIndex(_ context.Context, name string) (*pinecone.Index, error) {
	f.describes++
	return &pinecone.Index{
		Name:   name,
		Host:   name + ".svc.test",
		Status: &pinecone.IndexStatus{Ready: f.describes >= f.readyAt},
	}, nil
}

type fakeConn struct {
	updates []*pinecone.UpdateVectorRequest
	failIDs map[string]error
	closed  bool
}

func (c *fakeConn) UpdateVector(_ context.Context, in *pinecone.UpdateVectorRequest) error {
	if err, ok := c.failIDs[in.Id]; ok {
		return err
	}
	c.updates = append(c.updates, in)
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

type harness struct {
	control *fakeControl
	conn    *fakeConn
	hosts   []string
	index   *Index
}

func newHarness(cfg Config) *harness {
	h := &harness{control: &fakeControl{}, conn: &fakeConn{failIDs: map[string]error{}}}
	h.index = newIndex(h.control, func(host, _ string) (dataPlane, error) {
		h.hosts = append(h.hosts, host)
		return h.conn, nil
	}, cfg)
	h.index.readyInterval = time.Millisecond
	h.index.readyTimeout = time.Second
	return h
}

func testConfig() Config {
	return Config{Name: "papers", Cloud: "aws", Region: "us-east-1"}
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(Config{Name: "papers"})
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)

	_, err = New(Config{APIKey: "key"})
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestEnsureIndex_CreatesWhenAbsent(t *testing.T) {
	h := newHarness(testConfig())
	h.control.readyAt = 2

	created, err := h.index.EnsureIndex(context.Background(), driven.IndexSpec{
		Name: "papers", Dimension: 1536, Metric: domain.MetricCosine,
	})
	require.NoError(t, err)
	assert.True(t, created)

	require.Len(t, h.control.created, 1)
	req := h.control.created[0]
	assert.Equal(t, "papers", req.Name)
	assert.Equal(t, int32(1536), *req.Dimension)
	assert.Equal(t, pinecone.Cosine, *req.Metric)
	assert.Equal(t, pinecone.Aws, req.Cloud)
	assert.Equal(t, "us-east-1", req.Region)
	assert.Equal(t, 2, h.control.describes)
}

func TestEnsureIndex_ExistingLeftUntouched(t *testing.T) {
	h := newHarness(testConfig())
	h.control.indexes = []*pinecone.Index{{Name: "other"}, {Name: "papers"}}

	created, err := h.index.EnsureIndex(context.Background(), driven.IndexSpec{Name: "papers", Dimension: 1536})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, h.control.created)
}

func TestEnsureIndex_ListFailure(t *testing.T) {
	h := newHarness(testConfig())
	h.control.listErr = errors.New("unauthorised")

	_, err := h.index.EnsureIndex(context.Background(), driven.IndexSpec{Name: "papers"})
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestEnsureIndex_CreateFailure(t *testing.T) {
	h := newHarness(testConfig())
	h.control.createErr = errors.New("quota")

	created, err := h.index.EnsureIndex(context.Background(), driven.IndexSpec{Name: "papers"})
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
	assert.False(t, created)
}

func TestToMetric(t *testing.T) {
	assert.Equal(t, pinecone.Cosine, toMetric(domain.MetricCosine))
	assert.Equal(t, pinecone.Euclidean, toMetric(domain.MetricEuclidean))
	assert.Equal(t, pinecone.Dotproduct, toMetric(domain.MetricDotProduct))
}

func TestUpdateMetadata_ResolvesHostOnce(t *testing.T) {
	h := newHarness(testConfig())
	ctx := context.Background()

	require.NoError(t, h.index.UpdateMetadata(ctx, "doc_0", map[string]any{"topics": []any{"solar"}}))
	require.NoError(t, h.index.UpdateMetadata(ctx, "doc_1", map[string]any{"topics": []any{"wind"}}))

	assert.Equal(t, []string{"papers.svc.test"}, h.hosts)
	assert.Equal(t, 1, h.control.describes)
	require.Len(t, h.conn.updates, 2)
	assert.Equal(t, "doc_0", h.conn.updates[0].Id)
	assert.Equal(t, "solar", h.conn.updates[0].Metadata.Fields["topics"].GetListValue().Values[0].GetStringValue())
}

func TestUpdateMetadata_ConfiguredHost(t *testing.T) {
	cfg := testConfig()
	cfg.Host = "configured.svc.test"
	h := newHarness(cfg)

	require.NoError(t, h.index.UpdateMetadata(context.Background(), "doc_0", map[string]any{}))

	assert.Equal(t, []string{"configured.svc.test"}, h.hosts)
	assert.Zero(t, h.control.describes)
}

func TestUpdateMetadata_Failure(t *testing.T) {
	h := newHarness(testConfig())
	h.conn.failIDs["doc_1"] = errors.New("not found")

	err := h.index.UpdateMetadata(context.Background(), "doc_1", map[string]any{})
	assert.ErrorIs(t, err, domain.ErrIndex)
	assert.Contains(t, err.Error(), "doc_1")
}

func TestUpdateMetadata_UnencodableValue(t *testing.T) {
	h := newHarness(testConfig())

	err := h.index.UpdateMetadata(context.Background(), "doc_0", map[string]any{"bad": struct{}{}})
	assert.ErrorIs(t, err, domain.ErrIndex)
	assert.Empty(t, h.hosts)
}

func TestClose(t *testing.T) {
	h := newHarness(testConfig())
	require.NoError(t, h.index.UpdateMetadata(context.Background(), "doc_0", map[string]any{}))

	require.NoError(t, h.index.Close())
	assert.True(t, h.conn.closed)

	err := h.index.UpdateMetadata(context.Background(), "doc_1", map[string]any{})
	assert.ErrorIs(t, err, domain.ErrIndex)
}

func TestClose_WithoutConnection(t *testing.T) {
	assert.NoError(t, newHarness(testConfig()).index.Close())
}
