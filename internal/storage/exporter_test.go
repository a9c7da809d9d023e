package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaego-dev/jaegoboard/internal/domain"
	"github.com/jaego-dev/jaegoboard/internal/engine"
)

type memoryStorage struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryStorage) UploadObject(ctx context.Context, key, contentType string, data []byte) error {
	m.objects[key] = data
	m.types[key] = contentType
	return nil
}

func (m *memoryStorage) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var out []ObjectInfo
	for key, data := range m.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	return out, nil
}

func TestExportWritesBothReportsUnderAnchorPrefix(t *testing.T) {
	store := newMemoryStorage()
	exp := NewReportExporter(store)

	result := &engine.Result{
		Anchor:     domain.NewDate(2024, time.May, 11),
		ComputedAt: time.Now(),
		Risks: []domain.ProductGroup{
			{ProductName: "Linen Shirt", ABCGrade: domain.GradeA, Sales7d: 21, AvgDailySales: 3, DaysOfInventory: 2, IsUrgent: true},
		},
		DeadStock: []domain.ProductGroup{
			{ProductName: "Wool Coat", ABCGrade: domain.GradeD, HQStock: 40},
		},
	}

	keys, err := exp.Export(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"reports/2024-05-11/stock_out_risks.csv",
		"reports/2024-05-11/dead_stock.csv",
	}, keys)

	for _, key := range keys {
		assert.Equal(t, "text/csv", store.types[key])
	}

	risks := string(store.objects["reports/2024-05-11/stock_out_risks.csv"])
	lines := strings.Split(strings.TrimSpace(risks), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "product_name")
	assert.Contains(t, lines[1], "Linen Shirt")
	assert.Contains(t, lines[1], "3.00")
	assert.Contains(t, lines[1], "true")
}

func TestExportEmptyScreenersStillWritesHeaders(t *testing.T) {
	store := newMemoryStorage()
	exp := NewReportExporter(store)

	result := &engine.Result{Anchor: domain.NewDate(2024, time.May, 11)}
	keys, err := exp.Export(context.Background(), result)
	require.NoError(t, err)
	require.Len(t, keys, 2)

	dead := string(store.objects["reports/2024-05-11/dead_stock.csv"])
	lines := strings.Split(strings.TrimSpace(dead), "\n")
	assert.Len(t, lines, 1, "header only")
}
