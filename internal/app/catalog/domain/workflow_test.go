package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workflowFixture(t *testing.T) []*Product {
	t.Helper()
	p1 := ReconstructProduct(1, "P1", 0, "", mustMoney(t, "10"), nil, []*CustomerEntry{
		ReconstructCustomerEntry(11, "a", "Pending", testNow),
		ReconstructCustomerEntry(12, "b", ReadyState, testNow),
	})
	p2 := ReconstructProduct(2, "P2", 0, "", mustMoney(t, "5"), nil, []*CustomerEntry{
		ReconstructCustomerEntry(21, "c", "Pending", testNow),
	})
	return []*Product{p1, p2}
}

func TestFlatten(t *testing.T) {
	records := Flatten(workflowFixture(t))
	require.Len(t, records, 3)
	assert.Equal(t, "P1", records[0].ProductName)
	assert.Equal(t, int64(2), records[2].ProductID)
	assert.Equal(t, int64(21), records[2].Entry.ID())
}

func TestAggregate(t *testing.T) {
	records := Flatten(workflowFixture(t))
	summary := Aggregate(records, DefaultBusinessConfig())

	assert.Equal(t, 3, summary.Count(AllStates))
	assert.Equal(t, 2, summary.Count("Pending"))
	assert.Equal(t, 1, summary.Count(ReadyState))
	assert.Equal(t, 0, summary.Count("Processing"))
	assert.Equal(t, 0, summary.Count("Delivered"))
	require.Len(t, summary.States, 4)
	assert.Equal(t, "#FFD700", summary.States[0].Color)
}

func TestAggregate_UnconfiguredStateCountsTowardAllOnly(t *testing.T) {
	p := ReconstructProduct(1, "P", 0, "", nil, nil, []*CustomerEntry{
		ReconstructCustomerEntry(1, "a", "Lost", testNow),
	})
	summary := Aggregate(Flatten([]*Product{p}), DefaultBusinessConfig())
	assert.Equal(t, 1, summary.All)
	for _, s := range summary.States {
		assert.Zero(t, s.Count, s.State)
	}
}

func TestFilterByState(t *testing.T) {
	records := Flatten(workflowFixture(t))
	pending := "Pending"
	all := AllStates

	assert.Len(t, FilterByState(records, nil), 3)
	assert.Len(t, FilterByState(records, &all), 3)
	assert.Len(t, FilterByState(records, &pending), 2)
}

func TestSelectForExport(t *testing.T) {
	records := Flatten(workflowFixture(t))
	ready := ReadyState
	delivered := "Delivered"

	t.Run("explicit selection wins over filter", func(t *testing.T) {
		got, err := SelectForExport(records, []int64{11, 21}, &ready)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(11), got[0].Entry.ID())
	})

	t.Run("falls back to filtered set", func(t *testing.T) {
		got, err := SelectForExport(records, nil, &ready)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(12), got[0].Entry.ID())
	})

	t.Run("empty set is an error", func(t *testing.T) {
		_, err := SelectForExport(records, nil, &delivered)
		assert.ErrorIs(t, err, ErrNothingToExport)

		_, err = SelectForExport(records, []int64{999}, nil)
		assert.ErrorIs(t, err, ErrNothingToExport)
	})
}
