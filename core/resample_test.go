package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKFoldCoverage checks that every row appears in exactly one validation set.
func TestKFoldCoverage(t *testing.T) {
	tests := []struct {
		name string
		n    int
		k    int
	}{
		{name: "even split", n: 100, k: 10},
		{name: "uneven split", n: 10, k: 3},
		{name: "folds equal rows", n: 5, k: 5},
		{name: "two folds", n: 7, k: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			partitions, err := KFold(tt.n, tt.k, 42)
			require.NoError(t, err)
			require.Len(t, partitions, tt.k)

			seen := make(map[int]int)
			for _, p := range partitions {
				assert.Len(t, p.Train, tt.n-len(p.Validation))
				for _, idx := range p.Validation {
					seen[idx]++
				}

				// Train and validation never overlap within a partition.
				train := make(map[int]struct{}, len(p.Train))
				for _, idx := range p.Train {
					train[idx] = struct{}{}
				}
				for _, idx := range p.Validation {
					_, overlap := train[idx]
					assert.False(t, overlap, "row %d in both train and validation", idx)
				}
			}

			assert.Len(t, seen, tt.n)
			for idx, count := range seen {
				assert.Equal(t, 1, count, "row %d validated %d times", idx, count)
			}
		})
	}
}

// TestKFoldSizes checks the near-equal fold size rule.
func TestKFoldSizes(t *testing.T) {
	partitions, err := KFold(100, 10, 1)
	require.NoError(t, err)
	for _, p := range partitions {
		assert.Len(t, p.Validation, 10)
		assert.Len(t, p.Train, 90)
	}

	// 10 rows over 3 folds: sizes 4, 3, 3.
	partitions, err = KFold(10, 3, 1)
	require.NoError(t, err)
	assert.Len(t, partitions[0].Validation, 4)
	assert.Len(t, partitions[1].Validation, 3)
	assert.Len(t, partitions[2].Validation, 3)
}

// TestKFoldDeterminism ensures identical seeds reproduce identical splits.
func TestKFoldDeterminism(t *testing.T) {
	first, err := KFold(50, 5, 7)
	require.NoError(t, err)
	second, err := KFold(50, 5, 7)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	different, err := KFold(50, 5, 8)
	require.NoError(t, err)
	assert.NotEqual(t, first, different)
}

// TestKFoldLabels checks the stable fold labeling.
func TestKFoldLabels(t *testing.T) {
	partitions, err := KFold(6, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, "fold-1", partitions[0].Label)
	assert.Equal(t, "fold-2", partitions[1].Label)
	assert.Equal(t, "fold-3", partitions[2].Label)
}

// TestKFoldErrors covers the rejection cases.
func TestKFoldErrors(t *testing.T) {
	tests := []struct {
		name string
		n    int
		k    int
	}{
		{name: "empty dataset", n: 0, k: 2},
		{name: "single fold", n: 10, k: 1},
		{name: "more folds than rows", n: 3, k: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := KFold(tt.n, tt.k, 0)
			assert.Error(t, err)
		})
	}
}

// TestLeaveOneGroupOut checks partition count and group purity.
func TestLeaveOneGroupOut(t *testing.T) {
	groups := []string{"CIV", "CIV", "SEN", "GHA", "SEN", "CIV"}

	partitions, err := LeaveOneGroupOut(groups)
	require.NoError(t, err)
	require.Len(t, partitions, 3)

	// First-seen order of distinct values.
	assert.Equal(t, "CIV", partitions[0].Label)
	assert.Equal(t, "SEN", partitions[1].Label)
	assert.Equal(t, "GHA", partitions[2].Label)

	for _, p := range partitions {
		for _, idx := range p.Validation {
			assert.Equal(t, p.Label, groups[idx])
		}
		for _, idx := range p.Train {
			assert.NotEqual(t, p.Label, groups[idx])
		}
		assert.Len(t, p.Train, len(groups)-len(p.Validation))
	}
}

// TestLeaveOneGroupOutSingleRowGroup allows a group with one row.
func TestLeaveOneGroupOutSingleRowGroup(t *testing.T) {
	partitions, err := LeaveOneGroupOut([]string{"A", "B", "A"})
	require.NoError(t, err)
	require.Len(t, partitions, 2)
	assert.Equal(t, []int{1}, partitions[1].Validation)
}

// TestLeaveOneGroupOutEmpty rejects an empty group column.
func TestLeaveOneGroupOutEmpty(t *testing.T) {
	_, err := LeaveOneGroupOut(nil)
	assert.Error(t, err)
}
