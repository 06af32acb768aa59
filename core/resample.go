package core

import (
	"fmt"
	"math/rand"

	"github.com/huangsam/nowcast/schema"
)

// KFold partitions n row indices into k folds of near-equal size. The
// shuffle is driven entirely by the given seed; global random state is
// never touched. Each row lands in exactly one validation set.
func KFold(n, k int, seed int64) ([]schema.Partition, error) {
	if n < 1 {
		return nil, fmt.Errorf("dataset is empty")
	}
	if k < 2 {
		return nil, fmt.Errorf("fold count must be at least 2, got %d", k)
	}
	if k > n {
		return nil, fmt.Errorf("fold count %d exceeds row count %d", k, n)
	}

	rng := rand.New(rand.NewSource(seed))
	order := rng.Perm(n)

	// The first n%k folds carry one extra row.
	base := n / k
	extra := n % k

	partitions := make([]schema.Partition, k)
	offset := 0
	for fold := range k {
		size := base
		if fold < extra {
			size++
		}
		validation := make([]int, size)
		copy(validation, order[offset:offset+size])

		train := make([]int, 0, n-size)
		train = append(train, order[:offset]...)
		train = append(train, order[offset+size:]...)

		partitions[fold] = schema.Partition{
			Label:      fmt.Sprintf("fold-%d", fold+1),
			Train:      train,
			Validation: validation,
		}
		offset += size
	}
	return partitions, nil
}

// LeaveOneGroupOut produces one partition per distinct group value, in
// first-seen order. Validation holds every row of the held-out group; train
// holds everything else. A single-row group is valid.
func LeaveOneGroupOut(groups []string) ([]schema.Partition, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	var order []string
	byGroup := make(map[string][]int)
	for i, g := range groups {
		if _, seen := byGroup[g]; !seen {
			order = append(order, g)
		}
		byGroup[g] = append(byGroup[g], i)
	}

	partitions := make([]schema.Partition, 0, len(order))
	for _, g := range order {
		validation := byGroup[g]
		train := make([]int, 0, len(groups)-len(validation))
		for i, other := range groups {
			if other != g {
				train = append(train, i)
			}
		}
		partitions = append(partitions, schema.Partition{
			Label:      g,
			Train:      train,
			Validation: validation,
		})
	}
	return partitions, nil
}
