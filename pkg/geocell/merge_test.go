package geocell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mergeItem struct {
	Key   string
	Score int
}

func TestMergeInPlaceSortsAndDedups(t *testing.T) {
	target := []mergeItem{{"a", 3}}
	others := [][]mergeItem{
		{{"b", 1}, {"a", 5}},
		{{"c", 2}},
	}

	MergeInPlace(&target, others,
		func(m mergeItem) any { return m.Key },
		func(a, b mergeItem) bool { return a.Score < b.Score },
	)

	require := assert.New(t)
	require.Len(target, 3)
	require.Equal("b", target[0].Key)
	require.Equal("c", target[1].Key)
	require.Equal("a", target[2].Key)
	// first occurrence of "a" (score 3) wins over the later one (score 5)
	require.Equal(3, target[2].Score)
}

func TestMergeInPlaceWithoutCmpPreservesAppendOrder(t *testing.T) {
	target := []mergeItem{{"a", 1}}
	others := [][]mergeItem{{{"b", 2}}}

	MergeInPlace(&target, others, nil, nil)

	assert.Equal(t, []mergeItem{{"a", 1}, {"b", 2}}, target)
}

func TestMergeInPlaceDefaultKeyIsIdentity(t *testing.T) {
	target := []int{1, 2}
	others := [][]int{{2, 3}}

	MergeInPlace(&target, others, nil, func(a, b int) bool { return a < b })

	assert.Equal(t, []int{1, 2, 3}, target)
}
