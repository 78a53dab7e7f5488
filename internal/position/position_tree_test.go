package position_test

import (
	"testing"

	"github.com/Roma1011/EmployeeManagmentSys/internal/position"

	"github.com/stretchr/testify/assert"
)

func TestBuildTree(t *testing.T) {
	t.Run("empty input yields empty forest", func(t *testing.T) {
		forest := position.BuildTree(nil)
		assert.NotNil(t, forest)
		assert.Empty(t, forest)
	})

	t.Run("reconstructs forest with multiple roots", func(t *testing.T) {
		flat := []position.Position{
			{ID: 1, Name: "CEO"},
			{ID: 2, Name: "CTO", ParentID: intPtr(1)},
			{ID: 3, Name: "CFO", ParentID: intPtr(1)},
			{ID: 4, Name: "Backend Lead", ParentID: intPtr(2)},
			{ID: 5, Name: "Advisor"},
		}

		forest := position.BuildTree(flat)

		assert.Len(t, forest, 2)
		assert.Equal(t, 1, forest[0].ID)
		assert.Equal(t, 5, forest[1].ID)
		assert.Len(t, forest[0].Children, 2)
		assert.Equal(t, 2, forest[0].Children[0].ID)
		assert.Equal(t, 3, forest[0].Children[1].ID)
		assert.Len(t, forest[0].Children[0].Children, 1)
		assert.Equal(t, 4, forest[0].Children[0].Children[0].ID)
		assert.Empty(t, forest[1].Children)
	})

	t.Run("children follow input order", func(t *testing.T) {
		flat := []position.Position{
			{ID: 1, Name: "CEO"},
			{ID: 9, Name: "Third", ParentID: intPtr(1)},
			{ID: 2, Name: "First", ParentID: intPtr(1)},
			{ID: 5, Name: "Second", ParentID: intPtr(1)},
		}

		forest := position.BuildTree(flat)

		assert.Len(t, forest, 1)
		got := make([]int, 0, 3)
		for _, c := range forest[0].Children {
			got = append(got, c.ID)
		}
		assert.Equal(t, []int{9, 2, 5}, got)
	})

	t.Run("dangling parent reference becomes root", func(t *testing.T) {
		flat := []position.Position{
			{ID: 1, Name: "CEO"},
			{ID: 2, Name: "Orphan", ParentID: intPtr(99)},
		}

		forest := position.BuildTree(flat)

		assert.Len(t, forest, 2)
		assert.Equal(t, 2, forest[1].ID)
		assert.Equal(t, 99, *forest[1].ParentID)
	})

	t.Run("every input appears exactly once", func(t *testing.T) {
		flat := []position.Position{
			{ID: 1, Name: "CEO"},
			{ID: 2, Name: "CTO", ParentID: intPtr(1)},
			{ID: 3, Name: "Lead", ParentID: intPtr(2)},
			{ID: 4, Name: "Dev", ParentID: intPtr(3)},
		}

		forest := position.BuildTree(flat)

		seen := map[int]int{}
		var walk func(n *position.Node)
		walk = func(n *position.Node) {
			seen[n.ID]++
			for _, c := range n.Children {
				walk(c)
			}
		}
		for _, r := range forest {
			walk(r)
		}

		assert.Len(t, seen, 4)
		for id, count := range seen {
			assert.Equal(t, 1, count, "position %d duplicated", id)
		}
	})
}

func TestFlatten(t *testing.T) {
	t.Run("pre-order traversal", func(t *testing.T) {
		flat := []position.Position{
			{ID: 1, Name: "CEO"},
			{ID: 2, Name: "CTO", ParentID: intPtr(1)},
			{ID: 4, Name: "Backend Lead", ParentID: intPtr(2)},
			{ID: 3, Name: "CFO", ParentID: intPtr(1)},
		}
		forest := position.BuildTree(flat)

		out := position.Flatten(forest)

		got := make([]int, 0, len(out))
		for _, p := range out {
			got = append(got, p.ID)
		}
		assert.Equal(t, []int{1, 2, 4, 3}, got)
	})

	t.Run("round trip is isomorphic", func(t *testing.T) {
		flat := []position.Position{
			{ID: 1, Name: "CEO"},
			{ID: 2, Name: "CTO", ParentID: intPtr(1)},
			{ID: 3, Name: "CFO", ParentID: intPtr(1)},
			{ID: 4, Name: "Backend Lead", ParentID: intPtr(2)},
			{ID: 5, Name: "Advisor"},
		}

		first := position.BuildTree(flat)
		second := position.BuildTree(position.Flatten(first))

		assert.Equal(t, first, second)
	})
}

func TestWouldCreateCycle(t *testing.T) {
	// 1 -> 2 -> 3 -> 4 (parent ke kiri)
	byID := map[int]position.Position{
		1: {ID: 1, Name: "CEO"},
		2: {ID: 2, Name: "CTO", ParentID: intPtr(1)},
		3: {ID: 3, Name: "Lead", ParentID: intPtr(2)},
		4: {ID: 4, Name: "Dev", ParentID: intPtr(3)},
	}

	t.Run("nil parent never cycles", func(t *testing.T) {
		assert.False(t, position.WouldCreateCycle(byID, 2, nil))
	})

	t.Run("direct self reference", func(t *testing.T) {
		assert.True(t, position.WouldCreateCycle(byID, 2, intPtr(2)))
	})

	t.Run("reparent under own descendant", func(t *testing.T) {
		assert.True(t, position.WouldCreateCycle(byID, 2, intPtr(4)))
	})

	t.Run("reparent under ancestor is fine", func(t *testing.T) {
		assert.False(t, position.WouldCreateCycle(byID, 4, intPtr(1)))
	})

	t.Run("reparent under sibling branch is fine", func(t *testing.T) {
		extended := map[int]position.Position{}
		for k, v := range byID {
			extended[k] = v
		}
		extended[5] = position.Position{ID: 5, Name: "CFO", ParentID: intPtr(1)}

		assert.False(t, position.WouldCreateCycle(extended, 5, intPtr(3)))
	})

	t.Run("unknown parent terminates walk", func(t *testing.T) {
		assert.False(t, position.WouldCreateCycle(byID, 2, intPtr(99)))
	})

	t.Run("corrupt existing cycle does not loop forever", func(t *testing.T) {
		corrupt := map[int]position.Position{
			10: {ID: 10, ParentID: intPtr(11)},
			11: {ID: 11, ParentID: intPtr(10)},
		}

		assert.False(t, position.WouldCreateCycle(corrupt, 1, intPtr(10)))
	})
}
