package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionFind_Singletons(t *testing.T) {
	uf := newUnionFind(3)
	assert.NotEqual(t, uf.find(0), uf.find(1))
	assert.NotEqual(t, uf.find(1), uf.find(2))
}

func TestUnionFind_Transitive(t *testing.T) {
	uf := newUnionFind(4)
	uf.union(0, 1)
	uf.union(1, 2)

	assert.Equal(t, uf.find(0), uf.find(2))
	assert.NotEqual(t, uf.find(0), uf.find(3))
}

func TestUnionFind_UnionIdempotent(t *testing.T) {
	uf := newUnionFind(2)
	uf.union(0, 1)
	uf.union(0, 1)
	uf.union(1, 0)

	assert.Equal(t, uf.find(0), uf.find(1))
}
