package canopy

import (
	"cmp"
	"slices"

	"github.com/yohamta/donburi"
)

// nextCompound returns a tiebreak larger than every one handed out before,
// so later widgets paint above earlier siblings.
func (c *Context) nextCompound() uint32 {
	c.compoundSeq++
	return c.compoundSeq
}

// UpdateChildDepths adds modifier to the depth of every descendant of e and
// forces their layer to layer.
func (c *Context) UpdateChildDepths(e Entity, layer DepthLayer, modifier int) {
	for _, child := range c.transform(e).Children {
		k := c.sortKey(child)
		k.Depth = clampDepth(int(k.Depth) + modifier)
		k.Layer = layer
		c.UpdateChildDepths(child, layer, modifier)
	}
}

func clampDepth(d int) uint16 {
	return uint16(min(max(d, 0), 0xFFFF))
}

// SortKey returns e's sort key.
func (c *Context) SortKey(e Entity) SortKey {
	return *c.sortKey(e)
}

// SetDepth overrides e's depth; the subtree keeps its relative depths.
func (c *Context) SetDepth(e Entity, depth uint16) {
	k := c.sortKey(e)
	if k.Depth == depth {
		return
	}
	delta := int(depth) - int(k.Depth)
	k.Depth = depth
	c.UpdateChildDepths(e, k.Layer, delta)
	c.sortDirty = true
}

// SetDepthLayer moves e and its subtree into layer.
func (c *Context) SetDepthLayer(e Entity, layer DepthLayer) {
	k := c.sortKey(e)
	if k.Layer == layer {
		return
	}
	k.Layer = layer
	c.UpdateChildDepths(e, layer, 0)
	c.sortDirty = true
}

// BringToFront gives e the largest compound depth so it paints above its
// siblings at the same depth.
func (c *Context) BringToFront(e Entity) {
	c.sortKey(e).Compound = c.nextCompound()
	c.sortDirty = true
}

// BuildSortKey rebuilds the sorted widget list if any key changed.
func (c *Context) BuildSortKey() {
	if !c.sortDirty {
		return
	}
	c.sortDirty = false
	c.drawDirty = true

	c.sorted = c.sorted[:0]
	querySorted.Each(c.world, func(en *donburi.Entry) {
		c.sorted = append(c.sorted, en.Entity())
	})
	slices.SortFunc(c.sorted, func(a, b Entity) int {
		ka := SortKeyComponent.Get(c.world.Entry(a)).Key()
		kb := SortKeyComponent.Get(c.world.Entry(b)).Key()
		if r := cmp.Compare(ka, kb); r != 0 {
			return r
		}
		return cmp.Compare(a, b)
	})
}

// Sorted returns widgets in paint order as of the last BuildSortKey. The
// returned slice MUST NOT be mutated by the caller.
func (c *Context) Sorted() []Entity {
	return c.sorted
}
