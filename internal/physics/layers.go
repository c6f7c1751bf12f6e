package physics

import "github.com/jakecoffman/cp"

// Layer is a collision layer index in [0, MaxLayers).
type Layer uint8

const MaxLayers = 64

const (
	LayerDefault Layer = 0
	// LayerRope holds rope particles. Games usually ignore it against the
	// player so the player can pass through their own vine.
	LayerRope Layer = MaxLayers - 1
)

// LayerMask is a set of layers.
type LayerMask uint64

func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << l
	}
	return m
}

func (m LayerMask) Has(l Layer) bool { return m&(1<<l) != 0 }

// MaskMatrix records which layer pairs do not interact. Pairs are
// symmetric: ignoring (a, b) also ignores (b, a).
type MaskMatrix struct {
	ignored [MaxLayers]LayerMask
}

func (m *MaskMatrix) Ignore(a, b Layer) {
	m.ignored[a] |= 1 << b
	m.ignored[b] |= 1 << a
}

func (m *MaskMatrix) Unignore(a, b Layer) {
	m.ignored[a] &^= 1 << b
	m.ignored[b] &^= 1 << a
}

// IgnoreAll makes layer a ignore every layer including itself.
func (m *MaskMatrix) IgnoreAll(a Layer) {
	for b := 0; b < MaxLayers; b++ {
		m.Ignore(a, Layer(b))
	}
}

func (m *MaskMatrix) Ignores(a, b Layer) bool {
	return m.ignored[a].Has(b)
}

// QueryFilter narrows a shape query. The zero value matches everything.
type QueryFilter struct {
	IgnoreLayers LayerMask
}

func (f QueryFilter) shapeFilter() cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: cp.ALL_CATEGORIES,
		Mask:       ^uint(f.IgnoreLayers),
	}
}

// layerFilter puts a collider in its layer's category. Colliders accept
// every category; the mask matrix is applied by ContactsFor, since fire
// queries must see every layer.
func layerFilter(l Layer) cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(1) << l,
		Mask:       cp.ALL_CATEGORIES,
	}
}
