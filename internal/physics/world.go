// Package physics is the collision world the combustion system reads:
// colliders with poses in a cp space, and overlap queries against it. The
// space is never stepped; bodies are moved by whoever owns them.
package physics

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/flamegrower/flamegrower/internal/geom"
)

// ColliderKey identifies a collider. Keys are never reused; zero is invalid.
type ColliderKey uint32

// Collider is a shape placed in the world.
type Collider struct {
	Shape geom.Shape
	Pose  geom.Pose
	Layer Layer
	// Static colliders go in the space's static index. Both kinds can be
	// repositioned with SetPose.
	Static bool
	// Density gives the collider a mass. Zero leaves it massless.
	Density float64
}

// Contact is a touching pair. Colliders[0] is the collider asked about.
// Separation is the deepest penetration, negative when overlapping.
type Contact struct {
	Colliders  [2]ColliderKey
	Separation float64
}

type entry struct {
	collider Collider
	body     *cp.Body
	shape    *cp.Shape
}

// World owns every collider and the cp space indexing them.
type World struct {
	space     *cp.Space
	colliders map[ColliderKey]*entry
	nextKey   ColliderKey
	mask      MaskMatrix
}

// NewWorld creates an empty world using mask for ContactsFor.
func NewWorld(mask MaskMatrix) *World {
	return &World{
		space:     cp.NewSpace(),
		colliders: make(map[ColliderKey]*entry, 256),
		mask:      mask,
	}
}

func (w *World) Mask() *MaskMatrix { return &w.mask }

func (w *World) Insert(c Collider) ColliderKey {
	w.nextKey++
	key := w.nextKey

	var body *cp.Body
	if c.Static {
		body = cp.NewStaticBody()
	} else {
		body = cp.NewKinematicBody()
	}
	c.Pose.Place(body)
	w.space.AddBody(body)

	shape := c.Shape.Build(body)
	shape.UserData = key
	shape.SetFilter(layerFilter(c.Layer))
	if c.Density > 0 {
		shape.SetDensity(c.Density)
	}
	w.space.AddShape(shape)

	w.colliders[key] = &entry{collider: c, body: body, shape: shape}
	return key
}

func (w *World) Get(key ColliderKey) (Collider, bool) {
	e, ok := w.colliders[key]
	if !ok {
		return Collider{}, false
	}
	return e.collider, true
}

// Mass is density times the collider's area, zero for massless colliders.
func (w *World) Mass(key ColliderKey) (float64, bool) {
	e, ok := w.colliders[key]
	if !ok {
		return 0, false
	}
	return e.shape.Mass(), true
}

// SetPose moves a collider. The shape is pulled out of the index and
// reinserted so its bounding box is recomputed.
func (w *World) SetPose(key ColliderKey, pose geom.Pose) bool {
	e, ok := w.colliders[key]
	if !ok {
		return false
	}
	w.space.RemoveShape(e.shape)
	pose.Place(e.body)
	w.space.AddShape(e.shape)
	e.collider.Pose = pose
	return true
}

// Remove deletes a collider. Removing an unknown key does nothing.
func (w *World) Remove(key ColliderKey) bool {
	e, ok := w.colliders[key]
	if !ok {
		return false
	}
	w.space.RemoveShape(e.shape)
	w.space.RemoveBody(e.body)
	delete(w.colliders, key)
	return true
}

func (w *World) Len() int { return len(w.colliders) }

// QueryShape returns every collider overlapping shape at pose, in key
// order. The query shape itself is not a collider, so a caller querying
// with its own collider's shape gets its own key back and must skip it.
func (w *World) QueryShape(pose geom.Pose, shape geom.Shape, filter QueryFilter) []ColliderKey {
	body := cp.NewKinematicBody()
	pose.Place(body)
	query := shape.Build(body)
	query.Filter = filter.shapeFilter()

	var hits []ColliderKey
	w.space.ShapeQuery(query, func(s *cp.Shape, _ *cp.ContactPointSet) {
		hits = append(hits, s.UserData.(ColliderKey))
	})
	sort.Slice(hits, func(i, j int) bool { return hits[i] < hits[j] })
	return hits
}

// ContactsFor lists colliders touching key whose layers interact with it.
func (w *World) ContactsFor(key ColliderKey) []Contact {
	self, ok := w.colliders[key]
	if !ok {
		return nil
	}
	var out []Contact
	w.space.ShapeQuery(self.shape, func(s *cp.Shape, points *cp.ContactPointSet) {
		other := s.UserData.(ColliderKey)
		if w.mask.Ignores(self.collider.Layer, w.colliders[other].collider.Layer) {
			return
		}
		out = append(out, Contact{
			Colliders:  [2]ColliderKey{key, other},
			Separation: deepest(points),
		})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Colliders[1] < out[j].Colliders[1] })
	return out
}

func deepest(points *cp.ContactPointSet) float64 {
	d := 0.0
	for i := 0; i < points.Count; i++ {
		d = math.Min(d, points.Points[i].Distance)
	}
	return d
}
