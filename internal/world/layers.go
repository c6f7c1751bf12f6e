package world

import "github.com/flamegrower/flamegrower/internal/physics"

// Collision layers used by scenes.
const (
	LayerPlayer       physics.Layer = 1
	LayerInteractable physics.Layer = 2
)

// GameMask is the layer matrix: the player passes through rope, and
// interactables only ever touch the player.
func GameMask() physics.MaskMatrix {
	var m physics.MaskMatrix
	m.Ignore(LayerPlayer, physics.LayerRope)
	m.IgnoreAll(LayerInteractable)
	m.Unignore(LayerInteractable, LayerPlayer)
	return m
}
