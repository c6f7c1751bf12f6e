package component

// Label names an entity so scripts and tools can find it. Not unique.
type Label struct {
	Name string
}

// SpawnPoint marks where a player enters the scene. Spawn points have no
// collider.
type SpawnPoint struct {
	X, Y float64
}
