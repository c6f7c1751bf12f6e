package main

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/flamegrower/flamegrower/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tiledJSON = `{
  "layers": [
    {"type": "objectgroup", "name": "terrain", "objects": [
      {"name": "floor", "type": "static_collider", "x": 0, "y": 64, "width": 64, "height": 32},
      {"name": "ledge", "class": "static_capsule_chain", "x": 32, "y": 0,
       "polyline": [{"x": 0, "y": 0}, {"x": 32, "y": 0}],
       "properties": [{"name": "radius", "type": "float", "value": 0.2}]},
      {"name": "note", "type": "comment", "x": 0, "y": 0}
    ]},
    {"type": "group", "layers": [
      {"type": "objectgroup", "objects": [
        {"name": "start", "type": "player_spawn_point", "point": true, "x": 16, "y": 32},
        {"name": "bush", "type": "weed", "x": 0, "y": 0, "width": 32, "height": 32, "ellipse": true,
         "properties": [{"name": "ignited", "type": "bool", "value": true}]},
        {"name": "turned", "type": "flamevine", "x": 0, "y": 0, "width": 64, "height": 32, "rotation": 90,
         "properties": [{"name": "shape", "type": "string", "value": "capsule"}]},
        {"name": "rope", "type": "vine", "x": 0, "y": 0, "polyline": [{"x": 0, "y": 0}]},
        {"name": "barrel", "type": "physics_object", "x": 64, "y": 0, "width": 32, "height": 32, "ellipse": true,
         "properties": [{"name": "flammable", "type": "bool", "value": true},
                        {"name": "density", "type": "float", "value": 2}]}
      ]}
    ]}
  ]
}`

func TestConvert(t *testing.T) {
	var m tiledMap
	require.NoError(t, json.Unmarshal([]byte(tiledJSON), &m))

	scene, skipped := convert(&m, 32)
	assert.Equal(t, 2, skipped, "comment object and one-point vine")
	require.Len(t, scene.Recipes, 6)

	floor := scene.Recipes[0]
	assert.Equal(t, data.RecipeStaticCollider, floor.Type)
	assert.Equal(t, data.PoseDef{X: 1, Y: -2.5}, floor.Pose)
	assert.Equal(t, data.ColliderDef{Shape: "rect", Width: 2, Height: 1}, floor.Collider)

	ledge := scene.Recipes[1]
	assert.Equal(t, []data.Point{{X: 1, Y: 0}, {X: 2, Y: 0}}, ledge.Points)
	assert.Equal(t, 0.2, ledge.Radius)

	start := scene.Recipes[2]
	assert.Equal(t, data.PoseDef{X: 0.5, Y: -1}, start.Pose)

	bush := scene.Recipes[3]
	assert.Equal(t, "circle", bush.Collider.Shape)
	assert.True(t, bush.Ignited)

	turned := scene.Recipes[4]
	assert.Equal(t, "capsule", turned.Collider.Shape)
	assert.InDelta(t, -math.Pi/2, turned.Pose.Rotation, 1e-12)
	// rotated 90° clockwise about the top-left corner: centre at (-16, 32) px
	assert.InDelta(t, -0.5, turned.Pose.X, 1e-12)
	assert.InDelta(t, -1.0, turned.Pose.Y, 1e-12)

	barrel := scene.Recipes[5]
	assert.Equal(t, data.RecipePhysicsObject, barrel.Type)
	assert.True(t, barrel.Flammable)
	assert.False(t, barrel.Ignited)
	assert.Equal(t, 2.0, barrel.Density)
}

func TestRun_WritesLoadableScene(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "map.json")
	out := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(in, []byte(tiledJSON), 0o644))

	require.NoError(t, run([]string{in, out, "32"}))
	scene, err := data.LoadScene(out)
	require.NoError(t, err)
	assert.Len(t, scene.Recipes, 6)

	assert.Error(t, run([]string{in}))
	assert.Error(t, run([]string{in, out, "zero"}))
	assert.Error(t, run([]string{filepath.Join(dir, "missing.json"), out}))
}
