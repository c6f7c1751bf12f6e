package scripting

import (
	"github.com/flamegrower/flamegrower/internal/core/ecs"
	lua "github.com/yuin/gopher-lua"
)

// Entity IDs cross into Lua as plain numbers. Generations stay far below
// 2^21, so the packed ID is exact in a float64.
func entityValue(id ecs.EntityID) lua.LNumber { return lua.LNumber(uint64(id)) }

func checkEntity(L *lua.LState, n int) ecs.EntityID {
	return ecs.EntityID(uint64(L.CheckNumber(n)))
}

func entityList(L *lua.LState, ids []ecs.EntityID) *lua.LTable {
	t := L.CreateTable(len(ids), 0)
	for _, id := range ids {
		t.Append(entityValue(id))
	}
	return t
}

// registerAPI installs the fire and world tables.
func (e *Engine) registerAPI() {
	L := e.vm

	fireMod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"ignite": func(L *lua.LState) int {
			L.Push(lua.LBool(e.host.Ignite(checkEntity(L, 1))))
			return 1
		},
		"ignite_area": func(L *lua.LState) int {
			n := e.host.IgniteArea(float64(L.CheckNumber(1)), float64(L.CheckNumber(2)), float64(L.CheckNumber(3)))
			L.Push(lua.LNumber(n))
			return 1
		},
		"is_burning": func(L *lua.LState) int {
			L.Push(lua.LBool(e.host.Burning(checkEntity(L, 1))))
			return 1
		},
		"burning": func(L *lua.LState) int {
			L.Push(entityList(L, e.host.BurningEntities()))
			return 1
		},
		"temperature": func(L *lua.LState) int {
			t, ok := e.host.Temperature(checkEntity(L, 1))
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(lua.LNumber(t))
			return 1
		},
	})
	L.SetGlobal("fire", fireMod)

	worldMod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"find": func(L *lua.LState) int {
			L.Push(entityList(L, e.host.Find(L.CheckString(1))))
			return 1
		},
		"contacts": func(L *lua.LState) int {
			L.Push(entityList(L, e.host.Contacts(checkEntity(L, 1))))
			return 1
		},
		"alive": func(L *lua.LState) int {
			L.Push(lua.LBool(e.host.Alive(checkEntity(L, 1))))
			return 1
		},
		"mass": func(L *lua.LState) int {
			m, ok := e.host.Mass(checkEntity(L, 1))
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(lua.LNumber(m))
			return 1
		},
		"remove": func(L *lua.LState) int {
			L.Push(lua.LBool(e.host.Remove(checkEntity(L, 1))))
			return 1
		},
	})
	L.SetGlobal("world", worldMod)
}
