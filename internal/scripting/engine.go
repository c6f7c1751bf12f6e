package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/flamegrower/flamegrower/internal/core/ecs"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Host is what scripts may see and do in the running scene.
type Host interface {
	Ignite(id ecs.EntityID) bool
	IgniteArea(x, y, radius float64) int
	Burning(id ecs.EntityID) bool
	Temperature(id ecs.EntityID) (float64, bool)
	BurningEntities() []ecs.EntityID
	Find(label string) []ecs.EntityID
	Contacts(id ecs.EntityID) []ecs.EntityID
	Alive(id ecs.EntityID) bool
	Mass(id ecs.EntityID) (float64, bool)
	// Remove queues id for deletion once the current tick finishes.
	Remove(id ecs.EntityID) bool
}

// Engine wraps a single gopher-lua VM running scene scripts.
// Single-goroutine access only (tick loop).
type Engine struct {
	vm   *lua.LState
	host Host
	log  *zap.Logger
}

// NewEngine creates a Lua engine bound to host and loads every .lua file
// in scriptsDir. A missing directory loads nothing.
func NewEngine(scriptsDir string, host Host, log *zap.Logger) (*Engine, error) {
	e := newEngine(host, log)
	if err := e.loadDir(scriptsDir); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

func newEngine(host Host, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	e := &Engine{vm: vm, host: host, log: log}
	e.registerAPI()
	return e
}

// loadDir loads all .lua files in a directory in name order.
func (e *Engine) loadDir(dir string) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk of Lua in the engine's VM.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// OnTick calls the global on_tick(tick, seconds) if a script defined it.
func (e *Engine) OnTick(tick uint64, seconds float64) {
	e.callHook("on_tick", lua.LNumber(tick), lua.LNumber(seconds))
}

// OnBurnedOut calls the global on_burned_out(id, x, y) if defined.
func (e *Engine) OnBurnedOut(id ecs.EntityID, x, y float64) {
	e.callHook("on_burned_out", entityValue(id), lua.LNumber(x), lua.LNumber(y))
}

// OnIgnited calls the global on_ignited(id, cause) if defined.
func (e *Engine) OnIgnited(id ecs.EntityID, cause string) {
	e.callHook("on_ignited", entityValue(id), lua.LString(cause))
}

// callHook runs an optional global function. Errors are logged and the
// call is dropped.
func (e *Engine) callHook(name string, args ...lua.LValue) {
	fn, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua hook error", zap.String("func", name), zap.Error(err))
	}
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
