package scripting

import (
	"bufio"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
	"go.uber.org/zap"
)

// Engine wraps the single gopher-lua VM shared by every script in the
// process. It is created by the composition root, handed to scenes, and
// closed when the application exits. Single-goroutine access only.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger

	// compiled chunks keyed by path; survives script unloads.
	protos map[string]*lua.FunctionProto
}

// NewEngine creates the VM with the standard libraries and the engine's
// global bindings.
func NewEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:     vm,
		log:    log,
		protos: make(map[string]*lua.FunctionProto),
	}
	e.registerGlobals()
	e.registerEntityType()
	return e
}

// Close releases the VM. The engine must not be used afterwards.
func (e *Engine) Close() {
	e.vm.Close()
}

// State exposes the VM for bindings and tests.
func (e *Engine) State() *lua.LState { return e.vm }

// Compile returns the compiled chunk for path, reading and parsing the
// file only the first time.
func (e *Engine) Compile(path string) (*lua.FunctionProto, error) {
	if proto, ok := e.protos[path]; ok {
		e.log.Debug("lua script cache hit", zap.String("file", path))
		return proto, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script %s: %w", path, err)
	}
	defer f.Close()

	chunk, err := parse.Parse(bufio.NewReader(f), path)
	if err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return nil, fmt.Errorf("compile script %s: %w", path, err)
	}
	e.protos[path] = proto
	e.log.Debug("loaded lua script", zap.String("file", path))
	return proto, nil
}

// Run executes the chunk at path and returns its first return value.
func (e *Engine) Run(path string) (lua.LValue, error) {
	proto, err := e.Compile(path)
	if err != nil {
		return lua.LNil, err
	}
	fn := e.vm.NewFunctionFromProto(proto)
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}); err != nil {
		return lua.LNil, fmt.Errorf("execute script %s: %w", path, err)
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return result, nil
}

// Call invokes fn in protected mode, discarding results. Lua errors come
// back as a Go error instead of unwinding the caller.
func (e *Engine) Call(fn *lua.LFunction, args ...lua.LValue) error {
	return e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...)
}

// CachedScripts reports how many distinct script files are compiled.
func (e *Engine) CachedScripts() int { return len(e.protos) }
