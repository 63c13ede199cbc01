package component

import lua "github.com/yuin/gopher-lua"

// NativeScript binds a compiled behavior type to an entity. Instance is
// created on runtime start and released on runtime stop.
type NativeScript struct {
	Instance any

	Instantiate   func() any
	DestroyScript func(*NativeScript)
}

// Bind makes n instantiate a fresh *T.
func Bind[T any](n *NativeScript) {
	n.Instantiate = func() any { return new(T) }
	n.DestroyScript = func(n *NativeScript) { n.Instance = nil }
}

// BindFunc is Bind for behaviors that need constructor arguments.
func BindFunc(n *NativeScript, factory func() any) {
	n.Instantiate = factory
	n.DestroyScript = func(n *NativeScript) { n.Instance = nil }
}

// LuaScript binds a Lua source file to an entity. The instance and hook
// references are filled by the scripting manager on runtime start.
type LuaScript struct {
	Path string

	Instance         *lua.LTable
	OnCreate         *lua.LFunction
	OnUpdate         *lua.LFunction
	OnDestroy        *lua.LFunction
	OnCollisionEnter *lua.LFunction
	OnCollisionExit  *lua.LFunction
	OnTriggerEnter   *lua.LFunction
	OnTriggerExit    *lua.LFunction

	Loaded bool
}

func NewLuaScript(path string) LuaScript {
	return LuaScript{Path: path}
}

// Unload drops the instance and every cached hook.
func (s *LuaScript) Unload() {
	path := s.Path
	*s = LuaScript{Path: path}
}
