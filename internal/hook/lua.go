// Package hook provides veto-hook implementations for the cancellation
// engine beyond the default allow-all: user-authored predicates that decide,
// per key event, whether cancellation processing may touch it.
package hook

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keycancel/internal/input/key"
)

// Hook errors.
var (
	// ErrNoAllowFunction indicates the script does not define the required
	// global allow function.
	ErrNoAllowFunction = errors.New("hook: script does not define allow(key, pressed)")
)

// AllowFunction is the global the user script must define:
//
//	function allow(key, pressed)
//	    return true
//	end
//
// key is the key's canonical name (e.g. "W"), pressed is a boolean.
const AllowFunction = "allow"

// Lua is a veto hook backed by a user Lua script. Evaluation never fails:
// a script error counts as allow and is logged at debug level.
//
// The underlying Lua state is not goroutine-safe. Allow must be called only
// from the engine's synchronous event path, which is single-threaded by
// contract.
type Lua struct {
	l   *lua.LState
	fn  lua.LValue
	log *slog.Logger
}

// LuaOption configures a Lua hook.
type LuaOption func(*Lua)

// WithLogger installs a logger for evaluation failures.
func WithLogger(l *slog.Logger) LuaOption {
	return func(h *Lua) {
		if l != nil {
			h.log = l
		}
	}
}

// NewLua compiles a veto script. The script runs once at construction inside
// a sandboxed state (base, table, string, and math libraries only; no io, os,
// or debug) and must leave a global allow function behind.
func NewLua(script string, opts ...LuaOption) (*Lua, error) {
	h := &Lua{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(h)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("hook: load script: %w", err)
	}

	fn := L.GetGlobal(AllowFunction)
	if _, ok := fn.(*lua.LFunction); !ok {
		L.Close()
		return nil, ErrNoAllowFunction
	}

	h.l = L
	h.fn = fn
	return h, nil
}

// LoadLua compiles a veto script from a file.
func LoadLua(path string, opts ...LuaOption) (*Lua, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hook: read script %s: %w", path, err)
	}
	return NewLua(string(script), opts...)
}

// Allow evaluates the script's allow function for one event. It satisfies
// cancel.AllowFunc as a method value (h.Allow).
func (h *Lua) Allow(k key.Key, pressed bool) bool {
	err := h.l.CallByParam(lua.P{
		Fn:      h.fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(k.String()), lua.LBool(pressed))
	if err != nil {
		h.log.Debug("veto script error, allowing event", "key", k, "error", err)
		return true
	}

	ret := h.l.Get(-1)
	h.l.Pop(1)
	return !lua.LVIsFalse(ret)
}

// Close releases the Lua state. The hook must not be used after Close.
func (h *Lua) Close() {
	h.l.Close()
}

// openSafeLibraries opens only Lua standard libraries that cannot reach the
// file system or the process environment.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}
