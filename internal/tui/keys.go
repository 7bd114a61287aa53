package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/rushcargo/internal/config"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry maps key names to actions per scope. A scope is the
// screen or popup currently receiving keys.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal        = "global"
	scopeTitle         = "title"
	scopeLogin         = "login"
	scopeSettings      = "settings"
	scopeClientMain    = "client_main"
	scopeLockers       = "client_lockers"
	scopeLockerPkgs    = "client_locker_packages"
	scopeSentPkgs      = "client_sent_packages"
	scopeAdminMain     = "pkgadmin_main"
	scopeGuides        = "pkgadmin_guides"
	scopeGuideInfo     = "pkgadmin_guide_info"
	scopeAddPackage    = "pkgadmin_add_package"
	scopeMessage       = "message"
	scopeOrderMain     = "order_main"
	scopeOrderLocker   = "order_locker"
	scopeOrderBranch   = "order_branch"
	scopeOrderDelivery = "order_delivery"
	scopePayment       = "payment"
)

const (
	actionQuit         Action = "quit"
	actionUp           Action = "up"
	actionDown         Action = "down"
	actionSelect       Action = "select"
	actionBack         Action = "back"
	actionClose        Action = "close"
	actionNextField    Action = "next_field"
	actionNextAction   Action = "next_action"
	actionRunAction    Action = "run_action"
	actionSubmit       Action = "submit"
	actionToggle       Action = "toggle"
	actionOrder        Action = "order"
	actionRoute        Action = "route"
	actionContinue     Action = "continue"
	actionSettingsSave Action = "save"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}
	nav := []string{"up", "k", "down", "j"}

	// Global fallback lookup. Only non-printable keys: editing scopes fall
	// through to it too.
	reg(scopeGlobal, actionQuit, []string{"ctrl+c"}, "quit")

	reg(scopeTitle, actionUp, []string{"up", "k"}, "up")
	reg(scopeTitle, actionDown, []string{"down", "j"}, "down")
	reg(scopeTitle, actionSelect, []string{"enter"}, "select")
	reg(scopeTitle, actionQuit, []string{"q", "esc"}, "quit")

	reg(scopeLogin, actionNextField, []string{"tab", "shift+tab"}, "next field")
	reg(scopeLogin, actionSubmit, []string{"enter"}, "log in")
	reg(scopeLogin, actionBack, []string{"esc"}, "back")

	reg(scopeSettings, actionSettingsSave, []string{"enter"}, "save")
	reg(scopeSettings, actionBack, []string{"esc"}, "back")

	for _, scope := range []string{scopeClientMain, scopeAdminMain} {
		reg(scope, actionNextAction, []string{"tab", "right", "l", "left", "h"}, "next")
		reg(scope, actionRunAction, []string{"enter"}, "open")
		reg(scope, actionBack, []string{"esc"}, "log out")
		reg(scope, actionQuit, []string{"q"}, "quit")
	}

	reg(scopeLockers, actionUp, nav[:2], "up")
	reg(scopeLockers, actionDown, nav[2:], "down")
	reg(scopeLockers, actionSelect, []string{"enter"}, "open locker")
	reg(scopeLockers, actionBack, []string{"esc"}, "back")

	reg(scopeLockerPkgs, actionUp, nav[:2], "up")
	reg(scopeLockerPkgs, actionDown, nav[2:], "down")
	reg(scopeLockerPkgs, actionToggle, []string{"space"}, "select")
	reg(scopeLockerPkgs, actionOrder, []string{"enter", "o"}, "send")
	reg(scopeLockerPkgs, actionBack, []string{"esc"}, "back")

	reg(scopeSentPkgs, actionUp, nav[:2], "up")
	reg(scopeSentPkgs, actionDown, nav[2:], "down")
	reg(scopeSentPkgs, actionSelect, []string{"enter"}, "payment")
	reg(scopeSentPkgs, actionBack, []string{"esc"}, "back")

	reg(scopeGuides, actionUp, nav[:2], "up")
	reg(scopeGuides, actionDown, nav[2:], "down")
	reg(scopeGuides, actionSelect, []string{"enter"}, "details")
	reg(scopeGuides, actionBack, []string{"esc"}, "back")

	reg(scopeGuideInfo, actionBack, []string{"esc", "backspace"}, "back")

	reg(scopeAddPackage, actionNextField, []string{"tab"}, "next field")
	reg(scopeAddPackage, actionNextAction, []string{"shift+tab"}, "next half")
	reg(scopeAddPackage, actionRunAction, []string{"ctrl+o"}, "open half")
	reg(scopeAddPackage, actionRoute, []string{"ctrl+r"}, "route")
	reg(scopeAddPackage, actionSubmit, []string{"ctrl+s"}, "register")
	reg(scopeAddPackage, actionBack, []string{"esc"}, "back")

	reg(scopeMessage, actionClose, []string{"enter", "esc", "space"}, "close")

	reg(scopeOrderMain, actionNextAction, []string{"tab", "down", "j", "up", "k"}, "next")
	reg(scopeOrderMain, actionRunAction, []string{"enter"}, "choose")
	reg(scopeOrderMain, actionClose, []string{"esc"}, "cancel")

	for _, scope := range []string{scopeOrderLocker, scopeOrderBranch} {
		reg(scope, actionSubmit, []string{"enter"}, "check")
		reg(scope, actionClose, []string{"esc"}, "cancel")
	}

	reg(scopeOrderDelivery, actionContinue, []string{"enter"}, "continue")
	reg(scopeOrderDelivery, actionClose, []string{"esc"}, "cancel")

	reg(scopePayment, actionNextAction, []string{"tab"}, "bank")
	reg(scopePayment, actionSubmit, []string{"enter"}, "pay")
	reg(scopePayment, actionClose, []string{"esc"}, "cancel")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 || r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup finds the binding for keyName in scope, falling back to the
// global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.lookupInScope(keyName, scopeGlobal)
	}
	return nil
}

func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		// Single runes keep their case so "Q" and "q" can differ.
		return trimmed
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}

// ApplyOverrides rebinds actions from the config file. An override naming
// an unknown scope or action, or creating a key conflict, is an error.
func (r *KeyRegistry) ApplyOverrides(overrides []config.KeyOverride) error {
	if r == nil || len(overrides) == 0 {
		return nil
	}
	type pair struct {
		scope  string
		action Action
	}
	seenPair := make(map[pair]bool)
	for _, o := range overrides {
		scope := strings.TrimSpace(o.Scope)
		if scope == "" {
			return fmt.Errorf("key override: scope is required")
		}
		action := Action(strings.TrimSpace(o.Action))
		if action == "" {
			return fmt.Errorf("key override scope=%q: action is required", scope)
		}
		keys := normalizeKeyList(o.Keys)
		if len(keys) == 0 {
			return fmt.Errorf("key override scope=%q action=%q: keys are required", scope, action)
		}

		bindings := r.bindingsByScope[scope]
		if len(bindings) == 0 {
			return fmt.Errorf("key override scope=%q action=%q: unknown scope", scope, action)
		}
		var target *Binding
		for _, b := range bindings {
			if b.Action == action {
				target = b
				break
			}
		}
		if target == nil {
			return fmt.Errorf("key override scope=%q action=%q: unknown action in scope", scope, action)
		}
		p := pair{scope: scope, action: action}
		if seenPair[p] {
			return fmt.Errorf("key override scope=%q action=%q: duplicated entry", scope, action)
		}
		seenPair[p] = true
		target.Keys = keys
	}

	r.rebuildIndex()
	for scope, bindings := range r.bindingsByScope {
		seen := make(map[string]Action)
		for _, b := range bindings {
			for _, k := range b.Keys {
				if prev, ok := seen[k]; ok {
					return fmt.Errorf("key override conflict in scope=%q: key %q used by both %q and %q", scope, k, prev, b.Action)
				}
				seen[k] = b.Action
			}
		}
	}
	return nil
}

func (r *KeyRegistry) rebuildIndex() {
	r.indexByScope = make(map[string]map[string]*Binding, len(r.bindingsByScope))
	for scope, bindings := range r.bindingsByScope {
		r.indexByScope[scope] = make(map[string]*Binding)
		for _, b := range bindings {
			for _, k := range b.Keys {
				r.indexByScope[scope][k] = b
			}
		}
	}
}
