package game

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/brawler/prefabs"
)

// Rules runs the game-over script. The script defines
// game_over := func(world) { ... } returning a bool; world is a read-only
// map built from a Snapshot.
type Rules struct {
	name     string
	compiled *tengo.Compiled
}

// Snapshot is what the rule script sees each tick.
type Snapshot struct {
	PlayerX, PlayerY, PlayerZ float64
	PlayerState               string
	Grounded                  bool
	GroundTag                 string
	// GroundSeconds is how long the player has stood on GroundTag without a break.
	GroundSeconds float64
	KillY         float64
	Elapsed       float64
	Broken        int
}

const rulesDispatchScript = `
__result := game_over(__world)
`

// LoadRules compiles a script from prefabs/scripts.
func LoadRules(name string) (*Rules, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("game: load rules %s: %w", name, err)
	}
	return CompileRules(name, src)
}

func CompileRules(name string, src []byte) (*Rules, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + rulesDispatchScript))
	_ = script.Add("__world", map[string]any{})
	_ = script.Add("log", &tengo.UserFunction{Name: "log", Value: scriptLog(name)})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("game: compile rules %s: %w", name, err)
	}
	return &Rules{name: name, compiled: compiled}, nil
}

func (r *Rules) Name() string {
	if r == nil {
		return ""
	}
	return r.name
}

// GameOver evaluates the script against s. A script that does not return a
// bool is an error.
func (r *Rules) GameOver(s Snapshot) (bool, error) {
	if r == nil || r.compiled == nil {
		return false, nil
	}
	if err := r.compiled.Set("__world", snapshotObject(s)); err != nil {
		return false, err
	}
	if err := r.compiled.Run(); err != nil {
		return false, fmt.Errorf("game: run rules %s: %w", r.name, err)
	}
	result := r.compiled.Get("__result")
	if _, ok := result.Value().(bool); !ok {
		return false, fmt.Errorf("game: rules %s: game_over returned %s, want bool", r.name, result.ValueType())
	}
	return result.Bool(), nil
}

func snapshotObject(s Snapshot) *tengo.ImmutableMap {
	boolObj := func(b bool) tengo.Object {
		if b {
			return tengo.TrueValue
		}
		return tengo.FalseValue
	}
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"player_x":       &tengo.Float{Value: s.PlayerX},
		"player_y":       &tengo.Float{Value: s.PlayerY},
		"player_z":       &tengo.Float{Value: s.PlayerZ},
		"player_state":   &tengo.String{Value: s.PlayerState},
		"grounded":       boolObj(s.Grounded),
		"ground_tag":     &tengo.String{Value: s.GroundTag},
		"ground_seconds": &tengo.Float{Value: s.GroundSeconds},
		"kill_y":         &tengo.Float{Value: s.KillY},
		"elapsed":        &tengo.Float{Value: s.Elapsed},
		"broken":         &tengo.Int{Value: int64(s.Broken)},
	}}
}

func scriptLog(name string) tengo.CallableFunc {
	return func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			if s, ok := tengo.ToString(arg); ok {
				parts = append(parts, s)
			}
		}
		log.Printf("rules: %s: %s", name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}
}
