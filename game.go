package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/brawler/game"
	"github.com/milk9111/brawler/prefabs"
	"github.com/milk9111/brawler/render"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	// pixels per world unit
	zoom = 48
)

// Game hosts one brawler session inside ebiten.
type Game struct {
	levelFile string
	debug     bool

	session *game.Session
	loop    *game.Loop
	camera  *orbitCamera
	anim    *hudAnimator
	sounds  *soundBank
	watcher *prefabs.Watcher

	pauseUI *ebitenui.UI
	paused  bool
	quit    bool

	frames int
}

func NewGame(levelFile string, debug, watch bool) (*Game, error) {
	g := &Game{
		levelFile: levelFile,
		debug:     debug,
		camera:    &orbitCamera{},
		anim:      &hudAnimator{debug: debug},
		sounds:    newSoundBank(),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// restart loads every prefab fresh and starts a new session on the level.
func (g *Game) restart() error {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	bombSpec, err := prefabs.LoadBombSpec()
	if err != nil {
		return err
	}
	levelSpec, err := prefabs.LoadLevelSpec(g.levelFile)
	if err != nil {
		return err
	}

	var rules *game.Rules
	if levelSpec.RulesScript != "" {
		rules, err = game.LoadRules(levelSpec.RulesScript)
		if err != nil {
			log.Printf("rules: %v; only the host ends the game", err)
			rules = nil
		}
	}

	g.sounds.Load(bombSpec.AudioSpecs())

	session, err := game.NewSession(game.Options{
		Player:   *playerSpec,
		Bomb:     *bombSpec,
		Level:    *levelSpec,
		Rules:    rules,
		Animator: g.anim,
		Camera:   g.camera,
		Audio:    g.sounds,
		Debug:    g.debug,
	})
	if err != nil {
		return err
	}
	g.session = session
	g.loop = game.NewLoop(session)
	g.paused = false
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++
	g.drainChanges()

	in := ReadInput()
	if in.Pause {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if in.Restart {
		if err := g.restart(); err != nil {
			log.Printf("restart: %v", err)
		}
		return nil
	}

	dt := 1 / float64(ebiten.TPS())
	g.camera.Turn(in.Turn, dt)
	g.session.SetInput(in.Player)
	if in.DropBomb && !g.session.State().IsGameOver() {
		g.session.DropBomb()
	}
	g.loop.Advance(dt)
	return nil
}

// drainChanges applies prefab edits picked up by the watcher.
func (g *Game) drainChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.applyChange(change); err != nil {
				log.Printf("reload %s: %v", change.Name, err)
			} else {
				log.Printf("reloaded %s", change.Name)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) applyChange(change prefabs.Change) error {
	if change.Kind == prefabs.ChangeScript {
		name := strings.TrimPrefix(change.Name, "scripts/")
		if name != g.session.Level().RulesScript {
			return nil
		}
		rules, err := game.LoadRules(name)
		if err != nil {
			return err
		}
		g.session.SetRules(rules)
		return nil
	}

	switch change.Name {
	case prefabs.PlayerFile:
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return err
		}
		return g.session.ApplyPlayerSpec(*spec)
	case prefabs.BombFile:
		spec, err := prefabs.LoadBombSpec()
		if err != nil {
			return err
		}
		if err := g.session.ApplyBombSpec(*spec); err != nil {
			return err
		}
		g.sounds.Load(spec.AudioSpecs())
		return nil
	case g.levelName():
		return g.restart()
	}
	return nil
}

func (g *Game) levelName() string {
	if g.levelFile == "" {
		return prefabs.LevelFile
	}
	return g.levelFile
}

func (g *Game) Draw(screen *ebiten.Image) {
	p := g.session.PlayerBody().Position()
	view := render.View{CenterX: p.X(), CenterY: p.Y(), Zoom: zoom, Width: baseWidth, Height: baseHeight}
	render.DrawSpace(screen, g.session.Physics().Space(), view)
	render.DrawEffects(screen, g.session.World(), view)

	ebitenutil.DebugPrint(screen, g.hud())

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) hud() string {
	ctrl := g.session.Player()
	snap := g.session.Snapshot()
	text := fmt.Sprintf("Frames: %d  FPS: %.1f  Level: %s  Broken: %d\nState: %s  Grounded: %v  Slope: %v  Ground: %s",
		g.frames, ebiten.ActualFPS(), g.session.Level().Name, snap.Broken,
		ctrl.CurrentStateName(), ctrl.IsGrounded, ctrl.IsOnSlope, snap.GroundTag)
	if g.debug {
		text += fmt.Sprintf("\nPos: (%.2f, %.2f, %.2f)  Yaw: %.0f  Anim: %s v=%.2f",
			snap.PlayerX, snap.PlayerY, snap.PlayerZ, g.camera.Yaw(), g.anim.lastTrigger, g.anim.velocity)
	}
	if g.session.State().IsGameOver() {
		text += "\nGAME OVER - press R to restart"
	}
	return text
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.sounds.Close()
}
