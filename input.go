package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/brawler/player"
)

const stickDeadzone = 0.3

// Input is the host's per-frame key snapshot.
type Input struct {
	Player player.Input

	DropBomb bool
	Restart  bool
	Pause    bool
	// Turn is the camera orbit direction, -1, 0 or 1.
	Turn float64
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// ReadInput polls the keyboard, the mouse and the first gamepad.
func ReadInput() Input {
	var in Input

	in.Player.Up = anyPressed(ebiten.KeyW, ebiten.KeyArrowUp)
	in.Player.Down = anyPressed(ebiten.KeyS, ebiten.KeyArrowDown)
	in.Player.Left = anyPressed(ebiten.KeyA, ebiten.KeyArrowLeft)
	in.Player.Right = anyPressed(ebiten.KeyD, ebiten.KeyArrowRight)
	in.Player.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.Player.AttackPressed = inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	in.DropBomb = inpututil.IsKeyJustPressed(ebiten.KeyB)
	in.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR)
	in.Pause = inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		in.Turn--
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		in.Turn++
	}

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return in
	}
	gid := ids[0]
	if !ebiten.IsStandardGamepadLayoutAvailable(gid) {
		return in
	}

	lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
	ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
	in.Player.Left = in.Player.Left || lx < -stickDeadzone
	in.Player.Right = in.Player.Right || lx > stickDeadzone
	// stick up is negative
	in.Player.Up = in.Player.Up || ly < -stickDeadzone
	in.Player.Down = in.Player.Down || ly > stickDeadzone

	in.Player.Jump = in.Player.Jump || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
	in.Player.AttackPressed = in.Player.AttackPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
	in.DropBomb = in.DropBomb || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightTop)
	in.Pause = in.Pause || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)

	rx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
	switch {
	case rx < -stickDeadzone:
		in.Turn = -1
	case rx > stickDeadzone:
		in.Turn = 1
	}
	return in
}
