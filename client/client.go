// Package client is the windowed frontend: raylib input polling and drawing.
package client

import (
	"fmt"
	"image/color"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/thrust/config"
	"github.com/pthm-cable/thrust/game"
	"github.com/pthm-cable/thrust/input"
	"github.com/pthm-cable/thrust/renderer"
	"github.com/pthm-cable/thrust/ui"
)

// Client implements game.Frontend on top of a raylib window.
type Client struct {
	game     *game.Game
	controls config.ControlsConfig
	clear    color.RGBA

	textures *renderer.TextureCache
	sprites  *renderer.SpriteRenderer
	hud      *ui.HUD

	font    rl.Font
	hasFont bool
}

// New creates the frontend. The raylib window must already be open.
// The ship texture and, if enabled, the HUD font are loaded up front so a
// missing asset fails before the first frame.
func New(g *game.Game, cfg *config.Config) (*Client, error) {
	textures := renderer.NewTextureCache()
	c := &Client{
		game:     g,
		controls: cfg.Controls,
		clear:    rl.NewColor(cfg.Screen.ClearColor[0], cfg.Screen.ClearColor[1], cfg.Screen.ClearColor[2], 255),
		textures: textures,
		sprites:  renderer.NewSpriteRenderer(g.World(), textures),
		hud:      ui.NewHUD(cfg.Debug.HUD),
	}

	if _, err := textures.Load(cfg.Ship.Texture); err != nil {
		return nil, fmt.Errorf("loading ship texture: %w", err)
	}

	if cfg.Font.Enabled {
		font, err := renderer.LoadFont(cfg.Font.Path, cfg.Font.Size)
		if err != nil {
			textures.Unload()
			return nil, fmt.Errorf("loading font: %w", err)
		}
		c.font = font
		c.hasFont = true
		c.hud.SetFont(font)
	}

	return c, nil
}

// PollInput turns this frame's key transitions into key state updates.
// The quit key and closing the window end the game.
func (c *Client) PollInput(keys *input.KeyState) bool {
	if rl.WindowShouldClose() {
		return true
	}

	for _, kb := range keyTable {
		if rl.IsKeyPressed(kb.code) {
			switch kb.name {
			case c.controls.Quit:
				return true
			case c.controls.ToggleHUD:
				c.hud.Toggle()
			}
			keys.KeyDown(kb.name)
		}
		if rl.IsKeyReleased(kb.code) {
			keys.KeyUp(kb.name)
		}
	}
	return false
}

// Render clears the screen, draws all sprites and the HUD, and presents.
func (c *Client) Render() error {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(c.clear)

	if err := c.sprites.Draw(); err != nil {
		return err
	}

	if c.hud.Visible() {
		c.hud.Draw(c.hudData())
	}
	return nil
}

func (c *Client) hudData() ui.HUDData {
	pos, _, player := c.game.Ship()
	keys := c.game.Keys()

	var held []string
	for _, name := range []string{c.controls.RotateLeft, c.controls.RotateRight, c.controls.Thrust} {
		if keys.IsPressed(name) {
			held = append(held, name)
		}
	}

	return ui.HUDData{
		Frame: c.game.Frame(),
		FPS:   rl.GetFPS(),
		X:     pos.X,
		Y:     pos.Y,
		Rot:   pos.Rot,
		Speed: r2.Norm(player.CurrentSpeed),
		Keys:  strings.Join(held, " "),
	}
}

// Unload releases textures and the font. Call before closing the window.
func (c *Client) Unload() {
	c.textures.Unload()
	if c.hasFont {
		rl.UnloadFont(c.font)
	}
}
