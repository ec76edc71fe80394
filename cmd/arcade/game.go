package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/arcade/asset"
	"github.com/lixenwraith/arcade/audio"
	"github.com/lixenwraith/arcade/config"
	"github.com/lixenwraith/arcade/engine"
	"github.com/lixenwraith/arcade/imageset"
	"github.com/lixenwraith/arcade/input"
	"github.com/lixenwraith/arcade/sprite"
	"github.com/lixenwraith/arcade/vmath"
)

const (
	shipSpeed      = 1.5
	shotSpeed      = 3.0
	rockSpawnTicks = 25
	rockFrameTicks = 8
	rockGravity    = 0.004
	sparkTicks     = 10
	startLives     = 3
	rockScore      = 10
)

// minScreen fits the ship, a status line and the game-over text
var minScreen = vmath.V2(64, 32)

type sounds struct {
	shot, hit, boom, crash *audio.Chunk
}

// game is a small rock shooter: steer the ship, shoot falling rocks, avoid being hit
type game struct {
	eng   *engine.Engine
	mixer *audio.Mixer
	log   *zap.Logger
	kb    *input.Keyboard
	rng   *rand.Rand
	sfx   sounds

	shipImages  *imageset.ImageSet
	rockImages  *imageset.ImageSet
	shotImages  *imageset.ImageSet
	sparkImages *imageset.ImageSet

	factory *sprite.Factory[float64]
	ship    *sprite.Sprite[float64]
	rocks   *sprite.Registry[float64]
	shots   *sprite.Registry[float64]
	sparks  *sprite.Registry[float64]

	tick   uint64
	score  int
	lives  int
	paused bool
	over   bool

	bg, border, thrust, ray uint32
}

func newGame(eng *engine.Engine, mixer *audio.Mixer, cfg config.Config, log *zap.Logger, seed uint64) (*game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	size := eng.ScreenSize()
	if size.X < minScreen.X || size.Y < minScreen.Y {
		return nil, fmt.Errorf("screen %dx%d too small, need %dx%d", size.X, size.Y, minScreen.X, minScreen.Y)
	}

	bindings := input.DefaultBindings()
	if err := bindings.Apply(cfg.Keys); err != nil {
		return nil, err
	}

	g := &game{
		eng:     eng,
		mixer:   mixer,
		log:     log,
		kb:      input.NewKeyboard(bindings),
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		factory: sprite.NewFactory[float64](&sprite.IDGenerator{}),
		rocks:   sprite.NewRegistry[float64](32),
		shots:   sprite.NewRegistry[float64](16),
		sparks:  sprite.NewRegistry[float64](16),
		bg:      eng.MapRGB(0, 0, 24),
		border:  eng.MapRGB(64, 64, 160),
		thrust:  eng.MapRGB(255, 128, 0),
		ray:     eng.MapRGB(255, 255, 160),
	}

	loader := eng.Assets()
	var err error
	load := func(name string, frames ...[]string) *imageset.ImageSet {
		if err != nil {
			return nil
		}
		var set *imageset.ImageSet
		set, err = loader.XPMImageSet(name, frames...)
		return set
	}
	g.shipImages = load("ship", asset.ShipXPM)
	g.rockImages = load("rock", asset.RockXPM...)
	g.shotImages = load("shot", asset.ShotXPM)
	g.sparkImages = load("spark", asset.SparkXPM)
	if err != nil {
		g.Close()
		return nil, err
	}

	dir := cfg.Assets.Dir
	g.sfx = sounds{
		shot:  g.sound(filepath.Join(dir, "shot.wav"), func() *audio.Chunk { return mixer.Tone("shot", 880, 60*time.Millisecond, audio.WaveSquare) }),
		hit:   g.sound(filepath.Join(dir, "hit.wav"), func() *audio.Chunk { return mixer.Tone("hit", 220, 40*time.Millisecond, audio.WaveSaw) }),
		boom:  g.sound(filepath.Join(dir, "boom.wav"), func() *audio.Chunk { return mixer.Tone("boom", 90, 250*time.Millisecond, audio.WaveNoise) }),
		crash: g.sound(filepath.Join(dir, "crash.wav"), func() *audio.Chunk { return mixer.Sweep("crash", 440, 110, 400*time.Millisecond) }),
	}

	g.reset()
	return g, nil
}

// sound prefers a WAV file from the asset directory over the synthesized fallback
func (g *game) sound(path string, fallback func() *audio.Chunk) *audio.Chunk {
	c, err := audio.LoadChunk(path, g.mixer.Format())
	if err == nil {
		g.log.Debug("sound loaded", zap.String("path", path), zap.Duration("duration", c.Duration()))
		return c
	}
	return fallback()
}

// Handlers binds the game to the frame loop
func (g *game) Handlers() engine.Handlers {
	return engine.Handlers{
		Key:        g.kb.Handle,
		Tick:       g.step,
		Activation: g.activate,
	}
}

// Close frees the image sets; sprites referencing them must not be drawn afterwards
func (g *game) Close() {
	for _, set := range []*imageset.ImageSet{g.shipImages, g.rockImages, g.shotImages, g.sparkImages} {
		if set != nil {
			_ = set.Close()
		}
	}
	g.rocks.Clear()
	g.shots.Clear()
	g.sparks.Clear()
}

func (g *game) reset() {
	g.rocks.Clear()
	g.shots.Clear()
	g.sparks.Clear()

	size := g.eng.ScreenSize()
	g.ship = g.factory.New(g.shipImages,
		vmath.V2(float64(size.X-g.shipImages.Size().X)/2, float64(size.Y-g.shipImages.Size().Y-2)),
		vmath.Vec2f{}, vmath.Vec2f{},
		vmath.V2(1.0, 1.0), vmath.V2(7.0, 5.0))
	g.score = 0
	g.lives = startLives
	g.over = false
	g.paused = false
	g.log.Debug("game reset", zap.Uint64("ship", g.ship.ID()))
}

func (g *game) activate(active bool) {
	g.log.Debug("activation", zap.Bool("active", active))
	if !active {
		// Shown once by the loop before it blocks
		g.draw()
		g.eng.WriteStringCentered("FOCUS LOST", vmath.V2(g.eng.ScreenSize().X/2, g.eng.ScreenSize().Y/2))
	}
}

func (g *game) step() bool {
	defer g.kb.Remember()

	if g.kb.IsPressed(input.ActionQuit) {
		return false
	}
	if g.over {
		if g.kb.JustPressed(input.ActionFire) {
			g.reset()
		}
		g.draw()
		return true
	}
	if g.kb.JustPressed(input.ActionPause) {
		g.paused = !g.paused
	}
	if !g.paused {
		g.update()
	}
	g.draw()
	return true
}

func (g *game) update() {
	g.tick++

	g.steer()
	g.ship.AddSpeedToPos()
	g.ship.BoundPosition(g.eng.ScreenSize())

	if g.kb.JustPressed(input.ActionFire) {
		g.fire()
	}
	if g.tick%rockSpawnTicks == 0 {
		g.spawnRock()
	}

	g.moveShots()
	g.moveRocks()
	g.collide()

	g.shots.Expire()
	g.sparks.Expire()
}

func (g *game) steer() {
	var v vmath.Vec2f
	if g.kb.IsPressed(input.ActionLeft) {
		v.X -= shipSpeed
	}
	if g.kb.IsPressed(input.ActionRight) {
		v.X += shipSpeed
	}
	if g.kb.IsPressed(input.ActionUp) {
		v.Y -= shipSpeed
	}
	if g.kb.IsPressed(input.ActionDown) {
		v.Y += shipSpeed
	}
	g.ship.Speed = v
}

func (g *game) fire() {
	top := g.ship.CenterPos()
	top.Y = g.ship.Pos.Y - float64(g.shotImages.Size().Y)
	shot := g.factory.NewFullBox(g.shotImages, top, vmath.V2(0, -shotSpeed))
	shot.SetTimeToLive(uint64(float64(g.eng.ScreenSize().Y)/shotSpeed) + 1)
	g.add(g.shots, shot)
	g.play(g.sfx.shot)
}

func (g *game) spawnRock() {
	size := g.eng.ScreenSize()
	w := g.rockImages.Size().X
	pos := vmath.V2(g.rng.Float64()*float64(size.X-w), 0)
	speed := vmath.V2((g.rng.Float64()-0.5)*0.6, 0.3+g.rng.Float64()*0.5)
	rock := g.factory.New(g.rockImages, pos, speed, vmath.V2(0, rockGravity), vmath.V2(1.0, 1.0), vmath.V2(4.0, 4.0))
	// Values[0] holds the remaining hits
	rock.Values = []int64{1 + int64(g.rng.IntN(2))}
	g.add(g.rocks, rock)
}

func (g *game) add(r *sprite.Registry[float64], s *sprite.Sprite[float64]) {
	if err := r.Add(s); err != nil {
		g.log.Error("sprite rejected", zap.Uint64("id", s.ID()), zap.Error(err))
	}
}

func (g *game) moveShots() {
	for _, s := range g.shots.All() {
		s.AddSpeedToPos()
		if s.LowerLeftPos().Y < 0 {
			g.shots.Remove(s.ID())
		}
	}
}

// moveRocks falls rocks under gravity, bouncing them off the side walls
func (g *game) moveRocks() {
	size := g.eng.ScreenSize()
	for _, r := range g.rocks.All() {
		r.AddAccelToSpeed()
		r.AddSpeedToPos()
		if r.Pos.X < 0 || r.LowerRightPos().X > float64(size.X) {
			r.SubSpeedFromPos()
			r.Speed.X = -r.Speed.X
		}
		if r.Pos.Y >= float64(size.Y) {
			g.rocks.Remove(r.ID())
		}
		r.CurrentImage = int(g.tick/rockFrameTicks) % r.NumImages()
	}
}

func (g *game) collide() {
	for _, shot := range g.shots.All() {
		hits := g.rocks.CollisionsWith(shot)
		if len(hits) == 0 {
			continue
		}
		g.shots.Remove(shot.ID())
		rock := hits[0]
		rock.Values[0]--
		if rock.Values[0] > 0 {
			g.play(g.sfx.hit)
			continue
		}
		g.rocks.Remove(rock.ID())
		g.score += rockScore
		g.spark(rock.CenterPos())
		g.play(g.sfx.boom)
	}

	for _, rock := range g.rocks.CollisionsWith(g.ship) {
		g.rocks.Remove(rock.ID())
		g.spark(rock.CenterPos())
		g.lives--
		g.play(g.sfx.crash)
		if g.lives <= 0 {
			g.over = true
			g.log.Info("game over", zap.Int("score", g.score), zap.Uint64("tick", g.tick))
			return
		}
	}
}

func (g *game) spark(center vmath.Vec2f) {
	s := g.factory.NewFullBox(g.sparkImages, vmath.Vec2f{}, vmath.Vec2f{})
	s.SetCenterPos(center)
	s.SetTimeToLive(sparkTicks)
	g.add(g.sparks, s)
}

func (g *game) play(c *audio.Chunk) {
	if _, err := g.mixer.Play(c); err != nil {
		if errors.Is(err, audio.ErrNoFreeChannel) {
			g.log.Debug("sound dropped", zap.String("sound", c.Name))
			return
		}
		g.log.Warn("sound failed", zap.String("sound", c.Name), zap.Error(err))
	}
}

func (g *game) draw() {
	e := g.eng
	size := e.ScreenSize()
	w, h := size.X-1, size.Y-1

	e.Clear(g.bg)
	e.DrawLine(0, 0, w, 0, g.border)
	e.DrawLine(0, h, w, h, g.border)
	e.DrawLine(0, 0, 0, h, g.border)
	e.DrawLine(w, 0, w, h, g.border)

	for _, r := range g.rocks.All() {
		engine.DrawSprite(e, r)
	}
	for _, s := range g.shots.All() {
		engine.DrawSprite(e, s)
	}
	for _, s := range g.sparks.All() {
		g.drawRays(s)
		engine.DrawSprite(e, s)
	}

	if !g.over {
		if g.ship.Speed.Y < 0 {
			tail := vmath.RoundToInt(g.ship.LowerLeftPos())
			mid := tail.X + g.ship.Size().X/2
			e.DrawLine(mid, tail.Y, mid-1, tail.Y+3, g.thrust)
			e.DrawLine(mid, tail.Y, mid+1, tail.Y+3, g.thrust)
		}
		engine.DrawSprite(e, g.ship)
	}

	font := e.FontSize()
	e.WriteString(fmt.Sprintf("%05d", g.score), vmath.V2(2, 2))
	e.WriteStringRightJustified(fmt.Sprintf("x%d", g.lives), vmath.V2(size.X-2, 2))
	switch {
	case g.over:
		e.WriteStringCentered("GAME OVER", vmath.V2(size.X/2, size.Y/2-font.Y/2))
		e.WriteStringXCentered("FIRE", vmath.V2(size.X/2, size.Y/2+font.Y/2))
	case g.paused:
		e.WriteStringCentered("PAUSED", vmath.V2(size.X/2, size.Y/2))
	}
}

// drawRays fans anti-aliased lines out of a spark, shrinking as it expires
func (g *game) drawRays(s *sprite.Sprite[float64]) {
	c := vmath.RoundToInt(s.CenterPos())
	r := int(s.TimeToLive()) + 2
	for _, d := range [...]vmath.Vec2i{{X: 1, Y: 2}, {X: -1, Y: 2}, {X: 2, Y: -1}, {X: -2, Y: -1}} {
		end := c.Add(d.Mul(r / 2))
		g.eng.DrawLine(c.X, c.Y, end.X, end.Y, g.ray)
	}
}
