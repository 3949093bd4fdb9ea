package scene

import (
	"errors"
	"fmt"
	"image"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/isocore/internal/depth"
	"github.com/Faultbox/isocore/pkg/geom"
)

// Config holds scene construction settings.
type Config struct {
	TileSize   int // Tile size in virtual world units
	TileMaxZ   int // Highest tile height, used to keep projected coordinates positive
	ViewportW  int
	ViewportH  int
	MaxSprites int // Sprite candidate pool size
	MaxTexts   int // Text candidate pool size
	Debug      bool
}

// Validate checks the configuration for unusable values.
func (c Config) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	if c.TileMaxZ < 0 {
		return fmt.Errorf("tile max z must not be negative, got %d", c.TileMaxZ)
	}
	if c.ViewportW <= 0 || c.ViewportH <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", c.ViewportW, c.ViewportH)
	}
	if c.MaxSprites < 0 || c.MaxTexts < 0 {
		return fmt.Errorf("invalid pool sizes: %d sprites, %d texts", c.MaxSprites, c.MaxTexts)
	}
	return nil
}

type spriteCandidate struct {
	obj    SpriteObject
	sprite *Sprite
	image  image.Image
	pos    geom.Point // top-left corner on screen
	box    depth.Box
}

type textCandidate struct {
	obj    TextObject
	pos    geom.Point
	bounds geom.Point
}

// Stats summarizes the current frame.
type Stats struct {
	Sprites int
	Texts   int
	Dropped int // candidates rejected because a pool was full
}

// Manager owns the candidate pools of one active scene. Pools are
// allocated once and reused every frame; a frame is Start, any number of
// Insert calls, then Draw. Manager is not safe for concurrent use.
type Manager struct {
	cfg       Config
	drawer    Drawer
	projector geom.Projector
	log       *zap.Logger

	sprites  []spriteCandidate
	nSprites int
	texts    []textCandidate
	nTexts   int
	dropped  int

	offset geom.Point
}

// New creates a scene manager. A nil logger disables diagnostics.
func New(cfg Config, drawer Drawer, projector geom.Projector, log *zap.Logger) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene config: %w", err)
	}
	if drawer == nil || projector == nil {
		return nil, errors.New("scene needs a drawer and a projector")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		cfg:       cfg,
		drawer:    drawer,
		projector: projector,
		log:       log,
		sprites:   make([]spriteCandidate, cfg.MaxSprites),
		texts:     make([]textCandidate, cfg.MaxTexts),
	}, nil
}

// Start begins a new frame seen through a viewport at offset.
func (m *Manager) Start(offset geom.Point) {
	m.nSprites, m.nTexts, m.dropped = 0, 0, 0
	m.offset = offset
}

// Stats returns the candidate counts of the current frame.
func (m *Manager) Stats() Stats {
	return Stats{Sprites: m.nSprites, Texts: m.nTexts, Dropped: m.dropped}
}

// SetDebug toggles the bounding box and draw order overlay.
func (m *Manager) SetDebug(enabled bool) {
	m.cfg.Debug = enabled
}

// ToScreen projects a virtual position into viewport coordinates of the
// current frame.
func (m *Manager) ToScreen(v geom.Point3) geom.Point {
	shift := m.cfg.TileMaxZ * m.cfg.TileSize
	v.X += shift
	v.Y += shift
	return m.projector.ToReal(v).Sub(m.offset)
}

// outside reports whether a w x h rectangle at (x, y) misses the viewport.
func (m *Manager) outside(x, y, w, h int) bool {
	return y+h < 0 || y >= m.cfg.ViewportH || x+w < 0 || x >= m.cfg.ViewportW
}

// Insert offers obj to the current frame. Objects that are invisible,
// already selected, off screen or without a sprite are skipped. When the
// matching pool is full the object is dropped and a warning is logged.
// Insert reports whether obj became a candidate.
func (m *Manager) Insert(obj Object) bool {
	if obj.Selected() || !obj.Visible() {
		return false
	}
	switch o := obj.(type) {
	case SpriteObject:
		return m.insertSprite(o)
	case TextObject:
		return m.insertText(o)
	default:
		return false
	}
}

func (m *Manager) insertSprite(obj SpriteObject) bool {
	sprite, ok := m.drawer.ObjectSprite(obj)
	if !ok || sprite == nil || sprite.Image == nil {
		m.log.Debug("no sprite for object", zap.String("sprite", obj.SpriteKey()))
		return false
	}

	pos := m.ToScreen(obj.Position())
	pos.X -= sprite.AnchorX
	pos.Y -= sprite.AnchorY

	size := sprite.Image.Bounds().Size()
	if m.outside(pos.X, pos.Y, size.X, size.Y) {
		return false
	}

	if m.nSprites >= len(m.sprites) {
		m.dropped++
		m.log.Warn("sprite pool exhausted, object dropped from scene",
			zap.Int("max_sprites", len(m.sprites)),
			zap.String("sprite", obj.SpriteKey()))
		return false
	}

	obj.SetSelected(true)
	c := &m.sprites[m.nSprites]
	c.obj = obj
	c.sprite = sprite
	c.image = sprite.Image
	c.pos = pos
	c.box = boundingBox(obj.Position(), sprite)
	m.nSprites++
	return true
}

func (m *Manager) insertText(obj TextObject) bool {
	bounds := m.drawer.StringBounds(obj.Text(), obj.Face())

	pos := m.ToScreen(obj.Position())
	pos.X -= bounds.X >> 1
	pos.Y -= bounds.Y >> 1

	if m.outside(pos.X, pos.Y, bounds.X, bounds.Y) {
		return false
	}

	if m.nTexts >= len(m.texts) {
		m.dropped++
		m.log.Warn("text pool exhausted, object dropped from scene",
			zap.Int("max_texts", len(m.texts)),
			zap.String("text", obj.Text()))
		return false
	}

	obj.SetSelected(true)
	c := &m.texts[m.nTexts]
	c.obj = obj
	c.pos = pos
	c.bounds = bounds
	m.nTexts++
	return true
}

// boundingBox places the sprite box at the object position. The offset
// marks the max x, max y, min z corner.
func boundingBox(p geom.Point3, s *Sprite) depth.Box {
	var b depth.Box
	b.MaxX = p.X + s.BoxOffsetX
	b.MinX = b.MaxX - s.BoxW
	b.MaxY = p.Y + s.BoxOffsetY
	b.MinY = b.MaxY - s.BoxH
	b.MinZ = p.Z + s.BoxOffsetZ
	b.MaxZ = b.MinZ + s.BoxL
	return b
}

// Draw orders the sprite candidates back to front and draws them, then
// draws the text candidates on top. Selected flags are cleared.
func (m *Manager) Draw() {
	sprites := m.sprites[:m.nSprites]
	depth.Sort(sprites, func(c *spriteCandidate) depth.Box { return c.box })

	for i := range sprites {
		c := &sprites[i]
		c.obj.SetSelected(false)
		m.drawer.DrawImage(c.pos.X, c.pos.Y, c.image)
		if m.cfg.Debug {
			m.drawBoundingBox(c)
			label := m.ToScreen(c.obj.Position())
			m.drawer.DrawLabel(label.X, label.Y, strconv.Itoa(i))
		}
	}

	for i := range m.texts[:m.nTexts] {
		c := &m.texts[i]
		c.obj.SetSelected(false)
		m.drawer.DrawText(c.pos.X, c.pos.Y, c.obj.Text(), c.obj.Face(), c.obj.Color())
		if m.cfg.Debug {
			m.drawTextBounds(c)
		}
	}

	m.log.Debug("scene drawn",
		zap.Int("sprites", m.nSprites),
		zap.Int("texts", m.nTexts),
		zap.Int("dropped", m.dropped))
}

// SpriteOrder returns the sprite objects of the frame in their current order.
// After Draw this is the back-to-front draw order.
func (m *Manager) SpriteOrder() []SpriteObject {
	out := make([]SpriteObject, m.nSprites)
	for i := range out {
		out[i] = m.sprites[i].obj
	}
	return out
}
