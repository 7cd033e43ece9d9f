package replay

import "github.com/yumosx/anchor/internal/layout"

// container is a scroll container driven by the script.
type container struct {
	bounds    layout.Size
	offset    float64
	inset     layout.Insets
	scrolling bool
	count     int
	engine    *layout.Engine
}

func (c *container) Bounds() layout.Size         { return c.bounds }
func (c *container) ContentOffset() float64      { return c.offset }
func (c *container) ContentInset() layout.Insets { return c.inset }
func (c *container) IsScrolling() bool           { return c.scrolling }
func (c *container) ItemCount() int              { return c.count }

// IsItemVisible maps the item into top-down container coordinates and
// checks it against the viewport.
func (c *container) IsItemVisible(index int) bool {
	if c.engine == nil {
		return false
	}
	attrs, ok := c.engine.Item(index)
	if !ok {
		return false
	}
	h := c.engine.ContentSize().Height
	top := attrs.Top(h)
	bottom := h - attrs.Offset
	return bottom > c.offset && top < c.offset+c.bounds.Height
}
