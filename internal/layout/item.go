package layout

import "fmt"

// ItemID identifies a layout item for its whole lifetime. IDs are handed out
// by the engine from a monotonically increasing counter and never reused, so
// an ID is the only safe way to follow an item across a structural update.
type ItemID uint64

// NoItem is the zero ItemID. It is never assigned.
const NoItem ItemID = 0

func (id ItemID) String() string {
	return fmt.Sprintf("item#%d", uint64(id))
}

// Item is a single row of the layout. Offset is measured upward from the
// bottom of the content, so index 0 sits at offset 0.
type Item struct {
	ID     ItemID
	Offset float64
	Height float64
}

// MaxY is the top edge of the item.
func (i Item) MaxY() float64 {
	return i.Offset + i.Height
}

func (i Item) attributes(index int, width float64) Attributes {
	return Attributes{
		Index:  index,
		ID:     i.ID,
		Offset: i.Offset,
		Height: i.Height,
		Width:  width,
		// zero is reserved by hosts that treat it as "unset"
		ZIndex: index + 1,
	}
}

// Attributes is the geometry handed to the host for a single item.
type Attributes struct {
	Index  int     `json:"index"`
	ID     ItemID  `json:"id"`
	Offset float64 `json:"offset"`
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	ZIndex int     `json:"z_index"`
}

// MaxY is the top edge of the item in content coordinates.
func (a Attributes) MaxY() float64 {
	return a.Offset + a.Height
}

// Top converts the item's top edge into host coordinates, where 0 is the top
// of the content and values grow downward.
func (a Attributes) Top(contentHeight float64) float64 {
	return contentHeight - a.MaxY()
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Rect is a vertical range in content coordinates (offsets from the bottom).
type Rect struct {
	MinY, MaxY float64
}

// Intersects reports whether an item spanning [offset, maxY] overlaps r.
func (r Rect) Intersects(offset, maxY float64) bool {
	return maxY >= r.MinY && offset <= r.MaxY
}

// Insets are the host's content insets.
type Insets struct {
	Top, Bottom float64
}
