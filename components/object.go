package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

type ObjectData struct {
	*resolv.Object
}

// CenterX and CenterY locate the middle of the body; attack ranges are
// measured center to center.
func (o *ObjectData) CenterX() float64 { return o.X + o.W/2 }
func (o *ObjectData) CenterY() float64 { return o.Y + o.H/2 }

var Object = donburi.NewComponentType[ObjectData]()
