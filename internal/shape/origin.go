package shape

import (
	"encoding/json"
	"fmt"
)

// Origin locates an anchor within a shape's bounding box as a fraction
// in [0,1]. The named anchors cover the common cases; arbitrary
// fractions are produced internally when re-anchoring after a vertex
// drag.
type Origin float64

const (
	OriginLeft   Origin = 0
	OriginCenter Origin = 0.5
	OriginRight  Origin = 1

	OriginTop    Origin = 0
	OriginBottom Origin = 1
)

// UnmarshalJSON accepts either a named anchor ("left", "center",
// "right", "top", "bottom") or a raw fraction.
func (o *Origin) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		switch name {
		case "left", "top":
			*o = 0
		case "center":
			*o = OriginCenter
		case "right", "bottom":
			*o = 1
		default:
			return fmt.Errorf("unknown origin anchor %q", name)
		}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid origin: %s", data)
	}
	*o = Origin(f)
	return nil
}
