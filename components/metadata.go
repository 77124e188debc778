package components

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID         string  // Unique identifier
	Label      string  // Display name
	Format     string  // Printf format (e.g., "%.2f")
	Min        float64 // Minimum value (for bars)
	Max        float64 // Maximum value (for bars)
	IsCentered bool    // True for centered bar display
	IsBar      bool    // True to render as progress bar
	Group      string  // Logical grouping
}

// PathFieldDescriptors returns metadata for the playback state of a Path.
func PathFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "time", Label: "Time", Format: "%.3f", Min: 0, Max: 1, IsBar: true, Group: "playback"},
		{ID: "duration", Label: "Duration", Format: "%.1fs", Group: "playback"},
		{ID: "direction", Label: "Direction", Format: "%+.0f", Min: -1, Max: 1, IsCentered: true, IsBar: true, Group: "playback"},
		{ID: "points", Label: "Points", Format: "%.0f", Group: "curve"},
		{ID: "length", Label: "Length", Format: "%.1f", Group: "curve"},
	}
}

// BodyFieldDescriptors returns metadata for a watched body.
func BodyFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "x", Label: "X", Format: "%.2f", Group: "position"},
		{ID: "y", Label: "Y", Format: "%.2f", Group: "position"},
		{ID: "z", Label: "Z", Format: "%.2f", Group: "position"},
		{ID: "radius", Label: "Radius", Format: "%.2f", Group: "shape"},
	}
}

// GetPathValue extracts a path field value by ID.
func GetPathValue(p *Path, fieldID string) float64 {
	switch fieldID {
	case "time":
		if p.Animator != nil {
			return p.Animator.Time()
		}
	case "duration":
		if p.Animator != nil {
			return p.Animator.Duration
		}
	case "direction":
		if p.Animator != nil {
			if p.Animator.Forward() {
				return 1
			}
			return -1
		}
	case "points":
		if p.Curve != nil {
			return float64(p.Curve.Len())
		}
	case "length":
		if p.Curve != nil {
			return p.Curve.Length()
		}
	}
	return 0
}

// GetBodyValue extracts a body field value by ID.
func GetBodyValue(pos *Position, body *Body, fieldID string) float64 {
	switch fieldID {
	case "x":
		return pos.X
	case "y":
		return pos.Y
	case "z":
		return pos.Z
	case "radius":
		return body.Radius
	default:
		return 0
	}
}
