package component

// Tag names an entity. Every entity gets one at creation.
type Tag struct {
	Name string
}
