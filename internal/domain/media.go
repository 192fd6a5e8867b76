package domain

// MediaReference points at binary content hosted by the external media
// service. The backend never interprets the content; it only stores and
// serves the reference.
type MediaReference struct {
	ID     string `bson:"id" json:"id"`
	URL    string `bson:"url" json:"url"`
	Size   int64  `bson:"size" json:"size"`
	Format string `bson:"format" json:"format"`
}
