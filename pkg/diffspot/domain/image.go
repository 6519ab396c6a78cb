package domain

import "image"

// ImageSide tags which of the two scene images a handle refers to.
type ImageSide string

const (
	ImageSideLeft  = ImageSide("LEFT")
	ImageSideRight = ImageSide("RIGHT")
)

// Image is a decoded scene image normalized for VQA: RGB, neither dimension above
// the configured bound. Read-only for the duration of a comparison.
type Image struct {
	Side   ImageSide
	Raster image.Image
	// Path points to the normalized copy persisted on disk, for backends which can
	// only consume image files.
	Path string
}

type ImageLoader interface {
	Load(path string, side ImageSide) (*Image, error)
}
