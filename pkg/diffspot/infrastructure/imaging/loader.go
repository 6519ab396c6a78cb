package imaging

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"kgeyst.com/diffspot/pkg/common"
	"kgeyst.com/diffspot/pkg/diffspot/domain"
	"kgeyst.com/diffspot/pkg/diffspot/infrastructure/filesystem"
)

// ConfigKeyMaxImageDimension neither side of a normalized image exceeds this bound
const ConfigKeyMaxImageDimension = "maxImageDimension"

const defaultMaxImageDimension = 640

type loader struct {
	tempFilePathProvider *filesystem.TempFilePathProvider
	logger               common.Logger
	maxDimension         uint
}

// NewLoader creates an image loader which decodes PNG/JPEG/GIF files, flattens them
// to RGB and downsizes them with Lanczos resampling so that neither dimension exceeds
// the configured bound (aspect ratio preserved, images are never upscaled). The
// normalized raster is also persisted as a JPEG under the temp directory so that
// exec-based VQA backends can reference it by path.
func NewLoader(tempFilePathProvider *filesystem.TempFilePathProvider, config *common.Config, logger common.Logger) domain.ImageLoader {
	return &loader{
		tempFilePathProvider: tempFilePathProvider,
		logger:               logger,
		maxDimension:         uint(config.GetIntOrDefault(ConfigKeyMaxImageDimension, defaultMaxImageDimension)),
	}
}

func (l *loader) Load(path string, side domain.ImageSide) (*domain.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, path)
		}
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	decoded, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image \"%s\": %w", path, err)
	}
	normalized := toRGB(resize.Thumbnail(l.maxDimension, l.maxDimension, decoded, resize.Lanczos3))
	tempPath := l.tempFilePathProvider.GetTempFilePath(
		fmt.Sprintf("diffspot-%s-%s.jpg", strings.ToLower(string(side)), uuid.NewString()))
	if err := saveJPEG(normalized, tempPath); err != nil {
		return nil, err
	}
	l.logger.Log(fmt.Sprintf("loaded %s image \"%s\" (%dx%d after normalization)",
		side, path, normalized.Bounds().Dx(), normalized.Bounds().Dy()))
	return &domain.Image{
		Side:   side,
		Raster: normalized,
		Path:   tempPath,
	}, nil
}

// toRGB flattens any decoded color model (paletted, YCbCr etc.) to plain RGBA so
// downstream consumers and the persisted JPEG see one consistent representation.
func toRGB(img image.Image) image.Image {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

func saveJPEG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()
	return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
}
