// Package mobilenet turns IMX500 MobileNet SSD output tensor buffers into labeled detections.
package mobilenet

import (
	"bufio"
	"context"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"go.viam.com/imx500/config"
	"go.viam.com/imx500/logging"
	"go.viam.com/imx500/ml/imx500"
	"go.viam.com/imx500/vision/objectdetection"
	"go.viam.com/imx500/vision/objectdetection/ssd"
)

// StageName is the config key of the detector's attributes.
const StageName = "imx500_mobilenet"

// DefaultThreshold is the lowest score kept when none is configured.
const DefaultThreshold = float32(0.3)

// Config describes the detector.
type Config struct {
	MaxDetections int      `json:"max_detections"`
	Threshold     *float32 `json:"threshold,omitempty"`
	ClassFile     string   `json:"class_file"`
	// Stride is the line stride of the output tensor buffer. When unset it is derived from
	// StreamWidth, or imx500.DefaultStride without one.
	Stride int `json:"stride,omitempty"`
	// StreamWidth is the pixel width of the sensor stream carrying the output tensors.
	StreamWidth int `json:"stream_width,omitempty"`
	// Width and Height are the image size used when a call does not give one.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.MaxDetections <= 0 {
		return config.NewConfigValidationError(path, errors.New("max_detections must be greater than 0"))
	}
	if cfg.ClassFile == "" {
		return config.NewConfigValidationFieldRequiredError(path, "class_file")
	}
	if cfg.Threshold != nil && (*cfg.Threshold < 0 || *cfg.Threshold > 1) {
		return config.NewConfigValidationError(path, errors.Errorf("threshold %v must be in [0, 1]", *cfg.Threshold))
	}
	if cfg.Stride != 0 && cfg.Stride < imx500.HeaderSize {
		return config.NewConfigValidationError(path, errors.Errorf("stride %d is smaller than the %d byte header",
			cfg.Stride, imx500.HeaderSize))
	}
	if cfg.StreamWidth < 0 {
		return config.NewConfigValidationError(path, errors.New("stream_width cannot be negative"))
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return config.NewConfigValidationError(path, errors.New("width and height cannot be negative"))
	}
	return nil
}

// ThresholdOrDefault returns the configured threshold or DefaultThreshold.
func (cfg Config) ThresholdOrDefault() float32 {
	if cfg.Threshold == nil {
		return DefaultThreshold
	}
	return *cfg.Threshold
}

// StrideOrDefault returns the configured stride, the stride of the configured stream width, or
// imx500.DefaultStride.
func (cfg Config) StrideOrDefault() int {
	switch {
	case cfg.Stride != 0:
		return cfg.Stride
	case cfg.StreamWidth > 0:
		return imx500.StrideForWidth(cfg.StreamWidth)
	default:
		return imx500.DefaultStride
	}
}

// LoadLabels reads a class label file, one label per line. Line n names class n.
func LoadLabels(path string) (labels []string, err error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open class file")
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	labels = []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		labels = append(labels, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "cannot read class file %q", path)
	}
	return labels, nil
}

// Detector decodes output tensor buffers and interprets them as detections.
type Detector struct {
	logger  logging.Logger
	cfg     Config
	decoder *imx500.Decoder
	labels  []string
	post    objectdetection.Postprocessor
}

// NewDetector returns a detector for the given config and labels. The postprocessors run in order
// on every result.
func NewDetector(cfg *Config, labels []string, logger logging.Logger, posts ...objectdetection.Postprocessor) (*Detector, error) {
	if err := cfg.Validate(StageName); err != nil {
		return nil, err
	}
	decoder, err := imx500.NewDecoder(cfg.StrideOrDefault(), logger.Sublogger("decoder"))
	if err != nil {
		return nil, err
	}
	return &Detector{
		logger:  logger,
		cfg:     *cfg,
		decoder: decoder,
		labels:  labels,
		post:    objectdetection.Chain(posts...),
	}, nil
}

// NewDetectorFromConfig builds a detector from the named stage of a config file, loading its
// class file.
func NewDetectorFromConfig(
	conf *config.Config,
	stage string,
	logger logging.Logger,
	posts ...objectdetection.Postprocessor,
) (*Detector, error) {
	var cfg Config
	unused, err := conf.DecodeStage(stage, &cfg)
	if err != nil {
		return nil, err
	}
	if len(unused) > 0 {
		logger.Warnw("ignoring unknown stage attributes", "stage", stage, "attributes", unused)
	}
	if err := cfg.Validate(stage); err != nil {
		return nil, err
	}
	labels, err := LoadLabels(cfg.ClassFile)
	if err != nil {
		return nil, err
	}
	return NewDetector(&cfg, labels, logger, posts...)
}

// Config returns a copy of the detector's config.
func (d *Detector) Config() Config {
	return d.cfg
}

// Decoder returns the underlying output tensor decoder.
func (d *Detector) Decoder() *imx500.Decoder {
	return d.decoder
}

// Detect decodes raw and returns the detections mapped onto a width by height image. A zero width
// or height falls back to the configured size.
func (d *Detector) Detect(ctx context.Context, raw []byte, width, height int) ([]objectdetection.Detection, error) {
	if width == 0 {
		width = d.cfg.Width
	}
	if height == 0 {
		height = d.cfg.Height
	}

	out, err := d.decoder.Decode(ctx, raw)
	if err != nil {
		return nil, errors.Wrap(err, "output tensor decode failed")
	}
	set, err := ssd.Interpret(out.Data, ssd.Params{
		MaxDetections: d.cfg.MaxDetections,
		Threshold:     d.cfg.ThresholdOrDefault(),
		Width:         width,
		Height:        height,
	}, d.logger)
	if err != nil {
		return nil, err
	}

	detections := make([]objectdetection.Detection, 0, set.Count())
	for i := 0; i < set.Count(); i++ {
		classID := set.ClassIDs[i]
		detections = append(detections,
			objectdetection.NewClassDetection(classID, set.Boxes[i].Rect(), float64(set.Scores[i]), d.label(classID)))
	}
	return d.post(detections), nil
}

func (d *Detector) label(classID uint8) string {
	if int(classID) < len(d.labels) {
		return d.labels[classID]
	}
	return strconv.Itoa(int(classID))
}
