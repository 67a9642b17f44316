package cli

import (
	"image"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/imx500/config"
	"go.viam.com/imx500/logging"
	"go.viam.com/imx500/rimage"
	"go.viam.com/imx500/services/vision/mobilenet"
	"go.viam.com/imx500/vision/objectdetection"
)

// resultsKey is the metadata key detections are published under.
const resultsKey = "object_detect.results"

// DecodeAction is the corresponding Action for 'decode'.
func DecodeAction(c *cli.Context) error {
	logger := logging.Global().Sublogger("decode")

	conf, err := config.Read(c.Path(decodeFlagConfig), logger)
	if err != nil {
		return err
	}
	if err := conf.ApplyLogging(logger); err != nil {
		return err
	}
	stage := c.String(decodeFlagStage)
	for flag, attr := range map[string]string{generalFlagStride: "stride", decodeFlagStream: "stream_width"} {
		if !c.IsSet(flag) {
			continue
		}
		attrs, ok := conf.Stage(stage)
		if !ok {
			return errors.Errorf("no %q stage in config %q", stage, conf.ConfigFilePath)
		}
		attrs[attr] = c.Int(flag)
	}

	var posts []objectdetection.Postprocessor
	if c.IsSet(decodeFlagMinArea) {
		posts = append(posts, objectdetection.NewAreaFilter(c.Int(decodeFlagMinArea)))
	}
	if labels := c.StringSlice(decodeFlagLabels); len(labels) > 0 {
		posts = append(posts, objectdetection.NewLabelFilter(labels...))
	}
	detector, err := mobilenet.NewDetectorFromConfig(conf, stage, logger, posts...)
	if err != nil {
		return err
	}

	var img image.Image
	if imagePath := c.Path(decodeFlagImage); imagePath != "" {
		if img, err = rimage.ReadImageFromFile(imagePath); err != nil {
			return err
		}
	} else if c.Path(decodeFlagOverlay) != "" {
		return errors.Errorf("--%s requires --%s", decodeFlagOverlay, decodeFlagImage)
	}
	width, height := c.Int(decodeFlagWidth), c.Int(decodeFlagHeight)
	if img != nil {
		if width == 0 {
			width = img.Bounds().Dx()
		}
		if height == 0 {
			height = img.Bounds().Dy()
		}
	}

	raw, err := os.ReadFile(c.Path(generalFlagInput))
	if err != nil {
		return errors.Wrap(err, "cannot read output tensor buffer")
	}
	dets, err := detector.Detect(c.Context, raw, width, height)
	if err != nil {
		return err
	}

	if overlayPath := c.Path(decodeFlagOverlay); overlayPath != "" {
		ovImg, err := objectdetection.Overlay(img, dets)
		if err != nil {
			return err
		}
		if err := rimage.WriteImageToFile(overlayPath, ovImg); err != nil {
			return err
		}
	}

	out, err := json.MarshalIndent(map[string][]objectdetection.Result{resultsKey: objectdetection.ToResults(dets)}, "", "  ")
	if err != nil {
		return err
	}
	_, err = c.App.Writer.Write(append(out, '\n'))
	return err
}
