// Package cli contains the imx500 command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/imx500/config"
	"go.viam.com/imx500/logging"
	"go.viam.com/imx500/ml/imx500"
	"go.viam.com/imx500/services/vision/mobilenet"
)

const (
	generalFlagDebug  = "debug"
	generalFlagInput  = "input"
	generalFlagOutput = "output"
	generalFlagStride = "stride"

	decodeFlagConfig   = "config"
	decodeFlagStage    = "stage"
	decodeFlagWidth    = "width"
	decodeFlagHeight   = "height"
	decodeFlagImage    = "image"
	decodeFlagOverlay  = "overlay"
	decodeFlagMinArea  = "min-area"
	decodeFlagLabels   = "label"
	decodeFlagStream   = "stream-width"
	inspectFlagStats   = "stats"
	synthFlagCands     = "candidates"
	synthFlagNum       = "num-detections"
	synthFlagLineLen   = "max-line-len"
	synthFlagNetworkID = "network-id"
	synthFlagCount     = "frame-count"
)

var app = &cli.App{
	Name:            "imx500",
	Usage:           "decode IMX500 output tensor buffers",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Before: func(c *cli.Context) error {
		// The global logger is registered at init, so the debug flag adjusts its level.
		logger := logging.NewLogger("imx500")
		if c.Bool(generalFlagDebug) {
			logger.SetLevel(logging.DEBUG)
		}
		logging.ReplaceGlobal(logger)
		config.InitLoggingSettings(logger, c.Bool(generalFlagDebug))
		return nil
	},
	Commands: []*cli.Command{
		{
			Name:      "decode",
			Usage:     "decode a raw output tensor buffer into detections",
			UsageText: "imx500 decode --input <file> --config <file> [other options]",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     generalFlagInput,
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "raw output tensor buffer `FILE`",
				},
				&cli.PathFlag{
					Name:     decodeFlagConfig,
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "post-processing config `FILE`",
				},
				&cli.StringFlag{
					Name:  decodeFlagStage,
					Value: mobilenet.StageName,
					Usage: "config stage holding the detector attributes",
				},
				&cli.IntFlag{
					Name:  generalFlagStride,
					Usage: "line stride in bytes, overriding the config",
				},
				&cli.IntFlag{
					Name:  decodeFlagStream,
					Usage: "sensor stream width in pixels the stride is derived from, overriding the config",
				},
				&cli.IntFlag{
					Name:  decodeFlagWidth,
					Usage: "image width in pixels, defaulting to the config or the --image width",
				},
				&cli.IntFlag{
					Name:  decodeFlagHeight,
					Usage: "image height in pixels, defaulting to the config or the --image height",
				},
				&cli.PathFlag{
					Name:  decodeFlagImage,
					Usage: "source image `FILE` the detections refer to",
				},
				&cli.PathFlag{
					Name:  decodeFlagOverlay,
					Usage: "write the source image with detections drawn to `FILE`",
				},
				&cli.IntFlag{
					Name:  decodeFlagMinArea,
					Usage: "drop detections smaller than this many pixels",
				},
				&cli.StringSliceFlag{
					Name:  decodeFlagLabels,
					Usage: "keep only detections with this label, may be repeated",
				},
			},
			Action: DecodeAction,
		},
		{
			Name:      "inspect",
			Usage:     "print the header, tensor descriptors and layout of a raw output tensor buffer",
			UsageText: "imx500 inspect --input <file> [--stride <bytes>] [--stats]",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     generalFlagInput,
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "raw output tensor buffer `FILE`",
				},
				&cli.IntFlag{
					Name:  generalFlagStride,
					Value: imx500.DefaultStride,
					Usage: "line stride in bytes",
				},
				&cli.BoolFlag{
					Name:  inspectFlagStats,
					Usage: "decode every tensor and print value statistics",
				},
			},
			Action: InspectAction,
		},
		{
			Name:      "synth",
			Usage:     "write a synthetic MobileNet SSD output tensor buffer",
			UsageText: "imx500 synth --output <file> [--candidates <file>] [other options]",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     generalFlagOutput,
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "`FILE` to write the buffer to",
				},
				&cli.PathFlag{
					Name:  synthFlagCands,
					Usage: "JSON `FILE` holding up to 10 candidates",
				},
				&cli.IntFlag{
					Name:  synthFlagNum,
					Value: -1,
					Usage: "self-reported detection count, defaults to the number of candidates",
				},
				&cli.IntFlag{
					Name:  generalFlagStride,
					Value: imx500.DefaultStride,
					Usage: "line stride in bytes",
				},
				&cli.IntFlag{
					Name:  synthFlagLineLen,
					Usage: "bytes used in each line, defaults to the stride",
				},
				&cli.UintFlag{
					Name:  synthFlagNetworkID,
					Value: 1,
					Usage: "network id written to the header and schema",
				},
				&cli.UintFlag{
					Name:  synthFlagCount,
					Usage: "frame count written to the header",
				},
			},
			Action: SynthAction,
		},
	},
}

// NewApp returns a new app with the CLI function.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
