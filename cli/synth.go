package cli

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/imx500/logging"
	"go.viam.com/imx500/ml/imx500"
)

// sampleCandidates are written when no candidates file is given.
var sampleCandidates = []imx500.SSDCandidate{
	{YMin: 0.1, XMin: 0.15, YMax: 0.6, XMax: 0.45, Class: 0, Score: 0.87},
	{YMin: 0.4, XMin: 0.5, YMax: 0.95, XMax: 0.9, Class: 2, Score: 0.64},
	{YMin: 0.05, XMin: 0.7, YMax: 0.2, XMax: 0.8, Class: 9, Score: 0.21},
}

// SynthAction is the corresponding Action for 'synth'.
func SynthAction(c *cli.Context) error {
	logger := logging.Global().Sublogger("synth")

	candidates := sampleCandidates
	if path := c.Path(synthFlagCands); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(err, "cannot read candidates")
		}
		candidates = nil
		if err := json.Unmarshal(data, &candidates); err != nil {
			return errors.Wrapf(err, "cannot parse candidates %q", path)
		}
	}

	num := c.Int(synthFlagNum)
	if num < 0 {
		num = len(candidates)
	}
	if num > 255 {
		return errors.Errorf("--%s %d does not fit in 8 bits", synthFlagNum, num)
	}
	stride := c.Int(generalFlagStride)
	lineLen := c.Int(synthFlagLineLen)
	if lineLen == 0 {
		lineLen = stride
	}
	if lineLen < 0 || lineLen > 0xFFFF {
		return errors.Errorf("--%s %d does not fit in 16 bits", synthFlagLineLen, lineLen)
	}
	networkID := c.Uint(synthFlagNetworkID)
	if networkID > 0xFFFF {
		return errors.Errorf("--%s %d does not fit in 16 bits", synthFlagNetworkID, networkID)
	}

	fw := &imx500.FrameWriter{
		Stride:     stride,
		MaxLineLen: uint16(lineLen),
		FrameCount: uint8(c.Uint(synthFlagCount)),
	}
	frame, err := fw.WriteSSD(uint16(networkID), candidates, uint8(num))
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Path(generalFlagOutput), frame, 0o600); err != nil {
		return errors.Wrap(err, "cannot write output tensor buffer")
	}
	logger.Infow("wrote synthetic frame", "path", c.Path(generalFlagOutput), "bytes", len(frame),
		"candidates", len(candidates), "numDetections", num)
	return nil
}
