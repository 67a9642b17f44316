package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/imx500/logging"
	"go.viam.com/imx500/ml"
	"go.viam.com/imx500/ml/imx500"
)

// InspectAction is the corresponding Action for 'inspect'.
func InspectAction(c *cli.Context) error {
	logger := logging.Global().Sublogger("inspect")
	raw, err := os.ReadFile(c.Path(generalFlagInput))
	if err != nil {
		return errors.Wrap(err, "cannot read output tensor buffer")
	}
	stride := c.Int(generalFlagStride)
	out := c.App.Writer

	hdr, schema, err := imx500.ParseHeader(raw, stride)
	if err != nil && !errors.Is(err, imx500.ErrInvalidFrame) {
		return err
	}
	printHeader(out, hdr, stride)
	if err != nil {
		return err
	}

	ids, err := imx500.NetworkIDs(schema)
	if err != nil {
		return err
	}
	printNetworks(out, ids, hdr.NetworkID)

	network, err := imx500.ParseNetwork(schema, hdr.NetworkID)
	if err != nil {
		return err
	}
	if network == nil {
		return errors.Errorf("network %d is not described by the apParams", hdr.NetworkID)
	}
	descs := network.OutputDescriptors
	printDescriptors(out, descs)

	plan, err := imx500.PlanTensors(descs, hdr.MaxLineLen)
	if err != nil {
		return err
	}
	printLayout(out, descs, plan)
	if plan.TotalElements != imx500.SSDRecordElements {
		logger.Warnw("output tensors do not form the MobileNet SSD record",
			"elements", plan.TotalElements, "expected", imx500.SSDRecordElements)
	}

	if !c.Bool(inspectFlagStats) {
		return nil
	}
	bodyStart := imx500.SchemaLines(hdr, stride) * stride
	if bodyStart > len(raw) {
		return errors.Wrapf(imx500.ErrShortBuffer, "tensor bodies start at byte %d of a %d byte buffer", bodyStart, len(raw))
	}
	data, err := imx500.DecodeBodies(c.Context, raw[bodyStart:], stride, hdr, descs, plan)
	if err != nil {
		return err
	}
	decoded := &imx500.Output{Header: hdr, Descriptors: descs, Plan: plan, Data: data}
	return printStats(out, decoded.Tensors())
}

func printHeader(out io.Writer, hdr imx500.Header, stride int) {
	t := table.NewWriter()
	t.SetTitle("Header")
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"Frame valid", hdr.FrameValid},
		{"Frame count", hdr.FrameCount},
		{"Max line length", hdr.MaxLineLen},
		{"Stride", stride},
		{"apParams size", hdr.SchemaSize},
		{"Network id", hdr.NetworkID},
		{"Tensor type", hdr.TensorType},
	})
	fmt.Fprintln(out, t.Render())
}

func printNetworks(out io.Writer, ids map[uint16]string, current uint16) {
	sorted := make([]uint16, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	t := table.NewWriter()
	t.SetTitle("Networks")
	t.AppendHeader(table.Row{"Id", "Type", "Selected"})
	for _, id := range sorted {
		t.AppendRow(table.Row{id, ids[id], id == current})
	}
	fmt.Fprintln(out, t.Render())
}

func printDescriptors(out io.Writer, descs []imx500.TensorDescriptor) {
	t := table.NewWriter()
	t.SetTitle("Output tensors")
	t.AppendHeader(table.Row{"#", "Name", "Shape", "Serialization", "Bits", "Format", "Shift", "Scale"})
	for i := range descs {
		desc := &descs[i]
		order := make([]string, 0, len(desc.Dims))
		for _, dim := range desc.Dims {
			order = append(order, fmt.Sprint(dim.SerializationIndex))
		}
		t.AppendRow(table.Row{
			desc.ID, desc.Name, fmt.Sprint(desc.Shape()), strings.Join(order, ","),
			desc.BitsPerElement, desc.Format, desc.Shift, desc.Scale,
		})
	}
	fmt.Fprintln(out, t.Render())
}

func printLayout(out io.Writer, descs []imx500.TensorDescriptor, plan *imx500.LayoutPlan) {
	t := table.NewWriter()
	t.SetTitle("Layout")
	t.AppendHeader(table.Row{"Name", "Elements", "Offset", "First line", "Lines"})
	for i, layout := range plan.Tensors {
		t.AppendRow(table.Row{descs[i].Name, layout.ElementCount, layout.Offset, layout.FirstLine, layout.LineCount})
	}
	t.AppendFooter(table.Row{"Total", plan.TotalElements, "", "", plan.TotalLines()})
	fmt.Fprintln(out, t.Render())
}

func printStats(out io.Writer, tensors ml.Tensors) error {
	t := table.NewWriter()
	t.SetTitle("Values")
	t.AppendHeader(table.Row{"Name", "Count", "Min", "Max", "Mean", "Median", "Std dev"})
	for _, name := range tensors.Names() {
		data, err := tensors.Lookup(name)
		if err != nil {
			return err
		}
		summary, err := ml.Summarize(data)
		if err != nil {
			return errors.Wrapf(err, "tensor %q", name)
		}
		t.AppendRow(table.Row{
			name, summary.Count,
			fmt.Sprintf("%.4f", summary.Min), fmt.Sprintf("%.4f", summary.Max),
			fmt.Sprintf("%.4f", summary.Mean), fmt.Sprintf("%.4f", summary.Median),
			fmt.Sprintf("%.4f", summary.StdDev),
		})
	}
	fmt.Fprintln(out, t.Render())
	return nil
}
