// Package apparams contains the FlatBuffers accessors for the apParams schema block that
// precedes the output tensors in an IMX500 frame.
package apparams

//go:generate flatc --go --go-namespace apparams -o .. apparams.fbs
