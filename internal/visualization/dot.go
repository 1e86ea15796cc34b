// Package visualization renders the network topology and training metrics
// in shareable output formats.
package visualization

import (
	"fmt"
	"strings"

	"github.com/spikenav/spikenav/internal/models"
	"github.com/spikenav/spikenav/internal/snn"
)

// layerColors maps layer names to DOT fill colors.
var layerColors = map[string]string{
	"sensor":     "steelblue",
	"processing": "mediumseagreen",
	"filter":     "goldenrod",
	"output":     "tomato",
}

// sensorLabels name the sensor units in layer order.
var sensorLabels = [snn.SensorLayerSize]string{"front", "left", "right", "back"}

// RenderDOT produces a Graphviz DOT representation of the network: one
// cluster per layer, every synapse as an edge with its weight as both
// tooltip and pen width. Heavier synapses draw thicker.
func RenderDOT(net *snn.Network) string {
	var b strings.Builder
	b.WriteString("digraph spikenav {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=circle, style=filled, fontname=\"Helvetica\", fontsize=10];\n")
	b.WriteString("  edge [arrowsize=0.4];\n\n")

	writeLayer(&b, "sensor", net.SensorLayer(), func(i int) string { return sensorLabels[i] })
	writeLayer(&b, "processing", net.ProcessingLayer(), func(i int) string { return fmt.Sprintf("p%d", i) })
	writeLayer(&b, "filter", net.FilterLayer(), func(i int) string { return fmt.Sprintf("f%d", i) })
	writeLayer(&b, "output", net.OutputLayer(), func(i int) string { return models.Action(i).String() })

	writeEdges(&b, "sensor", "processing", net.SensorToProcessing())
	writeEdges(&b, "processing", "filter", net.ProcessingToFilter())
	writeEdges(&b, "filter", "output", net.FilterToOutput())

	b.WriteString("}\n")
	return b.String()
}

// writeLayer emits one cluster with a node per unit, annotated with the
// unit's threshold.
func writeLayer(b *strings.Builder, name string, layer *snn.Layer, label func(int) string) {
	fmt.Fprintf(b, "  subgraph cluster_%s {\n", name)
	fmt.Fprintf(b, "    label=%q;\n", name)
	color := layerColors[name]
	for i := 0; i < layer.Size(); i++ {
		fmt.Fprintf(b, "    %q [label=%q, fillcolor=%q, tooltip=\"threshold=%.2f\"];\n",
			nodeID(name, i), label(i), color, layer.Neuron(i).Threshold)
	}
	b.WriteString("  }\n")
}

// writeEdges emits one edge per matrix entry, thickness scaled by weight.
func writeEdges(b *strings.Builder, src, dst string, m *snn.WeightMatrix) {
	b.WriteString("\n")
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			w := m.At(i, j)
			fmt.Fprintf(b, "  %q -> %q [penwidth=%.2f, tooltip=\"w=%.3f\"];\n",
				nodeID(src, i), nodeID(dst, j), 0.5+w, w)
		}
	}
}

func nodeID(layer string, i int) string {
	return fmt.Sprintf("%s_%d", layer, i)
}
