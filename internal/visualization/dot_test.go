package visualization

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/spikenav/spikenav/internal/snn"
)

func TestRenderDOTStructure(t *testing.T) {
	net := snn.NewNetwork(snn.DefaultParams(), rand.New(rand.NewSource(42)))
	dot := RenderDOT(net)

	if !strings.HasPrefix(dot, "digraph spikenav {") {
		t.Error("missing digraph header")
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Error("missing closing brace")
	}

	for _, cluster := range []string{"cluster_sensor", "cluster_processing", "cluster_filter", "cluster_output"} {
		if !strings.Contains(dot, cluster) {
			t.Errorf("missing %s", cluster)
		}
	}

	// Sensor units carry their positional names; output units their actions.
	for _, label := range []string{`"front"`, `"left"`, `"right"`, `"back"`, `"move_forward"`, `"stop"`} {
		if !strings.Contains(dot, label) {
			t.Errorf("missing node label %s", label)
		}
	}

	// 4*8 + 8*4 + 4*5 synapses.
	if got := strings.Count(dot, " -> "); got != 84 {
		t.Errorf("edge count = %d, want 84", got)
	}
}
