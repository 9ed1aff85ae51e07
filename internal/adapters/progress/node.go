package progress

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/assetpipe/internal/core/ports"
)

// NodeID is the unique identifier for the progress reporter Graft node.
const NodeID graft.ID = "adapter.progress"

func init() {
	graft.Register(graft.Node[ports.ProgressReporter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProgressReporter, error) {
			return Stdout(), nil
		},
	})
}

// Stdout creates a Reporter drawing on standard output, where the build reports go.
func Stdout() *Reporter {
	return New(os.Stdout, IsInteractive(os.Stdout))
}
