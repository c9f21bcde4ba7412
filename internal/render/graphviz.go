package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// ErrLayoutUnavailable reports that the external layout engine could not
// produce the image: missing binary, non-zero exit, timeout, or no output
// file. Callers fall back to the hand-built SVG renderer.
var ErrLayoutUnavailable = errors.New("layout engine unavailable")

// DefaultGraphvizTimeout bounds one layout-engine invocation.
const DefaultGraphvizTimeout = 20 * time.Second

// Graphviz invokes the external dot binary.
type Graphviz struct {
	// BinPath is the dot executable; "dot" resolves through PATH.
	BinPath string
	// Timeout bounds one invocation; zero means DefaultGraphvizTimeout.
	Timeout time.Duration
}

// Render feeds DOT source to the layout engine and writes the rasterized or
// vector output to outPath. format is a dot -T value (png, svg). Failure is
// detected by exit status and by checking the output file exists and is
// non-empty.
func (g *Graphviz) Render(ctx context.Context, dotSrc []byte, format, outPath string) error {
	bin := g.BinPath
	if bin == "" {
		bin = "dot"
	}
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = DefaultGraphvizTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, "-T"+format, "-o", outPath)
	cmd.Stdin = bytes.NewReader(dotSrc)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v (%s)", ErrLayoutUnavailable, bin, err, bytes.TrimSpace(stderr.Bytes()))
	}

	info, err := os.Stat(outPath)
	if err != nil || info.Size() == 0 {
		return fmt.Errorf("%w: %s produced no output at %s", ErrLayoutUnavailable, bin, outPath)
	}
	return nil
}
