package pipeline

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/nbundle/cli/internal/testutil"
)

// runBundle executes the built bundle with node and returns its combined output.
// The test is skipped when node is not installed.
func runBundle(t *testing.T, p *testutil.Project) (string, error) {
	t.Helper()
	node, err := exec.LookPath("node")
	if err != nil {
		t.Skip("node not found in PATH")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, node, p.Path("dist/app.js"))
	cmd.Dir = p.Root
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestBundle_MissingArtifactThrowsWhenRequired(t *testing.T) {
	p := testutil.NewProject(t)
	p.File(t, "src/index.ts", `import m from "./missing.node";
console.log(m);
`)

	_, err := New(newSession(t, p.Root, false)).Run(context.Background())
	require.NoError(t, err)

	out, err := runBundle(t, p)
	require.Error(t, err, "loading the bundle must fail")
	assert.Contains(t, out, "Cannot require "+p.Path("src/missing.node")+": file not found")
}

func TestBundle_NestedRequireLoadsCopiedAsset(t *testing.T) {
	p := testutil.NewProject(t)
	p.File(t, "src/index.ts", addonEntry)
	// Not a loadable shared object: node reaches dlopen on the copied asset and fails there.
	p.Binary(t, "lib/x.node", []byte{0xDE, 0xAD})

	_, err := New(newSession(t, p.Root, false)).Run(context.Background())
	require.NoError(t, err)

	assets, err := filepath.Glob(p.Path("dist/x-*.node"))
	require.NoError(t, err)
	require.Len(t, assets, 1)

	out, err := runBundle(t, p)
	require.Error(t, err, "a two-byte addon cannot be loaded")
	assert.Contains(t, out, filepath.Base(assets[0]), "the native load targets the asset in the output directory")
	assert.NotContains(t, out, "Cannot require", "the artifact was present at build time")
}

func TestRun_ConcurrentCallsBuildOnce(t *testing.T) {
	p := testutil.NewProject(t)
	p.File(t, "src/index.ts", "console.log(1);\n")
	pl := New(newSession(t, p.Root, false))

	const callers = 8
	var succeeded, rejected atomic.Int32
	var g errgroup.Group
	for range callers {
		g.Go(func() error {
			_, err := pl.Run(context.Background())
			var stateErr *StateError
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.As(err, &stateErr):
				rejected.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(callers-1), rejected.Load())
	assert.Equal(t, StateDone, pl.State())
}
