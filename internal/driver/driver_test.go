package driver

import (
	"bytes"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_ValidSourceProducesIR(t *testing.T) {
	res := Compile("t.nosh", "fun add(a, b) a + b end")
	require.True(t, res.Ok())
	require.NotNil(t, res.IR)
	assert.Contains(t, res.IR.String(), "@add")
}

func TestCompile_ParseErrorStopsBeforeResolve(t *testing.T) {
	res := Compile("t.nosh", "fun add(a, b a + b end")
	assert.False(t, res.Ok())
	assert.Nil(t, res.Resolved)
}

func TestCompile_ResolveErrorStopsBeforeIR(t *testing.T) {
	res := Compile("t.nosh", "fun f() x end")
	assert.False(t, res.Ok())
	assert.NotNil(t, res.Resolved)
	assert.Nil(t, res.IR)
}

func TestTarget_Triple(t *testing.T) {
	assert.Equal(t, "x86_64-unknown-linux-gnu", HostTarget.Triple())
}

// TestBuild_EmitLLVMNeedsNoExternalTools exercises the one Emit mode
// that never shells out, so it always runs regardless of the host
// toolchain.
func TestBuild_EmitLLVMNeedsNoExternalTools(t *testing.T) {
	res := Compile("t.nosh", "fun add(a, b) a + b end")
	require.True(t, res.Ok())

	var buf bytes.Buffer
	err := Build(res.IR, Options{Target: HostTarget, Emit: EmitLLVM}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "@add")
}

// TestBuild_Object shells out to clang; skipped when it isn't on PATH
// so the suite still runs in a minimal environment.
func TestBuild_Object(t *testing.T) {
	if _, err := exec.LookPath("clang"); err != nil {
		t.Skip("clang not available on PATH")
	}

	res := Compile("t.nosh", "fun add(a, b) a + b end")
	require.True(t, res.Ok())

	var buf bytes.Buffer
	err := Build(res.IR, Options{Target: HostTarget, Emit: EmitObject}, &buf)
	require.NoError(t, err)
	assert.NotEmpty(t, buf.Bytes())
}

// TestRun_ViaLLI shells out to lli; skipped when it isn't on PATH.
func TestRun_ViaLLI(t *testing.T) {
	if _, err := exec.LookPath("lli"); err != nil {
		t.Skip("lli not available on PATH")
	}

	res := Compile("t.nosh", "fun main() 21 + 21 end")
	require.True(t, res.Ok())

	result, err := Run(res.IR, "main")
	require.NoError(t, err)
	assert.Equal(t, 42.0, result)
}
