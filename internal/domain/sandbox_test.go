package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSandboxResponse_Decode(t *testing.T) {
	body := `{
		"language": "python",
		"version": "3.10.0",
		"run": {"stdout": "x", "stderr": "", "output": "x", "code": null, "signal": "SIGKILL", "status": "TO"}
	}`
	var resp SandboxResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	assert.Nil(t, resp.Compile)
	assert.Equal(t, 0, resp.Compile.ExitCode())
	assert.Equal(t, "", resp.Compile.SignalName())
	assert.Equal(t, 0, resp.Run.ExitCode())
	assert.Equal(t, "SIGKILL", resp.Run.SignalName())
	assert.Equal(t, "TO", resp.Run.Status)
}
