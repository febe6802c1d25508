package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/wgdzlh/rotsep/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Cleanup(func() { decodeValues = "" })
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestCodesLegend(t *testing.T) {
	out := execute(t, "codes")
	assert.Contains(t, out, "501  continuous Corn")
	assert.Contains(t, out, "1741  continuous Dbl Crop Corn/Soybeans, tile drained")
}

func TestCodesDecode(t *testing.T) {
	out := execute(t, "codes", "--decode", "1061,611,2500")
	assert.Contains(t, out, "1061  Fallow/Idle Cropland, tile drained")
	assert.Contains(t, out, "611  invalid")
	assert.Contains(t, out, "2500  invalid")
}

func TestRunsListsLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotsep.db")
	l, err := ledger.Open(path)
	require.NoError(t, err)
	_, err = l.RecordRun(context.Background(), ledger.Run{ID: "r1", StartedAt: time.Now(), Output: "out.tif", Cols: 3, Rows: 2}, nil)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	out := execute(t, "runs", "--ledger", path)
	assert.Contains(t, out, "r1")
	assert.Contains(t, out, "3x2")
}
