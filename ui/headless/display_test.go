package headless

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/graph-score/domain/scan"
)

func TestDisplay_KeepsLatest(t *testing.T) {
	d := NewDisplay()
	assert.Nil(t, d.Last())
	a := image.NewRGBA(image.Rect(0, 0, 2, 2))
	b := image.NewRGBA(image.Rect(0, 0, 3, 3))
	d.UpdateFrame(a)
	d.UpdateFrame(b)
	d.UpdateSlice(a)
	assert.Same(t, b, d.Last())
	frames, slices := d.Counts()
	assert.Equal(t, 2, frames)
	assert.Equal(t, 1, slices)
}

func TestDisplay_Snapshot(t *testing.T) {
	dir := t.TempDir()
	d := NewDisplay()
	path := filepath.Join(dir, "frame.png")

	require.NoError(t, d.Snapshot(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no file without a frame")

	d.UpdateFrame(image.NewRGBA(image.Rect(0, 0, 7, 5)))
	require.NoError(t, d.Snapshot(path))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 7, 5), img.Bounds())
}

func TestProgress_CountsSteps(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(&out)
	for i := 0; i < 5; i++ {
		p.ShowScan(nil, scan.Panel{Cursor: i, TotalSteps: 5})
	}
	assert.Contains(t, out.String(), "scanning")
	assert.Contains(t, out.String(), "5/5")

	out.Reset()
	p.ShowScan(nil, scan.Panel{Cursor: 0, TotalSteps: 3})
	assert.Contains(t, out.String(), "1/3")
}
