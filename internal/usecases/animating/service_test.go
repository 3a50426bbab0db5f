package animating

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/manipulados-eda/internal/usecases/rendering"
	"github.com/vfg2006/manipulados-eda/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

func writeFrame(t *testing.T, dir string, year, month int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for x := 0; x < 8; x++ {
		for y := 0; y < 6; y++ {
			img.Set(x, y, c)
		}
	}

	f, err := os.Create(filepath.Join(dir, rendering.FrameName(year, month)))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeYear(t *testing.T, dir string, year int) {
	t.Helper()
	for month := 1; month <= 12; month++ {
		writeFrame(t, dir, year, month, color.RGBA{R: uint8(month * 20), A: 255})
	}
}

func TestSelectFrames(t *testing.T) {
	dir := t.TempDir()
	writeYear(t, dir, 2020)
	writeYear(t, dir, 2021)

	frames, err := SelectFrames(dir, 2020, 2021)
	require.NoError(t, err)
	assert.Len(t, frames, 24)
}

func TestSelectFrames_Erros(t *testing.T) {
	dir := t.TempDir()
	writeYear(t, dir, 2020)
	require.NoError(t, os.Remove(filepath.Join(dir, rendering.FrameName(2020, 7))))

	tests := []struct {
		name     string
		dir      string
		start    int
		end      int
		expected error
	}{
		{name: "Frame ausente", dir: dir, start: 2020, end: 2020, expected: ErrFrameNotFound},
		{name: "Pasta inexistente", dir: "pasta_inexistente", start: 2014, end: 2016, expected: ErrFrameNotFound},
		{name: "Anos invertidos", dir: dir, start: 2021, end: 2020, expected: ErrInvalidYears},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, err := SelectFrames(tt.dir, tt.start, tt.end)
			assert.Nil(t, frames)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestEncodeGIF(t *testing.T) {
	dir := t.TempDir()
	writeYear(t, dir, 2019)

	frames, err := SelectFrames(dir, 2019, 2019)
	require.NoError(t, err)

	path, err := EncodeGIF(frames, dir, "anabolizantes", 4)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "anabolizantes.gif"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 12)
	assert.Equal(t, 25, anim.Delay[0])
	assert.Equal(t, 8, anim.Config.Width)
	assert.Equal(t, 6, anim.Config.Height)
}

func TestEncodeGIF_Erros(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 2, 2))

	tests := []struct {
		name     string
		frames   []image.Image
		dir      string
		gifName  string
		fps      int
		expected error
	}{
		{name: "Lista vazia", frames: nil, dir: t.TempDir(), gifName: "nome_generico", fps: 5, expected: ErrNoFrames},
		{name: "FPS inválido", frames: []image.Image{frame}, dir: t.TempDir(), gifName: "gif", fps: 0, expected: ErrInvalidFPS},
		{name: "Nome vazio", frames: []image.Image{frame}, dir: t.TempDir(), gifName: " ", fps: 5, expected: ErrInvalidOutput},
		{name: "Pasta inexistente", frames: []image.Image{frame}, dir: filepath.Join(t.TempDir(), "nao_existe"), gifName: "gif", fps: 5, expected: ErrInvalidOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := EncodeGIF(tt.frames, tt.dir, tt.gifName, tt.fps)
			assert.Empty(t, path)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
