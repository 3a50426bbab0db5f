package rendering

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/vg/vgimg"
)

// FrameName segue o padrão frame_{ano}_{mês}.png, sem zero à esquerda no mês
func FrameName(year, month int) string {
	return fmt.Sprintf("frame_%d_%d.png", year, month)
}

// SaveFrame grava o frame do mês em dir e devolve o caminho do arquivo
func SaveFrame(img *vgimg.Canvas, dir string, year, month int) (string, error) {
	path := filepath.Join(dir, FrameName(year, month))
	if err := SavePNG(img, path); err != nil {
		return "", err
	}
	return path, nil
}

// SavePNG grava a imagem como PNG com fundo opaco
func SavePNG(img *vgimg.Canvas, path string) error {
	if img == nil {
		return errors.Wrap(ErrSaveFrame, "imagem vazia")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(ErrSaveFrame, "não foi possível salvar %s, erro: %s", filepath.Base(path), err.Error())
	}
	defer f.Close()

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return errors.Wrapf(ErrSaveFrame, "erro ao codificar %s: %s", filepath.Base(path), err.Error())
	}

	return f.Close()
}
