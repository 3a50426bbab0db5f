package animating

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/manipulados-eda/internal/usecases/rendering"
	"github.com/vfg2006/manipulados-eda/pkg/log"
)

// SelectFrames lê os frames de todos os meses de startYear a endYear, em ordem.
// A falta de qualquer frame invalida a seleção inteira.
func SelectFrames(dir string, startYear, endYear int) ([]image.Image, error) {
	if endYear < startYear {
		return nil, errors.Wrapf(ErrInvalidYears, "%d > %d", startYear, endYear)
	}

	frames := make([]image.Image, 0, (endYear-startYear+1)*12)
	for year := startYear; year <= endYear; year++ {
		for month := 1; month <= 12; month++ {
			path := filepath.Join(dir, rendering.FrameName(year, month))

			img, err := readPNG(path)
			if err != nil {
				log.L.WithError(err).WithField("path", path).Warn("Não foi possível encontrar nenhum frame. Certifique de que o caminho fornecido está correto.")
				return nil, err
			}
			frames = append(frames, img)
		}
	}

	return frames, nil
}

// EncodeGIF grava {dir}/{name}.gif com os frames na ordem recebida e devolve o caminho
func EncodeGIF(frames []image.Image, dir, name string, fps int) (string, error) {
	if len(frames) == 0 {
		log.L.Warn("A lista fornecida deveria conter várias imagens para formar o gif. Verifique o parâmetro fornecido.")
		return "", ErrNoFrames
	}
	if fps <= 0 {
		return "", errors.Wrapf(ErrInvalidFPS, "%d", fps)
	}
	name = strings.TrimSuffix(strings.TrimSpace(name), ".gif")
	if name == "" {
		return "", errors.Wrap(ErrInvalidOutput, "nome do gif vazio")
	}

	// O atraso do GIF é medido em centésimos de segundo
	delay := 100 / fps
	if delay == 0 {
		delay = 1
	}

	anim := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		if frame.Bounds().Dx() > anim.Config.Width {
			anim.Config.Width = frame.Bounds().Dx()
		}
		if frame.Bounds().Dy() > anim.Config.Height {
			anim.Config.Height = frame.Bounds().Dy()
		}
		anim.Image = append(anim.Image, quantize(frame))
		anim.Delay = append(anim.Delay, delay)
	}
	anim.Config.ColorModel = anim.Image[0].Palette

	path := filepath.Join(dir, name+".gif")
	f, err := os.Create(path)
	if err != nil {
		log.L.WithError(err).Warn("O caminho fornecido é inválido. Tente novamente.")
		return "", errors.Wrapf(ErrInvalidOutput, "%s: %s", path, err.Error())
	}
	defer f.Close()

	if err := gif.EncodeAll(f, anim); err != nil {
		return "", errors.Wrapf(err, "erro ao codificar %s", path)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	log.L.WithFields(log.Fields{
		"path":   path,
		"frames": len(frames),
		"fps":    fps,
	}).Info("GIF gerado")

	return path, nil
}

// quantize converte o frame para a paleta fixa Plan9 com dithering, alinhado na origem
func quantize(img image.Image) *image.Paletted {
	bounds := img.Bounds()
	out := image.NewPaletted(image.Rect(0, 0, bounds.Dx(), bounds.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(out, out.Bounds(), img, bounds.Min)
	return out
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrFrameNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "erro ao abrir %s", path)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao decodificar %s", path)
	}
	return img, nil
}
