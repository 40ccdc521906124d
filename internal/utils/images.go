package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var ErrUnsupportedImageType = errors.New("поддерживаются только jpg и png")

// Аватар ужимается до рамки 1280x720 с сохранением пропорций.
const (
	pictureMaxWidth  = 1280
	pictureMaxHeight = 720
)

// SavePicture сохраняет картинку профиля под случайным именем
// и возвращает имя файла (хранится в поле image_file пользователя).
func SavePicture(file io.Reader, originalName, uploadDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", ErrUnsupportedImageType
	}

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}
	img = imaging.Fit(img, pictureMaxWidth, pictureMaxHeight, imaging.Lanczos)

	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return "", err
	}

	filename := uuid.New().String() + ext
	fullPath := filepath.Join(uploadDir, filename)
	if err := imaging.Save(img, fullPath); err != nil {
		return "", err
	}
	return filename, nil
}
