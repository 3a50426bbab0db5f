package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// TempName devolve um nome de arquivo temporário para escrita atômica de base
func TempName(base string) (string, error) {
	id, err := GenerateID()
	if err != nil {
		return "", err
	}
	return "." + base + "." + id + ".tmp", nil
}
