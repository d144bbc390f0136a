// Gera um segredo aleatório para jwt.secret_key no config.yaml.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"log/slog"
	"os"
)

func generateSecret(bytes int) (string, error) {
	key := make([]byte, bytes)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(key), nil
}

func main() {
	bytes := flag.Int("bytes", 32, "tamanho do segredo em bytes")
	flag.Parse()

	secret, err := generateSecret(*bytes)
	if err != nil {
		slog.Error("Error generating secret", "err", err)
		os.Exit(1)
	}

	fmt.Println(secret)
}
