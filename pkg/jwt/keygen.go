package jwt

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
)

// ECDSAGenerateKeys writes a fresh P-256 key pair as PEM files.
func ECDSAGenerateKeys(privatePath, publicPath string) error {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate private key: %w", err)
	}

	privateBytes, err := x509.MarshalECPrivateKey(privateKey)
	if err != nil {
		return fmt.Errorf("failed to convert an EC private key to SEC 1: %w", err)
	}

	if err := writePEM(privatePath, "EC PRIVATE KEY", privateBytes, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	publicBytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to convert a public key to PKIX: %w", err)
	}

	if err := writePEM(publicPath, "PUBLIC KEY", publicBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}

	return nil
}

func MustECDSAGenerateKeys(privatePath, publicPath string) {
	if err := ECDSAGenerateKeys(privatePath, publicPath); err != nil {
		panic(err)
	}
}

func writePEM(path, blockType string, der []byte, perm os.FileMode) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cErr)
		}
	}()

	return pem.Encode(f, &pem.Block{Type: blockType, Bytes: der})
}
