// Command keygen writes an ECDSA P-256 key pair and prints a signed access token for local testing.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"messaging-back/internal/identity"
	"messaging-back/pkg/jwt"
)

func main() {
	privatePath := flag.String("private", "ecdsa_private.pem", "private key output path")
	publicPath := flag.String("public", "ecdsa_public.pem", "public key output path")
	subject := flag.String("sub", "", "user id to put in the token, random when empty")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if _, err := os.Stat(*privatePath); os.IsNotExist(err) {
		jwt.MustECDSAGenerateKeys(*privatePath, *publicPath)
	}

	privateKey, err := jwt.LoadECDSAPrivateKey(*privatePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	userID := uuid.New()
	if *subject != "" {
		if userID, err = uuid.Parse(*subject); err != nil {
			fmt.Fprintln(os.Stderr, "sub must be a uuid:", err)
			os.Exit(1)
		}
	}

	token, err := jwt.NewToken(privateKey, *ttl, jwt.WithClaim(identity.SubjectClaim, userID.String()))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(token)
}
