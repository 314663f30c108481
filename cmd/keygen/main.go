// Command keygen prints a fresh hex-encoded encryption key for
// provisioning or rotation. Rotating the key invalidates all previously
// stored envelopes.
package main

import (
	"fmt"
	"log"

	"github.com/mpetrov/geovault/internal/crypto"
)

func main() {
	key, err := crypto.GenerateKey()
	if err != nil {
		log.Fatalf("failed to generate key: %v", err)
	}

	fmt.Println(key.Hex())
}
