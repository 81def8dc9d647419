// Command keygen generates the token signing secret and stores it in the
// dotenv file read by the API at startup.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/spec-kit/citizenloop/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("keygen: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("keygen", flag.ContinueOnError)
	envFile := flags.String("env", config.EnvFile, "dotenv file to update")
	size := flags.Int("bytes", 32, "secret length in bytes")
	force := flags.Bool("force", false, "replace an existing secret")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *size < 32 {
		return fmt.Errorf("secret must be at least 32 bytes, got %d", *size)
	}

	env, err := godotenv.Read(*envFile)
	if errors.Is(err, fs.ErrNotExist) {
		env = map[string]string{}
	} else if err != nil {
		return fmt.Errorf("read %s: %w", *envFile, err)
	}
	if env[config.JWTSecretKey] != "" && !*force {
		return fmt.Errorf("%s already set in %s; pass -force to rotate it", config.JWTSecretKey, *envFile)
	}

	secret, err := generateSecret(*size)
	if err != nil {
		return err
	}
	env[config.JWTSecretKey] = secret
	if err := godotenv.Write(env, *envFile); err != nil {
		return fmt.Errorf("write %s: %w", *envFile, err)
	}
	fmt.Fprintf(out, "wrote %s to %s\n", config.JWTSecretKey, *envFile)
	return nil
}

func generateSecret(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
