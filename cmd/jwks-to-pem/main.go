package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"tripbudget/internal/util"

	"github.com/go-resty/resty/v2"
)

// Prints the local Supabase signing key as PEM for SUPABASE_JWT_SECRET.
func main() {
	url := flag.String("url", "http://127.0.0.1:54321/auth/v1/.well-known/jwks.json", "JWKS endpoint")
	flag.Parse()

	var jwks util.JWKS
	resp, err := resty.New().SetTimeout(10 * time.Second).R().SetResult(&jwks).Get(*url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching JWKS: %v\n", err)
		os.Exit(1)
	}
	if resp.IsError() {
		fmt.Fprintf(os.Stderr, "Error fetching JWKS: %s\n", resp.Status())
		os.Exit(1)
	}

	key, err := jwks.SigningKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	pemKey, err := key.PEM()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting key: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(pemKey)
}
