package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/crypto"
)

func main() {
	token := flag.String("token", "", "Auth token (hex IV '.' hex ciphertext)")
	secret := flag.String("secret", "", "Account secret (32 hex chars)")
	flag.Parse()

	if *token == "" || *secret == "" {
		fmt.Fprintln(os.Stderr, "Usage: tokendump -token <token> -secret <secret-hex>")
		os.Exit(1)
	}

	plain, err := crypto.Decode(*token, *secret)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode token: %v\n", err)
		os.Exit(1)
	}

	till, password, ok := splitPayload(plain)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unexpected payload format: %q\n", plain)
		os.Exit(1)
	}

	expiry := time.Unix(till, 0).UTC()
	fmt.Printf("Password: %s\n", password)
	fmt.Printf("Till:     %d (%s)\n", till, expiry.Format(time.RFC3339))
	if time.Now().After(expiry) {
		fmt.Println("Status:   expired")
	} else {
		fmt.Printf("Status:   valid for %s\n", time.Until(expiry).Round(time.Second))
	}
}

// splitPayload splits "{till}.{password}" at the first dot; the password
// may itself contain dots.
func splitPayload(plain string) (int64, string, bool) {
	i := strings.IndexByte(plain, '.')
	if i < 0 {
		return 0, "", false
	}
	till, err := strconv.ParseInt(plain[:i], 10, 64)
	if err != nil {
		return 0, "", false
	}
	return till, plain[i+1:], true
}
