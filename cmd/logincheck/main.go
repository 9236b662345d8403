// Command logincheck performs a login against the archive API and exits 0
// when a token was obtained, 1 otherwise. Suitable as a container healthcheck
// or a preflight before a long sampling run.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	impressoadapter "github.com/ericfisherdev/agencysampler/internal/adapter/driven/impresso"
	"github.com/ericfisherdev/agencysampler/internal/config"
	"github.com/ericfisherdev/agencysampler/internal/domain/model"
)

func main() {
	os.Exit(check())
}

func check() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	primary := model.Credentials{Email: cfg.FirstEmail, Password: cfg.FirstPassword}
	secondary := model.Credentials{Email: cfg.SecondEmail, Password: cfg.SecondPassword}
	client := impressoadapter.NewClient(cfg.APIBaseURL, primary, secondary, 0)

	pair, err := client.Authenticate(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if pair.Secondary != "" {
		fmt.Println("login ok (primary and secondary tokens obtained)")
	} else {
		fmt.Println("login ok")
	}
	return 0
}
