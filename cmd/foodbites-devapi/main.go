package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/five82/foodbites/internal/devapi"
	"github.com/five82/foodbites/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", ":5000", "listen address")
	secret := flag.String("secret", "foodbites-dev", "token signing secret")
	user := flag.String("user", "ana", "account to issue a token for (empty skips)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log := logging.New(os.Stderr, *level)

	srv, err := devapi.New(*secret, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "foodbites-devapi: %v\n", err)
		return 1
	}
	if *user != "" {
		token, err := srv.IssueToken(*user, *ttl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "foodbites-devapi: %v (accounts: %v)\n", err, srv.Usernames())
			return 1
		}
		fmt.Println(token)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", *addr).Msg("devapi listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "foodbites-devapi: %v\n", err)
		return 1
	}
	return 0
}
