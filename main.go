// File: clinica/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinica/config"
	"clinica/stubserver"
	"clinica/utils"
)

// Runs the development stub of the remote scheduling API. The client packages
// (api, services, store) are consumed as a library by the mobile frontends;
// this binary gives them a local backend to talk to.
func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	stub := stubserver.New()

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.StubPort,
		Handler: stub.Router(),
	}

	go func() {
		logger.Sugar().Infof("Stub scheduling API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
}
