package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/GoSim-25-26J-441/rps-camera/config"
	"github.com/GoSim-25-26J-441/rps-camera/internal/web"
)

const shutdownTimeout = 5 * time.Second

// Run serves until ctx is cancelled, then drains in-flight requests.
// ready, if non-nil, receives the bound address once the listener is open.
func Run(ctx context.Context, cfg *config.Config, ready func(net.Addr)) error {
	production := cfg.IsProduction()
	SetGinMode(production)

	templates := web.NewTemplates(cfg.Web.TemplatesDir)
	if err := templates.Err(); err != nil {
		log.Printf("[warn] component=templates dir=%s error=%v", cfg.Web.TemplatesDir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !production {
		watcher := web.NewWatcher(templates)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Printf("[error] component=templates operation=watch error=%v", err)
			}
		}()
	}

	router := BuildRouter(RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		Templates:      templates,
		StaticDir:      cfg.Web.StaticDir,
		AllowedOrigins: cfg.Web.AllowedOrigins,
		Verbose:        !production,
	})

	ln, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr(), err)
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	log.Printf("[info] service=%s listening on %s debug=%t", cfg.App.ServiceName, ln.Addr(), !production)
	if ready != nil {
		ready(ln.Addr())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("Server exiting")
	return nil
}
