package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kinetree/kinetree/internal/server"
	"github.com/kinetree/kinetree/pkg/cache"
	"github.com/kinetree/kinetree/pkg/model"
	"github.com/kinetree/kinetree/pkg/store"
)

// newServeCmd creates the "serve" command, which runs the pose service.
func newServeCmd() *cobra.Command {
	var (
		addr      string
		storeKind string
		mongoURI  string
		cacheKind string
		cacheDir  string
		redisAddr string
		models    []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pose service HTTP API",
		Long: `Run the pose service, an HTTP API for storing robot models and
computing forward kinematics over them. Models given via --model are
loaded into the store at startup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			st, err := openStore(ctx, storeKind, mongoURI)
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(context.Background()); err != nil {
					logger.Warn("closing store", "err", err)
				}
			}()

			c, err := openCache(ctx, cacheKind, cacheDir, redisAddr)
			if err != nil {
				return err
			}
			defer func() {
				if err := c.Close(); err != nil {
					logger.Warn("closing cache", "err", err)
				}
			}()

			for _, path := range models {
				doc, err := model.LoadDocument(path)
				if err != nil {
					return fmt.Errorf("preloading %s: %w", path, err)
				}
				if doc.Name == "" {
					doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				}
				if err := st.Put(ctx, &doc); err != nil {
					return fmt.Errorf("storing %s: %w", path, err)
				}
				logger.Info("preloaded model", "name", doc.Name, "links", len(doc.Links))
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(st, c, logger).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("pose service listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutting down: %w", err)
				}
				logger.Info("pose service stopped")
				return ctx.Err()
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&storeKind, "store", "memory", "model store backend (memory or mongo)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI for --store mongo")
	cmd.Flags().StringVar(&cacheKind, "cache", "none", "pose cache backend (none, file, or redis)")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory for --cache file (default os cache dir)")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "Redis address for --cache redis")
	cmd.Flags().StringArrayVarP(&models, "model", "m", nil, "model file to preload (repeatable)")
	return cmd
}

func openStore(ctx context.Context, kind, mongoURI string) (store.Store, error) {
	switch kind {
	case "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, mongoURI)
	default:
		return nil, fmt.Errorf("unknown store backend %q (want memory or mongo)", kind)
	}
}

func openCache(ctx context.Context, kind, dir, redisAddr string) (cache.Cache, error) {
	switch kind {
	case "none":
		return cache.NewNullCache(), nil
	case "file":
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return nil, fmt.Errorf("resolving cache dir: %w", err)
			}
			dir = filepath.Join(base, "kinetree")
		}
		return cache.NewFileCache(dir)
	case "redis":
		c, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want none, file, or redis)", kind)
	}
}
