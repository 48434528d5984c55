// Package main is the entry point of the video stream manager. It loads configuration (env + YAML),
// resolves the allow/deny lists, builds the render-node client (adapters/wcs), the registry and the
// camera router (service), starts the mDNS browser (adapters/mdns) feeding the registry, serves the
// routing API with echo (handlers) and, when configured, mirrors node status to redis and reports
// health over gRPC. On SIGINT/SIGTERM it stops discovery and shuts both servers down.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nasa/vsm/adapters/grpchealth"
	"github.com/nasa/vsm/adapters/hostnames"
	"github.com/nasa/vsm/adapters/mdns"
	"github.com/nasa/vsm/adapters/myredis"
	"github.com/nasa/vsm/adapters/wcs"
	"github.com/nasa/vsm/domain"
	"github.com/nasa/vsm/handlers"
	"github.com/nasa/vsm/interfaces"
	"github.com/nasa/vsm/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting video stream manager")

	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"service_port_grpc", config.GRPCPort,
		"redis_addr", config.RedisAddr,
		"service_type", config.ServiceType,
		"allow_list", fmt.Sprint(config.AllowList),
		"deny_list", fmt.Sprint(config.DenyList),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var policy service.AccessPolicy
	{
		policy, err = accessPolicy(ctx, config, hostnames.NewResolver())
		if err != nil {
			level.Error(logger).Log("msg", "Failed to resolve access lists", "err", err)
			os.Exit(1)
		}
	}

	var registry service.Registry
	var router interfaces.CameraRouter
	{
		client := wcs.NewClient(&http.Client{Timeout: config.CommandTimeout}, logger)
		registry = service.NewRegistry(client, policy, logger)
		router = service.NewRouter(registry, client, logger)
	}

	var browser *mdns.Browser
	{
		ifaces, err := interfacesByName(config.Interfaces)
		if err != nil {
			level.Error(logger).Log("msg", "Invalid network interface", "err", err)
			os.Exit(1)
		}
		browser = mdns.NewBrowser(registry, mdns.ResolverBrowse(ifaces), mdns.Config{
			ServiceType:     config.ServiceType,
			Window:          config.DiscoveryWindow,
			Interval:        config.DiscoveryInterval,
			LostAfterRounds: config.LostAfterRounds,
		}, logger)
	}

	var cache interfaces.Cache[domain.NodeStatus]
	if config.RedisAddr != "" {
		redisClient, err := myredis.NewRedisUniversalClient(config.RedisAddr, myredis.WithTimeout(config.CommandTimeout))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		pingCancel()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Connected to Redis")
		cache = myredis.NewJSONCache[domain.NodeStatus](redisClient, "vsm:node")
	}

	var healthServer *grpchealth.Server
	var health interfaces.HealthReporter
	if config.GRPCPort != 0 {
		lis, err := net.Listen("tcp", ":"+strconv.Itoa(config.GRPCPort))
		if err != nil {
			level.Error(logger).Log("msg", "listen", "err", err)
			os.Exit(1)
		}
		healthServer = grpchealth.NewServer(logger)
		health = healthServer
		go func() {
			if err := healthServer.Serve(lis); err != nil {
				level.Error(logger).Log("msg", "gRPC server error", "err", err)
			}
		}()
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		swagger, err := handlers.LoadSwagger()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to load OpenAPI document", "err", err)
			os.Exit(1)
		}
		validator, err := handlers.NewRequestValidator(swagger)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to build request validator", "err", err)
			os.Exit(1)
		}

		e = echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterMiddleware(e, validator, logger)
		handlers.RegisterHandlers(e, handlers.NewHTTPServer(router, registry, logger))
	}

	go browser.Run(ctx)
	if cache != nil || health != nil {
		publisher := service.NewStatusPublisher(registry, cache, health, config.StatusTTL, logger)
		go publisher.Run(ctx, config.StatusInterval)
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}
	if healthServer != nil {
		healthServer.Stop()
	}

	counts := registry.Counts()
	level.Info(logger).Log(
		"msg", "Server stopped",
		"active", counts[domain.ClassificationActive],
		"headless", counts[domain.ClassificationHeadless],
	)
}

// accessPolicy resolves the configured list into addresses. The allow list is used when set.
func accessPolicy(ctx context.Context, config *Config, resolver *hostnames.Resolver) (service.AccessPolicy, error) {
	if config.AllowList != nil {
		allow, err := resolver.Resolve(ctx, config.AllowList)
		if err != nil {
			return service.AccessPolicy{}, fmt.Errorf("allow_list: %w", err)
		}
		return service.AccessPolicy{Allow: allow}, nil
	}
	deny, err := resolver.Resolve(ctx, config.DenyList)
	if err != nil {
		return service.AccessPolicy{}, fmt.Errorf("deny_list: %w", err)
	}
	return service.AccessPolicy{Deny: deny}, nil
}

// interfacesByName looks up the NICs browsed for render nodes. No names means every multicast interface.
func interfacesByName(names []string) ([]net.Interface, error) {
	var out []net.Interface
	for _, name := range names {
		iface, err := net.InterfaceByName(name)
		if err != nil {
			return nil, fmt.Errorf("interface %q: %w", name, err)
		}
		out = append(out, *iface)
	}
	return out, nil
}
