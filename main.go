package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"supasocial/controller"
	"supasocial/dao/localcache"
	"supasocial/dao/platform"
	"supasocial/internal/utils"
	"supasocial/logger"
	"supasocial/logic"
	"supasocial/query"
	"supasocial/router"
	"supasocial/settings"
)

var backendPlatform *platform.Platform

func init() {
	path := flag.String("c", "./config/config.json", "config path")
	flag.Parse()

	settings.InitSettings(*path)

	logger.InitLogger()

	if err := utils.InitSnowflake(viper.GetString("server.start_time"), viper.GetInt64("server.machine_id")); err != nil {
		panic(err.Error())
	}
	utils.InitTrans()

	var err error
	backendPlatform, err = platform.New(context.Background())
	if err != nil {
		panic(err.Error())
	}
	logger.Infof("Initializing platform (%s) successfully", backendPlatform)

	queries := query.NewClient(
		localcache.New(viper.GetInt("localcache.size")),
		time.Duration(viper.GetInt64("query.stale_time"))*time.Second,
	)
	h := controller.New(logic.New(backendPlatform.Client, queries))

	opts := router.Options{Auth: backendPlatform.Client.Auth}
	if viper.GetString("storage.driver") == "memory" {
		opts.Objects = backendPlatform.Memory
		opts.ObjectsPath = platform.MemoryObjectsPath
	}
	router.Init(h, opts)
	logger.Infof("Initializing router successfully")
}

//	@title			supasocial API
//	@version		1.0
//	@description	JSON API of the supasocial posting app

// @host		127.0.0.1:5173
// @BasePath	/api/v1
func main() {
	defer logger.Sync()
	srv := router.GetServer()

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		// waits for in-flight requests, but exits once the timeout elapses
		wait := time.Duration(viper.GetInt64("server.shutdown_waitting_time")) * time.Second
		ctx, cancel := context.WithTimeout(context.Background(), wait)
		defer cancel()
		logger.Infof("Shutting down HTTP Server(wait for all connections to be closed)...")

		if err := srv.Shutdown(ctx); err != nil {
			logger.Errorf("supasocial server shutdown: %v", err)
		}
		logger.Infof("Http server closed successfully")
		close(idleConnsClosed)
	}()

	logger.Infof("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Errorf("HTTP server ListenAndServe: %v", err)
	}

	<-idleConnsClosed
	backendPlatform.Close()
	logger.Infof("Done.\n\nsupasocial server closed successfully")
}
