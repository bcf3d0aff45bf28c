// Command netplay is the demo out-of-core transport binary: an HTTP +
// WebSocket relay around one rollback.Controller match, exercising the
// network-transport collaborator that spec.md names only by interface.
// It is never imported by the deterministic core.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"rollback-core/internal/config"
	"rollback-core/internal/netplay"
)

func main() {
	archP1 := flag.Int64("archetype-p1", 0, "player 0 archetype id [0,9]")
	archP2 := flag.Int64("archetype-p2", 1, "player 1 archetype id [0,9]")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("netplay: no .env file found, using environment variables only")
	}

	simCfg := config.SimFromEnv()
	netCfg := config.NetplayFromEnv()

	sess, err := netplay.NewSession(simCfg.TickRate, int32(simCfg.HashPeriod), int32(*archP1), int32(*archP2))
	if err != nil {
		log.Fatalf("netplay: failed to build session: %v", err)
	}
	go sess.Run()
	defer sess.Stop()

	router := netplay.NewRouter(netplay.RouterConfig{
		Session:        sess,
		AllowedOrigins: netCfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:    netCfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Printf("netplay: listening on %s (tick=%dHz hashPeriod=%d)", netCfg.ListenAddr, simCfg.TickRate, simCfg.HashPeriod)
		log.Printf("netplay: ws endpoints: ws://%s/ws?player=0  ws://%s/ws?player=1", netCfg.ListenAddr, netCfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("netplay: server error: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("netplay: shutting down")
	_ = srv.Shutdown(context.Background())
}
