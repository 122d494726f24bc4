package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"terrascape/internal/config"
	"terrascape/internal/preview"
	"terrascape/internal/scene"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "path to the generator configuration file (JSON)")
		outDir  = flag.String("out", "out", "directory for the exported buffers")
		serve   = flag.String("serve", "", "listen address for the HTTP preview (overrides config)")
	)
	flag.Parse()

	wrote, err := writeConfigFromEnv(*cfgPath)
	if err != nil {
		log.Fatalf("sync config from environment: %v", err)
	}
	if wrote {
		log.Printf("configuration synced from environment to %s", *cfgPath)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	start := time.Now()
	sc := scene.Assemble(cfg)
	log.Printf("scene generated in %s: %d terrain vertices, %d branches, %d leaves, %d rocks",
		time.Since(start).Round(time.Millisecond),
		sc.Stats.TerrainVertices, sc.Stats.BranchCount, sc.Stats.LeafCount, sc.Stats.RockCount)
	if sc.Stats.CapReached {
		log.Printf("instance cap reached after %d trees", sc.Stats.TreesPlaced)
	}
	if sc.Stats.ClustersSkipped > 0 {
		log.Printf("%d of %d clusters found no dry ground", sc.Stats.ClustersSkipped, sc.Stats.ClustersPlanned)
	}

	if err := sc.WriteBuffers(*outDir); err != nil {
		log.Fatalf("export scene: %v", err)
	}
	log.Printf("buffers exported to %s", *outDir)

	addr := *serve
	if addr == "" {
		addr = cfg.Preview.Listen
	}
	if addr == "" {
		return
	}

	srv := preview.NewServer(sc.Heights, sc.Stats, cfg.Preview.ImageSize)
	log.Printf("preview server listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, srv.Handler()))
}
