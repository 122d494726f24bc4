package preview

import (
	"encoding/json"
	"image/png"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"terrascape/internal/heightfield"
	"terrascape/internal/scene"
)

// Server exposes the diagnostic views of one generated scene.
type Server struct {
	gen    *heightfield.Generator
	stats  scene.Stats
	size   int
	router *mux.Router
}

// NewServer wires the routes for a scene. imageSize is the PNG edge length.
func NewServer(gen *heightfield.Generator, stats scene.Stats, imageSize int) *Server {
	s := &Server{gen: gen, stats: stats, size: imageSize}

	r := mux.NewRouter()
	r.HandleFunc("/preview/height.png", s.handleHeight).Methods(http.MethodGet)
	r.HandleFunc("/preview/biome.png", s.handleBiome).Methods(http.MethodGet)
	r.HandleFunc("/preview/biome.glsl", s.handleBiomeGLSL).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	s.router = r
	return s
}

// Handler returns the route tree for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHeight(w http.ResponseWriter, r *http.Request) {
	img, err := HeightImage(s.gen, s.size)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		log.Printf("encode height preview: %v", err)
	}
}

func (s *Server) handleBiome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, BiomeImage(s.gen, s.size)); err != nil {
		log.Printf("encode biome preview: %v", err)
	}
}

func (s *Server) handleBiomeGLSL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(heightfield.BiomeGLSL())); err != nil {
		log.Printf("write biome snippet: %v", err)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.stats); err != nil {
		log.Printf("encode stats: %v", err)
	}
}
