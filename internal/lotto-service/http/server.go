package httpapi

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/radieske/lotto-analyzer-poc/internal/lotto-service/cache"
	"github.com/radieske/lotto-analyzer-poc/internal/lotto-service/repo"
	"github.com/radieske/lotto-analyzer-poc/internal/lotto-service/ws"
	"github.com/radieske/lotto-analyzer-poc/internal/lotto/analyzer"
	"github.com/radieske/lotto-analyzer-poc/internal/lotto/rules"
	"github.com/radieske/lotto-analyzer-poc/internal/lotto/scraper"
)

// API expõe os endpoints REST de análise de loterias
// Cada requisição roda seu próprio pipeline fetch -> análise; result sets já
// raspados ficam no cache Redis para poupar a fonte externa
type API struct {
	Log      *zap.Logger
	Rules    rules.Table
	Fetcher  *scraper.Fetcher
	Cache    *cache.Cache     // cache de result sets raspados
	ReadRepo *repo.ReadRepo   // sorteios persistidos pelo processor
	Hub      *ws.Hub

	Years    int           // anos de histórico por análise (default de config)
	CacheTTL time.Duration // validade do cache de result sets
	Now      func() time.Time
	NewRand  func() *rand.Rand // fonte de aleatoriedade por requisição
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/v1/games", a.listGames)                          // Lista jogos e regras
	r.Get("/v1/games/{game}", a.getGame)                     // Regras + próximo sorteio
	r.Get("/v1/games/{game}/next-draw", a.getNextDraw)       // Só o próximo sorteio
	r.Get("/v1/games/{game}/analysis", a.getAnalysis)        // Estatísticas + recomendação
	r.Get("/v1/games/{game}/prediction", a.getPrediction)    // Só a recomendação
	r.Get("/v1/games/{game}/results", a.listResults)         // Sorteios persistidos
	if a.Hub != nil {
		r.Get("/v1/ws", a.Hub.HandleWS) // feed ao vivo de sorteios persistidos
	}
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *API) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *API) predictor() *analyzer.Predictor {
	if a.NewRand != nil {
		return &analyzer.Predictor{Rand: a.NewRand()}
	}
	return &analyzer.Predictor{Rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}
