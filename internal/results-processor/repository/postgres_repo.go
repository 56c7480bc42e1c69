package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/radieske/lotto-analyzer-poc/pkg/contracts/events"
)

// PostgresRepo implementa a persistência de sorteios em um banco Postgres
// DB: conexão com o banco de dados
type PostgresRepo struct {
	DB *sql.DB
}

// NewPostgresRepo retorna uma instância de repositório Postgres
func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// UpsertDraw insere ou atualiza um sorteio na tabela draw_results
// Utiliza ON CONFLICT por (game_type, draw_number): o número do sorteio é
// monotônico por jogo, mas não é único entre jogos
func (r *PostgresRepo) UpsertDraw(ctx context.Context, d events.DrawResult) error {
	const q = `
		INSERT INTO draw_results
		  (game_type, draw_number, draw_date, winning_numbers, supplementary_numbers,
		   powerball, division1_prize, division1_winners, source, scraped_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (game_type, draw_number) DO UPDATE SET
		  draw_date             = EXCLUDED.draw_date,
		  winning_numbers       = EXCLUDED.winning_numbers,
		  supplementary_numbers = EXCLUDED.supplementary_numbers,
		  powerball             = EXCLUDED.powerball,
		  division1_prize       = EXCLUDED.division1_prize,
		  division1_winners     = EXCLUDED.division1_winners,
		  source                = EXCLUDED.source,
		  scraped_at            = EXCLUDED.scraped_at
	`

	var pb sql.NullInt64
	if d.Powerball != nil {
		pb = sql.NullInt64{Int64: int64(*d.Powerball), Valid: true}
	}

	_, err := r.DB.ExecContext(ctx, q,
		d.GameType, d.DrawNumber, d.DrawDate,
		pq.Array(toInt64(d.WinningNumbers)), pq.Array(toInt64(d.SupplementaryNumbers)),
		pb, d.Division1Prize, d.Division1Winners, d.Source, d.ScrapedAt,
	)
	return err
}

func toInt64(in []int) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}
