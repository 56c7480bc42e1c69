package repo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/radieske/lotto-analyzer-poc/pkg/contracts/events"
)

// ReadRepo consulta os sorteios persistidos pelo results-processor-worker.
type ReadRepo struct {
	DB *sql.DB
}

// ListRecent retorna os sorteios mais recentes de um jogo, do mais novo para
// o mais antigo.
func (r *ReadRepo) ListRecent(ctx context.Context, game string, limit int) ([]events.DrawResult, error) {
	const q = `
		SELECT game_type, draw_number, draw_date, winning_numbers, supplementary_numbers,
		       powerball, division1_prize, division1_winners
		FROM draw_results
		WHERE game_type = $1
		ORDER BY draw_date DESC
		LIMIT $2;
	`
	rows, err := r.DB.QueryContext(ctx, q, game, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []events.DrawResult
	for rows.Next() {
		var (
			d        events.DrawResult
			winning  pq.Int64Array
			supp     pq.Int64Array
			pb       sql.NullInt64
		)
		if err := rows.Scan(&d.GameType, &d.DrawNumber, &d.DrawDate, &winning, &supp,
			&pb, &d.Division1Prize, &d.Division1Winners); err != nil {
			return nil, err
		}
		d.WinningNumbers = toInts(winning)
		d.SupplementaryNumbers = toInts(supp)
		if pb.Valid {
			v := int(pb.Int64)
			d.Powerball = &v
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountByGame retorna o total de sorteios persistidos de um jogo.
func (r *ReadRepo) CountByGame(ctx context.Context, game string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM draw_results WHERE game_type = $1;`, game).Scan(&n)
	return n, err
}

func toInts(a pq.Int64Array) []int {
	if len(a) == 0 {
		return nil
	}
	out := make([]int, len(a))
	for i, v := range a {
		out[i] = int(v)
	}
	return out
}
