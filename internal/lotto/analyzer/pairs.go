package analyzer

import (
	"runtime"
	"sort"
	"sync"
)

// PairCount é um par de números com a contagem de coocorrências no período.
// A sempre menor que B.
type PairCount struct {
	A     int `json:"a"`
	B     int `json:"b"`
	Count int `json:"count"`
}

type pairKey struct{ lo, hi int }

// pairCounts acumula, em paralelo, quantas vezes cada par não ordenado de
// números saiu junto. Fase 1 (comutativa): cada worker conta num mapa local
// e mescla sob mutex. A ordenação determinística acontece só depois, na fase
// sequencial de leitura — nenhum estado intermediário escapa daqui.
func (a *Analyzer) pairCounts() map[pairKey]int {
	total := make(map[pairKey]int)
	if len(a.results) == 0 {
		return total
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(a.results) {
		workers = len(a.results)
	}
	chunk := (len(a.results) + workers - 1) / workers

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(a.results) {
			break
		}
		end := start + chunk
		if end > len(a.results) {
			end = len(a.results)
		}

		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			local := make(map[pairKey]int)
			for _, r := range a.results[from:to] {
				nums := r.WinningNumbers
				for i := 0; i < len(nums); i++ {
					for j := i + 1; j < len(nums); j++ {
						k := pairKey{lo: nums[i], hi: nums[j]}
						if k.lo > k.hi {
							k.lo, k.hi = k.hi, k.lo
						}
						local[k]++
					}
				}
			}
			mu.Lock()
			for k, c := range local {
				total[k] += c
			}
			mu.Unlock()
		}(start, end)
	}
	wg.Wait()

	return total
}

// PairAffinities retorna, para cada número da faixa, seus até 3 parceiros
// mais frequentes (empate resolvido pelo parceiro ascendente). Números sem
// coocorrência ficam com lista vazia.
func (a *Analyzer) PairAffinities() map[int][]int {
	counts := a.pairCounts()

	type partner struct{ number, count int }
	byNumber := make(map[int][]partner, a.rules.MaxNumber)
	for k, c := range counts {
		byNumber[k.lo] = append(byNumber[k.lo], partner{number: k.hi, count: c})
		byNumber[k.hi] = append(byNumber[k.hi], partner{number: k.lo, count: c})
	}

	out := make(map[int][]int, a.rules.MaxNumber)
	for n := 1; n <= a.rules.MaxNumber; n++ {
		partners := byNumber[n]
		sort.Slice(partners, func(i, j int) bool {
			if partners[i].count != partners[j].count {
				return partners[i].count > partners[j].count
			}
			return partners[i].number < partners[j].number
		})
		top := make([]int, 0, 3)
		for _, p := range partners {
			if len(top) == 3 {
				break
			}
			top = append(top, p.number)
		}
		out[n] = top
	}

	return out
}

// CommonPairs retorna os n pares mais frequentes do período, do maior para o
// menor (empate: A ascendente, depois B).
func (a *Analyzer) CommonPairs(n int) []PairCount {
	counts := a.pairCounts()

	out := make([]PairCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, PairCount{A: k.lo, B: k.hi, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})

	if n < len(out) {
		out = out[:n]
	}
	return out
}
