package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/epi-control/internal/domain/repository"
)

var _ repository.ReportRepository = (*reportRepo)(nil)

// SectorUnknown rótulo dos colaboradores sem setor.
const SectorUnknown = "Não informado"

type reportRepo struct{ v view }

func (r *reportRepo) CountActiveEmployees(_ context.Context) (n int, _ error) {
	_ = r.v.read(func(st *state) error {
		for _, e := range st.employees {
			if e.Status.IsActive() {
				n++
			}
		}
		return nil
	})
	return n, nil
}

func (r *reportRepo) CountActiveEquipment(_ context.Context) (n int, _ error) {
	_ = r.v.read(func(st *state) error {
		for _, e := range st.equipment {
			if e.Status.IsActive() {
				n++
			}
		}
		return nil
	})
	return n, nil
}

func (r *reportRepo) CountIssuances(_ context.Context) (n int, _ error) {
	_ = r.v.read(func(st *state) error {
		n = len(st.issuances)
		return nil
	})
	return n, nil
}

func (r *reportRepo) CountLowStock(_ context.Context) (n int, _ error) {
	_ = r.v.read(func(st *state) error {
		for _, e := range st.equipment {
			if e.Status.IsActive() && e.BelowMinimum() {
				n++
			}
		}
		return nil
	})
	return n, nil
}

func (r *reportRepo) IssuancesBySector(_ context.Context) ([]repository.SectorCount, error) {
	counts := map[string]int{}
	_ = r.v.read(func(st *state) error {
		sectorOf := map[string]string{}
		for _, e := range st.employees {
			if !e.Status.IsActive() {
				continue
			}
			sector := e.Sector
			if sector == "" {
				sector = SectorUnknown
			}
			sectorOf[e.ID] = sector
			counts[sector] += 0
		}
		for _, i := range st.issuances {
			if sector, ok := sectorOf[i.EmployeeID]; ok {
				counts[sector]++
			}
		}
		return nil
	})
	out := make([]repository.SectorCount, 0, len(counts))
	for s, n := range counts {
		out = append(out, repository.SectorCount{Sector: s, Issuances: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Issuances != out[j].Issuances {
			return out[i].Issuances > out[j].Issuances
		}
		return out[i].Sector < out[j].Sector
	})
	return out, nil
}
