package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/Rafium-MS/territorio-app/internal/models"
	"github.com/Rafium-MS/territorio-app/internal/repositories"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

// In-memory repository fakes. They mirror the Postgres repositories'
// contracts: nil for a missing row, the same sentinel errors for the
// constraints the database would enforce.

// ---------------------------------------------------------------- territories

type fakeTerritoryRepo struct {
	items []*models.Territory
}

func newFakeTerritoryRepo() *fakeTerritoryRepo { return &fakeTerritoryRepo{} }

func (r *fakeTerritoryRepo) Create(_ context.Context, t *models.Territory) error {
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	cp := *t
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeTerritoryRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Territory, error) {
	for _, t := range r.items {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTerritoryRepo) List(_ context.Context) ([]*models.Territory, error) {
	out := make([]*models.Territory, len(r.items))
	copy(out, r.items)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTerritoryRepo) CountByName(_ context.Context, name string) (int64, error) {
	var n int64
	for _, t := range r.items {
		if strings.EqualFold(t.Name, name) {
			n++
		}
	}
	return n, nil
}

func (r *fakeTerritoryRepo) Update(_ context.Context, t *models.Territory) error {
	for i, cur := range r.items {
		if cur.ID == t.ID {
			cp := *t
			cp.UpdatedAt = time.Now()
			r.items[i] = &cp
			return nil
		}
	}
	return utils.ErrNoRowsUpdated
}

func (r *fakeTerritoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range r.items {
		if t.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// ---------------------------------------------------------------- streets

type fakeStreetRepo struct {
	items []*models.Street
}

func newFakeStreetRepo() *fakeStreetRepo { return &fakeStreetRepo{} }

func (r *fakeStreetRepo) Create(_ context.Context, s *models.Street) error {
	s.CreatedAt = time.Now()
	cp := *s
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeStreetRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Street, error) {
	for _, s := range r.items {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStreetRepo) ListByTerritoryID(_ context.Context, territoryID uuid.UUID) ([]*models.Street, error) {
	var out []*models.Street
	for _, s := range r.items {
		if s.TerritoryID == territoryID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeStreetRepo) NextPosition(_ context.Context, territoryID uuid.UUID) (int, error) {
	max := 0
	for _, s := range r.items {
		if s.TerritoryID == territoryID && s.Position > max {
			max = s.Position
		}
	}
	return max + 1, nil
}

func (r *fakeStreetRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, s := range r.items {
		if s.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// ---------------------------------------------------------------- properties

type fakePropertyRepo struct {
	items   []*models.Property
	streets *fakeStreetRepo
}

func newFakePropertyRepo(streets *fakeStreetRepo) *fakePropertyRepo {
	return &fakePropertyRepo{streets: streets}
}

func (r *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	p.CreatedAt = time.Now()
	cp := *p
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	for _, p := range r.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePropertyRepo) ListByStreetID(_ context.Context, streetID uuid.UUID) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range r.items {
		if p.StreetID == streetID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakePropertyRepo) territoryOf(streetID uuid.UUID) uuid.UUID {
	for _, s := range r.streets.items {
		if s.ID == streetID {
			return s.TerritoryID
		}
	}
	return uuid.Nil
}

func (r *fakePropertyRepo) ListByTerritoryID(_ context.Context, territoryID uuid.UUID) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range r.items {
		if r.territoryOf(p.StreetID) == territoryID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) CountByTerritoryID(_ context.Context, territoryID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.items {
		if r.territoryOf(p.StreetID) == territoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakePropertyRepo) NextPosition(_ context.Context, streetID uuid.UUID) (int, error) {
	max := 0
	for _, p := range r.items {
		if p.StreetID == streetID && p.Position > max {
			max = p.Position
		}
	}
	return max + 1, nil
}

func (r *fakePropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, p := range r.items {
		if p.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// ---------------------------------------------------------------- outings

type fakeOutingRepo struct {
	items []*models.Outing
}

func newFakeOutingRepo() *fakeOutingRepo { return &fakeOutingRepo{} }

func (r *fakeOutingRepo) Create(_ context.Context, o *models.Outing) error {
	now := time.Now()
	o.CreatedAt, o.UpdatedAt = now, now
	cp := *o
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeOutingRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Outing, error) {
	for _, o := range r.items {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOutingRepo) List(_ context.Context) ([]*models.Outing, error) {
	out := make([]*models.Outing, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *fakeOutingRepo) Update(_ context.Context, o *models.Outing) error {
	for i, cur := range r.items {
		if cur.ID == o.ID {
			cp := *o
			cp.UpdatedAt = time.Now()
			r.items[i] = &cp
			return nil
		}
	}
	return utils.ErrNoRowsUpdated
}

func (r *fakeOutingRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, o := range r.items {
		if o.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// ---------------------------------------------------------------- assignments

type fakeAssignmentRepo struct {
	items []*models.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo { return &fakeAssignmentRepo{} }

func (r *fakeAssignmentRepo) Create(_ context.Context, a *models.Assignment) error {
	if a.Status == models.AssignmentStatusActive {
		for _, cur := range r.items {
			if cur.TerritoryID == a.TerritoryID && cur.Status == models.AssignmentStatusActive {
				return utils.ErrTerritoryAlreadyAssigned
			}
		}
	}
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	if a.GetRowVersion() == 0 {
		a.SetRowVersion(1)
	}
	cp := *a
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Assignment, error) {
	for _, a := range r.items {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAssignmentRepo) ListFiltered(_ context.Context, f repositories.AssignmentFilter) ([]*models.Assignment, error) {
	var out []*models.Assignment
	for _, a := range r.items {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.OutingID != nil && a.OutingID != *f.OutingID {
			continue
		}
		if f.ResponsibleLike != "" &&
			!strings.Contains(strings.ToLower(a.Responsible), strings.ToLower(f.ResponsibleLike)) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssignedDate.After(out[j].AssignedDate) })
	return out, nil
}

func (r *fakeAssignmentRepo) ActiveByTerritoryID(_ context.Context, territoryID uuid.UUID) (*models.Assignment, error) {
	for _, a := range r.items {
		if a.TerritoryID == territoryID && a.Status == models.AssignmentStatusActive {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAssignmentRepo) ActiveCoveringDate(_ context.Context, date time.Time, outingID *uuid.UUID) (*models.Assignment, error) {
	var candidates []*models.Assignment
	for _, a := range r.items {
		if a.Status != models.AssignmentStatusActive || !a.Covers(date) {
			continue
		}
		if outingID != nil && a.OutingID != *outingID {
			continue
		}
		candidates = append(candidates, a)
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].AssignedDate.After(candidates[j].AssignedDate)
	})
	cp := *candidates[0]
	return &cp, nil
}

func (r *fakeAssignmentRepo) ListUpcoming(_ context.Context, after time.Time, limit int) ([]*models.Assignment, error) {
	var out []*models.Assignment
	for _, a := range r.items {
		if a.Status == models.AssignmentStatusActive && a.AssignedDate.After(after) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssignedDate.Before(out[j].AssignedDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ListOverdue(_ context.Context, asOf time.Time) ([]*models.Assignment, error) {
	var out []*models.Assignment
	for _, a := range r.items {
		if a.Status == models.AssignmentStatusActive && a.DueDate.Before(asOf) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *fakeAssignmentRepo) CountByOutingID(_ context.Context, outingID uuid.UUID) (int64, error) {
	var n int64
	for _, a := range r.items {
		if a.OutingID == outingID {
			n++
		}
	}
	return n, nil
}

func (r *fakeAssignmentRepo) CountByStatus(_ context.Context, status models.AssignmentStatusType) (int64, error) {
	var n int64
	for _, a := range r.items {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeAssignmentRepo) CountActivePerOuting(_ context.Context, limit int) ([]repositories.OutingCount, error) {
	counts := make(map[uuid.UUID]int64)
	for _, a := range r.items {
		if a.Status == models.AssignmentStatusActive {
			counts[a.OutingID]++
		}
	}
	var out []repositories.OutingCount
	for id, n := range counts {
		out = append(out, repositories.OutingCount{OutingID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAssignmentRepo) CountCompletedPerOutcome(_ context.Context) ([]repositories.OutcomeCount, error) {
	counts := make(map[string]int64)
	for _, a := range r.items {
		if a.Status == models.AssignmentStatusCompleted {
			outcome := ""
			if a.Outcome != nil {
				outcome = string(*a.Outcome)
			}
			counts[outcome]++
		}
	}
	var out []repositories.OutcomeCount
	for o, n := range counts {
		out = append(out, repositories.OutcomeCount{Outcome: o, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Outcome < out[j].Outcome })
	return out, nil
}

func (r *fakeAssignmentRepo) UpdateIfVersion(_ context.Context, a *models.Assignment, expected int64) (pgconn.CommandTag, error) {
	for i, cur := range r.items {
		if cur.ID == a.ID && cur.GetRowVersion() == expected {
			cp := *a
			cp.SetRowVersion(expected + 1)
			cp.UpdatedAt = time.Now()
			r.items[i] = &cp
			return pgconn.CommandTag("UPDATE 1"), nil
		}
	}
	return pgconn.CommandTag("UPDATE 0"), nil
}

func (r *fakeAssignmentRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Assignment) error) error {
	cur, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return utils.ErrAssignmentNotFound
	}
	expected := cur.GetRowVersion()
	if err := mutate(cur); err != nil {
		return err
	}
	tag, err := r.UpdateIfVersion(ctx, cur, expected)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return utils.ErrRowVersionConflict
	}
	return nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, a := range r.items {
		if a.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// ---------------------------------------------------------------- visits

type fakeVisitRepo struct {
	items []*models.VisitRecord
}

func newFakeVisitRepo() *fakeVisitRepo { return &fakeVisitRepo{} }

func (r *fakeVisitRepo) Create(_ context.Context, v *models.VisitRecord) error {
	v.CreatedAt = time.Now()
	cp := *v
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeVisitRepo) GetByID(_ context.Context, id uuid.UUID) (*models.VisitRecord, error) {
	for _, v := range r.items {
		if v.ID == id {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVisitRepo) LatestByPropertyID(_ context.Context, propertyID uuid.UUID) (*models.VisitRecord, error) {
	var latest *models.VisitRecord
	for _, v := range r.items {
		if v.PropertyID != propertyID {
			continue
		}
		if latest == nil ||
			v.VisitDate.After(latest.VisitDate) ||
			(v.VisitDate.Equal(latest.VisitDate) && v.CreatedAt.After(latest.CreatedAt)) {
			latest = v
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *fakeVisitRepo) ListFiltered(_ context.Context, f repositories.VisitFilter) ([]*models.VisitRecord, error) {
	var out []*models.VisitRecord
	for _, v := range r.items {
		if f.TerritoryID != nil && v.TerritoryID != *f.TerritoryID {
			continue
		}
		if f.StreetID != nil && v.StreetID != *f.StreetID {
			continue
		}
		if f.Outcome != "" && v.Outcome != f.Outcome {
			continue
		}
		if f.ResponsibleLike != "" &&
			!strings.Contains(strings.ToLower(v.RecordedBy), strings.ToLower(f.ResponsibleLike)) {
			continue
		}
		if f.From != nil && v.VisitDate.Before(*f.From) {
			continue
		}
		if f.To != nil && v.VisitDate.After(*f.To) {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitDate.After(out[j].VisitDate) })
	return out, nil
}

func (r *fakeVisitRepo) ListByTerritoryID(ctx context.Context, territoryID uuid.UUID) ([]*models.VisitRecord, error) {
	return r.ListFiltered(ctx, repositories.VisitFilter{TerritoryID: &territoryID})
}

func (r *fakeVisitRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeVisitRepo) CountPerOutcome(_ context.Context) ([]repositories.OutcomeCount, error) {
	counts := make(map[string]int64)
	for _, v := range r.items {
		counts[string(v.Outcome)]++
	}
	var out []repositories.OutcomeCount
	for o, n := range counts {
		out = append(out, repositories.OutcomeCount{Outcome: o, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Outcome < out[j].Outcome })
	return out, nil
}

func (r *fakeVisitRepo) CountPerDaySince(_ context.Context, since time.Time) ([]repositories.DayCount, error) {
	counts := make(map[string]int64)
	for _, v := range r.items {
		if v.VisitDate.Before(since) {
			continue
		}
		counts[utils.FormatDate(v.VisitDate)]++
	}
	var out []repositories.DayCount
	for d, n := range counts {
		out = append(out, repositories.DayCount{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// ---------------------------------------------------------------- users

type fakeUserRepo struct {
	items []*models.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{} }

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	for _, cur := range r.items {
		if strings.EqualFold(cur.Email, u.Email) {
			return utils.ErrEmailExists
		}
	}
	u.CreatedAt = time.Now()
	cp := *u
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range r.items {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.items {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// compile-time interface checks
var (
	_ repositories.TerritoryRepository   = (*fakeTerritoryRepo)(nil)
	_ repositories.StreetRepository      = (*fakeStreetRepo)(nil)
	_ repositories.PropertyRepository    = (*fakePropertyRepo)(nil)
	_ repositories.OutingRepository      = (*fakeOutingRepo)(nil)
	_ repositories.AssignmentRepository  = (*fakeAssignmentRepo)(nil)
	_ repositories.VisitRecordRepository = (*fakeVisitRepo)(nil)
	_ repositories.UserRepository        = (*fakeUserRepo)(nil)
)
