package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/CamiloTello002/Talent-Trade/internal/domain/apperr"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
)

// In-memory repositories backing the service tests. They mirror the
// Postgres implementations' guard behavior so kind assertions hold.

type memUserRepo struct {
	mu          sync.Mutex
	seq         int
	order       []string
	users       map[string]*entity.User
	contacts    map[string]map[string]bool
	specialties map[string][]entity.TagPair
	interests   map[string][]entity.TagPair
	ratings     map[string][]entity.Rating
	trades      *memTradeRepo
}

func newMemUserRepo(trades *memTradeRepo) *memUserRepo {
	return &memUserRepo{
		users:       map[string]*entity.User{},
		contacts:    map[string]map[string]bool{},
		specialties: map[string][]entity.TagPair{},
		interests:   map[string][]entity.TagPair{},
		ratings:     map[string][]entity.Rating{},
		trades:      trades,
	}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperr.Authorization("email is already registered")
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	cp := *u
	r.users[u.ID] = &cp
	r.order = append(r.order, u.ID)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return apperr.NotFound("user not found")
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) UpdatePasswordByEmail(_ context.Context, email, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u.Password = passwordHash
			return nil
		}
	}
	return apperr.NotFound("user not found")
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("user not found")
	}
	delete(r.users, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memUserRepo) profile(u *entity.User) *entity.Profile {
	p := &entity.Profile{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		AboutMe:     u.AboutMe,
		AvatarURL:   u.AvatarURL,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
	}
	for _, tp := range r.specialties[u.ID] {
		p.Specialties = append(p.Specialties, entity.TagView{TagPair: tp})
	}
	for _, tp := range r.interests[u.ID] {
		p.Interests = append(p.Interests, entity.TagView{TagPair: tp})
	}
	for _, rt := range r.ratings[u.ID] {
		p.Ratings = append(p.Ratings, entity.RatingView{Rating: rt})
	}
	if r.trades != nil {
		for _, t := range r.trades.list() {
			if t.MemberOne == u.ID || t.MemberTwo == u.ID {
				p.TradeIDs = append(p.TradeIDs, t.ID)
			}
		}
	}
	return p
}

func (r *memUserRepo) ProfileByID(_ context.Context, id string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return r.profile(u), nil
}

func (r *memUserRepo) ProfileByEmail(_ context.Context, email string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return r.profile(u), nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (r *memUserRepo) Find(_ context.Context, categoryID string, page, pageSize int) ([]entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.User
	for _, id := range r.order {
		u := r.users[id]
		if categoryID != "" {
			found := false
			for _, tp := range r.specialties[id] {
				if tp.CategoryID == categoryID {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		matched = append(matched, u)
	}
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []entity.Profile{}, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]entity.Profile, 0, end-start)
	for _, u := range matched[start:end] {
		out = append(out, *r.profile(u))
	}
	return out, nil
}

func (r *memUserRepo) IsContact(_ context.Context, ownerID, contactID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.contacts[ownerID][contactID], nil
}

func (r *memUserRepo) addContact(ownerID, contactID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.contacts[ownerID] == nil {
		r.contacts[ownerID] = map[string]bool{}
	}
	r.contacts[ownerID][contactID] = true
}

func (r *memUserRepo) AddSpecialties(_ context.Context, userID string, pairs []entity.TagPair) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specialties[userID] = appendUnique(r.specialties[userID], pairs)
	return nil
}

func (r *memUserRepo) AddInterests(_ context.Context, userID string, pairs []entity.TagPair) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interests[userID] = appendUnique(r.interests[userID], pairs)
	return nil
}

func appendUnique(existing []entity.TagPair, pairs []entity.TagPair) []entity.TagPair {
	for _, p := range pairs {
		dup := false
		for _, e := range existing {
			if e == p {
				dup = true
				break
			}
		}
		if !dup {
			existing = append(existing, p)
		}
	}
	return existing
}

func (r *memUserRepo) HasRatingForTrade(_ context.Context, userID, tradeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range r.ratings[userID] {
		if rt.TradeID == tradeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) AddRatingAndMarkTrade(ctx context.Context, targetID string, rating entity.Rating) error {
	t, err := r.trades.GetByID(ctx, rating.TradeID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.Status != entity.TradeFinished {
		return apperr.Authorization("trade is not finished")
	}
	if t.HasRated(rating.AuthorID) {
		return apperr.BadRequest("member already rated this trade")
	}
	for _, rt := range r.ratings[targetID] {
		if rt.TradeID == rating.TradeID {
			return apperr.Authorization("user already rated for this trade")
		}
	}
	r.seq++
	rating.ID = fmt.Sprintf("rating-%d", r.seq)
	r.ratings[targetID] = append(r.ratings[targetID], rating)
	r.trades.markRated(rating.TradeID, rating.AuthorID)
	return nil
}

func (r *memUserRepo) Suggestions(_ context.Context, specialtyIDs []string, excludeID string, limit int) ([]entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[string]bool{}
	for _, id := range specialtyIDs {
		want[id] = true
	}
	var out []entity.Profile
	for _, id := range r.order {
		if id == excludeID || len(out) >= limit {
			continue
		}
		for _, tp := range r.specialties[id] {
			if want[tp.SpecialtyID] {
				out = append(out, *r.profile(r.users[id]))
				break
			}
		}
	}
	return out, nil
}

type memTradeRepo struct {
	mu     sync.Mutex
	seq    int
	order  []string
	trades map[string]*entity.Trade
}

func newMemTradeRepo() *memTradeRepo {
	return &memTradeRepo{trades: map[string]*entity.Trade{}}
}

func (r *memTradeRepo) Create(_ context.Context, t *entity.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	t.ID = fmt.Sprintf("trade-%d", r.seq)
	cp := *t
	r.trades[t.ID] = &cp
	r.order = append(r.order, t.ID)
	return nil
}

func (r *memTradeRepo) GetByID(_ context.Context, id string) (*entity.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trades[id]
	if !ok {
		return nil, apperr.NotFound("trade not found")
	}
	cp := *t
	return &cp, nil
}

func (r *memTradeRepo) GetForMember(ctx context.Context, id, userID string) (*entity.Trade, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsMember(userID) {
		return nil, apperr.NotFound("trade not found")
	}
	return t, nil
}

func (r *memTradeRepo) ListForMember(_ context.Context, userID string) ([]entity.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Trade
	for _, id := range r.order {
		t := r.trades[id]
		if t.MemberOne == userID || t.MemberTwo == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTradeRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trades[id]
	if !ok {
		return apperr.NotFound("trade not found")
	}
	t.Status = status
	return nil
}

func (r *memTradeRepo) list() []entity.Trade {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Trade, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.trades[id])
	}
	return out
}

func (r *memTradeRepo) markRated(id, memberID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trades[id]
	if !ok {
		return
	}
	switch memberID {
	case t.MemberOne:
		t.MemberOneRated = true
	case t.MemberTwo:
		t.MemberTwoRated = true
	}
}

// mailRecorder captures enqueued email jobs.
type mailRecorder struct {
	mu   sync.Mutex
	jobs []any
}

func (m *mailRecorder) PublishJSON(_ context.Context, body any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, body)
	return nil
}

func (m *mailRecorder) sent() []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]any(nil), m.jobs...)
}
