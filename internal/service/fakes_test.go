package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/model"
	"storefront/internal/repository"
)

// memDB is an in-memory stand-in for the MySQL schema. Unique indexes are enforced
// and transactions are serialized and rolled back on error.
type memDB struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	accounts map[uuid.UUID]model.Account
	profiles map[uuid.UUID]model.AccountProfile
	products map[uuid.UUID]model.Product
	lines    []model.CartLine
	orders   []model.Order
}

func newMemDB() *memDB {
	return &memDB{
		accounts: make(map[uuid.UUID]model.Account),
		profiles: make(map[uuid.UUID]model.AccountProfile),
		products: make(map[uuid.UUID]model.Product),
	}
}

func (db *memDB) repos() repository.Repositories {
	return repository.Repositories{
		Accounts: &memAccountRepo{db: db},
		Products: &memProductRepo{db: db},
		Cart:     &memCartRepo{db: db},
		Orders:   &memOrderRepo{db: db},
	}
}

func (db *memDB) addProduct(name string, price string, createdAt time.Time) model.Product {
	db.mu.Lock()
	defer db.mu.Unlock()
	p := model.Product{ID: uuid.New(), Name: name, Price: decimal.RequireFromString(price), CreatedAt: createdAt}
	db.products[p.ID] = p
	return p
}

func (db *memDB) setPrice(id uuid.UUID, price string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	p := db.products[id]
	p.Price = decimal.RequireFromString(price)
	db.products[id] = p
}

func (db *memDB) deleteProduct(id uuid.UUID) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.products, id)
}

func (db *memDB) addAccount(account model.Account) model.Account {
	db.mu.Lock()
	defer db.mu.Unlock()
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	db.accounts[account.ID] = account
	return account
}

func (db *memDB) account(id uuid.UUID) model.Account {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.accounts[id]
}

func (db *memDB) orderCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.orders)
}

func (db *memDB) cartLen(accountID uuid.UUID) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, l := range db.lines {
		if l.AccountID == accountID {
			n++
		}
	}
	return n
}

type memSnapshot struct {
	accounts map[uuid.UUID]model.Account
	profiles map[uuid.UUID]model.AccountProfile
	lines    []model.CartLine
	orders   []model.Order
}

func (db *memDB) snapshot() memSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	s := memSnapshot{
		accounts: make(map[uuid.UUID]model.Account, len(db.accounts)),
		profiles: make(map[uuid.UUID]model.AccountProfile, len(db.profiles)),
		lines:    append([]model.CartLine(nil), db.lines...),
		orders:   append([]model.Order(nil), db.orders...),
	}
	for k, v := range db.accounts {
		s.accounts[k] = v
	}
	for k, v := range db.profiles {
		s.profiles[k] = v
	}
	return s
}

func (db *memDB) restore(s memSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.accounts = s.accounts
	db.profiles = s.profiles
	db.lines = s.lines
	db.orders = s.orders
}

// WithTransaction implements repository.Transactor.
func (db *memDB) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()
	snap := db.snapshot()
	if err := fn(ctx, db.repos()); err != nil {
		db.restore(snap)
		return err
	}
	return nil
}

type memAccountRepo struct{ db *memDB }

func (r *memAccountRepo) Create(ctx context.Context, account *model.Account, profile *model.AccountProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.accounts {
		if a.Email == account.Email || a.Username == account.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	profile.AccountID = account.ID
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	r.db.accounts[account.ID] = *account
	r.db.profiles[account.ID] = *profile
	return nil
}

func (r *memAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *memAccountRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return r.FindByID(ctx, id)
}

func (r *memAccountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.accounts {
		if a.Email == email {
			found := a
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memAccountRepo) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.accounts {
		if a.Username == username {
			found := a
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memAccountRepo) FindProfile(ctx context.Context, accountID uuid.UUID) (*model.AccountProfile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.profiles[accountID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *memAccountRepo) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a := r.db.accounts[id]
	a.LastLoginAt = at
	a.IsActive = true
	r.db.accounts[id] = a
	return nil
}

func (r *memAccountRepo) RecordOrder(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a := r.db.accounts[id]
	a.Stats.OrdersCount++
	a.Stats.TotalSpent = a.Stats.TotalSpent.Add(total)
	r.db.accounts[id] = a
	return nil
}

type memProductRepo struct{ db *memDB }

func (r *memProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *memProductRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.db.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) sorted(desc bool, limit int) []model.Product {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	all := make([]model.Product, 0, len(r.db.products))
	for _, p := range r.db.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if desc {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

func (r *memProductRepo) ListOldest(ctx context.Context, limit int) ([]model.Product, error) {
	return r.sorted(false, limit), nil
}

func (r *memProductRepo) ListNewest(ctx context.Context, limit int) ([]model.Product, error) {
	return r.sorted(true, limit), nil
}

type memCartRepo struct{ db *memDB }

func (r *memCartRepo) Increment(ctx context.Context, accountID, productID uuid.UUID, quantity int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, l := range r.db.lines {
		if l.AccountID == accountID && l.ProductID == productID {
			r.db.lines[i].Quantity += quantity
			return nil
		}
	}
	r.db.lines = append(r.db.lines, model.CartLine{
		ID:        uuid.New(),
		AccountID: accountID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	})
	return nil
}

func (r *memCartRepo) Adjust(ctx context.Context, accountID, productID uuid.UUID, delta int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, l := range r.db.lines {
		if l.AccountID == accountID && l.ProductID == productID {
			if l.Quantity+delta <= 0 {
				r.db.lines = append(r.db.lines[:i:i], r.db.lines[i+1:]...)
			} else {
				r.db.lines[i].Quantity += delta
			}
			return nil
		}
	}
	return nil
}

func (r *memCartRepo) Delete(ctx context.Context, accountID, productID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	kept := r.db.lines[:0:0]
	for _, l := range r.db.lines {
		if !(l.AccountID == accountID && l.ProductID == productID) {
			kept = append(kept, l)
		}
	}
	r.db.lines = kept
	return nil
}

func (r *memCartRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.CartLine, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.CartLine
	for _, l := range r.db.lines {
		if l.AccountID == accountID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memCartRepo) DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	kept := r.db.lines[:0:0]
	var n int64
	for _, l := range r.db.lines {
		if l.AccountID == accountID {
			n++
			continue
		}
		kept = append(kept, l)
	}
	r.db.lines = kept
	return n, nil
}

type memOrderRepo struct{ db *memDB }

func (r *memOrderRepo) Create(ctx context.Context, order *model.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	stored := *order
	stored.Items = append([]model.OrderItem(nil), order.Items...)
	r.db.orders = append(r.db.orders, stored)
	return nil
}

func (r *memOrderRepo) FindByIDForAccount(ctx context.Context, id, accountID uuid.UUID) (*model.Order, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, o := range r.db.orders {
		if o.ID == id && o.AccountID == accountID {
			found := o
			found.Items = append([]model.OrderItem(nil), o.Items...)
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memOrderRepo) FindLatestByAccount(ctx context.Context, accountID uuid.UUID) (*model.Order, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var latest *model.Order
	for i := range r.db.orders {
		o := r.db.orders[i]
		if o.AccountID != accountID {
			continue
		}
		if latest == nil || !o.PlacedAt.Before(latest.PlacedAt) {
			found := o
			latest = &found
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}
