package handlers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/foxxcyber/menu-board/internal/database"
	"github.com/foxxcyber/menu-board/internal/models"
)

// memStore is an in-memory Store for handler tests
type memStore struct {
	mu         sync.Mutex
	pingErr    error
	archiveErr error
	categories map[string]*models.Category
	items      map[string]*models.Item
	itemOrder  []string
	orders     map[string]*models.Order
	users      map[string]*models.User
	seq        int
}

func newMemStore() *memStore {
	return &memStore{
		categories: make(map[string]*models.Category),
		items:      make(map[string]*models.Item),
		orders:     make(map[string]*models.Order),
		users:      make(map[string]*models.User),
	}
}

func (s *memStore) nextID() string {
	s.seq++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", s.seq)
}

func (s *memStore) addCategory(id, name, icon string, order int) *models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat := &models.Category{ID: id, NameEN: name, Icon: icon, DisplayOrder: order, CreatedAt: time.Now()}
	s.categories[id] = cat
	return cat
}

func (s *memStore) addItem(name string, price float64, categoryID string, tags ...string) *models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := &models.Item{
		ID:       s.nextID(),
		NameEN:   name,
		Price:    price,
		Variants: []models.Variant{},
		Tags:     models.NormalizeTags(tags),
	}
	if categoryID != "" {
		item.CategoryID = &categoryID
	}
	s.items[item.ID] = item
	s.itemOrder = append(s.itemOrder, item.ID)
	return item
}

func (s *memStore) Ping(ctx context.Context) error { return s.pingErr }

func (s *memStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memStore) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.categories[id]; ok {
		return c, nil
	}
	return nil, database.ErrCategoryNotFound
}

func (s *memStore) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	id := database.CategoryID(req)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; ok {
		return nil, database.ErrCategoryExists
	}
	cat := &models.Category{ID: id, NameEN: req.NameEN, NameTR: req.NameTR, NameAR: req.NameAR, Icon: req.Icon}
	if req.DisplayOrder != nil {
		cat.DisplayOrder = *req.DisplayOrder
	}
	s.categories[id] = cat
	return cat, nil
}

func (s *memStore) UpdateCategory(ctx context.Context, id string, req *models.UpdateCategoryRequest) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat, ok := s.categories[id]
	if !ok {
		return nil, database.ErrCategoryNotFound
	}
	if req.NameEN != nil {
		cat.NameEN = *req.NameEN
	}
	if req.Icon != nil {
		cat.Icon = *req.Icon
	}
	return cat, nil
}

func (s *memStore) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return database.ErrCategoryNotFound
	}
	delete(s.categories, id)
	for _, item := range s.items {
		if item.InCategory(id) {
			item.CategoryID = nil
		}
	}
	return nil
}

func (s *memStore) ReorderCategories(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if _, ok := s.categories[id]; !ok {
			return fmt.Errorf("%w: %s", database.ErrCategoryNotFound, id)
		}
	}
	for i, id := range ids {
		s.categories[id].DisplayOrder = i + 1
	}
	return nil
}

func (s *memStore) InsertMissingCategories(ctx context.Context, categories []*models.Category) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, c := range categories {
		if _, ok := s.categories[c.ID]; !ok {
			s.categories[c.ID] = c
			n++
		}
	}
	return n, nil
}

func (s *memStore) ListItems(ctx context.Context, params *models.ItemListParams) ([]*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Item{}
	for _, id := range s.itemOrder {
		item, ok := s.items[id]
		if !ok {
			continue
		}
		switch params.Archived {
		case models.ArchivedExclude:
			if item.IsArchived() {
				continue
			}
		case models.ArchivedOnly:
			if !item.IsArchived() {
				continue
			}
		}
		if params.CategoryID != "" && !item.InCategory(params.CategoryID) {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(item.NameEN), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *memStore) GetItemByID(ctx context.Context, id string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item, ok := s.items[id]; ok {
		return item, nil
	}
	return nil, database.ErrItemNotFound
}

func (s *memStore) CreateItem(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.CategoryID != nil && *req.CategoryID == models.CategoryAllItemsID {
		return nil, database.ErrCategoryNotAssignable
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		if _, ok := s.categories[*req.CategoryID]; !ok {
			return nil, database.ErrCategoryNotFound
		}
	}
	item := &models.Item{
		ID:         s.nextID(),
		NameEN:     req.NameEN,
		NameTR:     req.NameTR,
		NameAR:     req.NameAR,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		Variants:   req.Variants,
		Tags:       req.Tags,
	}
	s.items[item.ID] = item
	s.itemOrder = append(s.itemOrder, item.ID)
	return item, nil
}

func (s *memStore) UpdateItem(ctx context.Context, id string, req *models.UpdateItemRequest) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, database.ErrItemNotFound
	}
	if req.NameEN != nil {
		item.NameEN = *req.NameEN
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Variants != nil {
		item.Variants = *req.Variants
	}
	if req.Tags != nil {
		item.Tags = req.Tags
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			item.CategoryID = nil
		} else {
			cat := *req.CategoryID
			item.CategoryID = &cat
		}
	}
	return item, nil
}

func (s *memStore) RestoreItem(ctx context.Context, id string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, database.ErrItemNotFound
	}
	item.ArchivedAt = nil
	return item, nil
}

func (s *memStore) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return database.ErrItemNotFound
	}
	if !item.IsArchived() {
		return database.ErrItemNotArchived
	}
	delete(s.items, id)
	return nil
}

func (s *memStore) ReorderItems(ctx context.Context, categoryID string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		item, ok := s.items[id]
		if !ok || (categoryID != "" && !item.InCategory(categoryID)) {
			return fmt.Errorf("%w: %s", database.ErrItemNotFound, id)
		}
	}
	for i, id := range ids {
		s.items[id].DisplayOrder = i + 1
	}
	return nil
}

func (s *memStore) ApplyVariants(ctx context.Context, id string, price float64, variants []models.Variant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return database.ErrItemNotFound
	}
	item.Price = price
	item.Variants = variants
	return nil
}

func (s *memStore) ArchiveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.archiveErr != nil {
		return s.archiveErr
	}
	item, ok := s.items[id]
	if !ok {
		return database.ErrItemNotFound
	}
	if item.ArchivedAt == nil {
		now := time.Now()
		item.ArchivedAt = &now
	}
	return nil
}

func (s *memStore) AssignCategory(ctx context.Context, id, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return database.ErrItemNotFound
	}
	item.CategoryID = &categoryID
	return nil
}

func (s *memStore) ListOrders(ctx context.Context, status models.OrderStatus) ([]*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Order{}
	for _, o := range s.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *memStore) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[id]; ok {
		return o, nil
	}
	return nil, database.ErrOrderNotFound
}

func (s *memStore) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, total float64) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := &models.Order{
		ID:           s.nextID(),
		Items:        req.Items,
		Total:        total,
		Status:       models.OrderPending,
		CustomerName: req.CustomerName,
		CreatedAt:    time.Now(),
	}
	s.orders[o.ID] = o
	return o, nil
}

func (s *memStore) UpdateOrderStatus(ctx context.Context, id string, next models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, database.ErrOrderNotFound
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, database.ErrInvalidTransition
	}
	o.Status = next
	return o, nil
}

func (s *memStore) CreateUser(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(email)
	if _, ok := s.users[key]; ok {
		return nil, database.ErrEmailExists
	}
	if role == "" {
		role = models.RoleStaff
	}
	u := &models.User{ID: len(s.users) + 1, Email: email, PasswordHash: passwordHash, Role: role, CreatedAt: time.Now()}
	s.users[key] = u
	return u, nil
}

func (s *memStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, database.ErrUserNotFound
}

func (s *memStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, database.ErrUserNotFound
}

func (s *memStore) UpdateUserLastLogin(ctx context.Context, id int) error { return nil }

func (s *memStore) EnsureAdminUser(ctx context.Context, email, password string) (bool, error) {
	if _, err := s.GetUserByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, database.ErrUserNotFound) {
		return false, err
	}
	_, err := s.CreateUser(ctx, email, "hash:"+password, models.RoleAdmin)
	return err == nil, err
}
