package grocery

import (
	"context"
	"sort"
	"strings"
)

type RepositoryStub struct {
	nextId int
	items  map[int]GroceryItem
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{nextId: 0, items: map[int]GroceryItem{}}
}

func (s *RepositoryStub) StoreItem(ctx context.Context, item GroceryItem) (int, error) {
	s.nextId++
	item.Id = s.nextId
	s.items[item.Id] = item
	return item.Id, nil
}

func (s *RepositoryStub) GetItem(ctx context.Context, id int) (GroceryItem, error) {
	item, ok := s.items[id]
	if !ok {
		return GroceryItem{}, ErrItemNotFound
	}
	return item, nil
}

func (s *RepositoryStub) ListItems(ctx context.Context) ([]GroceryItem, error) {
	return s.sorted(func(GroceryItem) bool { return true }), nil
}

func (s *RepositoryStub) FindByCategory(ctx context.Context, text string) ([]GroceryItem, error) {
	needle := strings.ToLower(text)
	return s.sorted(func(item GroceryItem) bool {
		return strings.Contains(strings.ToLower(item.Category), needle)
	}), nil
}

func (s *RepositoryStub) UpdateItem(ctx context.Context, item GroceryItem) (bool, error) {
	if _, ok := s.items[item.Id]; !ok {
		return false, nil
	}
	s.items[item.Id] = item
	return true, nil
}

func (s *RepositoryStub) DeleteItem(ctx context.Context, id int) (bool, error) {
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func (s *RepositoryStub) DetachUser(ctx context.Context, userId int) (int, error) {
	count := 0
	for id, item := range s.items {
		if item.UserId != nil && *item.UserId == userId {
			item.UserId = nil
			s.items[id] = item
			count++
		}
	}
	return count, nil
}

func (s *RepositoryStub) Reset() {
	s.nextId = 0
	s.items = map[int]GroceryItem{}
}

func (s *RepositoryStub) sorted(keep func(GroceryItem) bool) []GroceryItem {
	items := make([]GroceryItem, 0, len(s.items))
	for _, item := range s.items {
		if keep(item) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Id < items[j].Id })
	return items
}
