package s3store

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"time"

	"go.uber.org/zap"

	"construction-cms/internal/core/metrics"
	"construction-cms/internal/storage"
	"construction-cms/pkg/utils"
)

// collection is the generic engine behind every repository: one JSON
// array object, loaded whole, mutated in memory, written back whole.
// The accessor funcs keep it free of reflection on the hot paths.
type collection[T any] struct {
	s        *Store
	entity   string
	key      string
	id       func(*T) string
	setID    func(*T, string)
	stamp    func(*T, time.Time, bool) // touch UpdatedAt; create also sets CreatedAt
	order    func(*T) int              // nil for unordered entities
	setOrder func(*T, int)
}

// loadShared reads the collection, collapsing concurrent reads of the
// same key into one GET. Only read paths may use it.
func (c collection[T]) loadShared(ctx context.Context) ([]T, error) {
	v, err, _ := c.s.sf.Do(c.key, func() (any, error) {
		return c.loadExclusive(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}

// loadExclusive always fetches fresh state; every mutation starts here
// so the read-modify-write cycle never works on a shared slice.
func (c collection[T]) loadExclusive(ctx context.Context) ([]T, error) {
	data, err := c.s.objects.Get(ctx, c.key)
	if err != nil {
		c.opError("load", "", err)
		return nil, err
	}
	if data == nil {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		c.opError("load", "", err)
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return items, nil
}

func (c collection[T]) save(ctx context.Context, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.s.objects.Put(ctx, c.key, data); err != nil {
		c.opError("save", "", err)
		return err
	}
	return nil
}

func (c collection[T]) get(ctx context.Context, id string) (m *T, err error) {
	defer func(start time.Time) { metrics.Observe(backendName, c.entity, "get", start, err) }(time.Now())
	items, err := c.loadShared(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if c.id(&items[i]) == id {
			rec := items[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (c collection[T]) list(ctx context.Context, opts storage.ListOptions) (out []T, err error) {
	defer func(start time.Time) { metrics.Observe(backendName, c.entity, "list", start, err) }(time.Now())
	items, err := c.loadShared(ctx)
	if err != nil {
		return nil, err
	}
	// loadShared hands the same slice to every collapsed caller; filter
	// and sort a private copy.
	return filterSlice(slices.Clone(items), opts)
}

// create assigns id and timestamps, resolves a negative order to
// append-after-max within scope, and rewrites the collection.
func (c collection[T]) create(ctx context.Context, m *T, scope func(*T) bool) (err error) {
	defer func(start time.Time) { metrics.Observe(backendName, c.entity, "create", start, err) }(time.Now())
	items, err := c.loadExclusive(ctx)
	if err != nil {
		return err
	}
	c.setID(m, utils.NewID())
	c.stamp(m, time.Now().UTC(), true)
	if c.order != nil && c.order(m) < 0 {
		next := 0
		for i := range items {
			if scope != nil && !scope(&items[i]) {
				continue
			}
			if o := c.order(&items[i]); o > next {
				next = o
			}
		}
		c.setOrder(m, next+1)
	}
	items = append(items, *m)
	return c.save(ctx, items)
}

func (c collection[T]) update(ctx context.Context, id string, apply func(*T), touch bool) (m *T, err error) {
	defer func(start time.Time) { metrics.Observe(backendName, c.entity, "update", start, err) }(time.Now())
	items, err := c.loadExclusive(ctx)
	if err != nil {
		return nil, err
	}
	idx := c.indexOf(items, id)
	if idx < 0 {
		return nil, storage.ErrNotFound
	}
	before := items[idx]
	apply(&items[idx])
	// An apply that changed nothing writes nothing, matching the
	// relational adapter's empty change set.
	if reflect.DeepEqual(before, items[idx]) {
		rec := items[idx]
		return &rec, nil
	}
	if touch {
		c.stamp(&items[idx], time.Now().UTC(), false)
	}
	if err = c.save(ctx, items); err != nil {
		return nil, err
	}
	rec := items[idx]
	return &rec, nil
}

// delete is idempotent: an absent id writes nothing and returns nil.
func (c collection[T]) delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { metrics.Observe(backendName, c.entity, "delete", start, err) }(time.Now())
	items, err := c.loadExclusive(ctx)
	if err != nil {
		return err
	}
	idx := c.indexOf(items, id)
	if idx < 0 {
		return nil
	}
	items = append(items[:idx], items[idx+1:]...)
	return c.save(ctx, items)
}

// move swaps order values with the neighbor above or below within
// scope. Boundary positions are a soft no-op: (false, nil).
func (c collection[T]) move(ctx context.Context, id string, up bool, scope func(*T) bool) (moved bool, err error) {
	defer func(start time.Time) { metrics.Observe(backendName, c.entity, "move", start, err) }(time.Now())
	items, err := c.loadExclusive(ctx)
	if err != nil {
		return false, err
	}
	idxs := make([]int, 0, len(items))
	for i := range items {
		if scope == nil || scope(&items[i]) {
			idxs = append(idxs, i)
		}
	}
	// Same ordering the relational adapter uses for neighbor lookup.
	slices.SortStableFunc(idxs, func(a, b int) int {
		if d := c.order(&items[a]) - c.order(&items[b]); d != 0 {
			return d
		}
		return cmpStrings(c.id(&items[a]), c.id(&items[b]))
	})
	pos := -1
	for p, i := range idxs {
		if c.id(&items[i]) == id {
			pos = p
			break
		}
	}
	if pos < 0 {
		return false, storage.ErrNotFound
	}
	q := pos + 1
	if up {
		q = pos - 1
	}
	if q < 0 || q >= len(idxs) {
		return false, nil
	}
	a, b := idxs[pos], idxs[q]
	now := time.Now().UTC()
	oa, ob := c.order(&items[a]), c.order(&items[b])
	c.setOrder(&items[a], ob)
	c.setOrder(&items[b], oa)
	c.stamp(&items[a], now, false)
	c.stamp(&items[b], now, false)
	if err = c.save(ctx, items); err != nil {
		return false, err
	}
	return true, nil
}

// reorder rewrites order values to match the id sequence (1-based).
func (c collection[T]) reorder(ctx context.Context, ids []string, scope func(*T) bool) (err error) {
	defer func(start time.Time) { metrics.Observe(backendName, c.entity, "reorder", start, err) }(time.Now())
	items, err := c.loadExclusive(ctx)
	if err != nil {
		return err
	}
	byID := map[string]int{}
	for i := range items {
		if scope == nil || scope(&items[i]) {
			byID[c.id(&items[i])] = i
		}
	}
	now := time.Now().UTC()
	for seq, id := range ids {
		i, ok := byID[id]
		if !ok {
			return storage.ErrNotFound
		}
		c.setOrder(&items[i], seq+1)
		c.stamp(&items[i], now, false)
	}
	return c.save(ctx, items)
}

// increment bumps a counter through apply without touching UpdatedAt,
// matching the relational adapter's column-only update.
func (c collection[T]) increment(ctx context.Context, id string, bump func(*T) int64) (int64, error) {
	var n int64
	_, err := c.update(ctx, id, func(t *T) { n = bump(t) }, false)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (c collection[T]) indexOf(items []T, id string) int {
	for i := range items {
		if c.id(&items[i]) == id {
			return i
		}
	}
	return -1
}

func (c collection[T]) opError(op, id string, err error) {
	c.s.log.Error("storage operation failed",
		zap.String("backend", backendName),
		zap.String("entity", c.entity),
		zap.String("op", op),
		zap.String("id", id),
		zap.Error(err),
	)
}

func cmpStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// stampTimes is the shared timestamp closure body.
func stampTimes(created *time.Time, updated *time.Time, now time.Time, isCreate bool) {
	if isCreate {
		*created = now
	}
	*updated = now
}
