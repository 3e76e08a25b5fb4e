package storage

import (
	"reflect"
	"strings"
	"sync"
)

// Field describes one queryable entity field: its JSON name, the column
// it maps to relationally, and its struct index for in-memory access.
type Field struct {
	Name   string
	Column string
	Index  []int
}

// FieldSet resolves query field names for one entity type. Both adapters
// resolve through it so a misspelled filter fails identically everywhere.
type FieldSet struct {
	byName map[string]Field
}

var (
	fieldCacheMu sync.RWMutex
	fieldCache   = map[reflect.Type]*FieldSet{}
)

// FieldsOf returns the cached FieldSet for the entity type of model.
func FieldsOf(model any) *FieldSet {
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	fieldCacheMu.RLock()
	fs, ok := fieldCache[t]
	fieldCacheMu.RUnlock()
	if ok {
		return fs
	}

	fs = &FieldSet{byName: map[string]Field{}}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := jsonName(f)
		if name == "" || name == "-" {
			continue
		}
		// Relations and nested bags are not queryable fields.
		switch f.Type.Kind() {
		case reflect.Slice, reflect.Map:
			continue
		}
		fs.byName[name] = Field{
			Name:   name,
			Column: columnName(f),
			Index:  f.Index,
		}
	}

	fieldCacheMu.Lock()
	fieldCache[t] = fs
	fieldCacheMu.Unlock()
	return fs
}

// Lookup returns the field for a JSON name.
func (fs *FieldSet) Lookup(name string) (Field, bool) {
	f, ok := fs.byName[name]
	return f, ok
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

func columnName(f reflect.StructField) string {
	for _, part := range strings.Split(f.Tag.Get("gorm"), ";") {
		if v, ok := strings.CutPrefix(part, "column:"); ok {
			return v
		}
	}
	return toSnake(f.Name)
}

// toSnake matches gorm's default naming for the field names we use:
// ImageURL -> image_url, ProjectID -> project_id, IsActive -> is_active.
func toSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			prevLower := i > 0 && runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
