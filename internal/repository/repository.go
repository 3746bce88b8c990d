// Package repository implements the generic catalog repository: uniform
// list / search / get / create / update / delete over any catalog entity,
// enforcing the soft-delete and audit invariants in one place.
//
// Field access is not reflective at call time: every repository builds a
// field registry from the parsed GORM schema at construction, and every
// caller-supplied field name (order_by, filters, search) is validated
// against it before touching SQL.
package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/scroll2learn/Gen-AI-Catalog-API-sub000/internal/domain"
)

// Audit and soft-delete column names shared by all catalog entities.
const (
	columnIsDeleted = "is_deleted"
	columnCreatedBy = "created_by"
	columnUpdatedBy = "updated_by"
	columnDeletedBy = "deleted_by"
)

// DefaultLimit applies when a list call does not specify one.
const DefaultLimit = 100

// schemaCache is shared across repositories so each model is parsed once.
var schemaCache = &sync.Map{}

// Config parameterizes a repository for one entity / Paramètre un repository pour une entité
type Config struct {
	// NameField/KeyField enable key derivation on create: when both are
	// set and the key field is empty, the key is derived from the name
	// via NameToKey. Names may be Go field names or column names.
	NameField string
	KeyField  string
}

// Repository is the generic CRUD + search component / Composant générique CRUD + recherche
type Repository[T any] struct {
	db  *gorm.DB
	cfg Config
	sch *schema.Schema

	pk        *schema.Field
	isDeleted *schema.Field
	createdBy *schema.Field
	updatedBy *schema.Field
	deletedBy *schema.Field
	nameField *schema.Field
	keyField  *schema.Field
}

// New builds a repository for T, parsing its schema once / Construit un repository pour T
func New[T any](db *gorm.DB, cfg Config) (*Repository[T], error) {
	var model T
	sch, err := schema.Parse(&model, schemaCache, db.NamingStrategy)
	if err != nil {
		return nil, fmt.Errorf("parse schema for %T: %w", model, err)
	}
	if sch.PrioritizedPrimaryField == nil {
		return nil, fmt.Errorf("entity %s has no primary key", sch.Name)
	}

	r := &Repository[T]{
		db:        db,
		cfg:       cfg,
		sch:       sch,
		pk:        sch.PrioritizedPrimaryField,
		isDeleted: sch.LookUpField(columnIsDeleted),
		createdBy: sch.LookUpField(columnCreatedBy),
		updatedBy: sch.LookUpField(columnUpdatedBy),
		deletedBy: sch.LookUpField(columnDeletedBy),
	}

	if cfg.NameField != "" && cfg.KeyField != "" {
		if r.nameField = sch.LookUpField(cfg.NameField); r.nameField == nil {
			return nil, &UnknownFieldError{Entity: sch.Name, Field: cfg.NameField}
		}
		if r.keyField = sch.LookUpField(cfg.KeyField); r.keyField == nil {
			return nil, &UnknownFieldError{Entity: sch.Name, Field: cfg.KeyField}
		}
	}

	return r, nil
}

// Entity returns the entity type name / Retourne le nom du type d'entité
func (r *Repository[T]) Entity() string { return r.sch.Name }

// field resolves a caller-supplied name against the registry.
func (r *Repository[T]) field(name string) (*schema.Field, error) {
	if f := r.sch.LookUpField(name); f != nil {
		return f, nil
	}
	return nil, &UnknownFieldError{Entity: r.sch.Name, Field: name}
}

// column renders a field as a dialect-quoted identifier. Catalog entities
// all carry a "key" column, a reserved word in MySQL, so raw names cannot
// go into WHERE fragments.
func column(tx *gorm.DB, f *schema.Field) string {
	return tx.Statement.Quote(clause.Column{Name: f.DBName})
}

// scoped starts a query excluding soft-deleted rows / Démarre une requête excluant les lignes supprimées
func (r *Repository[T]) scoped(ctx context.Context) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(new(T))
	if r.isDeleted != nil {
		tx = tx.Where(columnIsDeleted+" = ?", false)
	}
	return tx
}

// ListParams carries pagination, ordering and exact-match filters / Pagination, tri et filtres d'égalité
type ListParams struct {
	Offset  int
	Limit   int            // <= 0 falls back to DefaultLimit
	OrderBy string         // must name an existing field
	Desc    bool
	Filters map[string]any // nil values are skipped; others AND-ed as equality
}

// List returns a page of live rows / Retourne une page de lignes actives
//
// Ordering and paging are applied after filters. No snapshot isolation is
// imposed beyond the database default: pages can shift under concurrent
// writes.
func (r *Repository[T]) List(ctx context.Context, p ListParams) ([]T, error) {
	if p.Offset < 0 {
		return nil, ErrNegativeOffset
	}
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	tx := r.scoped(ctx)
	tx, err := r.applyFilters(tx, p.Filters)
	if err != nil {
		return nil, err
	}

	if p.OrderBy != "" {
		f, err := r.field(p.OrderBy)
		if err != nil {
			return nil, err
		}
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: f.DBName},
			Desc:   p.Desc,
		})
	}

	rows := make([]T, 0, limit)
	if err := tx.Offset(p.Offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of live rows matching the filters / Compte les lignes actives correspondantes
func (r *Repository[T]) Count(ctx context.Context, filters map[string]any) (int64, error) {
	tx, err := r.applyFilters(r.scoped(ctx), filters)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// applyFilters AND-s non-nil exact-equality predicates, coercing string
// values to the column's declared type.
func (r *Repository[T]) applyFilters(tx *gorm.DB, filters map[string]any) (*gorm.DB, error) {
	for _, name := range sortedKeys(filters) {
		value := filters[name]
		if value == nil {
			continue
		}
		f, err := r.field(name)
		if err != nil {
			return nil, err
		}
		if s, ok := value.(string); ok {
			value, err = coerce(f, s)
			if err != nil {
				return nil, err
			}
		}
		tx = tx.Where(column(tx, f)+" = ?", value)
	}
	return tx, nil
}

// Search matches rows by typed per-field predicates / Recherche des lignes par prédicats typés par champ
//
// Dispatch is a fixed three-way switch on the column's declared type:
// integers are parsed and OR-ed as equality, booleans consult only the
// first value, everything else is a case-insensitive substring match.
// Values within a field are OR-ed, fields are AND-ed.
func (r *Repository[T]) Search(ctx context.Context, params map[string][]string) ([]T, error) {
	tx := r.scoped(ctx)

	for _, name := range sortedKeys(params) {
		values := params[name]
		if len(values) == 0 {
			continue
		}
		f, err := r.field(name)
		if err != nil {
			return nil, err
		}

		switch f.DataType {
		case schema.Int, schema.Uint:
			ints := make([]int64, 0, len(values))
			for _, v := range values {
				n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
				if err != nil {
					return nil, fmt.Errorf("search field %q: %w", name, err)
				}
				ints = append(ints, n)
			}
			tx = tx.Where(column(tx, f)+" IN ?", ints)

		case schema.Bool:
			b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(values[0])))
			if err != nil {
				return nil, fmt.Errorf("search field %q: %w", name, err)
			}
			tx = tx.Where(column(tx, f)+" = ?", b)

		default:
			conds := make([]string, 0, len(values))
			args := make([]any, 0, len(values))
			for _, v := range values {
				conds = append(conds, "LOWER("+r.textExpr(tx, f)+") LIKE ?")
				args = append(args, "%"+strings.ToLower(v)+"%")
			}
			tx = tx.Where(strings.Join(conds, " OR "), args...)
		}
	}

	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// textExpr casts non-string columns to text for substring search.
func (r *Repository[T]) textExpr(tx *gorm.DB, f *schema.Field) string {
	col := column(tx, f)
	if f.DataType == schema.String {
		return col
	}
	if r.db.Dialector.Name() == "mysql" {
		return "CAST(" + col + " AS CHAR)"
	}
	return "CAST(" + col + " AS TEXT)"
}

// Get fetches a live row by primary key / Récupère une ligne active par clé primaire
func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var row T
	err := r.scoped(ctx).Where(r.pk.DBName+" = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: r.sch.Name, Column: r.pk.DBName, ID: id}
		}
		return nil, err
	}
	return &row, nil
}

// Create inserts a new entity / Insère une nouvelle entité
//
// Derives the key from the name when configured and the key is empty,
// stamps created_by when an authorized context is supplied, and returns
// the refreshed row with server-assigned defaults populated. Failures are
// wrapped in *CreateError and never retried.
func (r *Repository[T]) Create(ctx context.Context, entity *T, authz *domain.Authorized) (*T, error) {
	rv := reflect.ValueOf(entity).Elem()

	if err := r.deriveKey(ctx, rv); err != nil {
		return nil, err
	}
	if authz != nil && r.createdBy != nil {
		if err := r.createdBy.Set(ctx, rv, authz.UserDetailID); err != nil {
			return nil, err
		}
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, &CreateError{Entity: r.sch.Name, Err: err}
	}

	id, zero := r.pk.ValueOf(ctx, rv)
	if zero {
		return entity, nil
	}
	return r.Get(ctx, toUint(id))
}

// CreateAll bulk-inserts entities in batches / Insère des entités en masse par lots
//
// Used by the catalog import; the same key derivation and attribution
// rules as Create apply to every row.
func (r *Repository[T]) CreateAll(ctx context.Context, entities []*T, authz *domain.Authorized) error {
	if len(entities) == 0 {
		return nil
	}
	for _, e := range entities {
		rv := reflect.ValueOf(e).Elem()
		if err := r.deriveKey(ctx, rv); err != nil {
			return err
		}
		if authz != nil && r.createdBy != nil {
			if err := r.createdBy.Set(ctx, rv, authz.UserDetailID); err != nil {
				return err
			}
		}
	}
	if err := r.db.WithContext(ctx).CreateInBatches(entities, 200).Error; err != nil {
		return &CreateError{Entity: r.sch.Name, Err: err}
	}
	return nil
}

func (r *Repository[T]) deriveKey(ctx context.Context, rv reflect.Value) error {
	if r.nameField == nil || r.keyField == nil {
		return nil
	}
	if _, zero := r.keyField.ValueOf(ctx, rv); !zero {
		return nil
	}
	name, zero := r.nameField.ValueOf(ctx, rv)
	if zero {
		return nil
	}
	return r.keyField.Set(ctx, rv, NameToKey(fmt.Sprint(name)))
}

// Update applies a sparse patch to an existing row / Applique un patch partiel à une ligne existante
//
// The row is re-read first (inheriting the NotFound failure), then only
// non-nil values in changes overwrite it; there is no way to null out a
// field through this path. updated_by is stamped when authorized.
//
// Concurrent updates to the same row are last-write-wins: there is no
// version check or row lock at this layer.
func (r *Repository[T]) Update(ctx context.Context, id uint, changes map[string]any, authz *domain.Authorized) (*T, error) {
	row, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := make(map[string]any, len(changes)+1)
	for _, name := range sortedKeys(changes) {
		value := changes[name]
		if value == nil {
			continue
		}
		f, err := r.field(name)
		if err != nil {
			return nil, err
		}
		patch[f.DBName] = value
	}
	if authz != nil && r.updatedBy != nil {
		patch[columnUpdatedBy] = authz.UserDetailID
	}
	if len(patch) == 0 {
		return row, nil
	}

	if err := r.db.WithContext(ctx).Model(row).Updates(patch).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete soft-deletes a row / Supprime logiquement une ligne
//
// The flag is always flipped, authorized or not; deleted_by is stamped
// only when an attribution context is present. No row is ever physically
// removed through this path, and there is no undelete.
func (r *Repository[T]) Delete(ctx context.Context, id uint, authz *domain.Authorized) error {
	if r.isDeleted == nil {
		return ErrSoftDeleteUnsupported
	}
	row, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	patch := map[string]any{columnIsDeleted: true}
	if authz != nil && r.deletedBy != nil {
		patch[columnDeletedBy] = authz.UserDetailID
	}
	return r.db.WithContext(ctx).Model(row).Updates(patch).Error
}

// coerce converts a string filter value to the column's declared type.
func coerce(f *schema.Field, s string) (any, error) {
	switch f.DataType {
	case schema.Int, schema.Uint:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("filter field %q: %w", f.DBName, err)
		}
		return n, nil
	case schema.Bool:
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(s)))
		if err != nil {
			return nil, fmt.Errorf("filter field %q: %w", f.DBName, err)
		}
		return b, nil
	case schema.Float:
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("filter field %q: %w", f.DBName, err)
		}
		return v, nil
	default:
		return s, nil
	}
}

func toUint(v any) uint {
	switch n := v.(type) {
	case uint:
		return n
	case uint64:
		return uint(n)
	case int64:
		return uint(n)
	case int:
		return uint(n)
	default:
		return 0
	}
}

// sortedKeys keeps generated SQL deterministic across calls.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
