package catalog

import (
	"context"
	"fmt"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/status"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// bunEntityStore implements the shared slice of every entity store on top of
// a go-repository-bun repository. Entity-specific stores embed it and add
// their own write paths where multi-table transactions are required.
type bunEntityStore[T any] struct {
	db        *bun.DB
	repo      repository.Repository[T]
	resource  string
	relations map[domain.Relation]string
	getID     func(T) uuid.UUID
}

func (s *bunEntityStore[T]) List(ctx context.Context, q ListQuery) ([]T, int, error) {
	criteria := s.readCriteria(q.Filter, q.Relations)

	if q.Sort.Field != "" {
		order := fmt.Sprintf("?TableAlias.%s ASC", q.Sort.Field)
		if q.Sort.Desc {
			order = fmt.Sprintf("?TableAlias.%s DESC", q.Sort.Field)
		}
		criteria = append(criteria, repository.SelectRawProcessor(func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.OrderExpr(order)
		}))
	}

	if q.Limit > 0 {
		criteria = append(criteria, repository.SelectPaginate(q.Limit, q.Offset))
	}

	records, total, err := s.repo.List(ctx, criteria...)
	if err != nil {
		return nil, 0, wrapStoreError(err, s.resource)
	}
	return records, total, nil
}

func (s *bunEntityStore[T]) GetByKey(ctx context.Context, key string, q GetQuery) (T, error) {
	var zero T

	criteria := s.readCriteria(q.Filter, q.Relations)
	criteria = append(criteria, keyCriteria(key))
	criteria = append(criteria, repository.SelectPaginate(1, 0))

	records, _, err := s.repo.List(ctx, criteria...)
	if err != nil {
		return zero, wrapStoreError(err, s.resource)
	}
	if len(records) == 0 {
		return zero, &NotFoundError{Resource: s.resource, Key: key}
	}
	return records[0], nil
}

func (s *bunEntityStore[T]) Create(ctx context.Context, record T) (T, error) {
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		var zero T
		return zero, wrapStoreError(err, s.resource)
	}
	return created, nil
}

func (s *bunEntityStore[T]) Update(ctx context.Context, record T, columns []string) (T, error) {
	updated, err := s.repo.Update(ctx, record,
		repository.UpdateByID(s.getID(record).String()),
		repository.UpdateColumns(columns...),
	)
	if err != nil {
		var zero T
		return zero, wrapStoreError(err, s.resource)
	}
	return updated, nil
}

func (s *bunEntityStore[T]) Delete(ctx context.Context, key string) (bool, error) {
	record, err := s.GetByKey(ctx, key, GetQuery{})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	result, err := s.db.NewDelete().Model(record).WherePK().Exec(ctx)
	if err != nil {
		return false, wrapStoreError(err, s.resource)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, wrapStoreError(err, s.resource)
	}
	return affected > 0, nil
}

// readCriteria composes status and relation predicates shared by List and
// GetByKey.
func (s *bunEntityStore[T]) readCriteria(filter status.Filter, relations []domain.Relation) []repository.SelectCriteria {
	criteria := []repository.SelectCriteria{}

	if st, ok := filter.Status(); ok {
		criteria = append(criteria, repository.SelectRawProcessor(func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Where("?TableAlias.status = ?", string(st))
		}))
	}

	for _, rel := range relations {
		path, ok := s.relations[rel]
		if !ok {
			continue
		}
		relation := path
		criteria = append(criteria, repository.SelectRawProcessor(func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Relation(relation)
		}))
	}

	return criteria
}

// keyCriteria matches a record by id when the key parses as a UUID, by slug
// otherwise.
func keyCriteria(key string) repository.SelectCriteria {
	if id, err := uuid.Parse(key); err == nil {
		return repository.SelectRawProcessor(func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Where("?TableAlias.id = ?", id)
		})
	}
	return repository.SelectRawProcessor(func(sq *bun.SelectQuery) *bun.SelectQuery {
		return sq.Where("?TableAlias.slug = ?", key)
	})
}
