package repository

import (
	"context"
	"errors"

	"github.com/forgo/festival/api/internal/database"
	"github.com/forgo/festival/api/internal/model"
)

// FestivalRepository handles festival data access. Festivals are created
// elsewhere; this side only reads them.
type FestivalRepository struct {
	db database.Database
}

// NewFestivalRepository creates a new festival repository
func NewFestivalRepository(db database.Database) *FestivalRepository {
	return &FestivalRepository{db: db}
}

// GetByID retrieves a festival by id, with or without the table prefix; nil when absent
func (r *FestivalRepository) GetByID(ctx context.Context, id string) (*model.Festival, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": model.RecordID(model.TableFestival, id)}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	var festival model.Festival
	if err := decodeRecord(data, &festival); err != nil {
		return nil, err
	}
	return &festival, nil
}

// ListByIDs resolves festival ids into documents, keeping the given order.
// Ids that no longer resolve are skipped.
func (r *FestivalRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Festival, error) {
	if len(ids) == 0 {
		return []model.Festival{}, nil
	}

	result, err := r.db.Query(ctx, `SELECT * FROM $ids`, map[string]interface{}{
		"ids": recordIDs(model.TableFestival, ids),
	})
	if err != nil {
		return nil, err
	}
	return decodeAll[model.Festival](statementRecords(result, 0))
}
