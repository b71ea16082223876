package dao

import (
	"errors"

	"github.com/bennypn/ai-kop-indosat/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnsurePageAnalysis inserts the page analysis row unless one already exists
// for the page. In both cases a is left holding the persisted row, so the
// caller gets a stable analysis id across re-runs.
func (Store) EnsurePageAnalysis(a *model.PageAnalysis) error {
	res := DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "page_id"}},
		DoNothing: true,
	}).Create(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Lost to an earlier run or a concurrent insert, load the winner.
		return DB.Where("page_id = ?", a.PageID).First(a).Error
	}
	return nil
}

func (Store) GetPageAnalysis(pageID uint) (*model.PageAnalysis, error) {
	var a model.PageAnalysis
	if err := DB.Where("page_id = ?", pageID).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// GetGroupIDs returns the set of group indexes already persisted for an
// analysis. The page pipeline skips these on re-entry.
func (Store) GetGroupIDs(analysisID uint) (map[int]struct{}, error) {
	var ids []int
	if err := DB.Model(&model.GroupAnalysis{}).
		Where("anal_id = ?", analysisID).
		Pluck("group_id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// CreateGroupAnalysis is a no-op if a row with the same (analysis, group
// index) already exists.
func (Store) CreateGroupAnalysis(g *model.GroupAnalysis) error {
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "anal_id"}, {Name: "group_id"}},
		DoNothing: true,
	}).Create(g).Error
}

func (Store) GetGroupAnalyses(analysisID uint) ([]model.GroupAnalysis, error) {
	var groups []model.GroupAnalysis
	if err := DB.Where("anal_id = ?", analysisID).
		Order("group_id ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}
