package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductionStage is the closed set of workshop stages a piece moves through.
type ProductionStage string

const (
	StageDesign       ProductionStage = "design"
	StageCasting      ProductionStage = "casting"
	StageStoneSetting ProductionStage = "stone_setting"
	StagePolishing    ProductionStage = "polishing"
	StageQualityCheck ProductionStage = "quality_check"
	StageReadyToShip  ProductionStage = "ready_to_ship"
)

// Valid reports whether s is a known production stage.
func (s ProductionStage) Valid() bool {
	switch s {
	case StageDesign, StageCasting, StageStoneSetting,
		StagePolishing, StageQualityCheck, StageReadyToShip:
		return true
	}
	return false
}

type ProductionRecord struct {
	ID        uuid.UUID
	TenantID  string
	OrderID   uuid.UUID
	Stage     ProductionStage
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductionRepository interface {
	Create(ctx context.Context, record *ProductionRecord) error
	ListByOrder(ctx context.Context, tenantID string, orderID uuid.UUID) ([]ProductionRecord, error)
	AdvanceStage(ctx context.Context, tenantID string, orderID uuid.UUID, stage ProductionStage) (*ProductionRecord, error)
}
