// internal/service/dashboard/dashboard.go
package dashboard

import (
	"context"

	"msm-console/internal/domain/dashboard"
	"msm-console/internal/pkg/apiclient"
	"msm-console/internal/pkg/paging"
	"msm-console/internal/pkg/scope"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const noCompanyNotice = "Select a company from the sidebar to see company statistics."

// Counter is satisfied by every resource service.
type Counter interface {
	Count(ctx context.Context, filters string) (int, error)
}

// Selection exposes the active company.
type Selection interface {
	Selected() string
}

// TileSpec declares one dashboard tile.
type TileSpec struct {
	Key     string
	Title   string
	Section dashboard.Section
	Scoped  bool
	Counter Counter
}

type DashboardService struct {
	tiles  []TileSpec
	scope  Selection
	logger *zap.Logger
}

func NewDashboardService(tiles []TileSpec, scope Selection, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		tiles:  tiles,
		scope:  scope,
		logger: logger,
	}
}

// Summary runs one count query per tile concurrently. A failing tile carries
// its own error; the summary as a whole does not fail.
func (s *DashboardService) Summary(ctx context.Context) *dashboard.Summary {
	companyID := s.scope.Selected()
	summary := &dashboard.Summary{
		CompanyID: companyID,
		Tiles:     make([]dashboard.Tile, len(s.tiles)),
	}
	if companyID == "" {
		summary.Notice = noCompanyNotice
	}

	var g errgroup.Group
	for i, spec := range s.tiles {
		i, spec := i, spec
		tile := dashboard.Tile{
			Key:     spec.Key,
			Title:   spec.Title,
			Section: spec.Section,
			Scoped:  spec.Scoped,
		}

		if spec.Scoped && companyID == "" {
			tile.Disabled = true
			summary.Tiles[i] = tile
			continue
		}

		g.Go(func() error {
			filters := ""
			if spec.Scoped {
				filters = paging.Eq(scope.CompanyField, companyID)
			}

			count, err := spec.Counter.Count(ctx, filters)
			if err != nil {
				s.logger.Warn("dashboard tile failed", zap.String("tile", spec.Key), zap.Error(err))
				tile.Error = apiclient.MessageOf(err, "Failed to load")
			}
			tile.Count = count
			summary.Tiles[i] = tile
			return nil
		})
	}
	_ = g.Wait()

	return summary
}
