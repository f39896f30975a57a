package repository

import (
	"context"

	"github.com/WorkSafe-C04/WorkSafe04-sub000/internal/database"
)

// CompanyStats aggregates one company's safety and training posture for the
// supervisor dashboard.
type CompanyStats struct {
	Employees         int `json:"employees"`
	Topics            int `json:"topics"`
	AssignmentsTotal  int `json:"assignmentsTotal"`
	AssignmentsDone   int `json:"assignmentsDone"`
	CompletionPercent int `json:"completionPercent"`
	IncidentsOpen     int `json:"incidentsOpen"`
	IncidentsTotal    int `json:"incidentsTotal"`
	ResourcesFaulty   int `json:"resourcesFaulty"`
	ResourcesTotal    int `json:"resourcesTotal"`
}

type StatsRepository struct{}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{}
}

// CompanyStats computes the dashboard aggregates for one company in a single
// round trip. CompletionPercent follows the progress rounding contract:
// round(100 * done / total), 0 when there are no assignments.
func (r *StatsRepository) CompanyStats(ctx context.Context, companyCode string) (*CompanyStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM employees WHERE company_code = $1),
			(SELECT COUNT(*) FROM training_topics WHERE company_code = $1),
			(SELECT COUNT(*) FROM training_assignments a
				JOIN employees e ON e.matricola = a.matricola
				WHERE e.company_code = $1),
			(SELECT COUNT(*) FROM training_assignments a
				JOIN employees e ON e.matricola = a.matricola
				WHERE e.company_code = $1 AND a.status IN ('Completato', 'Superato')),
			(SELECT COUNT(*) FROM incident_reports
				WHERE company_code = $1 AND status IN ('APERTA', 'IN_CORSO')),
			(SELECT COUNT(*) FROM incident_reports WHERE company_code = $1),
			(SELECT COUNT(*) FROM resources WHERE company_code = $1 AND status = 'Guasta'),
			(SELECT COUNT(*) FROM resources WHERE company_code = $1)
	`

	var stats CompanyStats
	err := database.DB.QueryRow(ctx, query, companyCode).Scan(
		&stats.Employees,
		&stats.Topics,
		&stats.AssignmentsTotal,
		&stats.AssignmentsDone,
		&stats.IncidentsOpen,
		&stats.IncidentsTotal,
		&stats.ResourcesFaulty,
		&stats.ResourcesTotal,
	)
	if err != nil {
		return nil, err
	}

	if stats.AssignmentsTotal > 0 {
		stats.CompletionPercent = int(float64(stats.AssignmentsDone)/float64(stats.AssignmentsTotal)*100 + 0.5)
	}

	return &stats, nil
}
