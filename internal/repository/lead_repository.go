package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-capture-service/internal/domain"
)

// LeadFilter captures admin list parameters.
type LeadFilter struct {
	Status *domain.LeadStatus
	Search *string
	Limit  int
	Offset int
}

// DayCount is one calendar day's lead count.
type DayCount struct {
	Date  string
	Count int64
}

// LeadStats aggregates the dashboard numbers.
type LeadStats struct {
	Total     int64
	New       int64
	Contacted int64
	Converted int64
	Today     int64
	Last7Days []DayCount
}

// SourceStats groups lead counts by attribution pair.
type SourceStats struct {
	Source      string
	UTMCampaign string
	Total       int64
	New         int64
	Contacted   int64
	Converted   int64
}

// LeadRepository encapsulates lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error)
	Count(ctx context.Context, filter LeadFilter) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.LeadStatus) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*LeadStats, error)
	StatsBySource(ctx context.Context) ([]SourceStats, error)
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	const query = `
        INSERT INTO leads (name, email, whatsapp, city, level, goal, schedule, message,
                           source, utm_source, utm_medium, utm_campaign, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		lead.Name,
		lead.Email,
		lead.Whatsapp,
		lead.City,
		lead.Level,
		lead.Goal,
		lead.Schedule,
		lead.Message,
		lead.Source,
		lead.UTMSource,
		lead.UTMMedium,
		lead.UTMCampaign,
		lead.Status,
	).Scan(&lead.ID, &lead.CreatedAt)
}

func (r *leadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	const query = `
        SELECT id, name, email, whatsapp, city, level, goal, schedule, message,
               source, utm_source, utm_medium, utm_campaign, status, created_at
        FROM leads WHERE id=$1`
	var lead domain.Lead
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Whatsapp,
		&lead.City,
		&lead.Level,
		&lead.Goal,
		&lead.Schedule,
		&lead.Message,
		&lead.Source,
		&lead.UTMSource,
		&lead.UTMMedium,
		&lead.UTMCampaign,
		&lead.Status,
		&lead.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}

func buildLeadClauses(filter LeadFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(name) LIKE %s OR LOWER(whatsapp) LIKE %s OR LOWER(COALESCE(city,'')) LIKE %s)",
			placeholder, placeholder, placeholder))
	}
	return clauses, args
}

func (r *leadRepository) List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error) {
	clauses, args := buildLeadClauses(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT id, name, email, whatsapp, city, level, goal, schedule, message,
               source, utm_source, utm_medium, utm_campaign, status, created_at
        FROM leads WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

func (r *leadRepository) Count(ctx context.Context, filter LeadFilter) (int64, error) {
	clauses, args := buildLeadClauses(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM leads WHERE %s`, strings.Join(clauses, " AND "))

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *leadRepository) UpdateStatus(ctx context.Context, id int64, status domain.LeadStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE leads SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) Stats(ctx context.Context) (*LeadStats, error) {
	const totalsQuery = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='new'),
               COUNT(*) FILTER (WHERE status='contacted'),
               COUNT(*) FILTER (WHERE status='converted'),
               COUNT(*) FILTER (WHERE created_at::date = CURRENT_DATE)
        FROM leads`

	stats := &LeadStats{}
	if err := r.pool.QueryRow(ctx, totalsQuery).Scan(
		&stats.Total,
		&stats.New,
		&stats.Contacted,
		&stats.Converted,
		&stats.Today,
	); err != nil {
		return nil, err
	}

	// Sparse: days without leads are omitted, newest first.
	const dailyQuery = `
        SELECT created_at::date AS day, COUNT(*)
        FROM leads
        WHERE created_at >= CURRENT_DATE - INTERVAL '6 days'
        GROUP BY day
        ORDER BY day DESC`

	rows, err := r.pool.Query(ctx, dailyQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var day time.Time
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		stats.Last7Days = append(stats.Last7Days, DayCount{
			Date:  day.Format("2006-01-02"),
			Count: count,
		})
	}
	return stats, rows.Err()
}

func (r *leadRepository) StatsBySource(ctx context.Context) ([]SourceStats, error) {
	const query = `
        SELECT source, utm_campaign,
               COUNT(*),
               COUNT(*) FILTER (WHERE status='new'),
               COUNT(*) FILTER (WHERE status='contacted'),
               COUNT(*) FILTER (WHERE status='converted')
        FROM leads
        GROUP BY source, utm_campaign
        ORDER BY COUNT(*) DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SourceStats
	for rows.Next() {
		var row SourceStats
		if err := rows.Scan(
			&row.Source,
			&row.UTMCampaign,
			&row.Total,
			&row.New,
			&row.Contacted,
			&row.Converted,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func scanLeads(rows pgx.Rows) ([]domain.Lead, error) {
	var result []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.Name,
			&lead.Email,
			&lead.Whatsapp,
			&lead.City,
			&lead.Level,
			&lead.Goal,
			&lead.Schedule,
			&lead.Message,
			&lead.Source,
			&lead.UTMSource,
			&lead.UTMMedium,
			&lead.UTMCampaign,
			&lead.Status,
			&lead.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}
