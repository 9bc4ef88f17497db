package janseva

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Repository interface {
	ListServices(ctx context.Context, includeInactive bool) ([]*ServiceInfo, error)
	GetService(ctx context.Context, id int64) (*ServiceInfo, error)
	CreateApplication(ctx context.Context, app *Application) error
	GetApplication(ctx context.Context, id string) (*Application, error)
	ListApplications(ctx context.Context, userID *int64, limit, page int32) ([]*Application, int64, error)
	UpdateApplicationStatus(ctx context.Context, id string, to ApplicationStatus, note *string) (*Application, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListServices(ctx context.Context, includeInactive bool) ([]*ServiceInfo, error) {
	query := `SELECT id, name, name_hi, description, fee, documents, active FROM janseva_services`
	if !includeInactive {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*ServiceInfo
	for rows.Next() {
		var s ServiceInfo
		err := rows.Scan(&s.ID, &s.Name, &s.NameHi, &s.Description,
			&s.Fee, pq.Array(&s.Documents), &s.Active)
		if err != nil {
			return nil, err
		}
		services = append(services, &s)
	}
	return services, rows.Err()
}

func (r *repository) GetService(ctx context.Context, id int64) (*ServiceInfo, error) {
	var s ServiceInfo
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, name_hi, description, fee, documents, active
		 FROM janseva_services WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.NameHi, &s.Description, &s.Fee, pq.Array(&s.Documents), &s.Active)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const applicationColumns = `id, service_id, user_id, applicant_name, applicant_phone, details, status, note, created_at, updated_at`

func scanApplication(row interface{ Scan(dest ...any) error }) (*Application, error) {
	var app Application
	err := row.Scan(&app.ID, &app.ServiceID, &app.UserID, &app.ApplicantName,
		&app.ApplicantPhone, &app.Details, &app.Status, &app.Note,
		&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *repository) CreateApplication(ctx context.Context, app *Application) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO janseva_applications (id, service_id, user_id, applicant_name, applicant_phone, details, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`,
		app.ID, app.ServiceID, app.UserID, app.ApplicantName,
		app.ApplicantPhone, app.Details, app.Status,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
}

func (r *repository) GetApplication(ctx context.Context, id string) (*Application, error) {
	app, err := scanApplication(r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM janseva_applications WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *repository) ListApplications(ctx context.Context, userID *int64, limit, page int32) ([]*Application, int64, error) {
	where := ""
	args := []any{}
	if userID != nil {
		where = " WHERE user_id = $1"
		args = append(args, *userID)
	}

	var total int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM janseva_applications"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := "SELECT " + applicationColumns + " FROM janseva_applications" + where + " ORDER BY created_at DESC"
	if userID != nil {
		query += " LIMIT $2 OFFSET $3"
	} else {
		query += " LIMIT $1 OFFSET $2"
	}
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []*Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		apps = append(apps, app)
	}
	return apps, total, rows.Err()
}

func (r *repository) UpdateApplicationStatus(ctx context.Context, id string, to ApplicationStatus, note *string) (*Application, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current ApplicationStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM janseva_applications WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}

	if !CanTransition(current, to) {
		return nil, ErrInvalidTransition
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE janseva_applications SET status = $1, note = $2, updated_at = $3 WHERE id = $4`,
		to, note, time.Now(), id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetApplication(ctx, id)
}
