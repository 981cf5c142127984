package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/emretit/paftamobile-sub005/internal/domain/company"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/logger"
	"github.com/emretit/paftamobile-sub005/internal/postgres"
	"github.com/emretit/paftamobile-sub005/internal/types"
)

type companyRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewCompanyRepository(client postgres.IClient, log *logger.Logger) company.Repository {
	return &companyRepository{client: client, log: log}
}

const companyColumns = `id, name, tax_number, tax_office, email, phone,
	address_line, district, city, country, postal_code,
	tenant_id, status, created_at, updated_at, created_by, updated_by`

func (r *companyRepository) Create(ctx context.Context, c *company.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES (:id, :name, :tax_number, :tax_office, :email, :phone,
			:address_line, :district, :city, :country, :postal_code,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, c); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("Bu hesap için bir şirket profili zaten tanımlı").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create company").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *companyRepository) Get(ctx context.Context, id string) (*company.Company, error) {
	query := `
		SELECT ` + companyColumns + ` FROM companies
		WHERE id = $1 AND tenant_id = $2 AND status != $3`

	var c company.Company
	err := r.client.Querier(ctx).GetContext(ctx, &c, query,
		id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("Company with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get company").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *companyRepository) GetByTenant(ctx context.Context) (*company.Company, error) {
	query := `
		SELECT ` + companyColumns + ` FROM companies
		WHERE tenant_id = $1 AND status = $2
		ORDER BY created_at ASC LIMIT 1`

	var c company.Company
	err := r.client.Querier(ctx).GetContext(ctx, &c, query,
		types.GetTenantID(ctx), types.StatusPublished)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHint("Şirket profili tanımlı değil, önce şirket bilgilerini girin").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get company").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *companyRepository) Update(ctx context.Context, c *company.Company) error {
	c.UpdatedAt = time.Now().UTC()
	c.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE companies SET
			name = :name, tax_number = :tax_number, tax_office = :tax_office,
			email = :email, phone = :phone, address_line = :address_line,
			district = :district, city = :city, country = :country,
			postal_code = :postal_code,
			updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`

	result, err := r.client.Querier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update company").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, c.ID)
}

func (r *companyRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE companies SET status = $1, updated_at = $2, updated_by = $3
		WHERE id = $4 AND tenant_id = $5`

	result, err := r.client.Querier(ctx).ExecContext(ctx, query,
		types.StatusDeleted, time.Now().UTC(), types.GetUserID(ctx),
		id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete company").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, id)
}
