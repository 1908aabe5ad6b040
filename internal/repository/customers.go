package repository

import (
	"context"
	"time"

	"webora_backend/internal/checkout"
	"webora_backend/internal/database"
	"webora_backend/internal/models"

	"github.com/gocql/gocql"
)

// CustomerRepository implémente checkout.CustomerStore sur le keyspace clients.
// L'unicité de l'email est garantie par l'insertion conditionnelle (LWT) dans
// customers_by_email : c'est l'équivalent de l'index unique du document store.
type CustomerRepository struct{}

func (CustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	session, err := database.GetCustomersSession()
	if err != nil {
		return nil, err
	}

	var id gocql.UUID
	err = session.Query(database.StmtCustomerIDByEmail, email).WithContext(ctx).Scan(&id)
	if err == gocql.ErrNotFound {
		return nil, checkout.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}

	return CustomerRepository{}.GetByID(ctx, id.String())
}

func (CustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	session, err := database.GetCustomersSession()
	if err != nil {
		return nil, err
	}

	uid, err := gocql.ParseUUID(id)
	if err != nil {
		return nil, checkout.ErrCustomerNotFound
	}

	var (
		email, password, name, phone, company string
		isActive, requiresSetup               bool
		lastLoginAt, createdAt                time.Time
	)
	err = session.Query(database.StmtCustomerByID, uid).WithContext(ctx).
		Scan(&email, &password, &name, &phone, &company, &isActive, &requiresSetup, &lastLoginAt, &createdAt)
	if err == gocql.ErrNotFound {
		return nil, checkout.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}

	c := &models.Customer{
		ID:                    id,
		Email:                 email,
		Password:              password,
		Name:                  name,
		Phone:                 phone,
		Company:               company,
		IsActive:              isActive,
		RequiresPasswordSetup: requiresSetup,
		CreatedAt:             createdAt,
	}
	if !lastLoginAt.IsZero() {
		t := lastLoginAt
		c.LastLoginAt = &t
	}
	return c, nil
}

func (CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	session, err := database.GetCustomersSession()
	if err != nil {
		return err
	}

	uid, err := gocql.ParseUUID(c.ID)
	if err != nil {
		return err
	}

	// 1. Réclamer l'email : le perdant d'une course reçoit ErrEmailTaken
	// et l'appelant relit le compte existant
	previous := map[string]interface{}{}
	applied, err := session.Query(database.StmtClaimEmail, c.Email, uid).
		WithContext(ctx).MapScanCAS(previous)
	if err != nil {
		return err
	}
	if !applied {
		return checkout.ErrEmailTaken
	}

	// 2. Insérer la fiche client
	return session.Query(database.StmtInsertCustomer,
		uid, c.Email, c.Password, c.Name, c.Phone, c.Company,
		c.IsActive, c.RequiresPasswordSetup, c.CreatedAt).
		WithContext(ctx).Exec()
}

// UpdateLastLogin trace la dernière connexion réussie
func (CustomerRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	session, err := database.GetCustomersSession()
	if err != nil {
		return err
	}

	uid, err := gocql.ParseUUID(id)
	if err != nil {
		return err
	}
	return session.Query(database.StmtUpdateLastLogin, at, uid).WithContext(ctx).Exec()
}
