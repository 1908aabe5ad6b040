package repository

import (
	"context"
	"time"

	"webora_backend/internal/checkout"
	"webora_backend/internal/database"
	"webora_backend/internal/models"

	"github.com/gocql/gocql"
)

// OrderRepository implémente checkout.OrderStore sur le keyspace commandes.
// Trois tables : orders (par identifiant local), orders_by_remote (corrélation
// passerelle) et orders_by_customer (historique client, requête dérivée).
type OrderRepository struct{}

func (OrderRepository) Insert(ctx context.Context, o *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	// Insertion conditionnelle : le filet d'unicité de l'identifiant local
	previous := map[string]interface{}{}
	applied, err := session.Query(database.StmtInsertOrder,
		o.OrderID, o.CustomerID, o.ServiceID, o.PackageTier, o.Amount, o.Currency, o.Status,
		o.RemoteOrderID, o.Customer.Name, o.Customer.Email, o.Customer.Phone,
		o.Customer.Company, o.Customer.Requirements, o.CreatedAt, o.UpdatedAt).
		WithContext(ctx).MapScanCAS(previous)
	if err != nil {
		return err
	}
	if !applied {
		return checkout.ErrDuplicateOrderID
	}

	// Tables de recherche secondaires (hors LWT : ré-écrasables sans risque)
	if err := session.Query(database.StmtInsertOrderByRemote, o.RemoteOrderID, o.OrderID).
		WithContext(ctx).Exec(); err != nil {
		return err
	}
	return session.Query(database.StmtInsertOrderByCustomer, o.CustomerID, o.CreatedAt, o.OrderID).
		WithContext(ctx).Exec()
}

func (OrderRepository) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	o := models.Order{OrderID: orderID}
	err = session.Query(database.StmtOrderByID, orderID).WithContext(ctx).
		Scan(&o.CustomerID, &o.ServiceID, &o.PackageTier, &o.Amount, &o.Currency, &o.Status,
			&o.RemoteOrderID, &o.RemotePaymentID, &o.RemoteSignature,
			&o.Customer.Name, &o.Customer.Email, &o.Customer.Phone, &o.Customer.Company,
			&o.Customer.Requirements, &o.CreatedAt, &o.UpdatedAt)
	if err == gocql.ErrNotFound {
		return nil, checkout.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r OrderRepository) GetByRemoteOrderID(ctx context.Context, remoteOrderID string) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var orderID string
	err = session.Query(database.StmtOrderIDByRemote, remoteOrderID).WithContext(ctx).Scan(&orderID)
	if err == gocql.ErrNotFound {
		return nil, checkout.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

// MarkPaid transitionne pending→paid de façon conditionnelle : deux
// confirmations concurrentes ne peuvent pas toutes les deux gagner
func (OrderRepository) MarkPaid(ctx context.Context, orderID, remotePaymentID, signature string, at time.Time) (bool, string, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return false, "", err
	}

	previous := map[string]interface{}{}
	applied, err := session.Query(database.StmtMarkOrderPaid,
		models.StatusPaid, remotePaymentID, signature, at, orderID, models.StatusPending).
		WithContext(ctx).MapScanCAS(previous)
	if err != nil {
		return false, "", err
	}

	current := models.StatusPaid
	if !applied {
		if s, ok := previous["status"].(string); ok {
			current = s
		}
	}
	return applied, current, nil
}

// UpdateStatus applique une transition administrative, conditionnée au
// statut attendu (la validation du graphe se fait en amont)
func (OrderRepository) UpdateStatus(ctx context.Context, orderID, from, to string, at time.Time) (bool, string, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return false, "", err
	}

	previous := map[string]interface{}{}
	applied, err := session.Query(database.StmtUpdateOrderStatus, to, at, orderID, from).
		WithContext(ctx).MapScanCAS(previous)
	if err != nil {
		return false, "", err
	}

	current := to
	if !applied {
		if s, ok := previous["status"].(string); ok {
			current = s
		}
	}
	return applied, current, nil
}

// ListByCustomer retourne l'historique des commandes d'un client
// (requête dérivée : la relation appartient à Order, pas à Customer)
func (r OrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(database.StmtOrderIDsByCustomer, customerID).WithContext(ctx).Iter()
	var ids []string
	var id string
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		o, err := r.GetByID(ctx, id)
		if err != nil {
			continue
		}
		orders = append(orders, *o)
	}
	return orders, nil
}
