package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/mail"
	"strings"
	"time"

	"webora_backend/internal/models"
	"webora_backend/internal/utils"

	"github.com/google/uuid"
)

// Nombre total de tentatives d'insertion d'une commande en cas de
// collision d'identifiant local
const maxOrderInsertAttempts = 3

// CustomerStore est la vue de l'orchestrateur sur le répertoire clients
type CustomerStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	// Create retourne ErrEmailTaken si l'email a été pris entre temps
	// (deux checkouts concurrents pour un même nouvel email)
	Create(ctx context.Context, c *models.Customer) error
}

// OrderStore est la vue de l'orchestrateur sur le stockage des commandes
type OrderStore interface {
	// Insert retourne ErrDuplicateOrderID si l'identifiant local est déjà pris
	Insert(ctx context.Context, o *models.Order) error
	GetByRemoteOrderID(ctx context.Context, remoteOrderID string) (*models.Order, error)
	// MarkPaid ne transitionne que si le statut courant est encore pending ;
	// applied=false et le statut courant sinon
	MarkPaid(ctx context.Context, orderID, remotePaymentID, signature string, at time.Time) (applied bool, current string, err error)
}

// CatalogStore résout les prestations du catalogue (lecture seule)
type CatalogStore interface {
	GetService(ctx context.Context, serviceID string) (*models.Service, error)
}

// SettingsSource fournit les identifiants de la passerelle de paiement,
// secret déjà décodé. ErrNotConfigured si absents.
type SettingsSource interface {
	GatewayCredentials(ctx context.Context) (keyID, keySecret string, err error)
}

// Gateway crée les commandes distantes auprès de la passerelle de paiement
type Gateway interface {
	CreateOrder(ctx context.Context, keyID, keySecret string, amountMinor int64, currency, receipt string) (remoteOrderID string, err error)
}

// Orchestrator pilote le cycle de vie commande/paiement : création du
// checkout, confirmation signée, émission du token de session
type Orchestrator struct {
	Customers CustomerStore
	Orders    OrderStore
	Catalog   CatalogStore
	Settings  SettingsSource
	Gateway   Gateway
	Now       func() time.Time

	// OnPaid est appelé (dans une goroutine) après une confirmation
	// réussie : e-mail de confirmation, notification temps réel, etc.
	OnPaid func(order models.Order, customer models.Customer)
}

// CheckoutRequest est la demande de checkout côté client
type CheckoutRequest struct {
	ServiceID   string
	PackageType string
	Customer    models.CustomerDetails
}

// CheckoutResult est la réponse d'un checkout réussi
type CheckoutResult struct {
	OrderID         string
	RemoteOrderID   string
	Amount          float64
	Currency        string
	CustomerID      string
	CustomerCreated bool
	KeyID           string
}

// ConfirmRequest est le callback de confirmation de paiement signé
type ConfirmRequest struct {
	RemoteOrderID   string
	RemotePaymentID string
	Signature       string
	CustomerID      string
}

// ConfirmResult porte le token de session émis à la confirmation
type ConfirmResult struct {
	Token    string
	Customer models.Customer
	Order    models.Order
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// CreateCheckout résout le tarif, garantit l'existence du client, crée la
// commande distante puis persiste la commande locale en pending. Le prix est
// figé ici : il n'est plus jamais relu du catalogue. Rien n'est persisté si
// l'appel passerelle échoue.
func (o *Orchestrator) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if !models.IsValidTier(req.PackageType) {
		return nil, ErrInvalidTier
	}
	if _, err := mail.ParseAddress(req.Customer.Email); err != nil {
		return nil, ErrInvalidEmail
	}

	svc, err := o.Catalog.GetService(ctx, req.ServiceID)
	if err != nil || svc == nil || !svc.Active {
		return nil, ErrServiceNotFound
	}

	price, ok := svc.PriceFor(req.PackageType)
	if !ok {
		return nil, ErrInvalidTier
	}

	keyID, keySecret, err := o.Settings.GatewayCredentials(ctx)
	if err != nil {
		return nil, err
	}

	customer, created, err := o.resolveOrCreateCustomer(ctx, req.Customer)
	if err != nil {
		return nil, err
	}

	orderID := utils.GenerateOrderID()
	remoteOrderID, err := o.Gateway.CreateOrder(ctx, keyID, keySecret,
		int64(math.Round(price*100)), svc.Currency, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	order := models.Order{
		OrderID:       orderID,
		CustomerID:    customer.ID,
		ServiceID:     svc.ID,
		PackageTier:   req.PackageType,
		Amount:        price,
		Currency:      svc.Currency,
		Status:        models.StatusPending,
		RemoteOrderID: remoteOrderID,
		Customer:      req.Customer,
		CreatedAt:     o.now(),
		UpdatedAt:     o.now(),
	}
	order.Customer.Email = customer.Email

	// L'unicité de l'identifiant local repose sur l'insertion conditionnelle :
	// en cas de collision on regénère et on réessaie. Le receipt transmis à la
	// passerelle garde alors l'ancien identifiant, ce qui reste corrélable via
	// remote_order_id.
	for attempt := 1; ; attempt++ {
		err = o.Orders.Insert(ctx, &order)
		if !errors.Is(err, ErrDuplicateOrderID) {
			break
		}
		if attempt >= maxOrderInsertAttempts {
			return nil, err
		}
		log.Printf("⚠️ Collision d'identifiant de commande %s, regénération", order.OrderID)
		order.OrderID = utils.GenerateOrderID()
	}
	if err != nil {
		return nil, err
	}

	log.Printf("🧾 Checkout créé: %s (%s/%s, %.2f %s) client %s",
		order.OrderID, order.ServiceID, order.PackageTier, order.Amount, order.Currency, customer.ID)

	return &CheckoutResult{
		OrderID:         order.OrderID,
		RemoteOrderID:   remoteOrderID,
		Amount:          price,
		Currency:        svc.Currency,
		CustomerID:      customer.ID,
		CustomerCreated: created,
		KeyID:           keyID,
	}, nil
}

// resolveOrCreateCustomer retrouve le client par email (normalisé en
// minuscules) ou le crée avec un mot de passe temporaire jamais communiqué.
// Si deux checkouts concurrents se disputent la création, le perdant de
// l'insertion conditionnelle relit simplement le client existant.
func (o *Orchestrator) resolveOrCreateCustomer(ctx context.Context, d models.CustomerDetails) (*models.Customer, bool, error) {
	email := strings.ToLower(strings.TrimSpace(d.Email))

	existing, err := o.Customers.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrCustomerNotFound) {
		return nil, false, err
	}

	temp, err := utils.HashPassword(utils.RandomTempPassword())
	if err != nil {
		return nil, false, err
	}

	customer := &models.Customer{
		ID:                    uuid.NewString(),
		Email:                 email,
		Password:              temp,
		Name:                  d.Name,
		Phone:                 d.Phone,
		Company:               d.Company,
		IsActive:              true,
		RequiresPasswordSetup: true,
		CreatedAt:             o.now(),
	}

	err = o.Customers.Create(ctx, customer)
	if errors.Is(err, ErrEmailTaken) {
		// Course perdue : un checkout concurrent a créé le compte
		winner, err := o.Customers.GetByEmail(ctx, email)
		if err != nil {
			return nil, false, err
		}
		return winner, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	log.Printf("🆕 Client créé implicitement au checkout: %s (mot de passe à définir)", customer.ID)
	return customer, true, nil
}

// ConfirmPayment vérifie la signature HMAC du callback de paiement puis
// transitionne la commande pending→paid de façon conditionnelle. Le statut
// est persisté AVANT l'émission du token : si l'émission échoue, la commande
// reste correctement payée et le client peut se ré-authentifier séparément.
func (o *Orchestrator) ConfirmPayment(ctx context.Context, req ConfirmRequest) (*ConfirmResult, error) {
	_, keySecret, err := o.Settings.GatewayCredentials(ctx)
	if err != nil {
		return nil, err
	}

	order, err := o.Orders.GetByRemoteOrderID(ctx, req.RemoteOrderID)
	if err != nil || order == nil {
		return nil, ErrOrderNotFound
	}

	if !utils.VerifyPaymentSignature(keySecret, req.RemoteOrderID, req.RemotePaymentID, req.Signature) {
		// Événement de sécurité : on logge la commande concernée, jamais
		// la signature reçue ni le secret
		log.Printf("🚨 Signature de paiement invalide pour la commande %s", order.OrderID)
		return nil, ErrSignatureInvalid
	}

	customer, err := o.Customers.GetByID(ctx, req.CustomerID)
	if err != nil || customer == nil {
		return nil, ErrCustomerNotFound
	}

	applied, current, err := o.Orders.MarkPaid(ctx, order.OrderID, req.RemotePaymentID, req.Signature, o.now())
	if err != nil {
		return nil, err
	}
	if !applied {
		// Deux confirmations concurrentes : une seule gagne la transition
		log.Printf("🔁 Confirmation ignorée pour %s (statut courant: %s)", order.OrderID, current)
		return nil, ErrAlreadyProcessed
	}

	order.Status = models.StatusPaid
	order.RemotePaymentID = req.RemotePaymentID
	order.RemoteSignature = req.Signature
	order.UpdatedAt = o.now()

	token, err := utils.GenerateJWT(customer.ID, utils.SubjectCustomer, customer.Email)
	if err != nil {
		return nil, err
	}

	log.Printf("💰 Commande %s payée (paiement %s)", order.OrderID, req.RemotePaymentID)

	if o.OnPaid != nil {
		go o.OnPaid(*order, *customer)
	}

	return &ConfirmResult{Token: token, Customer: *customer, Order: *order}, nil
}
