package checkout_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"webora_backend/internal/checkout"
	"webora_backend/internal/models"
	"webora_backend/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- doubles en mémoire ----------

type memCustomers struct {
	mu      sync.Mutex
	byEmail map[string]models.Customer
	byID    map[string]models.Customer
}

func newMemCustomers() *memCustomers {
	return &memCustomers{
		byEmail: make(map[string]models.Customer),
		byID:    make(map[string]models.Customer),
	}
}

func (m *memCustomers) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.byEmail[email]; ok {
		out := c
		return &out, nil
	}
	return nil, checkout.ErrCustomerNotFound
}

func (m *memCustomers) GetByID(_ context.Context, id string) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.byID[id]; ok {
		out := c
		return &out, nil
	}
	return nil, checkout.ErrCustomerNotFound
}

func (m *memCustomers) Create(_ context.Context, c *models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[c.Email]; ok {
		return checkout.ErrEmailTaken
	}
	m.byEmail[c.Email] = *c
	m.byID[c.ID] = *c
	return nil
}

func (m *memCustomers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byEmail)
}

type memOrders struct {
	mu             sync.Mutex
	byID           map[string]models.Order
	byRemote       map[string]string
	forceConflicts int
}

func newMemOrders() *memOrders {
	return &memOrders{
		byID:     make(map[string]models.Order),
		byRemote: make(map[string]string),
	}
}

func (m *memOrders) Insert(_ context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forceConflicts > 0 {
		m.forceConflicts--
		return checkout.ErrDuplicateOrderID
	}
	if _, ok := m.byID[o.OrderID]; ok {
		return checkout.ErrDuplicateOrderID
	}
	m.byID[o.OrderID] = *o
	m.byRemote[o.RemoteOrderID] = o.OrderID
	return nil
}

func (m *memOrders) GetByRemoteOrderID(_ context.Context, remoteOrderID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byRemote[remoteOrderID]
	if !ok {
		return nil, checkout.ErrOrderNotFound
	}
	out := m.byID[id]
	return &out, nil
}

func (m *memOrders) MarkPaid(_ context.Context, orderID, remotePaymentID, signature string, at time.Time) (bool, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[orderID]
	if !ok {
		return false, "", checkout.ErrOrderNotFound
	}
	if o.Status != models.StatusPending {
		return false, o.Status, nil
	}
	o.Status = models.StatusPaid
	o.RemotePaymentID = remotePaymentID
	o.RemoteSignature = signature
	o.UpdatedAt = at
	m.byID[orderID] = o
	return true, models.StatusPaid, nil
}

func (m *memOrders) get(orderID string) (models.Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[orderID]
	return o, ok
}

func (m *memOrders) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type staticCatalog map[string]models.Service

func (s staticCatalog) GetService(_ context.Context, serviceID string) (*models.Service, error) {
	svc, ok := s[serviceID]
	if !ok {
		return nil, checkout.ErrServiceNotFound
	}
	return &svc, nil
}

type staticSettings struct {
	keyID  string
	secret string
	err    error
}

func (s staticSettings) GatewayCredentials(context.Context) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return s.keyID, s.secret, nil
}

type stubGateway struct {
	calls      int64
	failWith   error
	lastAmount int64
}

func (g *stubGateway) CreateOrder(_ context.Context, _, _ string, amountMinor int64, _, _ string) (string, error) {
	n := atomic.AddInt64(&g.calls, 1)
	atomic.StoreInt64(&g.lastAmount, amountMinor)
	if g.failWith != nil {
		return "", g.failWith
	}
	return fmt.Sprintf("order_rzp%06d", n), nil
}

// ---------- montage ----------

const gatewaySecret = "test_secret"

func newTestRig() (*checkout.Orchestrator, *memCustomers, *memOrders, *stubGateway) {
	customers := newMemCustomers()
	orders := newMemOrders()
	gw := &stubGateway{}

	orch := &checkout.Orchestrator{
		Customers: customers,
		Orders:    orders,
		Catalog: staticCatalog{
			"web-dev": {
				ID:       "web-dev",
				Name:     "Web Development",
				Prices:   map[string]float64{models.TierBasic: 1500, models.TierStandard: 3000, models.TierPremium: 6000},
				Currency: "INR",
				Active:   true,
			},
			"seo": {
				ID:       "seo",
				Name:     "SEO Audit",
				Prices:   map[string]float64{models.TierBasic: 800},
				Currency: "INR",
				Active:   true,
			},
			"retired": {
				ID:     "retired",
				Active: false,
			},
		},
		Settings: staticSettings{keyID: "rzp_test_key", secret: gatewaySecret},
		Gateway:  gw,
		Now:      time.Now,
	}
	return orch, customers, orders, gw
}

func validRequest() checkout.CheckoutRequest {
	return checkout.CheckoutRequest{
		ServiceID:   "web-dev",
		PackageType: models.TierStandard,
		Customer: models.CustomerDetails{
			Name:         "Jane Doe",
			Email:        "jane@example.com",
			Phone:        "+91 98765 43210",
			Requirements: "Boutique site with blog",
		},
	}
}

// ---------- CreateCheckout ----------

func TestCreateCheckoutLocksPriceAndPersistsPending(t *testing.T) {
	orch, customers, orders, gw := newTestRig()

	res, err := orch.CreateCheckout(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 3000.0, res.Amount)
	assert.Equal(t, "INR", res.Currency)
	assert.Equal(t, "rzp_test_key", res.KeyID)
	assert.NotEmpty(t, res.RemoteOrderID)
	assert.True(t, res.CustomerCreated)
	assert.EqualValues(t, 300000, gw.lastAmount, "montant passerelle en paise")

	order, ok := orders.get(res.OrderID)
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 3000.0, order.Amount)
	assert.Equal(t, res.CustomerID, order.CustomerID)
	assert.Equal(t, res.RemoteOrderID, order.RemoteOrderID)
	assert.Equal(t, "Jane Doe", order.Customer.Name)

	created, err := customers.GetByID(context.Background(), res.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", created.Email)
	assert.True(t, created.RequiresPasswordSetup)
	assert.NotEmpty(t, created.Password)
}

func TestCreateCheckoutUnknownService(t *testing.T) {
	orch, customers, orders, gw := newTestRig()

	req := validRequest()
	req.ServiceID = "mobile-apps"

	_, err := orch.CreateCheckout(context.Background(), req)
	assert.ErrorIs(t, err, checkout.ErrServiceNotFound)
	assert.Zero(t, orders.count(), "aucune commande persistée")
	assert.Zero(t, customers.count(), "aucun client créé")
	assert.Zero(t, atomic.LoadInt64(&gw.calls))
}

func TestCreateCheckoutInactiveService(t *testing.T) {
	orch, _, orders, _ := newTestRig()

	req := validRequest()
	req.ServiceID = "retired"

	_, err := orch.CreateCheckout(context.Background(), req)
	assert.ErrorIs(t, err, checkout.ErrServiceNotFound)
	assert.Zero(t, orders.count())
}

func TestCreateCheckoutTierWithoutPrice(t *testing.T) {
	orch, _, orders, _ := newTestRig()

	req := validRequest()
	req.ServiceID = "seo"
	req.PackageType = models.TierPremium

	_, err := orch.CreateCheckout(context.Background(), req)
	assert.ErrorIs(t, err, checkout.ErrInvalidTier)
	assert.Zero(t, orders.count())
}

func TestCreateCheckoutUnknownTier(t *testing.T) {
	orch, _, _, _ := newTestRig()

	req := validRequest()
	req.PackageType = "gold"

	_, err := orch.CreateCheckout(context.Background(), req)
	assert.ErrorIs(t, err, checkout.ErrInvalidTier)
}

func TestCreateCheckoutInvalidEmail(t *testing.T) {
	orch, _, _, _ := newTestRig()

	req := validRequest()
	req.Customer.Email = "not-an-address"

	_, err := orch.CreateCheckout(context.Background(), req)
	assert.ErrorIs(t, err, checkout.ErrInvalidEmail)
}

func TestCreateCheckoutMissingGatewayConfig(t *testing.T) {
	orch, customers, orders, gw := newTestRig()
	orch.Settings = staticSettings{err: checkout.ErrNotConfigured}

	_, err := orch.CreateCheckout(context.Background(), validRequest())
	assert.ErrorIs(t, err, checkout.ErrNotConfigured)
	assert.Zero(t, atomic.LoadInt64(&gw.calls), "la passerelle ne doit pas être appelée")
	assert.Zero(t, orders.count())
	assert.Zero(t, customers.count())
}

func TestCreateCheckoutGatewayFailureLeavesNothingPersisted(t *testing.T) {
	orch, _, orders, gw := newTestRig()
	gw.failWith = fmt.Errorf("connection reset")

	_, err := orch.CreateCheckout(context.Background(), validRequest())
	assert.ErrorIs(t, err, checkout.ErrGateway)
	assert.Zero(t, orders.count(), "tout-ou-rien: pas de commande sans création distante")
}

func TestCreateCheckoutReusesExistingCustomer(t *testing.T) {
	orch, customers, _, _ := newTestRig()

	first, err := orch.CreateCheckout(context.Background(), validRequest())
	require.NoError(t, err)

	// même adresse avec une casse différente : même compte
	req := validRequest()
	req.Customer.Email = "Jane@Example.COM"
	second, err := orch.CreateCheckout(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.CustomerID, second.CustomerID)
	assert.False(t, second.CustomerCreated)
	assert.Equal(t, 1, customers.count())
}

func TestCreateCheckoutRetriesOrderIDCollision(t *testing.T) {
	orch, _, orders, gw := newTestRig()
	orders.forceConflicts = 2

	res, err := orch.CreateCheckout(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, orders.count())
	assert.EqualValues(t, 1, atomic.LoadInt64(&gw.calls), "un seul ordre distant malgré les collisions locales")

	order, ok := orders.get(res.OrderID)
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestCreateCheckoutGivesUpAfterRepeatedCollisions(t *testing.T) {
	orch, _, orders, _ := newTestRig()
	orders.forceConflicts = 10

	_, err := orch.CreateCheckout(context.Background(), validRequest())
	assert.ErrorIs(t, err, checkout.ErrDuplicateOrderID)
	assert.Zero(t, orders.count())
}

func TestConcurrentCheckoutsShareOneCustomer(t *testing.T) {
	orch, customers, orders, _ := newTestRig()

	var wg sync.WaitGroup
	results := make([]*checkout.CheckoutResult, 2)
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = orch.CreateCheckout(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	// exactement un client, référencé par les deux commandes
	assert.Equal(t, 1, customers.count())
	assert.Equal(t, results[0].CustomerID, results[1].CustomerID)
	assert.Equal(t, 2, orders.count())
}

func TestCheckoutLostCustomerRaceFallsBackToWinner(t *testing.T) {
	orch, customers, _, _ := newTestRig()

	// le gagnant s'insère entre notre lecture (absent) et notre création
	winner := models.Customer{
		ID:       "winner-id",
		Email:    "jane@example.com",
		IsActive: true,
	}
	orch.Customers = &racedCustomers{inner: customers, winner: winner}

	res, err := orch.CreateCheckout(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "winner-id", res.CustomerID)
	assert.False(t, res.CustomerCreated)
}

// racedCustomers simule la course perdue : la première lecture ne voit rien,
// la création échoue sur l'email déjà pris, la relecture voit le gagnant
type racedCustomers struct {
	inner  *memCustomers
	winner models.Customer
	reads  int64
}

func (r *racedCustomers) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	if atomic.AddInt64(&r.reads, 1) == 1 {
		return nil, checkout.ErrCustomerNotFound
	}
	out := r.winner
	return &out, nil
}

func (r *racedCustomers) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	if id == r.winner.ID {
		out := r.winner
		return &out, nil
	}
	return r.inner.GetByID(ctx, id)
}

func (r *racedCustomers) Create(context.Context, *models.Customer) error {
	return checkout.ErrEmailTaken
}

// ---------- ConfirmPayment ----------

func confirmRequestFor(res *checkout.CheckoutResult) checkout.ConfirmRequest {
	paymentID := "pay_TEST001"
	return checkout.ConfirmRequest{
		RemoteOrderID:   res.RemoteOrderID,
		RemotePaymentID: paymentID,
		Signature:       utils.SignPayment(gatewaySecret, res.RemoteOrderID, paymentID),
		CustomerID:      res.CustomerID,
	}
}

func TestConfirmPaymentHappyPath(t *testing.T) {
	orch, _, orders, _ := newTestRig()

	paid := make(chan string, 2)
	orch.OnPaid = func(order models.Order, _ models.Customer) {
		paid <- order.OrderID
	}

	res, err := orch.CreateCheckout(context.Background(), validRequest())
	require.NoError(t, err)

	confirm, err := orch.ConfirmPayment(context.Background(), confirmRequestFor(res))
	require.NoError(t, err)

	assert.Equal(t, res.CustomerID, confirm.Customer.ID)
	assert.Equal(t, models.StatusPaid, confirm.Order.Status)
	assert.Equal(t, "pay_TEST001", confirm.Order.RemotePaymentID)

	order, _ := orders.get(res.OrderID)
	assert.Equal(t, models.StatusPaid, order.Status)
	assert.Equal(t, "pay_TEST001", order.RemotePaymentID)

	// le token de session est vérifiable et porte le bon sujet
	token, err := jwt.Parse(confirm.Token, func(*jwt.Token) (interface{}, error) {
		return utils.JWTSecret(), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, res.CustomerID, claims["sub"])
	assert.Equal(t, utils.SubjectCustomer, claims["subject_type"])

	select {
	case id := <-paid:
		assert.Equal(t, res.OrderID, id)
	case <-time.After(time.Second):
		t.Fatal("OnPaid n'a pas été appelé")
	}
}

func TestConfirmPaymentTamperedSignature(t *testing.T) {
	orch, _, orders, _ := newTestRig()

	var paidCalls int64
	orch.OnPaid = func(models.Order, models.Customer) { atomic.AddInt64(&paidCalls, 1) }

	res, err := orch.CreateCheckout(context.Background(), validRequest())
	require.NoError(t, err)

	req := confirmRequestFor(res)
	tampered := []byte(req.Signature)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}
	req.Signature = string(tampered)

	_, err = orch.ConfirmPayment(context.Background(), req)
	assert.ErrorIs(t, err, checkout.ErrSignatureInvalid)

	// échec de vérification = aucune transition
	order, _ := orders.get(res.OrderID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Empty(t, order.RemotePaymentID)
	assert.Zero(t, atomic.LoadInt64(&paidCalls))
}

func TestConfirmPaymentTwiceTransitionsOnce(t *testing.T) {
	orch, _, orders, _ := newTestRig()

	paid := make(chan struct{}, 2)
	orch.OnPaid = func(models.Order, models.Customer) { paid <- struct{}{} }

	res, err := orch.CreateCheckout(context.Background(), validRequest())
	require.NoError(t, err)

	req := confirmRequestFor(res)
	_, err = orch.ConfirmPayment(context.Background(), req)
	require.NoError(t, err)

	_, err = orch.ConfirmPayment(context.Background(), req)
	assert.ErrorIs(t, err, checkout.ErrAlreadyProcessed)

	order, _ := orders.get(res.OrderID)
	assert.Equal(t, models.StatusPaid, order.Status)

	// une seule notification, pas d'effets de bord dupliqués
	select {
	case <-paid:
	case <-time.After(time.Second):
		t.Fatal("OnPaid n'a pas été appelé")
	}
	select {
	case <-paid:
		t.Fatal("OnPaid appelé une seconde fois")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestConfirmPaymentUnknownOrder(t *testing.T) {
	orch, _, _, _ := newTestRig()

	_, err := orch.ConfirmPayment(context.Background(), checkout.ConfirmRequest{
		RemoteOrderID:   "order_unknown",
		RemotePaymentID: "pay_TEST001",
		Signature:       utils.SignPayment(gatewaySecret, "order_unknown", "pay_TEST001"),
		CustomerID:      "whoever",
	})
	assert.ErrorIs(t, err, checkout.ErrOrderNotFound)
}

func TestConfirmPaymentUnknownCustomer(t *testing.T) {
	orch, _, orders, _ := newTestRig()

	res, err := orch.CreateCheckout(context.Background(), validRequest())
	require.NoError(t, err)

	req := confirmRequestFor(res)
	req.CustomerID = "missing-customer"

	_, err = orch.ConfirmPayment(context.Background(), req)
	assert.ErrorIs(t, err, checkout.ErrCustomerNotFound)

	// la commande n'a pas été transitionnée
	order, _ := orders.get(res.OrderID)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestConfirmPaymentMissingGatewayConfig(t *testing.T) {
	orch, _, _, _ := newTestRig()

	res, err := orch.CreateCheckout(context.Background(), validRequest())
	require.NoError(t, err)

	orch.Settings = staticSettings{err: checkout.ErrNotConfigured}

	_, err = orch.ConfirmPayment(context.Background(), confirmRequestFor(res))
	assert.ErrorIs(t, err, checkout.ErrNotConfigured)
}
