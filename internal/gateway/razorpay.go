package gateway

import (
	"context"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

// Razorpay crée les commandes distantes via l'API Orders de Razorpay.
// Les identifiants sont passés à chaque appel : ils viennent des settings
// et peuvent changer sans redémarrage.
type Razorpay struct {
	timeout time.Duration
}

func NewRazorpay(timeout time.Duration) *Razorpay {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Razorpay{timeout: timeout}
}

// CreateOrder crée une commande distante et retourne son identifiant opaque.
// Le montant est en sous-unité (paise pour INR), le receipt est l'identifiant
// local de la commande pour la corrélation côté dashboard.
func (g *Razorpay) CreateOrder(ctx context.Context, keyID, keySecret string, amountMinor int64, currency, receipt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	client := razorpay.NewClient(keyID, keySecret)
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}

	// Le SDK ne prend pas de context : on borne l'appel nous-mêmes.
	type result struct {
		id  string
		err error
	}
	ch := make(chan result, 1)

	go func() {
		body, err := client.Order.Create(data, nil)
		if err != nil {
			ch <- result{err: err}
			return
		}
		id, _ := body["id"].(string)
		if id == "" {
			ch <- result{err: fmt.Errorf("réponse passerelle sans identifiant de commande")}
			return
		}
		ch <- result{id: id}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("délai passerelle dépassé: %w", ctx.Err())
	case r := <-ch:
		return r.id, r.err
	}
}
