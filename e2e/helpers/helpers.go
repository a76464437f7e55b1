package helpers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/partsflow/catalog-pipeline/internal/platform"
	"github.com/partsflow/catalog-pipeline/internal/platform/models"
	"github.com/partsflow/catalog-pipeline/internal/platform/storage"
	"github.com/partsflow/catalog-pipeline/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

// DeclareRMQExchange is helper function for declaring RMQ exchange.
func DeclareRMQExchange(t *testing.T, ch *amqp.Channel, exchange string) {
	t.Helper()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		require.FailNow(t, "can't declare exchange", exchange, err)
	}
}

// DeclareRMQQueue is helper function for declaring RMQ queue and binding and cleaning them after test is finished.
func DeclareRMQQueue(t *testing.T, channel *amqp.Channel, queueName, exchange, routingKey string) {
	t.Helper()

	_, err := channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		require.FailNow(t, "can't declare queue", queueName, err)
	}

	err = channel.QueueBind(queueName, routingKey, exchange, false, nil)
	if err != nil {
		require.FailNow(t, "can't bind queue", queueName, routingKey, err)
	}

	t.Cleanup(func() {
		_, err := channel.QueueDelete(queueName, false, false, true)
		if err != nil {
			require.FailNow(t, "can't delete queue", queueName, err)
		}
	})
}

// ProductPage describes one mocked supplier product page.
type ProductPage struct {
	SKU         string
	Title       string
	Price       string
	Description string
}

// PageHTML renders page as supplier product page HTML.
func PageHTML(page ProductPage) []byte {
	return []byte(fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <title>%s | Supplier</title>
  <meta name="description" content="%s">
</head>
<body>
  <ul class="breadcrumbs">
    <li><a href="/">Home</a></li>
    <li><a href="/fasteners">Fasteners</a></li>
    <li><a href="/fasteners/bolts">Bolts</a></li>
  </ul>
  <h1 class="product-title">%s</h1>
  <span class="product-sku">%s</span>
  <div class="product-price"><span class="price-value">%s</span></div>
  <div class="product-description">%s</div>
  <div class="product-gallery">
    <img src="/images/%s/front.jpg">
  </div>
  <table class="specifications">
    <tr><th>Finish</th><td>Zinc plated</td></tr>
  </table>
</body>
</html>`,
		page.Title, page.Description, page.Title, page.SKU, page.Price, page.Description, page.SKU))
}

// PrepareMockedHTTPServer starts an http server serving supplier pages by path.
// Returned setter replaces the page served for a path.
func PrepareMockedHTTPServer(t *testing.T, pages map[string][]byte) (*httptest.Server, func(path string, page []byte)) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		page, ok := pages[req.URL.Path]
		if !ok {
			wrt.WriteHeader(http.StatusNotFound)
			return
		}
		wrt.Header().Add("Content-Type", "text/html; charset=utf-8")
		_, _ = wrt.Write(page)
	}))

	t.Cleanup(func() {
		srv.Close()
	})

	return srv, func(path string, page []byte) { pages[path] = page }
}

// WaitForProduct is blocking helper function, returns the product once accept returns true for it.
func WaitForProduct(
	t *testing.T,
	store storage.Postgres,
	sku string,
	accept func(*models.CanonicalProduct) bool,
) *models.CanonicalProduct {
	t.Helper()

	deadline := time.After(30 * time.Second)
	for {
		select {
		case <-deadline:
			require.FailNow(t, "timed out waiting for product", sku)
			return nil
		case <-time.After(250 * time.Millisecond):
		}

		product, err := store.GetBySKU(context.TODO(), sku)
		if errors.Is(err, platform.ErrNotFound) {
			continue
		}
		if err != nil {
			require.FailNow(t, "can't get product", sku, err)
		}
		if accept == nil || accept(product) {
			return product
		}
	}
}

// SetProductUpdatedAt is helper function for backdating a product record.
func SetProductUpdatedAt(t *testing.T, exc qrm.Executable, sku string, updatedAt time.Time) {
	t.Helper()

	result, err := table.Product.UPDATE(table.Product.UpdatedAt).
		SET(pg.TimestampzT(updatedAt)).
		WHERE(table.Product.Sku.EQ(pg.String(sku))).
		Exec(exc)
	if err != nil {
		require.FailNow(t, "can't set product updatedAt", sku, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil || rowsAffected == 0 {
		require.FailNow(t, "no product updated", sku)
	}
}
