package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
	_ "github.com/lib/pq"
	"github.com/partsflow/catalog-pipeline/cmd/catalog/config"
	"github.com/partsflow/catalog-pipeline/e2e/helpers"
	"github.com/partsflow/catalog-pipeline/internal/extractor"
	"github.com/partsflow/catalog-pipeline/internal/fetcher"
	"github.com/partsflow/catalog-pipeline/internal/handler"
	"github.com/partsflow/catalog-pipeline/internal/platform/models"
	"github.com/partsflow/catalog-pipeline/internal/platform/rabbitmq"
	"github.com/partsflow/catalog-pipeline/internal/platform/storage"
	"github.com/partsflow/catalog-pipeline/internal/platform/storage/storagetesting"
	"github.com/partsflow/catalog-pipeline/internal/refresher"
	"github.com/partsflow/catalog-pipeline/internal/resolver"
	"github.com/partsflow/catalog-pipeline/internal/staticcatalog"
	"github.com/partsflow/catalog-pipeline/pkg/v1/commander"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

const (
	userAgent = "catalog-pipeline-e2e-test/0.0.1"
	exchange  = "catalog-e2e"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	os.Exit(m.Run())
}

func TestE2E(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}

type E2ETestSuite struct {
	suite.Suite
	cfg        *config.Config
	connection *amqp.Connection
	channel    *amqp.Channel
	db         *sql.DB
}

func (s *E2ETestSuite) SetupSuite() {
	var err error

	var cfg config.Config
	if err = env.Parse(&cfg); err != nil {
		s.Require().FailNow("can't parse env variables", err)
	}
	s.cfg = &cfg

	if s.connection, err = amqp.Dial(cfg.RabbitMQ.URL); err != nil {
		s.Require().FailNow("can't open RabbitMQ connection", err)
	}

	if s.channel, err = s.connection.Channel(); err != nil {
		s.Require().FailNow("can't open RabbitMQ channel", err)
	}

	helpers.DeclareRMQExchange(s.T(), s.channel, exchange)

	if s.db, err = sql.Open("postgres", cfg.DatabaseURL); err != nil {
		s.Require().FailNow("can't open Postgres connection", err)
	}

	storagetesting.CleanupData(s.T(), s.db)
}

func (s *E2ETestSuite) TearDownSuite() {
	storagetesting.CleanupData(s.T(), s.db)
	if err := s.db.Close(); err != nil {
		s.FailNow("can't close Postgres connection", err)
	}

	if err := s.channel.Close(); err != nil {
		s.FailNow("can't close RabbitMQ channel", err)
	}

	if err := s.connection.Close(); err != nil {
		s.FailNow("can't close RabbitMQ connection", err)
	}
}

func (s *E2ETestSuite) TestProductPipeline() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Prepare test RMQ queue
	queue := fmt.Sprintf("catalog-e2e-test-%d", rand.Int63n(100000))
	routingKey := fmt.Sprintf("catalog.cmd.e2e.%d", rand.Int63n(100000))
	helpers.DeclareRMQQueue(s.T(), s.channel, queue, exchange, routingKey)

	// Mock supplier site
	pagePath := "/products/e2e-hb-1"
	firstPage := helpers.ProductPage{
		SKU:         "E2E-HB-1",
		Title:       "Hex Bolt M8 x 40mm",
		Price:       "£4.20",
		Description: "Zinc plated hex bolt.",
	}
	httpSrv, setPage := helpers.PrepareMockedHTTPServer(s.T(), map[string][]byte{
		pagePath: helpers.PageHTML(firstPage),
	})

	// Static seed catalog pointing at the mock supplier
	catalog := staticcatalog.New([]models.StaticCatalogEntry{
		{
			SKU:       "E2E-HB-1",
			Title:     "Hex Bolt M8 40mm (seed)",
			Size:      "M8 x 40mm",
			SourceURL: httpSrv.URL + pagePath,
		},
	})

	// Prepare pipeline components
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	fetch := fetcher.NewFetcher(httpSrv.Client(), userAgent)
	extract := &extractor.Extractor{}
	store := storage.NewPostgres(s.db)

	res := resolver.NewResolver(store, catalog, fetch, extract, &logger)
	ref := refresher.NewRefresher(
		store,
		catalog,
		fetch,
		extract,
		&logger,
		refresher.WithDelay(10*time.Millisecond),
	)

	// Prepare RMQ client and commander
	rmq, err := rabbitmq.NewRabbitMQ(s.connection, exchange)
	if err != nil {
		s.Require().FailNow("can't create RabbitMQ client", err)
	}
	publisher := commander.NewPipelineCommander(rmq, routingKey)

	// Prepare and run handler
	han := handler.NewHandler(rmq, res, ref, &logger)
	handlerErr := han.Start(ctx, queue)
	s.Require().NoError(handlerErr, "handler shouldn't return any error")

	// Warm the cache through the command queue; lowercase SKU should
	// still hit the seed entry
	if err := publisher.SendWarmCommand(ctx, "e2e-hb-1"); err != nil {
		s.Require().FailNow("can't publish warm command", err)
	}

	product := helpers.WaitForProduct(s.T(), store, "E2E-HB-1", nil)

	s.Equal("Hex Bolt M8 x 40mm", product.Title, "scraped title should win over the seed title")
	s.Equal("Zinc plated hex bolt.", product.Description)
	s.InDelta(4.20, product.Price, 0.0001)
	s.Equal("Bolts", product.Category, "category should come from the last breadcrumb")
	s.Equal(models.DataSourceScraped, product.DataSource)
	s.Equal("Zinc plated", product.Specifications["Finish"])
	s.Equal("M8 x 40mm", product.Specifications["Size"], "seed size should fill the missing spec")
	s.Zero(product.StockQuantity, "scraping cannot determine stock")

	// Age the record and change the supplier page, then refresh
	helpers.SetProductUpdatedAt(s.T(), s.db, "E2E-HB-1", time.Now().Add(-48*time.Hour))

	secondPage := firstPage
	secondPage.Title = "Hex Bolt M8 x 40mm (v2)"
	secondPage.Price = "£4.80"
	setPage(pagePath, helpers.PageHTML(secondPage))

	if err := publisher.SendRefreshCommand(ctx, 24); err != nil {
		s.Require().FailNow("can't publish refresh command", err)
	}

	refreshed := helpers.WaitForProduct(s.T(), store, "E2E-HB-1", func(p *models.CanonicalProduct) bool {
		return p.Title == "Hex Bolt M8 x 40mm (v2)"
	})

	s.InDelta(4.80, refreshed.Price, 0.0001, "refresh should pick up the new price")
	s.True(refreshed.CreatedAt.Equal(product.CreatedAt), "refresh should keep the original createdAt")
	s.Zero(refreshed.StockQuantity, "refresh should keep stored inventory")
	s.True(refreshed.UpdatedAt.After(product.UpdatedAt), "refresh should bump updatedAt")

	s.Contains(buf.String(), "warm-up finished", "handler should log the warm-up")
}
