package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/cartoolsbd/storefront/internal/debounce"
	"github.com/cartoolsbd/storefront/internal/models"
)

type ProductLister interface {
	ListAll(ctx context.Context) ([]models.Product, error)
}

// Indexer keeps the product index in step with the catalog. Change
// notifications are debounced so a burst of admin edits produces a single
// resync instead of one round-trip per keystroke of work.
type Indexer struct {
	es       *elasticsearch.Client
	index    string
	products ProductLister
	log      *slog.Logger
	deb      *debounce.Debouncer[struct{}]
}

func NewIndexer(es *elasticsearch.Client, index string, products ProductLister, log *slog.Logger) *Indexer {
	i := &Indexer{
		es:       es,
		index:    index,
		products: products,
		log:      log,
	}
	i.deb = debounce.New(debounce.DefaultQuiet, func(struct{}) { i.resync() })
	return i
}

// NotifyChanged schedules a resync after the quiet period. Repeated calls
// within the period collapse into one resync.
func (i *Indexer) NotifyChanged() {
	i.deb.Call(struct{}{})
}

func (i *Indexer) Stop() {
	i.deb.Stop()
}

func (i *Indexer) resync() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	products, err := i.products.ListAll(ctx)
	if err != nil {
		i.log.Error("index resync: list products", "error", err)
		return
	}

	for _, p := range products {
		if err := i.indexOne(ctx, p); err != nil {
			i.log.Error("index resync: index product", "product_id", p.ID, "error", err)
		}
	}
	i.log.Info("index resync complete", "count", len(products))
}

func (i *Indexer) indexOne(ctx context.Context, p models.Product) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	res, err := i.es.Index(
		i.index,
		&buf,
		i.es.Index.WithDocumentID(p.ID.String()),
		i.es.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index response: %s", res.Status())
	}
	return nil
}

// Delete removes one product document. A missing document is not an error.
func (i *Indexer) Delete(ctx context.Context, id string) error {
	res, err := i.es.Delete(
		i.index,
		id,
		i.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete response: %s", res.Status())
	}
	return nil
}
