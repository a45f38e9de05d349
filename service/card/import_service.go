package card

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	catalogEntity "magiccards.GO/model/entity/catalog"
	catalogRepo "magiccards.GO/model/repository/catalog"
	"magiccards.GO/scryfall"
)

var (
	// ErrNoVariants means a card produced zero variant products; a
	// configurable product without variants is invalid.
	ErrNoVariants = errors.New("card: no variants resolved")
	// ErrCategory means the set (or root) category could not be
	// resolved; the whole set import is aborted.
	ErrCategory = errors.New("card: category resolution failed")
)

// ImportOptions configures an import run.
type ImportOptions struct {
	RootCategoryID uint
	StoreID        uint16
	// Workers bounds concurrent card upserts. 1 (or 0) keeps the run
	// sequential.
	Workers int
	Out     io.Writer
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	SetCode   string
	SetName   string
	Total     int
	Created   int
	Updated   int
	Skipped   int
	Failed    int
	TotalTime time.Duration
}

// Outcome is the terminal state of one card's upsert.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeUpdated
	OutcomeSkipped
	OutcomeFailed
)

// Importer drives a set import: category resolution, the card stream,
// and the per-card upsert against the catalog.
type Importer struct {
	client     *scryfall.Client
	products   *catalogRepo.ProductRepository
	attributes *catalogRepo.AttributeRepository
	categories *CategoryService
	opts       ImportOptions
	out        io.Writer

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewImporter(db *gorm.DB, client *scryfall.Client, opts ImportOptions) *Importer {
	if opts.RootCategoryID == 0 {
		opts.RootCategoryID = 2
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Importer{
		client:     client,
		products:   catalogRepo.GetProductRepository(db),
		attributes: catalogRepo.GetAttributeRepository(db),
		categories: NewCategoryService(db, opts.RootCategoryID),
		opts:       opts,
		out:        out,
		inflight:   make(map[string]struct{}),
	}
}

// ImportSet imports all cards of one set. Per-card failures are counted
// and reported but never abort the batch; only set-level failures
// (unknown code, category resolution) return an error.
func (im *Importer) ImportSet(ctx context.Context, code string) (*ImportResult, error) {
	start := time.Now()

	set, err := im.client.GetSet(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("fetch set %q: %w", code, err)
	}

	attrIDs, err := im.attributes.IDsByCode(AttributeCodes())
	if err != nil {
		return nil, err
	}

	// Category resolution happens before any card is touched.
	parent := im.categories.Resolve(RootCategoryName, nil)
	if parent.IsSentinel() {
		return nil, fmt.Errorf("%w: %q", ErrCategory, RootCategoryName)
	}
	setCategory := im.categories.Resolve(set.Name, parent)
	if setCategory.IsSentinel() {
		return nil, fmt.Errorf("%w: %q", ErrCategory, set.Name)
	}
	fmt.Fprintf(im.out, "Importing %q into category %d\n", set.Name, setCategory.EntityID)

	result := &ImportResult{SetCode: set.Code, SetName: set.Name}

	stream := im.client.StreamCards(set.SearchURI)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.opts.Workers)

	for {
		if ctx.Err() != nil {
			break // stop paging, let in-flight upserts finish
		}
		rec, ok := stream.Next(ctx)
		if !ok {
			break
		}
		g.Go(func() error {
			outcome := im.processCard(gctx, rec, setCategory.EntityID, attrIDs)
			im.count(result, outcome)
			return nil
		})
	}
	_ = g.Wait()

	result.TotalTime = time.Since(start)
	if err := stream.Err(); err != nil {
		return result, fmt.Errorf("card stream for %q: %w", code, err)
	}
	return result, nil
}

func (im *Importer) count(result *ImportResult, outcome Outcome) {
	im.mu.Lock()
	defer im.mu.Unlock()
	result.Total++
	switch outcome {
	case OutcomeCreated:
		result.Created++
	case OutcomeUpdated:
		result.Updated++
	case OutcomeSkipped:
		result.Skipped++
	case OutcomeFailed:
		result.Failed++
	}
}

// processCard maps one record and runs the upsert state machine.
func (im *Importer) processCard(ctx context.Context, rec scryfall.CardRecord, categoryID uint, attrIDs map[string]uint16) Outcome {
	if ctx.Err() != nil {
		return OutcomeSkipped
	}
	m, ok := MapCard(rec)
	if !ok {
		return OutcomeSkipped
	}

	// At most one in-flight upsert per SKU when workers > 1.
	if !im.claim(m.SKU) {
		return OutcomeSkipped
	}
	defer im.release(m.SKU)

	outcome, err := im.upsertCard(m, categoryID, attrIDs)
	if err != nil {
		fmt.Fprintf(im.out, "Error: %s: %v\n", m.SKU, err)
	}
	return outcome
}

func (im *Importer) claim(sku string) bool {
	im.mu.Lock()
	defer im.mu.Unlock()
	if _, busy := im.inflight[sku]; busy {
		return false
	}
	im.inflight[sku] = struct{}{}
	return true
}

func (im *Importer) release(sku string) {
	im.mu.Lock()
	defer im.mu.Unlock()
	delete(im.inflight, sku)
}

// upsertCard resolves/creates the configurable parent and its variants,
// links them, and persists the parent last.
func (im *Importer) upsertCard(m Mapped, categoryID uint, attrIDs map[string]uint16) (Outcome, error) {
	parent, found, err := im.products.FindBySKU(m.SKU)
	if err != nil {
		return OutcomeFailed, err
	}
	if !found {
		fmt.Fprintf(im.out, "Product %s does not exist. Creating it now.\n", m.SKU)
		parent = &catalogEntity.Product{SKU: m.SKU}
	}

	// Variants are saved before the parent references them: the link
	// rows need their resolved ids.
	childIDs, err := im.upsertVariants(m, categoryID, attrIDs)
	if err != nil {
		return OutcomeFailed, err
	}
	if len(childIDs) == 0 {
		return OutcomeFailed, fmt.Errorf("%w: %s", ErrNoVariants, m.SKU)
	}

	parent.TypeID = catalogEntity.TypeConfigurable
	parent.Name = m.Name
	parent.Price = m.Price
	parent.Status = catalogEntity.StatusEnabled
	parent.Visibility = catalogEntity.VisibilityBoth
	parent.URLKey = m.URLKey

	if err := im.products.Save(parent); err != nil {
		if errors.Is(err, catalogRepo.ErrConflict) {
			// Someone else created it between lookup and save, or the
			// url_key collides. Already-exists is a normal outcome.
			return OutcomeSkipped, err
		}
		return OutcomeFailed, err
	}

	if err := im.products.UpsertStock(parent.EntityID, 100, true); err != nil {
		return OutcomeFailed, err
	}
	if err := im.products.AssignCategory(parent.EntityID, categoryID); err != nil {
		return OutcomeFailed, err
	}
	if err := im.products.ReplaceLinks(parent.EntityID, childIDs); err != nil {
		return OutcomeFailed, err
	}
	if err := im.writeCardAttributes(parent.EntityID, m.Fields, attrIDs); err != nil {
		return OutcomeFailed, err
	}

	if found {
		return OutcomeUpdated, nil
	}
	return OutcomeCreated, nil
}

// upsertVariants looks up or creates the variant products and returns
// their ids. Resolved ids go into a fresh accumulator, never back into
// the kind list being iterated.
func (im *Importer) upsertVariants(m Mapped, categoryID uint, attrIDs map[string]uint16) ([]uint, error) {
	childIDs := make([]uint, 0, len(VariantKinds))
	for _, kind := range VariantKinds {
		sku := VariantSKU(m.SKU, kind)
		child, found, err := im.products.FindBySKU(sku)
		if err != nil {
			return nil, err
		}
		if !found {
			child = &catalogEntity.Product{
				SKU:        sku,
				TypeID:     catalogEntity.TypeVirtual,
				Name:       m.Name + " - " + kind,
				Visibility: catalogEntity.VisibilityNotVisible,
				URLKey:     m.URLKey + "-" + kind,
			}
		}
		child.Price = m.VariantPrice(kind)
		child.Status = catalogEntity.StatusEnabled
		if err := im.products.Save(child); err != nil {
			if errors.Is(err, catalogRepo.ErrConflict) {
				// Concurrent create: re-read the winner and keep going.
				if child, found, err = im.products.FindBySKU(sku); err != nil || !found {
					continue
				}
			} else {
				fmt.Fprintf(im.out, "Error: variant %s: %v\n", sku, err)
				continue
			}
		}
		if err := im.products.UpsertStock(child.EntityID, 100, true); err != nil {
			return nil, err
		}
		if err := im.products.AssignCategory(child.EntityID, categoryID); err != nil {
			return nil, err
		}
		// Record which variant kind this child carries.
		if _, err := im.attributes.ResolveOption("card_type", kind); err != nil {
			return nil, err
		}
		if err := im.products.SetAttributeValues(child.EntityID, im.opts.StoreID, map[uint16]string{
			attrIDs["card_type"]: kind,
		}); err != nil {
			return nil, err
		}
		childIDs = append(childIDs, child.EntityID)
	}
	return childIDs, nil
}

func (im *Importer) writeCardAttributes(entityID uint, fields NormalizedFields, attrIDs map[string]uint16) error {
	attrs, err := fields.AttributeMap()
	if err != nil {
		return err
	}
	values := make(map[uint16]string, len(attrs))
	for code, v := range attrs {
		id, ok := attrIDs[code]
		if !ok {
			continue
		}
		values[id] = v
	}
	return im.products.SetAttributeValues(entityID, im.opts.StoreID, values)
}
