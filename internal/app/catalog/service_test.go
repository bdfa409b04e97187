package catalog_test

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/ordertally-service/internal/app/catalog"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/bulk_entries"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/entry_text"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/list_archive"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/list_events"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/add_entry"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/add_product"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/add_state"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/archive_product"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/bulk_export"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/delete_entry"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/export_invoice"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/purge_archived"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/remove_state"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/restore_product"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/set_entry_state"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/set_logo"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/set_photo"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/toggle_ready"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/update_business_info"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/update_count"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/update_entry"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/update_note"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/update_state_color"
	"github.com/light-bringer/ordertally-service/internal/pkg/artifact"
	"github.com/light-bringer/ordertally-service/internal/pkg/clock"
	"github.com/light-bringer/ordertally-service/internal/pkg/idgen"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
	"github.com/light-bringer/ordertally-service/internal/pkg/metrics"
)

const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

type suite struct {
	*catalog.Service
	store   *kvstore.Memory
	clock   *clock.MockClock
	sink    *artifact.Memory
	metrics *metrics.Metrics
}

func setupTest(t *testing.T) *suite {
	t.Helper()
	s := &suite{
		store:   kvstore.NewMemory(),
		clock:   clock.NewMockClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)),
		sink:    artifact.NewMemory(),
		metrics: metrics.New(),
	}
	s.Service = catalog.New(catalog.Deps{
		Store:   s.store,
		Clock:   s.clock,
		IDs:     idgen.NewSequence(100),
		Sink:    s.sink,
		Metrics: s.metrics,
	})
	return s
}

func (s *suite) addProduct(t *testing.T, name, price string) *domain.Product {
	t.Helper()
	p, err := s.AddProduct.Execute(context.Background(), &add_product.Request{Name: name, Price: price})
	require.NoError(t, err)
	return p
}

func (s *suite) addEntry(t *testing.T, productID int64, data string) *domain.CustomerEntry {
	t.Helper()
	e, err := s.AddEntry.Execute(context.Background(), &add_entry.Request{ProductID: productID, Data: data})
	require.NoError(t, err)
	return e
}

func (s *suite) product(t *testing.T, id int64) *get_product.Response {
	t.Helper()
	resp, err := s.GetProduct.Execute(context.Background(), &get_product.Request{ProductID: id})
	require.NoError(t, err)
	return resp
}

func TestProductRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("add product", func(t *testing.T) {
		s := setupTest(t)
		p := s.addProduct(t, "  Mango  ", "120.50")
		assert.Equal(t, int64(100), p.ID())
		assert.Equal(t, "Mango", p.Name())
		assert.Equal(t, 0, p.Count())
		assert.Equal(t, "120.50", p.Price().String())

		_, err := s.AddProduct.Execute(ctx, &add_product.Request{Name: "mango", Price: "1"})
		assert.ErrorIs(t, err, domain.ErrDuplicateName)

		_, err = s.AddProduct.Execute(ctx, &add_product.Request{Name: " ", Price: "1"})
		assert.ErrorIs(t, err, domain.ErrEmptyName)

		_, err = s.AddProduct.Execute(ctx, &add_product.Request{Name: "Lychee", Price: "abc"})
		assert.ErrorIs(t, err, domain.ErrInvalidPrice)
		assert.ErrorIs(t, err, domain.ErrValidation)

		products, err := s.ListProducts.Execute(ctx, &list_products.Request{})
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("count clamps at zero and absent ids are no-ops", func(t *testing.T) {
		s := setupTest(t)
		p := s.addProduct(t, "Mango", "10")

		neg := -3
		resp, err := s.UpdateCount.Execute(ctx, &update_count.Request{ProductID: p.ID(), Count: &neg})
		require.NoError(t, err)
		assert.True(t, resp.Applied)
		assert.Equal(t, 0, resp.Count)

		resp, err = s.UpdateCount.Execute(ctx, &update_count.Request{ProductID: p.ID(), Delta: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Count)

		resp, err = s.UpdateCount.Execute(ctx, &update_count.Request{ProductID: 999, Delta: 1})
		require.NoError(t, err)
		assert.False(t, resp.Applied)

		applied, err := s.UpdateNote.Execute(ctx, &update_note.Request{ProductID: 999, Note: "x"})
		require.NoError(t, err)
		assert.False(t, applied)

		applied, err = s.UpdateNote.Execute(ctx, &update_note.Request{ProductID: p.ID(), Note: "  keep spaces "})
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, "  keep spaces ", s.product(t, p.ID()).Product.Note())
	})

	t.Run("delete requires confirmation", func(t *testing.T) {
		s := setupTest(t)
		p := s.addProduct(t, "Mango", "10")

		_, err := s.DeleteProduct.Execute(ctx, &delete_product.Request{ProductID: p.ID()})
		assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
		s.product(t, p.ID())

		applied, err := s.DeleteProduct.Execute(ctx, &delete_product.Request{ProductID: p.ID(), Confirmed: true})
		require.NoError(t, err)
		assert.True(t, applied)

		_, err = s.GetProduct.Execute(ctx, &get_product.Request{ProductID: p.ID()})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("photo cap is checked before any mutation", func(t *testing.T) {
		s := setupTest(t)
		p := s.addProduct(t, "Mango", "10")

		applied, err := s.SetPhoto.Execute(ctx, &set_photo.Request{ProductID: p.ID(), DataURL: "data:image/png;base64," + tinyPNG})
		require.NoError(t, err)
		assert.True(t, applied)

		big := "data:image/png;base64," + base64.StdEncoding.EncodeToString(make([]byte, domain.MaxImageBytes+1))
		_, err = s.SetPhoto.Execute(ctx, &set_photo.Request{ProductID: p.ID(), DataURL: big})
		assert.ErrorIs(t, err, domain.ErrPayloadTooLarge)

		photo := s.product(t, p.ID()).Product.Photo()
		require.NotNil(t, photo)
		assert.Equal(t, "image/png", photo.MIMEType())

		applied, err = s.SetPhoto.Execute(ctx, &set_photo.Request{ProductID: p.ID()})
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Nil(t, s.product(t, p.ID()).Product.Photo())
	})
}

func TestOrderLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("entries, states and totals", func(t *testing.T) {
		s := setupTest(t)
		p := s.addProduct(t, "Mango", "10")
		e1 := s.addEntry(t, p.ID(), "Alice, Dhaka")
		s.addEntry(t, p.ID(), "Bob, Chittagong")
		s.addEntry(t, p.ID(), "Carol, Sylhet")
		assert.Equal(t, "Pending", e1.State())

		applied, err := s.SetEntryState.Execute(ctx, &set_entry_state.Request{ProductID: p.ID(), EntryID: e1.ID(), State: "Ready"})
		require.NoError(t, err)
		assert.True(t, applied)

		_, err = s.SetEntryState.Execute(ctx, &set_entry_state.Request{ProductID: p.ID(), EntryID: e1.ID(), State: "Lost"})
		assert.ErrorIs(t, err, domain.ErrUnknownState)

		detail := s.product(t, p.ID())
		assert.Equal(t, 3, detail.Totals.EntryCount)
		assert.Equal(t, 1, detail.Totals.ReadyCount)
		assert.Equal(t, "30.00", detail.Totals.Total.String())
		assert.Equal(t, "10.00", detail.Totals.ReadyTotal.String())
		assert.True(t, detail.Product.Entry(e1.ID()).IsReady())

		filtered, err := s.GetProduct.Execute(ctx, &get_product.Request{
			ProductID: p.ID(),
			Filter:    domain.EntryFilter{Search: "dhaka", State: "Ready"},
		})
		require.NoError(t, err)
		require.Len(t, filtered.Entries, 1)
		assert.Equal(t, e1.ID(), filtered.Entries[0].ID())
		assert.Equal(t, 3, filtered.Totals.EntryCount)
	})

	t.Run("add entry validation", func(t *testing.T) {
		s := setupTest(t)
		p := s.addProduct(t, "Mango", "10")

		_, err := s.AddEntry.Execute(ctx, &add_entry.Request{ProductID: p.ID(), Data: "  "})
		assert.ErrorIs(t, err, domain.ErrEmptyEntryData)

		_, err = s.AddEntry.Execute(ctx, &add_entry.Request{ProductID: 999, Data: "Alice"})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)

		for _, name := range []string{"Pending", "Processing", "Ready", "Delivered"} {
			_, err := s.RemoveState.Execute(ctx, &remove_state.Request{Name: name})
			require.NoError(t, err)
		}
		_, err = s.AddEntry.Execute(ctx, &add_entry.Request{ProductID: p.ID(), Data: "Alice"})
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("toggle ready flips between Ready and the first state", func(t *testing.T) {
		s := setupTest(t)
		p := s.addProduct(t, "Mango", "10")
		e := s.addEntry(t, p.ID(), "Alice")

		resp, err := s.ToggleReady.Execute(ctx, &toggle_ready.Request{ProductID: p.ID(), EntryID: e.ID()})
		require.NoError(t, err)
		assert.Equal(t, "Ready", resp.State)

		resp, err = s.ToggleReady.Execute(ctx, &toggle_ready.Request{ProductID: p.ID(), EntryID: e.ID()})
		require.NoError(t, err)
		assert.Equal(t, "Pending", resp.State)
	})

	t.Run("update, copy and delete", func(t *testing.T) {
		s := setupTest(t)
		p := s.addProduct(t, "Mango", "10")
		e := s.addEntry(t, p.ID(), "Alice")

		_, err := s.UpdateEntry.Execute(ctx, &update_entry.Request{ProductID: p.ID(), EntryID: e.ID(), Data: ""})
		assert.ErrorIs(t, err, domain.ErrEmptyEntryData)

		applied, err := s.UpdateEntry.Execute(ctx, &update_entry.Request{ProductID: p.ID(), EntryID: e.ID(), Data: "Alice\nRoad 5"})
		require.NoError(t, err)
		assert.True(t, applied)

		text, err := s.EntryText.Execute(ctx, &entry_text.Request{ProductID: p.ID(), EntryID: e.ID()})
		require.NoError(t, err)
		assert.Equal(t, "Alice\nRoad 5", text)

		_, err = s.EntryText.Execute(ctx, &entry_text.Request{ProductID: p.ID(), EntryID: 1})
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)

		_, err = s.DeleteEntry.Execute(ctx, &delete_entry.Request{ProductID: p.ID(), EntryID: e.ID()})
		assert.ErrorIs(t, err, domain.ErrConfirmationRequired)

		applied, err = s.DeleteEntry.Execute(ctx, &delete_entry.Request{ProductID: p.ID(), EntryID: e.ID(), Confirmed: true})
		require.NoError(t, err)
		assert.True(t, applied)

		applied, err = s.DeleteEntry.Execute(ctx, &delete_entry.Request{ProductID: p.ID(), EntryID: e.ID(), Confirmed: true})
		require.NoError(t, err)
		assert.False(t, applied)
	})
}

func TestArchiveRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupTest(t)
	p := s.addProduct(t, "Mango", "10")
	s.addEntry(t, p.ID(), "Alice, Dhaka")

	applied, err := s.ArchiveProduct.Execute(ctx, &archive_product.Request{ProductID: p.ID()})
	require.NoError(t, err)
	assert.True(t, applied)

	active, err := s.ListProducts.Execute(ctx, &list_products.Request{})
	require.NoError(t, err)
	assert.Empty(t, active)

	archived, err := s.ListArchive.Execute(ctx, &list_archive.Request{Search: "DHAKA"})
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Len(t, archived[0].Entries(), 1)

	applied, err = s.RestoreProduct.Execute(ctx, &restore_product.Request{ProductID: p.ID()})
	require.NoError(t, err)
	assert.True(t, applied)

	detail := s.product(t, p.ID())
	assert.Len(t, detail.Product.Entries(), 1)

	archived, err = s.ListArchive.Execute(ctx, &list_archive.Request{})
	require.NoError(t, err)
	assert.Empty(t, archived)

	t.Run("purge requires confirmation", func(t *testing.T) {
		_, err := s.ArchiveProduct.Execute(ctx, &archive_product.Request{ProductID: p.ID()})
		require.NoError(t, err)

		_, err = s.PurgeArchived.Execute(ctx, &purge_archived.Request{ProductID: p.ID()})
		assert.ErrorIs(t, err, domain.ErrConfirmationRequired)

		applied, err := s.PurgeArchived.Execute(ctx, &purge_archived.Request{ProductID: p.ID(), Confirmed: true})
		require.NoError(t, err)
		assert.True(t, applied)

		archived, err := s.ListArchive.Execute(ctx, &list_archive.Request{})
		require.NoError(t, err)
		assert.Empty(t, archived)
	})
}

func TestBusinessConfiguration(t *testing.T) {
	ctx := context.Background()
	s := setupTest(t)

	cfg, err := s.GetBusinessConfig.Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, cfg.States(), 4)

	require.NoError(t, s.UpdateBusinessInfo.Execute(ctx, &update_business_info.Request{Name: " Rahim Store ", FooterNote: "Call 017"}))
	require.NoError(t, s.AddState.Execute(ctx, &add_state.Request{Name: "Returned"}))
	assert.ErrorIs(t, s.AddState.Execute(ctx, &add_state.Request{Name: "Returned"}), domain.ErrDuplicateState)
	require.NoError(t, s.SetLogo.Execute(ctx, &set_logo.Request{DataURL: "data:image/png;base64," + tinyPNG}))

	applied, err := s.UpdateStateColor.Execute(ctx, &update_state_color.Request{Name: "Returned", Color: "#ff0000"})
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = s.UpdateStateColor.Execute(ctx, &update_state_color.Request{Name: "Missing", Color: "#ff0000"})
	require.NoError(t, err)
	assert.False(t, applied)

	cfg, err = s.GetBusinessConfig.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Rahim Store", cfg.Name())
	assert.Equal(t, "Call 017", cfg.FooterNote())
	assert.NotNil(t, cfg.Logo())
	assert.Equal(t, "#FF0000", cfg.StateColor("Returned"))

	t.Run("removed states stay on entries", func(t *testing.T) {
		p := s.addProduct(t, "Mango", "10")
		e := s.addEntry(t, p.ID(), "Alice")
		_, err := s.SetEntryState.Execute(ctx, &set_entry_state.Request{ProductID: p.ID(), EntryID: e.ID(), State: "Returned"})
		require.NoError(t, err)

		applied, err := s.RemoveState.Execute(ctx, &remove_state.Request{Name: "Returned"})
		require.NoError(t, err)
		assert.True(t, applied)

		assert.Equal(t, "Returned", s.product(t, p.ID()).Product.Entry(e.ID()).State())

		view, err := s.BulkEntries.Execute(ctx, &bulk_entries.Request{})
		require.NoError(t, err)
		assert.Equal(t, 1, view.Summary.All)
		assert.Equal(t, 0, view.Summary.Count("Returned"))
	})
}

func TestBulkWorkflow(t *testing.T) {
	ctx := context.Background()
	s := setupTest(t)
	mango := s.addProduct(t, "Mango", "10")
	lychee := s.addProduct(t, "Lychee", "5")
	a := s.addEntry(t, mango.ID(), "Alice")
	s.addEntry(t, mango.ID(), "Bob")
	c := s.addEntry(t, lychee.ID(), "Carol")
	_, err := s.SetEntryState.Execute(ctx, &set_entry_state.Request{ProductID: lychee.ID(), EntryID: c.ID(), State: "Ready"})
	require.NoError(t, err)

	ready := "Ready"
	view, err := s.BulkEntries.Execute(ctx, &bulk_entries.Request{State: &ready})
	require.NoError(t, err)
	assert.Equal(t, 3, view.Summary.All)
	assert.Equal(t, 2, view.Summary.Count("Pending"))
	assert.Equal(t, 1, view.Summary.Count("Ready"))
	require.Len(t, view.Records, 1)
	assert.Equal(t, "Lychee", view.Records[0].ProductName)

	t.Run("filtered export", func(t *testing.T) {
		resp, err := s.BulkExport.Execute(ctx, &bulk_export.Request{State: &ready})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Entries)
		assert.Equal(t, "bulk_customer_entries_Ready.pdf", resp.Document.Name)
		assert.True(t, strings.HasPrefix(string(resp.Document.Data), "%PDF"))
	})

	t.Run("selection wins over state", func(t *testing.T) {
		resp, err := s.BulkExport.Execute(ctx, &bulk_export.Request{SelectedEntryIDs: []int64{a.ID(), c.ID()}, State: &ready, Store: true})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Entries)
		require.NotNil(t, resp.Artifact)

		infos, err := s.sink.List(ctx, "bulk/")
		require.NoError(t, err)
		assert.Len(t, infos, 1)
	})

	t.Run("empty selection produces nothing", func(t *testing.T) {
		delivered := "Delivered"
		_, err := s.BulkExport.Execute(ctx, &bulk_export.Request{State: &delivered})
		assert.ErrorIs(t, err, domain.ErrNothingToExport)
	})
}

func TestExportInvoice(t *testing.T) {
	ctx := context.Background()
	s := setupTest(t)
	p := s.addProduct(t, "Mango/Box", "10")
	e := s.addEntry(t, p.ID(), "Alice, Dhaka")

	resp, err := s.ExportInvoice.Execute(ctx, &export_invoice.Request{ProductID: p.ID(), EntryID: e.ID(), Store: true})
	require.NoError(t, err)
	assert.Equal(t, "Mango_Box_customer_101.pdf", resp.Document.Name)
	assert.Equal(t, 1, resp.Document.Pages)
	require.NotNil(t, resp.Artifact)

	_, data, err := s.sink.Get(ctx, resp.Artifact.Key)
	require.NoError(t, err)
	assert.Equal(t, resp.Document.Data, data)

	_, err = s.ExportInvoice.Execute(ctx, &export_invoice.Request{ProductID: p.ID(), EntryID: 1})
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)

	_, err = s.ExportInvoice.Execute(ctx, &export_invoice.Request{ProductID: 1, EntryID: e.ID()})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// contextBoundStore fails reads once the caller's context is done, as a
// network-backed store does.
type contextBoundStore struct {
	kvstore.Store
}

func (c contextBoundStore) Get(ctx context.Context, key string) (kvstore.Entry, error) {
	if err := ctx.Err(); err != nil {
		return kvstore.Entry{}, err
	}
	return c.Store.Get(ctx, key)
}

func TestExportsIgnoreCallerCancellation(t *testing.T) {
	s := setupTest(t)
	p := s.addProduct(t, "Mango", "10")
	e := s.addEntry(t, p.ID(), "Alice")

	svc := catalog.New(catalog.Deps{
		Store: contextBoundStore{Store: s.store},
		Clock: s.clock,
		IDs:   idgen.NewSequence(500),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	invoice, err := svc.ExportInvoice.Execute(ctx, &export_invoice.Request{ProductID: p.ID(), EntryID: e.ID()})
	require.NoError(t, err)
	assert.Equal(t, "Mango_customer_101.pdf", invoice.Document.Name)

	bulk, err := svc.BulkExport.Execute(ctx, &bulk_export.Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, bulk.Entries)

	// commands still honour cancellation
	_, err = svc.AddEntry.Execute(ctx, &add_entry.Request{ProductID: p.ID(), Data: "Bob"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	s := setupTest(t)
	p := s.addProduct(t, "Mango", "10")

	const writers = 4
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.AddEntry.Execute(ctx, &add_entry.Request{ProductID: p.ID(), Data: "customer"})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Len(t, s.product(t, p.ID()).Product.Entries(), writers)
}

func TestActivityLog(t *testing.T) {
	ctx := context.Background()
	s := setupTest(t)
	p := s.addProduct(t, "Mango", "10")
	s.clock.Advance(time.Second)
	s.addEntry(t, p.ID(), "Alice")
	s.clock.Advance(time.Second)
	_, err := s.ArchiveProduct.Execute(ctx, &archive_product.Request{ProductID: p.ID()})
	require.NoError(t, err)

	events, err := s.ListEvents.Execute(ctx, &list_events.Request{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, domain.EventProductArchived, events[0].EventType)

	eventType := domain.EventEntryAdded
	events, err = s.ListEvents.Execute(ctx, &list_events.Request{EventType: &eventType})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
