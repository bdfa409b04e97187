// Package catalog is the product/order tally bounded context: products,
// their customer entries, the archive, the workflow states and the PDF
// exports built from them.
package catalog

import (
	"github.com/light-bringer/ordertally-service/internal/app/catalog/export"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/bulk_entries"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/entry_text"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/get_business_config"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/list_archive"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/list_events"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/repo"
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
	"github.com/light-bringer/ordertally-service/internal/pkg/committer"
	"github.com/light-bringer/ordertally-service/internal/pkg/idgen"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
	"github.com/light-bringer/ordertally-service/internal/pkg/metrics"
)

// Deps are the infrastructure components the context is built on.
// Sink and Metrics are optional.
type Deps struct {
	Store   kvstore.Store
	Clock   clock.Clock
	IDs     idgen.Generator
	Sink    artifact.Sink
	Metrics *metrics.Metrics
}

// Service holds every command and query of the context.
type Service struct {
	// Product registry
	AddProduct     *add_product.Interactor
	UpdateCount    *update_count.Interactor
	UpdateNote     *update_note.Interactor
	DeleteProduct  *delete_product.Interactor
	ArchiveProduct *archive_product.Interactor
	SetPhoto       *set_photo.Interactor

	// Order ledger
	AddEntry      *add_entry.Interactor
	UpdateEntry   *update_entry.Interactor
	DeleteEntry   *delete_entry.Interactor
	SetEntryState *set_entry_state.Interactor
	ToggleReady   *toggle_ready.Interactor

	// Archive
	RestoreProduct *restore_product.Interactor
	PurgeArchived  *purge_archived.Interactor

	// Business configuration
	UpdateBusinessInfo *update_business_info.Interactor
	SetLogo            *set_logo.Interactor
	AddState           *add_state.Interactor
	UpdateStateColor   *update_state_color.Interactor
	RemoveState        *remove_state.Interactor

	// Exports
	ExportInvoice *export_invoice.Interactor
	BulkExport    *bulk_export.Interactor

	// Queries
	ListProducts      *list_products.Query
	GetProduct        *get_product.Query
	ListArchive       *list_archive.Query
	BulkEntries       *bulk_entries.Query
	GetBusinessConfig *get_business_config.Query
	EntryText         *entry_text.Query
	ListEvents        *list_events.Query

	// Activity is exposed for retention jobs.
	Activity *repo.ActivityRepo
}

// New wires the repositories, committer and use cases over deps.Store.
func New(deps Deps) *Service {
	comm := committer.NewCommitter(deps.Store)
	if deps.Metrics != nil {
		comm.WithConflictObserver(deps.Metrics.CommitConflicts.Inc)
	}

	productRepo := repo.NewProductRepo(deps.Store)
	businessRepo := repo.NewBusinessConfigRepo(deps.Store)
	activityRepo := repo.NewActivityRepo(deps.Store)
	renderer := export.NewRenderer()
	clk := deps.Clock

	return &Service{
		AddProduct:     add_product.NewInteractor(productRepo, businessRepo, activityRepo, comm, clk, deps.IDs),
		UpdateCount:    update_count.NewInteractor(productRepo, businessRepo, activityRepo, comm, clk),
		UpdateNote:     update_note.NewInteractor(productRepo, businessRepo, activityRepo, comm, clk),
		DeleteProduct:  delete_product.NewInteractor(productRepo, businessRepo, activityRepo, comm, clk),
		ArchiveProduct: archive_product.NewInteractor(productRepo, businessRepo, activityRepo, comm, clk),
		SetPhoto:       set_photo.NewInteractor(productRepo, businessRepo, activityRepo, comm, clk),

		AddEntry:      add_entry.NewInteractor(productRepo, businessRepo, activityRepo, comm, clk, deps.IDs),
		UpdateEntry:   update_entry.NewInteractor(productRepo, businessRepo, activityRepo, comm, clk),
		DeleteEntry:   delete_entry.NewInteractor(productRepo, businessRepo, activityRepo, comm, clk),
		SetEntryState: set_entry_state.NewInteractor(productRepo, businessRepo, activityRepo, comm, clk),
		ToggleReady:   toggle_ready.NewInteractor(productRepo, businessRepo, activityRepo, comm, clk),

		RestoreProduct: restore_product.NewInteractor(productRepo, businessRepo, activityRepo, comm, clk),
		PurgeArchived:  purge_archived.NewInteractor(productRepo, businessRepo, activityRepo, comm, clk),

		UpdateBusinessInfo: update_business_info.NewInteractor(businessRepo, activityRepo, comm, clk),
		SetLogo:            set_logo.NewInteractor(businessRepo, activityRepo, comm, clk),
		AddState:           add_state.NewInteractor(businessRepo, activityRepo, comm, clk),
		UpdateStateColor:   update_state_color.NewInteractor(businessRepo, activityRepo, comm, clk),
		RemoveState:        remove_state.NewInteractor(businessRepo, activityRepo, comm, clk),

		ExportInvoice: export_invoice.NewInteractor(productRepo, businessRepo, renderer, deps.Sink, deps.Metrics),
		BulkExport:    bulk_export.NewInteractor(productRepo, businessRepo, renderer, deps.Sink, deps.Metrics, clk),

		ListProducts:      list_products.NewQuery(productRepo, businessRepo),
		GetProduct:        get_product.NewQuery(productRepo, businessRepo),
		ListArchive:       list_archive.NewQuery(productRepo, businessRepo),
		BulkEntries:       bulk_entries.NewQuery(productRepo, businessRepo),
		GetBusinessConfig: get_business_config.NewQuery(businessRepo),
		EntryText:         entry_text.NewQuery(productRepo, businessRepo),
		ListEvents:        list_events.NewQuery(activityRepo),

		Activity: activityRepo,
	}
}
