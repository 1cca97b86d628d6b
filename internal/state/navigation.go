package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/storefront/internal/db"
)

// Page names stored in NavigationState.Page.
const (
	PageHome    = "home"
	PageStore   = "store"
	PageCart    = "cart"
	PageProduct = "product"
)

type NavigationState struct {
	Page          string // one of the Page constants
	ProductHandle string // product shown when Page is "product"
	CollectionID  string // store listing collection filter
	RegionID      string
	ListingOffset int
}

func getNavigation(db *sql.DB) (*NavigationState, error) {
	row := db.QueryRow(`
		SELECT page, product_handle, collection_id, region_id, listing_offset
		FROM navigation_state WHERE id = 1
	`)

	var state NavigationState
	var handle, collection, region sql.NullString

	err := row.Scan(&state.Page, &handle, &collection, &region, &state.ListingOffset)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	state.ProductHandle = dbutil.NullStringValue(handle)
	state.CollectionID = dbutil.NullStringValue(collection)
	state.RegionID = dbutil.NullStringValue(region)

	return &state, nil
}

func saveNavigation(db *sql.DB, state NavigationState) error {
	if state.Page == "" {
		state.Page = PageStore
	}
	if state.ListingOffset < 0 {
		state.ListingOffset = 0
	}
	_, err := db.Exec(`
		INSERT INTO navigation_state (id, page, product_handle, collection_id, region_id, listing_offset)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			page = excluded.page,
			product_handle = excluded.product_handle,
			collection_id = excluded.collection_id,
			region_id = excluded.region_id,
			listing_offset = excluded.listing_offset
	`, state.Page, dbutil.NullString(state.ProductHandle), dbutil.NullString(state.CollectionID),
		dbutil.NullString(state.RegionID), state.ListingOffset)

	return err
}
