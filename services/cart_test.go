package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"storefront-api/apierror"
)

func TestGetCartWithoutCart(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	user := seedUser(t, db, "empty@x.com")

	cart, err := carts.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Zero(t, cart.TotalItems)
	require.Zero(t, cart.TotalPrice)
	assertCartConsistent(t, cart)

	// Reading must not create a cart as a side effect.
	again, err := carts.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, again.ID)
}

func TestAddItemRoundTrip(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	user := seedUser(t, db, "rt@x.com")
	product := seedProduct(t, db, "sneaker", 49.5, 10)

	cart, err := carts.AddItem(context.Background(), user.ID, product.ID, 2)
	require.NoError(t, err)
	assertCartConsistent(t, cart)

	fetched, err := carts.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	require.Equal(t, 2, fetched.Items[0].Quantity)
	require.InDelta(t, 2*49.5, fetched.Items[0].LineTotal, 1e-9)
	require.Equal(t, 1, fetched.TotalItems)
	assertCartConsistent(t, fetched)

	// The add reserved two units against the product counter.
	require.Equal(t, 8, productStock(t, db, product.ID))
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	user := seedUser(t, db, "np@x.com")

	_, err := carts.AddItem(context.Background(), user.ID, uuid.NewString(), 1)
	require.True(t, apierror.IsKind(err, apierror.NotFound))
}

func TestAddItemOutOfStock(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	user := seedUser(t, db, "oos@x.com")
	product := seedProduct(t, db, "sold-out", 10, 0)

	_, err := carts.AddItem(context.Background(), user.ID, product.ID, 1)
	require.True(t, apierror.IsKind(err, apierror.OutOfStock))
}

func TestAddItemQuantityBoundary(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	user := seedUser(t, db, "qb@x.com")
	product := seedProduct(t, db, "widget", 5, 5)

	for _, qty := range []int{0, -1, -100} {
		_, err := carts.AddItem(context.Background(), user.ID, product.ID, qty)
		require.True(t, apierror.IsKind(err, apierror.Validation), "quantity %d", qty)
	}
	require.Equal(t, 5, productStock(t, db, product.ID))
}

func TestAddItemAccumulatesUntilStockRunsOut(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	user := seedUser(t, db, "acc@x.com")
	product := seedProduct(t, db, "scarce", 20, 3)

	cart, err := carts.AddItem(context.Background(), user.ID, product.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, cart.Items[0].Quantity)

	// 2 held + 2 requested exceeds the 3 ever available.
	_, err = carts.AddItem(context.Background(), user.ID, product.ID, 2)
	require.True(t, apierror.IsKind(err, apierror.InsufficientStock))
	require.EqualError(t, apierror.From(err), "insufficient_stock: Only 3 items available")

	// Failure left the line and the counter untouched.
	fetched, err := carts.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	require.Equal(t, 2, fetched.Items[0].Quantity)
	require.Equal(t, 1, productStock(t, db, product.ID))
	assertCartConsistent(t, fetched)
}

func TestAddItemSnapshotsUnitPrice(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	user := seedUser(t, db, "snap@x.com")
	product := seedProduct(t, db, "volatile", 100, 10)

	_, err := carts.AddItem(context.Background(), user.ID, product.ID, 1)
	require.NoError(t, err)

	// A later catalog price change must not rewrite the existing line.
	require.NoError(t, db.Model(product).Update("price", 250.0).Error)

	cart, err := carts.AddItem(context.Background(), user.ID, product.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.InDelta(t, 100.0, cart.Items[0].UnitPrice, 1e-9)
	require.InDelta(t, 200.0, cart.Items[0].LineTotal, 1e-9)
	assertCartConsistent(t, cart)
}

func TestUpdateItemAdjustsReservation(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	user := seedUser(t, db, "upd@x.com")
	product := seedProduct(t, db, "adjust", 10, 10)

	_, err := carts.AddItem(context.Background(), user.ID, product.ID, 4)
	require.NoError(t, err)
	require.Equal(t, 6, productStock(t, db, product.ID))

	cart, err := carts.UpdateItem(context.Background(), user.ID, product.ID, 7)
	require.NoError(t, err)
	require.Equal(t, 7, cart.Items[0].Quantity)
	require.Equal(t, 3, productStock(t, db, product.ID))
	assertCartConsistent(t, cart)

	cart, err = carts.UpdateItem(context.Background(), user.ID, product.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, cart.Items[0].Quantity)
	require.Equal(t, 8, productStock(t, db, product.ID))
	assertCartConsistent(t, cart)
}

func TestUpdateItemBeyondStockLeavesQuantity(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	user := seedUser(t, db, "ubs@x.com")
	product := seedProduct(t, db, "few", 10, 5)

	_, err := carts.AddItem(context.Background(), user.ID, product.ID, 3)
	require.NoError(t, err)

	_, err = carts.UpdateItem(context.Background(), user.ID, product.ID, 6)
	require.True(t, apierror.IsKind(err, apierror.InsufficientStock))
	require.EqualError(t, apierror.From(err), "insufficient_stock: Only 5 items available")

	fetched, err := carts.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, 3, fetched.Items[0].Quantity)
	require.Equal(t, 2, productStock(t, db, product.ID))
}

func TestUpdateItemValidationAndMissing(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	user := seedUser(t, db, "um@x.com")
	product := seedProduct(t, db, "thing", 10, 5)

	_, err := carts.UpdateItem(context.Background(), user.ID, product.ID, 0)
	require.True(t, apierror.IsKind(err, apierror.Validation))

	// No cart yet.
	_, err = carts.UpdateItem(context.Background(), user.ID, product.ID, 1)
	require.True(t, apierror.IsKind(err, apierror.NotFound))

	other := seedProduct(t, db, "other", 5, 5)
	_, err = carts.AddItem(context.Background(), user.ID, other.ID, 1)
	require.NoError(t, err)

	// Cart exists, but no line for this product.
	_, err = carts.UpdateItem(context.Background(), user.ID, product.ID, 1)
	require.True(t, apierror.IsKind(err, apierror.NotFound))
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	user := seedUser(t, db, "rm@x.com")
	product := seedProduct(t, db, "gone", 15, 4)

	// Removing from a user with no cart is a successful no-op.
	cart, err := carts.RemoveItem(context.Background(), user.ID, product.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	_, err = carts.AddItem(context.Background(), user.ID, product.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 1, productStock(t, db, product.ID))

	cart, err = carts.RemoveItem(context.Background(), user.ID, product.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Zero(t, cart.TotalPrice)
	assertCartConsistent(t, cart)

	// Removal released the reservation.
	require.Equal(t, 4, productStock(t, db, product.ID))

	// Removing the same line again is still a success.
	cart, err = carts.RemoveItem(context.Background(), user.ID, product.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestClearCartIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	user := seedUser(t, db, "clr@x.com")
	first := seedProduct(t, db, "first", 10, 5)
	second := seedProduct(t, db, "second", 20, 5)

	_, err := carts.AddItem(context.Background(), user.ID, first.ID, 2)
	require.NoError(t, err)
	_, err = carts.AddItem(context.Background(), user.ID, second.ID, 3)
	require.NoError(t, err)

	cart, err := carts.ClearCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Zero(t, cart.TotalItems)
	require.Zero(t, cart.TotalPrice)

	require.Equal(t, 5, productStock(t, db, first.ID))
	require.Equal(t, 5, productStock(t, db, second.ID))

	again, err := carts.ClearCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, again.Items)
	require.Zero(t, again.TotalPrice)
}

// Two users race for the last unit. The conditional decrement must admit
// exactly one of them; a read-then-write stock check would let both through.
func TestConcurrentAddForLastUnit(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	alice := seedUser(t, db, "alice@x.com")
	bob := seedUser(t, db, "bob@x.com")
	product := seedProduct(t, db, "last-one", 99, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, user := range []string{alice.ID, bob.ID} {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			_, errs[i] = carts.AddItem(context.Background(), userID, product.ID, 1)
		}(i, user)
	}
	wg.Wait()

	var successes, stockFailures int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case apierror.IsKind(err, apierror.InsufficientStock), apierror.IsKind(err, apierror.OutOfStock):
			stockFailures++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, 1, stockFailures)
	require.Equal(t, 0, productStock(t, db, product.ID))
}
