package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 20, 8, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T, seed SeedFunc) *Store {
	t.Helper()
	if seed == nil {
		seed = DefaultSeed(7)
	}
	store, err := Open(context.Background(), Options{
		Repository: NewMemoryRepository(),
		Seed:       seed,
		Now:        func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return store
}

func emptySeed(now time.Time) map[Collection][]Record {
	return map[Collection][]Record{}
}

func TestAddRecordUsesNextID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, func(now time.Time) map[Collection][]Record {
		return map[Collection][]Record{
			CollectionTenant: {
				&TenantRecord{Meta: Meta{ID: 1}, ShopName: "A"},
				&TenantRecord{Meta: Meta{ID: 4}, ShopName: "B"},
			},
		}
	})

	rec, err := store.AddRecord(ctx, CollectionTenant, map[string]string{"shopName": "C"})
	require.NoError(t, err)
	assert.Equal(t, 5, rec.RecordID())
	assert.Equal(t, "C", Field(rec, "shopName"))
	assert.Equal(t, fixedNow, rec.(*TenantRecord).CreatedAt)

	rec, err = store.AddRecord(ctx, CollectionExpedition, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.RecordID())
}

func TestAddRecordAppliesIdentityThenFields(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, emptySeed)

	require.NoError(t, store.BroadcastField(ctx, CollectionRTE, "surveyor", "Ahmad"))
	require.NoError(t, store.BroadcastField(ctx, CollectionRTE, "pic", "Ali"))

	rec, err := store.AddRecord(ctx, CollectionRTE, map[string]string{"pic": "Umar", "menu": "Nasi"})
	require.NoError(t, err)
	assert.Equal(t, "Ahmad", Field(rec, "surveyor"))
	assert.Equal(t, "Umar", Field(rec, "pic"))
	assert.Equal(t, "Nasi", Field(rec, "menu"))
}

func TestBroadcastTouchesOnlyField(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	before, err := store.All(ctx, CollectionSpiceMakkah)
	require.NoError(t, err)
	require.Len(t, before, 28)

	require.NoError(t, store.BroadcastField(ctx, CollectionSpiceMakkah, "kitchenName", "Dapur Baru"))

	after, err := store.All(ctx, CollectionSpiceMakkah)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range after {
		assert.Equal(t, "Dapur Baru", Field(after[i], "kitchenName"))
		want := before[i].(*SpiceRecord)
		got := after[i].(*SpiceRecord)
		want.KitchenName = "Dapur Baru"
		assert.Equal(t, *want, *got)
	}

	madinah, err := store.All(ctx, CollectionSpiceMadinah)
	require.NoError(t, err)
	assert.NotEqual(t, "Dapur Baru", Field(madinah[0], "kitchenName"))
}

func TestBroadcastDateAndTimeConvertPickerValues(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	require.NoError(t, store.BroadcastDate(ctx, CollectionTenant, "2026-06-25"))
	require.NoError(t, store.BroadcastTime(ctx, CollectionTenant, "13:45"))
	records, err := store.All(ctx, CollectionTenant)
	require.NoError(t, err)
	for _, r := range records {
		assert.Equal(t, "25/06/2026", Field(r, "date"))
		assert.Equal(t, "13.45", Field(r, "time"))
	}

	require.NoError(t, store.BroadcastDate(ctx, CollectionTenant, ""))
	records, err = store.All(ctx, CollectionTenant)
	require.NoError(t, err)
	assert.Equal(t, "", Field(records[0], "date"))
	assert.Equal(t, map[string]string{"date": "", "time": "13.45"}, store.Identity(CollectionTenant))
}

func TestBroadcastIgnoresFieldsOutsideKind(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)
	version := store.Version()

	require.NoError(t, store.BroadcastField(ctx, CollectionTelecom, "hotelName", "X"))
	require.NoError(t, store.BroadcastField(ctx, CollectionTelecom, "id", "9"))
	assert.Equal(t, version, store.Version())
	assert.Empty(t, store.Identity(CollectionTelecom))
}

func TestUpdateFieldTargetsOneRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	ok, err := store.UpdateField(ctx, CollectionRice, 2, "volume", "175")
	require.NoError(t, err)
	assert.True(t, ok)

	records, err := store.All(ctx, CollectionRice)
	require.NoError(t, err)
	assert.Equal(t, "200", Field(records[0], "volume"))
	assert.Equal(t, "175", Field(records[1], "volume"))

	ok, err = store.UpdateField(ctx, CollectionRice, 99, "volume", "1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.UpdateField(ctx, CollectionRice, 1, "weight", "1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.UpdateField(ctx, CollectionRice, 3, "isUsed", "on")
	require.NoError(t, err)
	assert.True(t, ok)
	records, err = store.All(ctx, CollectionRice)
	require.NoError(t, err)
	assert.True(t, records[2].(*RiceRecord).IsUsed)
}

func TestRemoveRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	ok, err := store.RemoveRecord(ctx, CollectionTelecom, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	records, err := store.All(ctx, CollectionTelecom)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, r := range records {
		assert.NotEqual(t, 2, r.RecordID())
	}

	version := store.Version()
	ok, err = store.RemoveRecord(ctx, CollectionTelecom, 2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, version, store.Version())
}

func TestUnknownCollection(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	_, err := store.All(ctx, Collection("hotel"))
	assert.ErrorIs(t, err, ErrUnknownCollection)
	_, err = store.AddRecord(ctx, Collection("hotel"), nil)
	assert.ErrorIs(t, err, ErrUnknownCollection)
	_, err = ParseCollection("Hotel")
	assert.ErrorIs(t, err, ErrUnknownCollection)

	c, err := ParseCollection(" Bumbu_Madinah ")
	require.NoError(t, err)
	assert.Equal(t, CollectionSpiceMadinah, c)
}

func TestResetIdentityRequiresConfirm(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)
	require.NoError(t, store.BroadcastField(ctx, CollectionExpedition, "surveyor", "Joko"))

	err := store.ResetIdentity(CollectionExpedition, false)
	assert.ErrorIs(t, err, ErrConfirmRequired)
	assert.Equal(t, "Joko", store.Identity(CollectionExpedition)["surveyor"])

	require.NoError(t, store.ResetIdentity(CollectionExpedition, true))
	assert.Empty(t, store.Identity(CollectionExpedition))

	records, err := store.All(ctx, CollectionExpedition)
	require.NoError(t, err)
	assert.Equal(t, "Joko", Field(records[0], "surveyor"))
}

func TestResetRestoresSeed(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	_, err := store.RemoveRecord(ctx, CollectionRice, 1)
	require.NoError(t, err)
	require.NoError(t, store.BroadcastField(ctx, CollectionRice, "pic", "X"))

	assert.ErrorIs(t, store.Reset(ctx, false), ErrConfirmRequired)
	require.NoError(t, store.Reset(ctx, true))

	records, err := store.All(ctx, CollectionRice)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Kepala Dapur", Field(records[0], "pic"))
	assert.Empty(t, store.Identity(CollectionRice))
}

func TestOnChangeReceivesVersions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	var changes []Change
	store.OnChange(func(_ context.Context, ch Change) {
		changes = append(changes, ch)
	})
	start := store.Version()

	_, err := store.AddRecord(ctx, CollectionTenant, map[string]string{"shopName": "Baru"})
	require.NoError(t, err)
	_, err = store.UpdateField(ctx, CollectionTenant, 1, "rentCost", "16000")
	require.NoError(t, err)

	require.Len(t, changes, 2)
	assert.Equal(t, Change{Collection: CollectionTenant, Op: OpAdd, Version: start + 1}, changes[0])
	assert.Equal(t, Change{Collection: CollectionTenant, Op: OpUpdate, Version: start + 2}, changes[1])
}

func TestLoadingWindow(t *testing.T) {
	store, err := Open(context.Background(), Options{
		Seed:      DefaultSeed(1),
		LoadDelay: time.Hour,
	})
	require.NoError(t, err)
	assert.False(t, store.Ready())

	snap, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Loading)
	assert.Empty(t, snap.Records(CollectionSpiceMakkah))

	records, err := store.All(context.Background(), CollectionRice)
	require.NoError(t, err)
	assert.Empty(t, records)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = store.AddRecord(ctx, CollectionRice, nil)
	assert.True(t, errors.Is(err, ErrNotReady))
}

func TestLoadingWindowElapses(t *testing.T) {
	store, err := Open(context.Background(), Options{
		Seed:      DefaultSeed(1),
		LoadDelay: 5 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, store.WaitReady(ctx))

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.False(t, snap.Loading)
	assert.Len(t, snap.Spices(CollectionSpiceMadinah), 28)
	assert.Len(t, snap.Telecom(), 4)
}

func TestDefaultSeedIsReproducible(t *testing.T) {
	a := DefaultSeed(42)(fixedNow)
	b := DefaultSeed(42)(fixedNow)
	assert.Equal(t, a, b)

	makkah := a[CollectionSpiceMakkah]
	require.Len(t, makkah, 28)
	first := makkah[0].(*SpiceRecord)
	assert.Equal(t, "Bumbu Nasi Kuning", first.Name)
	assert.Equal(t, "Daun Salam, Serai", first.OtherIngredients)
	assert.True(t, first.IsUsed)
	assert.InDelta(t, 3.5, ParseNumber(first.Volume), 2.5)

	unnamed := makkah[12].(*SpiceRecord)
	assert.Equal(t, "Supplier Makkah 13", unnamed.CompanyName)
	assert.False(t, unnamed.IsUsed)
	assert.Empty(t, unnamed.Volume)
	assert.Equal(t, "Dapur Makkah Sektor 3", unnamed.KitchenName)

	rte := a[CollectionRTE]
	require.Len(t, rte, 10)
	assert.Equal(t, "904", rte[4].(*RTERecord).HotelNumber)
	assert.Empty(t, rte[4].(*RTERecord).Volume)
}

func TestRedisRepositoryRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	repo := NewRedisRepository(client)
	ctx := context.Background()

	records, err := repo.Load(ctx, CollectionExpedition)
	require.NoError(t, err)
	assert.Empty(t, records)

	seeded := DefaultSeed(3)(fixedNow)
	require.NoError(t, repo.Save(ctx, CollectionExpedition, seeded[CollectionExpedition]))
	require.NoError(t, repo.Save(ctx, CollectionSpiceMakkah, seeded[CollectionSpiceMakkah]))
	assert.True(t, mr.Exists("ekohajj:records:expedition"))

	loaded, err := repo.Load(ctx, CollectionExpedition)
	require.NoError(t, err)
	assert.Equal(t, seeded[CollectionExpedition], loaded)

	spices, err := repo.Load(ctx, CollectionSpiceMakkah)
	require.NoError(t, err)
	require.Len(t, spices, 28)
	assert.Equal(t, seeded[CollectionSpiceMakkah][0], spices[0])

	assert.ErrorIs(t, repo.Save(ctx, Collection("x"), nil), ErrUnknownCollection)
}

func TestStoreOnRedisRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	store, err := Open(ctx, Options{Repository: NewRedisRepository(client), Seed: DefaultSeed(1), Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)

	rec, err := store.AddRecord(ctx, CollectionTelecom, map[string]string{"providerName": "Zain"})
	require.NoError(t, err)
	assert.Equal(t, 5, rec.RecordID())

	other := NewRedisRepository(client)
	records, err := other.Load(ctx, CollectionTelecom)
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "Zain", Field(records[4], "providerName"))
}

func TestAttachKeepsExistingRecords(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()
	repo := NewRedisRepository(client)

	web, err := Open(ctx, Options{Repository: repo, Seed: DefaultSeed(1), Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)
	_, err = web.AddRecord(ctx, CollectionTelecom, map[string]string{"providerName": "Zain"})
	require.NoError(t, err)

	worker, err := Open(ctx, Options{Repository: NewRedisRepository(client), Seed: DefaultSeed(2), Attach: true})
	require.NoError(t, err)
	records, err := worker.All(ctx, CollectionTelecom)
	require.NoError(t, err)
	assert.Len(t, records, 5)
	assert.Equal(t, web.Version(), worker.Version())
	assert.Equal(t, int64(2), worker.Version())

	empty, err := Open(ctx, Options{Seed: DefaultSeed(1), Attach: true, Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)
	records, err = empty.All(ctx, CollectionTelecom)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestStoresShareRepositoryVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	first, err := Open(ctx, Options{Repository: repo, Seed: DefaultSeed(1)})
	require.NoError(t, err)
	second, err := Open(ctx, Options{Repository: repo, Seed: DefaultSeed(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Version())

	_, err = first.AddRecord(ctx, CollectionRice, map[string]string{"companyName": "Baru"})
	require.NoError(t, err)
	snap, err := second.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.Version)
	assert.Equal(t, int64(3), second.Version())
}
